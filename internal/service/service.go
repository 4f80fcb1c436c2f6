package service

import (
	"context"
	"fmt"
	"log"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/next-indexer/internal/config"
	"github.com/ashwinyue/next-indexer/internal/repository"
	"github.com/ashwinyue/next-indexer/internal/service/auth"
	"github.com/ashwinyue/next-indexer/internal/service/extract"
	"github.com/ashwinyue/next-indexer/internal/service/tool"
)

// Services 服务集合
type Services struct {
	Auth    *auth.Service
	Tool    *tool.Service
	Extract *extract.Service

	// 配置
	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repos *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	ctx := context.Background()

	// AI 模型未配置时抽取服务降级为不可用，不阻止启动
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		log.Printf("AI extraction disabled: %v", err)
		chatModel = nil
	}

	return &Services{
		Auth:    auth.NewService(repos, redisClient),
		Tool:    tool.NewService(repos.Tool),
		Extract: extract.NewService(chatModel),
		Config:  cfg,
	}, nil
}

// newChatModel 创建 ChatModel
// 通过 OpenAI 兼容接口访问，Gemini 等提供商以 BaseURL 接入
func newChatModel(ctx context.Context, cfg *config.Config) (ecomodel.BaseChatModel, error) {
	aiCfg := cfg.AI

	if aiCfg.APIKey == "" {
		return nil, fmt.Errorf("ai api_key is not configured")
	}

	modelName := aiCfg.Model
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  aiCfg.APIKey,
		BaseURL: aiCfg.BaseURL,
		Model:   modelName,
	})
}
