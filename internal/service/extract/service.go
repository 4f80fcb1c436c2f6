// Package extract 提供从自由文本中抽取工具记录草稿的服务
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/ashwinyue/next-indexer/internal/model"
)

// 抽取内容长度上限（字符数）
const MaxContentLength = 5000

var (
	// ErrNotConfigured 未配置 AI API Key
	ErrNotConfigured = errors.New("ai extraction is not configured")
	// ErrEmptyContent 内容为空
	ErrEmptyContent = errors.New("content is required")
	// ErrContentTooLong 内容超长
	ErrContentTooLong = errors.New("content too long (max 5000 characters)")
	// ErrUpstream 上游模型调用失败
	ErrUpstream = errors.New("extraction request failed")
	// ErrParseFailure 模型输出无法解析为结构化数据
	ErrParseFailure = errors.New("failed to parse extraction response")
)

// systemPrompt 抽取提示词，分类列表在构造时内联
const systemPrompt = `You are a structured data extraction assistant for a Personal Knowledge Indexer system.

Given the following raw content (could be a reel caption, a tweet thread, a blog snippet, or any text about a tool/resource), extract structured information and return ONLY a valid JSON object with these fields:

{
  "name": "The name of the tool or resource (required)",
  "category": "One of: %s (pick the best match)",
  "website": "The tool's website URL if mentioned, or empty string",
  "description": "A clear 1-2 sentence description of what the tool does",
  "use_case": "How someone would use this tool, practical applications",
  "tags": ["relevant", "tags", "as", "array"],
  "relevance_score": 3,
  "source_link": "The source URL if the content came from a specific link, or empty string"
}

Rules:
- Return ONLY the JSON object, no markdown, no code fences, no explanation
- "name" is required; if you cannot identify a tool name, set it to the most prominent subject
- "category" MUST be one of the listed categories
- "relevance_score" should be 1-5 based on how useful/important the tool seems
- "tags" should be 3-6 relevant keywords
- Leave fields as empty string "" if information is not available
- Do NOT fabricate URLs, only include if explicitly mentioned in the content`

// Service 抽取服务
type Service struct {
	chatModel ecomodel.BaseChatModel
}

// NewService 创建抽取服务
// chatModel 为 nil 表示未配置，Extract 返回 ErrNotConfigured
func NewService(chatModel ecomodel.BaseChatModel) *Service {
	return &Service{chatModel: chatModel}
}

// ExtractRequest 抽取请求
type ExtractRequest struct {
	Content string `json:"content"`
}

// Extract 调用模型抽取并清洗为工具草稿
func (s *Service) Extract(ctx context.Context, req *ExtractRequest) (*Draft, error) {
	if s.chatModel == nil {
		return nil, ErrNotConfigured
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	if utf8.RuneCountInString(req.Content) > MaxContentLength {
		return nil, ErrContentTooLong
	}

	messages := []*schema.Message{
		{
			Role:    schema.System,
			Content: fmt.Sprintf(systemPrompt, strings.Join(model.Categories, ", ")),
		},
		{
			Role:    schema.User,
			Content: "Here is the raw content to extract from:\n\n" + req.Content,
		},
	}

	resp, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return Sanitize(resp.Content)
}
