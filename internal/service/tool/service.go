// Package tool 提供工具记录的业务逻辑
package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ashwinyue/next-indexer/internal/model"
	"github.com/ashwinyue/next-indexer/internal/repository"
)

var (
	// ErrNotFound 记录不存在或不属于当前用户
	ErrNotFound = errors.New("tool not found")
	// ErrInvalidInput 请求数据违反校验规则
	ErrInvalidInput = errors.New("invalid input")
)

// 分页默认值与上限
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// Service 工具服务
type Service struct {
	repo repository.ToolRepository
}

// NewService 创建工具服务
func NewService(repo repository.ToolRepository) *Service {
	return &Service{repo: repo}
}

// ListToolsRequest 列表请求
// 数值与枚举参数解析失败时回退默认值，不使请求失败
type ListToolsRequest struct {
	Search        string
	Category      string
	Tags          string // 逗号分隔
	Sort          string
	FavoritesOnly bool
	Page          int
	Limit         int
}

// ListToolsResponse 列表响应
type ListToolsResponse struct {
	Records    []*model.Tool `json:"records"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// CreateToolRequest 创建请求
type CreateToolRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Website        string   `json:"website"`
	Description    string   `json:"description"`
	UseCase        string   `json:"use_case"`
	RelevanceScore *int     `json:"relevance_score"`
	Tags           []string `json:"tags"`
	SourceLink     string   `json:"source_link"`
}

// UpdateToolRequest 部分更新请求，仅允许白名单字段
type UpdateToolRequest struct {
	Name           *string   `json:"name"`
	Category       *string   `json:"category"`
	Website        *string   `json:"website"`
	Description    *string   `json:"description"`
	UseCase        *string   `json:"use_case"`
	RelevanceScore *int      `json:"relevance_score"`
	Tags           *[]string `json:"tags"`
	SourceLink     *string   `json:"source_link"`
}

// ListTools 分页查询工具
func (s *Service) ListTools(ctx context.Context, userID string, req *ListToolsRequest) (*ListToolsResponse, error) {
	page := req.Page
	if page <= 0 {
		page = DefaultPage
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	params := &repository.ToolListParams{
		Search:        strings.TrimSpace(req.Search),
		Category:      req.Category,
		Tags:          SplitTags(req.Tags),
		FavoritesOnly: req.FavoritesOnly,
		Sort:          model.ParseSortKey(req.Sort),
		Page:          page,
		Limit:         limit,
	}

	records, total, err := s.repo.List(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	if records == nil {
		records = []*model.Tool{}
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListToolsResponse{
		Records:    records,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// CreateTool 创建工具
func (s *Service) CreateTool(ctx context.Context, userID string, req *CreateToolRequest) (*model.Tool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	score := 3
	if req.RelevanceScore != nil {
		if *req.RelevanceScore < 1 || *req.RelevanceScore > 5 {
			return nil, fmt.Errorf("%w: relevance score must be 1-5", ErrInvalidInput)
		}
		score = *req.RelevanceScore
	}

	category := req.Category
	if category == "" {
		category = model.CategoryOther
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	tool := &model.Tool{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           name,
		Category:       category,
		Website:        req.Website,
		Description:    req.Description,
		UseCase:        req.UseCase,
		RelevanceScore: score,
		Tags:           tags,
		SourceLink:     req.SourceLink,
		IsFavorite:     false,
		UsageCount:     0,
	}

	if err := s.repo.Create(ctx, tool); err != nil {
		return nil, fmt.Errorf("failed to create tool: %w", err)
	}

	return tool, nil
}

// GetTool 获取工具
func (s *Service) GetTool(ctx context.Context, userID, id string) (*model.Tool, error) {
	tool, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return tool, nil
}

// UpdateTool 部分更新工具
// category 不做闭集校验，按调用方提供的值写入
func (s *Service) UpdateTool(ctx context.Context, userID, id string, req *UpdateToolRequest) (*model.Tool, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if req.RelevanceScore != nil && (*req.RelevanceScore < 1 || *req.RelevanceScore > 5) {
		return nil, fmt.Errorf("%w: relevance score must be 1-5", ErrInvalidInput)
	}

	tool, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}

	if req.Name != nil {
		tool.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		tool.Category = *req.Category
	}
	if req.Website != nil {
		tool.Website = *req.Website
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.UseCase != nil {
		tool.UseCase = *req.UseCase
	}
	if req.RelevanceScore != nil {
		tool.RelevanceScore = *req.RelevanceScore
	}
	if req.Tags != nil {
		tool.Tags = *req.Tags
	}
	if req.SourceLink != nil {
		tool.SourceLink = *req.SourceLink
	}

	if err := s.repo.Update(ctx, tool); err != nil {
		return nil, fmt.Errorf("failed to update tool: %w", err)
	}

	return tool, nil
}

// DeleteTool 删除工具
func (s *Service) DeleteTool(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return wrapNotFound(err)
	}
	return nil
}

// ToggleFavorite 翻转收藏状态
func (s *Service) ToggleFavorite(ctx context.Context, userID, id string) (*model.Tool, error) {
	tool, err := s.repo.ToggleFavorite(ctx, userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return tool, nil
}

// IncrementUsage 使用次数加一
func (s *Service) IncrementUsage(ctx context.Context, userID, id string) (*model.Tool, error) {
	tool, err := s.repo.IncrementUsage(ctx, userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return tool, nil
}

// SplitTags 拆分逗号分隔的标签串，去除空白并丢弃空项
func SplitTags(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// wrapNotFound 将记录缺失映射为 ErrNotFound，其余错误原样透传
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
