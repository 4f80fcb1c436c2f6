package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ashwinyue/next-indexer/internal/model"
)

// toolRepositoryImpl 工具数据访问
type toolRepositoryImpl struct {
	db *gorm.DB
}

// NewToolRepository 创建工具仓库
func NewToolRepository(db *gorm.DB) ToolRepository {
	return &toolRepositoryImpl{db: db}
}

// Create 创建工具记录
func (r *toolRepositoryImpl) Create(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

// GetByID 获取当前用户的工具记录
func (r *toolRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*model.Tool, error) {
	var tool model.Tool
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// List 分页查询工具记录
// 搜索、分类、标签、收藏过滤以 AND 组合；total 在分页前统计
func (r *toolRepositoryImpl) List(ctx context.Context, userID string, params *ToolListParams) ([]*model.Tool, int64, error) {
	var tools []*model.Tool
	var total int64

	query := listFilters(r.db.WithContext(ctx).Model(&model.Tool{}), userID, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tools: %w", err)
	}

	err := listPage(listSort(query, params.Sort), params.Page, params.Limit).Find(&tools).Error
	return tools, total, err
}

// listFilters 组合列表过滤条件
func listFilters(query *gorm.DB, userID string, params *ToolListParams) *gorm.DB {
	query = query.Where("user_id = ?", userID)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if len(params.Tags) > 0 {
		// Postgres 数组交集运算符
		query = query.Where("tags && ?", pq.Array(params.Tags))
	}

	if params.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}

	return query
}

// listSort 排序键到 ORDER BY 的映射，未识别的键回退到最近创建
func listSort(query *gorm.DB, sort model.SortKey) *gorm.DB {
	switch sort {
	case model.SortRelevance:
		return query.Order("relevance_score DESC")
	case model.SortMostUsed:
		return query.Order("usage_count DESC")
	case model.SortName:
		return query.Order("name ASC")
	default:
		return query.Order("created_at DESC")
	}
}

// listPage 应用分页，page 从 1 开始
func listPage(query *gorm.DB, page, limit int) *gorm.DB {
	return query.Offset((page - 1) * limit).Limit(limit)
}

// Update 更新工具记录
func (r *toolRepositoryImpl) Update(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Save(tool).Error
}

// Delete 删除当前用户的工具记录
func (r *toolRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Tool{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleFavorite 翻转收藏状态
// 单条原子 UPDATE，避免先读后写的并发丢失更新
func (r *toolRepositoryImpl) ToggleFavorite(ctx context.Context, userID, id string) (*model.Tool, error) {
	res := r.db.WithContext(ctx).Model(&model.Tool{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_favorite", gorm.Expr("NOT is_favorite"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, userID, id)
}

// IncrementUsage 使用次数加一
// 单条原子 UPDATE，避免先读后写的并发丢失更新
func (r *toolRepositoryImpl) IncrementUsage(ctx context.Context, userID, id string) (*model.Tool, error) {
	res := r.db.WithContext(ctx).Model(&model.Tool{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, userID, id)
}
