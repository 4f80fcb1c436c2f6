// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/ashwinyue/next-indexer/internal/model"
)

// ToolListParams 工具列表查询参数
// 所有过滤条件以 AND 组合，排序与分页在过滤之后应用
type ToolListParams struct {
	Search        string        // 对 name/description 的不区分大小写子串匹配
	Category      string        // 精确匹配，空串表示不过滤
	Tags          []string      // 与记录 tags 的集合交集非空
	FavoritesOnly bool          // 仅收藏
	Sort          model.SortKey // 排序键
	Page          int           // 从 1 开始
	Limit         int           // 每页条数
}

// ToolRepository 工具数据访问接口
// 接口定义使 Service 层可以轻松 mock 进行单元测试
type ToolRepository interface {
	Create(ctx context.Context, tool *model.Tool) error
	GetByID(ctx context.Context, userID, id string) (*model.Tool, error)
	List(ctx context.Context, userID string, params *ToolListParams) ([]*model.Tool, int64, error)
	Update(ctx context.Context, tool *model.Tool) error
	Delete(ctx context.Context, userID, id string) error
	ToggleFavorite(ctx context.Context, userID, id string) (*model.Tool, error)
	IncrementUsage(ctx context.Context, userID, id string) (*model.Tool, error)
}

// AuthRepository 用户数据访问接口
type AuthRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	UpdateUser(user *model.User) error
}

// 确保实现满足接口
var (
	_ ToolRepository = (*toolRepositoryImpl)(nil)
	_ AuthRepository = (*authRepositoryImpl)(nil)
)
