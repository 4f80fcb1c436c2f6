package model

import (
	"time"

	"github.com/lib/pq"
)

// 工具分类（闭集）
const (
	CategoryAITools       = "AI Tools"
	CategoryDesignTools   = "Design Tools"
	CategoryDevTools      = "Dev Tools"
	CategoryProductivity  = "Productivity"
	CategoryMarketing     = "Marketing"
	CategoryDataAnalytics = "Data & Analytics"
	CategoryCommunication = "Communication"
	CategoryFinance       = "Finance"
	CategoryEducation     = "Education"
	CategoryOther         = "Other"
)

// Categories 所有合法分类
var Categories = []string{
	CategoryAITools,
	CategoryDesignTools,
	CategoryDevTools,
	CategoryProductivity,
	CategoryMarketing,
	CategoryDataAnalytics,
	CategoryCommunication,
	CategoryFinance,
	CategoryEducation,
	CategoryOther,
}

// IsValidCategory 判断分类是否属于闭集
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SortKey 列表排序键
type SortKey string

const (
	SortRelevance SortKey = "relevance" // 按相关度评分降序
	SortMostUsed  SortKey = "most_used" // 按使用次数降序
	SortName      SortKey = "name"      // 按名称升序
	SortRecent    SortKey = "recent"    // 按创建时间降序
)

// ParseSortKey 解析排序键，未识别的值回退到 recent
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRelevance, SortMostUsed, SortName, SortRecent:
		return SortKey(s)
	default:
		return SortRecent
	}
}

// Tool 工具记录
type Tool struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	UserID         string         `gorm:"index;size:36;not null" json:"user_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Category       string         `gorm:"size:50;index;default:'Other'" json:"category"`
	Website        string         `gorm:"size:500" json:"website"`
	Description    string         `gorm:"type:text" json:"description"`
	UseCase        string         `gorm:"type:text" json:"use_case"`
	RelevanceScore int            `gorm:"default:3" json:"relevance_score"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	SourceLink     string         `gorm:"size:500" json:"source_link"`
	IsFavorite     bool           `gorm:"index;default:false" json:"is_favorite"`
	UsageCount     int            `gorm:"default:0" json:"usage_count"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Tool) TableName() string {
	return "tools"
}
