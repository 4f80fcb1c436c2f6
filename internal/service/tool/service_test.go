// Package tool 提供工具服务单元测试
package tool

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gorm.io/gorm"

	"github.com/ashwinyue/next-indexer/internal/model"
	"github.com/ashwinyue/next-indexer/internal/repository"
)

// fakeToolRepo 内存版工具仓库
type fakeToolRepo struct {
	tools      map[string]*model.Tool
	lastParams *repository.ToolListParams
	listResult []*model.Tool
	listTotal  int64
	listErr    error
}

func newFakeToolRepo() *fakeToolRepo {
	return &fakeToolRepo{tools: make(map[string]*model.Tool)}
}

func (f *fakeToolRepo) Create(ctx context.Context, tool *model.Tool) error {
	f.tools[tool.ID] = tool
	return nil
}

func (f *fakeToolRepo) GetByID(ctx context.Context, userID, id string) (*model.Tool, error) {
	tool, ok := f.tools[id]
	if !ok || tool.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return tool, nil
}

func (f *fakeToolRepo) List(ctx context.Context, userID string, params *repository.ToolListParams) ([]*model.Tool, int64, error) {
	f.lastParams = params
	return f.listResult, f.listTotal, f.listErr
}

func (f *fakeToolRepo) Update(ctx context.Context, tool *model.Tool) error {
	f.tools[tool.ID] = tool
	return nil
}

func (f *fakeToolRepo) Delete(ctx context.Context, userID, id string) error {
	if _, ok := f.tools[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.tools, id)
	return nil
}

func (f *fakeToolRepo) ToggleFavorite(ctx context.Context, userID, id string) (*model.Tool, error) {
	tool, err := f.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tool.IsFavorite = !tool.IsFavorite
	return tool, nil
}

func (f *fakeToolRepo) IncrementUsage(ctx context.Context, userID, id string) (*model.Tool, error) {
	tool, err := f.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tool.UsageCount++
	return tool, nil
}

var _ repository.ToolRepository = (*fakeToolRepo)(nil)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

// ========== CreateTool 测试 ==========

func TestCreateToolValidation(t *testing.T) {
	svc := NewService(newFakeToolRepo())

	tests := []struct {
		name string
		req  *CreateToolRequest
	}{
		{name: "empty name", req: &CreateToolRequest{Name: ""}},
		{name: "whitespace name", req: &CreateToolRequest{Name: "   "}},
		{name: "score below range", req: &CreateToolRequest{Name: "x", RelevanceScore: intPtr(0)}},
		{name: "score above range", req: &CreateToolRequest{Name: "x", RelevanceScore: intPtr(6)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTool(context.Background(), "u1", tt.req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateToolDefaults(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)

	tool, err := svc.CreateTool(context.Background(), "u1", &CreateToolRequest{Name: "  Obsidian  "})
	if err != nil {
		t.Fatalf("CreateTool() error = %v", err)
	}

	if tool.Name != "Obsidian" {
		t.Errorf("Name = %q, want trimmed %q", tool.Name, "Obsidian")
	}
	if tool.Category != model.CategoryOther {
		t.Errorf("Category = %q, want %q", tool.Category, model.CategoryOther)
	}
	if tool.RelevanceScore != 3 {
		t.Errorf("RelevanceScore = %d, want 3", tool.RelevanceScore)
	}
	if tool.IsFavorite {
		t.Error("IsFavorite = true, want false")
	}
	if tool.UsageCount != 0 {
		t.Errorf("UsageCount = %d, want 0", tool.UsageCount)
	}
	if tool.ID == "" {
		t.Error("ID not assigned")
	}
	if tool.UserID != "u1" {
		t.Errorf("UserID = %q, want %q", tool.UserID, "u1")
	}
	if tool.Tags == nil || len(tool.Tags) != 0 {
		t.Errorf("Tags = %v, want empty non-nil", tool.Tags)
	}
}

func TestCreateToolBoundaryScores(t *testing.T) {
	svc := NewService(newFakeToolRepo())

	for _, score := range []int{1, 5} {
		tool, err := svc.CreateTool(context.Background(), "u1", &CreateToolRequest{
			Name:           "x",
			RelevanceScore: intPtr(score),
		})
		if err != nil {
			t.Errorf("CreateTool(score=%d) error = %v, want accepted", score, err)
			continue
		}
		if tool.RelevanceScore != score {
			t.Errorf("RelevanceScore = %d, want %d", tool.RelevanceScore, score)
		}
	}
}

// ========== ListTools 测试 ==========

func TestListToolsDefaults(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)

	resp, err := svc.ListTools(context.Background(), "u1", &ListToolsRequest{})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}

	if repo.lastParams.Page != 1 || repo.lastParams.Limit != 12 {
		t.Errorf("params page/limit = %d/%d, want 1/12", repo.lastParams.Page, repo.lastParams.Limit)
	}
	if repo.lastParams.Sort != model.SortRecent {
		t.Errorf("sort = %q, want recent", repo.lastParams.Sort)
	}
	if resp.Page != 1 || resp.Limit != 12 {
		t.Errorf("resp page/limit = %d/%d, want 1/12", resp.Page, resp.Limit)
	}
	if resp.Records == nil {
		t.Error("Records is nil, want empty slice")
	}
}

func TestListToolsParamNormalization(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)

	_, err := svc.ListTools(context.Background(), "u1", &ListToolsRequest{
		Tags:  " go , ,backend ,",
		Sort:  "bogus",
		Page:  -3,
		Limit: 500,
	})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}

	if want := []string{"go", "backend"}; !reflect.DeepEqual(repo.lastParams.Tags, want) {
		t.Errorf("tags = %v, want %v", repo.lastParams.Tags, want)
	}
	if repo.lastParams.Sort != model.SortRecent {
		t.Errorf("sort = %q, want recent fallback", repo.lastParams.Sort)
	}
	if repo.lastParams.Page != 1 {
		t.Errorf("page = %d, want 1", repo.lastParams.Page)
	}
	if repo.lastParams.Limit != MaxLimit {
		t.Errorf("limit = %d, want clamped to %d", repo.lastParams.Limit, MaxLimit)
	}
}

func TestListToolsTotalPages(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)

	tests := []struct {
		name       string
		total      int64
		limit      int
		totalPages int
	}{
		{name: "exact division", total: 24, limit: 12, totalPages: 2},
		{name: "with remainder", total: 25, limit: 12, totalPages: 3},
		{name: "empty", total: 0, limit: 12, totalPages: 0},
		{name: "single partial page", total: 5, limit: 12, totalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.listTotal = tt.total
			resp, err := svc.ListTools(context.Background(), "u1", &ListToolsRequest{Limit: tt.limit})
			if err != nil {
				t.Fatalf("ListTools() error = %v", err)
			}
			if resp.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", resp.TotalPages, tt.totalPages)
			}
			if resp.Total != tt.total {
				t.Errorf("Total = %d, want %d", resp.Total, tt.total)
			}
		})
	}
}

func TestListToolsStoreFailure(t *testing.T) {
	repo := newFakeToolRepo()
	repo.listErr = errors.New("connection reset")
	svc := NewService(repo)

	if _, err := svc.ListTools(context.Background(), "u1", &ListToolsRequest{}); err == nil {
		t.Error("ListTools() error = nil, want store failure surfaced")
	}
}

// ========== UpdateTool 测试 ==========

func TestUpdateToolPartial(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)

	createdTool, err := svc.CreateTool(context.Background(), "u1", &CreateToolRequest{
		Name:        "Figma",
		Category:    model.CategoryDesignTools,
		Description: "design tool",
	})
	if err != nil {
		t.Fatalf("CreateTool() error = %v", err)
	}

	updated, err := svc.UpdateTool(context.Background(), "u1", createdTool.ID, &UpdateToolRequest{
		Name: strPtr("  Figma Pro  "),
	})
	if err != nil {
		t.Fatalf("UpdateTool() error = %v", err)
	}

	if updated.Name != "Figma Pro" {
		t.Errorf("Name = %q, want %q", updated.Name, "Figma Pro")
	}
	// 未提供的字段保持原值
	if updated.Category != model.CategoryDesignTools {
		t.Errorf("Category = %q, changed unexpectedly", updated.Category)
	}
	if updated.Description != "design tool" {
		t.Errorf("Description = %q, changed unexpectedly", updated.Description)
	}
}

func TestUpdateToolValidation(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)

	createdTool, _ := svc.CreateTool(context.Background(), "u1", &CreateToolRequest{Name: "x"})

	tests := []struct {
		name string
		req  *UpdateToolRequest
	}{
		{name: "empty name", req: &UpdateToolRequest{Name: strPtr("  ")}},
		{name: "score out of range", req: &UpdateToolRequest{RelevanceScore: intPtr(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateTool(context.Background(), "u1", createdTool.ID, tt.req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

// Update 不校验 category 闭集，按调用方提供的值写入
func TestUpdateToolCategoryNotValidated(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)

	createdTool, _ := svc.CreateTool(context.Background(), "u1", &CreateToolRequest{Name: "x"})

	updated, err := svc.UpdateTool(context.Background(), "u1", createdTool.ID, &UpdateToolRequest{
		Category: strPtr("Totally Custom"),
	})
	if err != nil {
		t.Fatalf("UpdateTool() error = %v", err)
	}
	if updated.Category != "Totally Custom" {
		t.Errorf("Category = %q, want caller value preserved", updated.Category)
	}
}

// ========== 记录缺失映射测试 ==========

func TestNotFoundMapping(t *testing.T) {
	svc := NewService(newFakeToolRepo())
	ctx := context.Background()

	if _, err := svc.GetTool(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTool error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteTool(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTool error = %v, want ErrNotFound", err)
	}
	if _, err := svc.ToggleFavorite(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleFavorite error = %v, want ErrNotFound", err)
	}
	if _, err := svc.IncrementUsage(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("IncrementUsage error = %v, want ErrNotFound", err)
	}
	if _, err := svc.UpdateTool(ctx, "u1", "missing", &UpdateToolRequest{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTool error = %v, want ErrNotFound", err)
	}
}

// ========== 收藏翻转幂等性测试 ==========

func TestToggleFavoriteRoundTrip(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewService(repo)
	ctx := context.Background()

	createdTool, _ := svc.CreateTool(ctx, "u1", &CreateToolRequest{Name: "x"})

	first, err := svc.ToggleFavorite(ctx, "u1", createdTool.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if !first.IsFavorite {
		t.Error("first toggle: IsFavorite = false, want true")
	}

	second, err := svc.ToggleFavorite(ctx, "u1", createdTool.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if second.IsFavorite {
		t.Error("second toggle: IsFavorite = true, want back to false")
	}
}

// ========== SplitTags 测试 ==========

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "go", expected: []string{"go"}},
		{name: "trimmed", input: " go , backend ", expected: []string{"go", "backend"}},
		{name: "empty entries dropped", input: "go,,  ,backend", expected: []string{"go", "backend"}},
		{name: "only separators", input: ", ,", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.input)
			if tt.expected == nil {
				if got != nil {
					t.Errorf("SplitTags(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
