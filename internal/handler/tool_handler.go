package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/next-indexer/internal/service"
	"github.com/ashwinyue/next-indexer/internal/service/tool"
)

// ToolHandler 工具处理器
type ToolHandler struct {
	svc *service.Services
}

// NewToolHandler 创建工具处理器
func NewToolHandler(svc *service.Services) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// parseListRequest 解析列表查询参数
// 数值参数解析失败一律回退默认值，参数解析不会使请求失败
func parseListRequest(c *gin.Context) *tool.ListToolsRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = tool.DefaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if err != nil {
		limit = tool.DefaultLimit
	}

	return &tool.ListToolsRequest{
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		Tags:          c.Query("tags"),
		Sort:          c.DefaultQuery("sort", "recent"),
		FavoritesOnly: c.Query("favorites") == "true",
		Page:          page,
		Limit:         limit,
	}
}

// ListTools 列出工具
func (h *ToolHandler) ListTools(c *gin.Context) {
	req := parseListRequest(c)

	resp, err := h.svc.Tool.ListTools(c.Request.Context(), getUserID(c), req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, resp)
}

// CreateTool 创建工具
func (h *ToolHandler) CreateTool(c *gin.Context) {
	var req tool.CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	t, err := h.svc.Tool.CreateTool(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, t)
}

// GetTool 获取工具
func (h *ToolHandler) GetTool(c *gin.Context) {
	id := c.Param("id")

	t, err := h.svc.Tool.GetTool(c.Request.Context(), getUserID(c), id)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, t)
}

// UpdateTool 更新工具
func (h *ToolHandler) UpdateTool(c *gin.Context) {
	id := c.Param("id")

	var req tool.UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	t, err := h.svc.Tool.UpdateTool(c.Request.Context(), getUserID(c), id, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, t)
}

// DeleteTool 删除工具
func (h *ToolHandler) DeleteTool(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Tool.DeleteTool(c.Request.Context(), getUserID(c), id); err != nil {
		errorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleFavorite 翻转收藏状态
func (h *ToolHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")

	t, err := h.svc.Tool.ToggleFavorite(c.Request.Context(), getUserID(c), id)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, t)
}

// IncrementUsage 使用次数加一
func (h *ToolHandler) IncrementUsage(c *gin.Context) {
	id := c.Param("id")

	t, err := h.svc.Tool.IncrementUsage(c.Request.Context(), getUserID(c), id)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, t)
}
