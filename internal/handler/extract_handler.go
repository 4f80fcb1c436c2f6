package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/next-indexer/internal/service"
	"github.com/ashwinyue/next-indexer/internal/service/extract"
)

// ExtractHandler 抽取处理器
type ExtractHandler struct {
	svc *service.Services
}

// NewExtractHandler 创建抽取处理器
func NewExtractHandler(svc *service.Services) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

// Extract 从自由文本抽取工具草稿
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req extract.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	draft, err := h.svc.Extract.Extract(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, draft)
}
