package handler

import (
	"github.com/ashwinyue/next-indexer/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth    *AuthHandler
	Tool    *ToolHandler
	Extract *ExtractHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc),
		Tool:    NewToolHandler(svc),
		Extract: NewExtractHandler(svc),
	}
}
