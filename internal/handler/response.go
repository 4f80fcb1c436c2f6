package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/next-indexer/internal/service/extract"
	"github.com/ashwinyue/next-indexer/internal/service/tool"
)

// Response 统一响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应 (200)
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应 (201)
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

// badRequest 参数错误响应 (400)
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: msg})
}

// errorResponse 根据错误类型返回相应的错误响应
// 校验错误 400，记录缺失 404，其余作为不透明的 500 上抛
func errorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tool.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Code: -1, Message: err.Error()})
	case errors.Is(err, tool.ErrInvalidInput),
		errors.Is(err, extract.ErrEmptyContent),
		errors.Is(err, extract.ErrContentTooLong):
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{Code: -1, Message: err.Error()})
	}
}

// getUserID 获取用户ID
func getUserID(c *gin.Context) string {
	if id, exists := c.Get("user_id"); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}
