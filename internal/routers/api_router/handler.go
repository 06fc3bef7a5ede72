// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"strconv"

	"github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录错误日志，包含 Trace ID
// Expected client errors (*code.Code below 500) are logged at warn level.
func (h *Handler) logError(ctx context.Context, method string, err error) {
	fields := []zap.Field{
		zap.String(logger.FieldMethod, method),
		zap.Error(err),
		logger.TraceField(ctx),
	}
	if c, ok := err.(*code.Code); ok && c.StatusCode() < 500 {
		h.App.Logger().Warn(method, fields...)
		return
	}
	h.App.Logger().Error(method, fields...)
}

// paramID parses a positive int64 path parameter
// paramID 解析路径中的正整数 ID
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
