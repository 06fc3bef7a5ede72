package api_router

import (
	"time"

	"github.com/haierkeys/fast-note-service/internal/app"
	pkgapp "github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string  `json:"status"`   // "healthy" 或 "unhealthy"
	Version  string  `json:"version"`  // 服务版本号
	Uptime   float64 `json:"uptime"`   // 运行时间（秒）
	Database string  `json:"database"` // "connected" 或 "error"
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接；数据库不可用时返回 503
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]any "{success, status, version, uptime, database}"
// @Failure 503 {object} pkgapp.ErrorRes "数据库不可用"
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	sqlDB, err := h.App.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.logError(ctx, "HealthHandler.Check", err)
		response.ToResponse(code.ErrorDBUnavailable.WithDetails("status: unhealthy", "database: error"))
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{
		"status":   "healthy",
		"version":  h.App.Version().Version,
		"uptime":   time.Since(h.App.StartTime).Seconds(),
		"database": "connected",
	}))
}
