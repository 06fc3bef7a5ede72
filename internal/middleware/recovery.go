package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
// The panic value is logged, never returned to the client.
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				fields := []zap.Field{
					zap.String(logger.FieldTraceID, app.GetTraceID(c)),
					zap.String("router", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("query", c.Request.URL.RawQuery),
					zap.String("ip", c.ClientIP()),
					zap.String("user-agent", c.Request.UserAgent()),
					zap.String("stack", string(debug.Stack())),
				}
				if e, ok := err.(error); ok {
					fields = append(fields, zap.Error(e))
				} else {
					fields = append(fields, zap.String("panic_value", fmt.Sprintf("%v", err)))
				}
				lg.Error("Recovered from panic", fields...)

				app.NewResponse(c).ToResponse(code.ErrorServerInternal)
				c.Abort()
			}
		}()

		c.Next()
	}
}
