package middleware

import (
	"github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
const DefaultTraceIDHeader = "X-Trace-ID"

// TraceConfig 请求追踪配置
type TraceConfig struct {
	Enabled bool
	Header  string
}

// TraceMiddlewareWithConfig 创建请求追踪中间件
//  1. 从请求头获取或生成 Trace ID (uuid)
//  2. 写入 gin.Context、request.Context 和响应头
//  3. 开启 opentracing span，gorm 查询作为子 span 记录
func TraceMiddlewareWithConfig(cfg TraceConfig) gin.HandlerFunc {
	header := cfg.Header
	if header == "" {
		header = DefaultTraceIDHeader
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		traceID := c.GetHeader(header)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(app.TraceIDKey, traceID)
		c.Header(header, traceID)

		tracer := opentracing.GlobalTracer()
		parent, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(c.Request.Header))
		span := tracer.StartSpan(c.Request.Method+" "+c.Request.URL.Path, ext.RPCServerOption(parent))
		defer span.Finish()

		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.String())
		span.SetTag("trace_id", traceID)

		ctx := logger.WithTraceID(c.Request.Context(), traceID)
		ctx = opentracing.ContextWithSpan(ctx, span)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
		if c.Writer.Status() >= 500 {
			ext.Error.Set(span, true)
		}
	}
}
