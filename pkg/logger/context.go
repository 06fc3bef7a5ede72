package logger

import (
	"context"

	"go.uber.org/zap"
)

type traceIDKey struct{}

// WithTraceID stores the request trace id in ctx
// WithTraceID 将 TraceID 写入 context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID reads the trace id stored by WithTraceID
// TraceID 从 context 读取 TraceID
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// TraceField returns the traceId field, or a no-op field when ctx has none
func TraceField(ctx context.Context) zap.Field {
	if id := TraceID(ctx); id != "" {
		return zap.String(FieldTraceID, id)
	}
	return zap.Skip()
}
