// Package tracer 初始化 opentracing 全局 tracer（Jaeger 实现）
package tracer

import (
	"io"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegerConfig "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewJaegerTracer creates a Jaeger tracer reporting to agentHostPort and installs it globally.
// An empty agentHostPort installs a no-op tracer, so spans created by middleware and gorm stay cheap.
// NewJaegerTracer 创建 Jaeger tracer 并设置为全局 tracer；agent 地址为空时使用 NoopTracer
func NewJaegerTracer(serviceName, agentHostPort string) (opentracing.Tracer, io.Closer, error) {
	if agentHostPort == "" {
		t := opentracing.NoopTracer{}
		opentracing.SetGlobalTracer(t)
		return t, nopCloser{}, nil
	}

	cfg := &jaegerConfig.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegerConfig.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegerConfig.ReporterConfig{
			LogSpans:            false,
			BufferFlushInterval: time.Second,
			LocalAgentHostPort:  agentHostPort,
		},
	}

	t, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, nil, errors.Wrap(err, "jaeger tracer")
	}
	opentracing.SetGlobalTracer(t)
	return t, closer, nil
}
