package tracer

import (
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJaegerTracer_NoAgent(t *testing.T) {
	tr, closer, err := NewJaegerTracer("fast-note-service", "")
	require.NoError(t, err)
	assert.IsType(t, opentracing.NoopTracer{}, tr)
	assert.NoError(t, closer.Close())
}

func TestNewJaegerTracer_Agent(t *testing.T) {
	tr, closer, err := NewJaegerTracer("fast-note-service", "127.0.0.1:6831")
	require.NoError(t, err)
	defer closer.Close()

	span := tr.StartSpan("probe")
	span.Finish()
	assert.Equal(t, tr, opentracing.GlobalTracer())
	opentracing.SetGlobalTracer(opentracing.NoopTracer{})
}
