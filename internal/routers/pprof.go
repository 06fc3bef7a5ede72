package routers

import (
	"net/http/pprof"

	"github.com/haierkeys/fast-note-service/internal/middleware"
	"github.com/haierkeys/fast-note-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DefaultPrefix url prefix of pprof
const DefaultPrefix = "/debug/pprof"

// runtime profiles served by pprof.Handler
var namedProfiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// NewPrivateRouterWithLogger builds the private listener: /metrics from gatherer,
// /debug/vars, and pprof in debug mode
// NewPrivateRouterWithLogger 创建私有路由，仅监听内网地址
func NewPrivateRouterWithLogger(runMode string, logger *zap.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(logger))

	r.GET("/debug/vars", api_router.Expvar)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if runMode != gin.DebugMode {
		return r
	}

	p := r.Group(DefaultPrefix)
	p.GET("/", gin.WrapF(pprof.Index))
	p.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	p.GET("/profile", gin.WrapF(pprof.Profile))
	p.Any("/symbol", gin.WrapF(pprof.Symbol))
	p.GET("/trace", gin.WrapF(pprof.Trace))
	for _, name := range namedProfiles {
		p.GET("/"+name, gin.WrapH(pprof.Handler(name)))
	}

	return r
}
