package routers

import (
	"time"

	_ "github.com/haierkeys/fast-note-service/docs"
	"github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/internal/middleware"
	"github.com/haierkeys/fast-note-service/internal/routers/api_router"
	"github.com/haierkeys/fast-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// newAuthLimiter 登录与注册接口限流：每秒补充 10 个令牌
func newAuthLimiter() limiter.Face {
	return limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{
			Key:          "/api/login",
			FillInterval: time.Second,
			Capacity:     10,
			Quantum:      10,
		},
		limiter.BucketRule{
			Key:          "/api/user",
			FillInterval: time.Second,
			Capacity:     10,
			Quantum:      10,
		},
	)
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()

	if cfg.Server.RunMode == gin.DebugMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(middleware.TraceConfig{
			Enabled: cfg.Tracer.Enabled,
			Header:  cfg.Tracer.Header,
		}))
		api.Use(middleware.RecoveryWithLogger(lg))
		api.Use(middleware.Metrics(appContainer.Metrics))
		api.Use(middleware.AccessLogWithLogger(lg))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.RateLimiter(newAuthLimiter()))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		noteHistoryHandler := api_router.NewNoteHistoryHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		api.POST("/user", userHandler.Register)
		api.POST("/login", userHandler.Login)
		api.POST("/logout", userHandler.Logout)
		api.POST("/verify-token", userHandler.VerifyToken)

		notes := api.Group("/notes")
		notes.Use(middleware.SessionAuth(appContainer.TokenManager, appContainer.CookieConfig()))
		{
			notes.POST("/create", noteHandler.Create)
			notes.GET("", noteHandler.List)
			notes.GET("/:id", noteHandler.Get)
			notes.PUT("/:id", noteHandler.Update)
			notes.DELETE("/:id", noteHandler.Delete)
			notes.GET("/:id/history", noteHistoryHandler.List)

			notes.GET("/history/:versionId", noteHistoryHandler.Get)
			notes.GET("/history/:versionId/diff", noteHistoryHandler.Diff)
		}
	}

	r.NoRoute(middleware.NoFound())

	return r
}
