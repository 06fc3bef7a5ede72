// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/haierkeys/fast-note-service/internal/dao"
	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/metrics"
	"github.com/haierkeys/fast-note-service/internal/service"
	pkgapp "github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/tracer"
	"github.com/haierkeys/fast-note-service/pkg/workerpool"
	"github.com/haierkeys/fast-note-service/pkg/writequeue"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// 可观测性，每个容器持有独立的 Registry，热重载时不会重复注册
	Registry     *prometheus.Registry
	Metrics      *metrics.Metrics
	tracerCloser io.Closer

	// Repository 层
	UserRepo        domain.UserRepository
	NoteRepo        domain.NoteRepository
	NoteHistoryRepo domain.NoteHistoryRepository

	// Service 层
	UserService        service.UserService
	NoteService        service.NoteService
	NoteHistoryService service.NoteHistoryService

	TokenManager pkgapp.TokenManager

	StartTime time.Time

	// 关闭控制
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	wg           sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	// 密钥缺失时拒绝启动
	tokenManager, err := pkgapp.NewTokenManager(cfg.GetTokenConfig())
	if err != nil {
		return nil, errors.Wrap(err, "security.auth-token-key (or JWT_KEY) must be set")
	}

	a := &App{
		config:       cfg,
		logger:       logger,
		DB:           db,
		TokenManager: tokenManager,
		StartTime:    time.Now(),
		shutdownCh:   make(chan struct{}),
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if a.Metrics, err = metrics.New(a.Registry); err != nil {
		return nil, errors.Wrap(err, "register metrics")
	}

	agent := ""
	if cfg.Tracer.Enabled {
		agent = cfg.Tracer.JaegerAgent
	}
	if _, a.tracerCloser, err = tracer.NewJaegerTracer(Name, agent); err != nil {
		return nil, err
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	a.Dao = dao.New(db, logger, a.writeQueueMgr)

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.NoteHistoryRepo = dao.NewNoteHistoryRepository(a.Dao)

	svcConfig := cfg.GetServiceConfig()

	// 初始化 Service 层（依赖注入）
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, a.workerPool, logger, &svcConfig.User)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.NoteHistoryRepo, a.Dao, a.Metrics, logger, &svcConfig.App)
	a.NoteHistoryService = service.NewNoteHistoryService(a.NoteHistoryRepo, a.NoteRepo, logger)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity),
		zap.Int("editMaxRetries", svcConfig.App.EditMaxRetries))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// CookieConfig 会话 Cookie 配置
func (a *App) CookieConfig() pkgapp.CookieConfig {
	return a.config.GetCookieConfig()
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// WorkerPool 获取 Worker Pool
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// CollectRuntimeStats publishes pool and queue gauges
// CollectRuntimeStats 采集连接池、写队列与 Worker Pool 指标
func (a *App) CollectRuntimeStats() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	a.Metrics.SetDBStats(sqlDB.Stats())

	wq := a.writeQueueMgr.GetMetrics()
	wp := a.workerPool.GetMetrics()
	a.Metrics.SetQueues(wq.ActiveLanes, wq.Waiting, wp.ActiveCount, wp.QueuedCount)
	return nil
}

// Close 关闭数据库连接
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Shutdown 优雅关闭应用容器
// Worker Pool 与 Write Queue 并行排空 -> 等待后台操作 -> 关闭 tracer -> 关闭数据库
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	a.shutdownOnce.Do(func() {
		err = a.shutdown(ctx)
	})
	return err
}

func (a *App) shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}
	close(a.shutdownCh)

	var errs []error

	// 1. 停止接受新任务并排空队列
	var g errgroup.Group
	g.Go(func() error {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			return fmt.Errorf("worker pool shutdown: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			return fmt.Errorf("write queue manager shutdown: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		a.logger.Warn("queue shutdown error", zap.Error(err))
		errs = append(errs, err)
	}

	// 2. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 3. 刷新 tracer
	if a.tracerCloser != nil {
		if err := a.tracerCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("tracer close: %w", err))
		}
	}

	// 4. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors", zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
