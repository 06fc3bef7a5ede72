package task

import (
	"github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	app       *app.App
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(a *app.App, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		app:       a,
		scheduler: NewScheduler(a.Logger(), sc, a.Config().GetContextTimeout()),
		logger:    a.Logger(),
	}
}

// RegisterTasks 注册所有任务
// 工厂返回 nil 的任务视为未启用
func (m *Manager) RegisterTasks() error {
	for _, factory := range GetFactories() {
		t, err := factory(m.app)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			return err
		}
		if t == nil {
			continue
		}
		if _, err := ParseSpec(t.Spec()); err != nil {
			return err
		}
		m.scheduler.AddTask(t)
		m.logger.Info("task registered", zap.String("name", t.Name()), zap.String("spec", t.Spec()))
	}
	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() error {
	return m.scheduler.Start()
}
