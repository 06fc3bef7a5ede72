package task

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-note-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Spec() string                  // cron 表达式，支持 @every 1h 等描述符
	Run(ctx context.Context) error // 执行任务
	IsStartupRun() bool            // 是否立即执行一次
}

// cronParser accepts five field expressions and descriptors such as "@every 1h"
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSpec validates a task schedule
// ParseSpec 校验任务 cron 表达式
func ParseSpec(spec string) (cron.Schedule, error) {
	s, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return s, nil
}

// Scheduler 任务调度器
type Scheduler struct {
	logger  *zap.Logger
	tasks   []Task
	sc      *safe_close.SafeClose
	timeout time.Duration
}

// NewScheduler 创建任务调度器
// timeout 为单次任务执行的超时时间，<=0 表示不限制
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose, timeout time.Duration) *Scheduler {
	return &Scheduler{
		logger:  logger,
		tasks:   make([]Task, 0),
		sc:      sc,
		timeout: timeout,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Tasks returns the registered tasks
func (s *Scheduler) Tasks() []Task {
	return s.tasks
}

// Start 启动所有任务
// cron 在关闭信号到来时停止，并等待正在执行的任务结束
func (s *Scheduler) Start() error {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return nil
	}

	c := cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.Recover(cronLogger{s.logger}), cron.SkipIfStillRunning(cronLogger{s.logger})),
		cron.WithLogger(cronLogger{s.logger}),
	)

	for _, task := range s.tasks {
		task := task
		if _, err := c.AddFunc(task.Spec(), func() { s.run(task, "loopRun") }); err != nil {
			return fmt.Errorf("schedule task %s: %w", task.Name(), err)
		}
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		c.Start()

		for _, task := range s.tasks {
			if task.IsStartupRun() {
				go s.run(task, "startupRun")
			}
		}

		<-closeSignal
		<-c.Stop().Done()
		s.logger.Info("tasks stopped")
	})
	return nil
}

// run executes task once, recovering from panics
func (s *Scheduler) run(task Task, mode string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.String("mode", mode),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := task.Run(ctx); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("mode", mode),
			zap.Error(err))
		return
	}
	s.logger.Debug("task done",
		zap.String("name", task.Name()),
		zap.String("mode", mode),
		zap.Duration("elapsed", time.Since(start)))
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	l *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
