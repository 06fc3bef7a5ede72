// Package workerpool 提供固定数量 worker 的任务池
// 用于限制 CPU 密集型任务（如密码哈希）的并发数量
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// 错误定义
var (
	// ErrWorkerPoolClosed 当 Worker Pool 已关闭时返回
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
	// ErrTaskPanicked 当任务 panic 时返回
	ErrTaskPanicked = errors.New("worker pool task panicked")
)

// Config Worker Pool 配置
type Config struct {
	// MaxWorkers 最大并发 worker 数量，默认 8
	MaxWorkers int
	// QueueSize 任务队列大小，默认 256
	QueueSize int
	// WarningPercent 告警阈值百分比，默认 0.8 (80%)
	WarningPercent float64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers:     8,
		QueueSize:      256,
		WarningPercent: 0.8,
	}
}

type task struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool runs submitted functions on a fixed set of workers.
// Submit blocks while the queue is full, until the caller's ctx ends.
type Pool struct {
	config Config
	logger *zap.Logger

	tasks chan task
	quit  chan struct{}
	wg    sync.WaitGroup

	active    atomic.Int64
	completed atomic.Int64

	mu       sync.RWMutex
	closed   bool
	shutOnce sync.Once
}

// New 创建新的 Worker Pool
// cfg 为 nil 时使用默认配置，logger 为 nil 时使用 nop logger
func New(cfg *Config, logger *zap.Logger) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.MaxWorkers > 0 {
			c.MaxWorkers = cfg.MaxWorkers
		}
		if cfg.QueueSize > 0 {
			c.QueueSize = cfg.QueueSize
		}
		if cfg.WarningPercent > 0 && cfg.WarningPercent <= 1 {
			c.WarningPercent = cfg.WarningPercent
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		config: c,
		logger: logger,
		tasks:  make(chan task, c.QueueSize),
		quit:   make(chan struct{}),
	}

	for i := 0; i < c.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", c.MaxWorkers),
		zap.Int("queueSize", c.QueueSize))

	return p
}

// worker drains tasks until the channel is closed by Shutdown
func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		t.done <- p.run(t)
	}
}

func (p *Pool) run(t task) (err error) {
	if err := t.ctx.Err(); err != nil {
		return err
	}

	n := p.active.Add(1)
	defer p.active.Add(-1)
	defer p.completed.Add(1)

	if threshold := int64(float64(p.config.MaxWorkers) * p.config.WarningPercent); n >= threshold && threshold > 0 {
		p.logger.Debug("worker pool approaching capacity",
			zap.Int64("activeCount", n),
			zap.Int("maxWorkers", p.config.MaxWorkers))
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker pool task panic", zap.Any("panic", r), zap.Stack("stack"))
			err = ErrTaskPanicked
		}
	}()
	return t.fn(t.ctx)
}

// Submit 提交任务并等待完成
// ctx 结束时立即返回 ctx.Err()，已开始执行的任务会继续运行直至结束
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	t := task{ctx: ctx, fn: fn, done: make(chan error, 1)}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrWorkerPoolClosed
	}
	select {
	case p.tasks <- t:
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	case <-p.quit:
		p.mu.RUnlock()
		return ErrWorkerPoolClosed
	}
	p.mu.RUnlock()

	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn on the pool and returns its value
// Do 在任务池中执行 fn 并返回结果
func Do[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	out := make(chan T, 1)
	err := p.Submit(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out <- v
		return nil
	})
	if err != nil {
		return zero, err
	}
	return <-out, nil
}

// Shutdown stops accepting tasks and waits for queued ones to finish or ctx to end
// Shutdown 关闭 Worker Pool，等待队列中的任务执行完成
func (p *Pool) Shutdown(ctx context.Context) error {
	p.shutOnce.Do(func() {
		p.logger.Info("worker pool shutting down",
			zap.Int64("activeCount", p.active.Load()),
			zap.Int("queuedCount", len(p.tasks)))

		close(p.quit)
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.logger.Warn("worker pool shutdown timeout")
		return ctx.Err()
	}
}

// Metrics 返回 Worker Pool 的指标
type Metrics struct {
	MaxWorkers    int
	ActiveCount   int64
	QueuedCount   int
	QueueCapacity int
	Completed     int64
	IsClosed      bool
}

// GetMetrics 获取当前指标
func (p *Pool) GetMetrics() Metrics {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()

	return Metrics{
		MaxWorkers:    p.config.MaxWorkers,
		ActiveCount:   p.active.Load(),
		QueuedCount:   len(p.tasks),
		QueueCapacity: p.config.QueueSize,
		Completed:     p.completed.Load(),
		IsClosed:      closed,
	}
}
