// Package writequeue serializes write transactions per owner
// Package writequeue 按用户串行化写事务
// Used to keep one owner's writes strictly ordered and to avoid SQLite "database is locked"
// 保证同一用户的写操作严格有序，并避免 SQLite "database is locked"
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Error definitions
// 错误定义
var (
	// ErrWriteQueueFull returned when too many writes of one owner are waiting
	// ErrWriteQueueFull 当同一用户等待中的写操作过多时返回
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed returned when the manager is shut down
	// ErrWriteQueueClosed 当写队列管理器已关闭时返回
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout returned when waiting for the owner's turn takes longer than WriteTimeout
	// ErrWriteTimeout 等待写入时机超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config write queue configuration
// Config 写队列配置
type Config struct {
	// QueueCapacity max writes of one owner waiting for their turn, default 100
	// QueueCapacity 每用户最多排队的写操作数，默认 100
	QueueCapacity int
	// WriteTimeout upper bound for waiting plus running one write, default 30 seconds
	// WriteTimeout 单个写操作（含排队）的超时时间，默认 30 秒
	WriteTimeout time.Duration
}

// DefaultConfig returns default configuration
// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
	}
}

// lane is one owner's turn token; blocked senders on turn are released in FIFO order.
// A lane lives while refs > 0 and is removed by the last user.
type lane struct {
	turn    chan struct{}
	refs    int
	waiting int
}

// Manager manages write lanes for all owners
// Manager 管理所有用户的写通道
type Manager struct {
	config Config
	logger *zap.Logger

	mu       sync.Mutex
	lanes    map[int64]*lane
	closed   bool
	inflight sync.WaitGroup
}

// New creates write queue manager
// New 创建写队列管理器
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("write queue manager started",
		zap.Int("queueCapacity", c.QueueCapacity),
		zap.Duration("writeTimeout", c.WriteTimeout))

	return &Manager{
		config: c,
		logger: logger,
		lanes:  make(map[int64]*lane),
	}
}

// Execute runs fn once every earlier write of the same owner has finished.
// fn runs on the caller's goroutine with a ctx bounded by WriteTimeout.
// Execute 在同一用户之前的写操作全部完成后执行 fn
func (m *Manager) Execute(ctx context.Context, owner int64, fn func(ctx context.Context) error) error {
	l, err := m.enter(owner)
	if err != nil {
		return err
	}
	defer m.leave(owner, l)

	ctx, cancel := context.WithTimeout(ctx, m.config.WriteTimeout)
	defer cancel()

	select {
	case l.turn <- struct{}{}:
	case <-ctx.Done():
		m.mu.Lock()
		l.waiting--
		m.mu.Unlock()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrWriteTimeout
		}
		return ctx.Err()
	}

	m.mu.Lock()
	l.waiting--
	m.mu.Unlock()

	defer func() { <-l.turn }()
	return fn(ctx)
}

func (m *Manager) enter(owner int64) (*lane, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrWriteQueueClosed
	}

	l, ok := m.lanes[owner]
	if !ok {
		l = &lane{turn: make(chan struct{}, 1)}
		m.lanes[owner] = l
		m.logger.Debug("created write lane", zap.Int64("owner", owner))
	}
	if l.waiting >= m.config.QueueCapacity {
		if l.refs == 0 {
			delete(m.lanes, owner)
		}
		return nil, ErrWriteQueueFull
	}
	l.refs++
	l.waiting++
	m.inflight.Add(1)
	return l, nil
}

func (m *Manager) leave(owner int64, l *lane) {
	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.lanes, owner)
	}
	m.mu.Unlock()
	m.inflight.Done()
}

// Shutdown rejects new writes and waits for the accepted ones
// Shutdown 拒绝新的写操作并等待已接收的写操作完成
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info("write queue manager shutting down")

	done := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("write queue manager shutdown completed")
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout")
		return ctx.Err()
	}
}

// Metrics write queue manager metrics
// Metrics 写队列管理器指标
type Metrics struct {
	QueueCapacity int
	ActiveLanes   int
	Waiting       int
	IsClosed      bool
}

// GetMetrics gets current metrics
// GetMetrics 获取当前指标
func (m *Manager) GetMetrics() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	waiting := 0
	for _, l := range m.lanes {
		waiting += l.waiting
	}
	return Metrics{
		QueueCapacity: m.config.QueueCapacity,
		ActiveLanes:   len(m.lanes),
		Waiting:       waiting,
		IsClosed:      m.closed,
	}
}
