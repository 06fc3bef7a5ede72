// Package safe_close coordinates graceful shutdown of long running goroutines
// Package safe_close 协调常驻协程的优雅退出
package safe_close

import (
	"sync"
)

// SafeClose broadcasts one close signal to every attached worker and waits for them
// SafeClose 向所有挂载的协程广播关闭信号并等待其结束
type SafeClose struct {
	closeOnce   sync.Once
	closeSignal chan struct{}
	wg          sync.WaitGroup

	mu  sync.Mutex
	err error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs fn in a goroutine; fn must call done when it returns
// Attach 启动一个协程，fn 结束时必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeSignal)
}

// SendCloseSignal closes the signal channel once; the first non nil err is kept
// SendCloseSignal 发送关闭信号，仅第一次生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	if s.err == nil && err != nil {
		s.err = err
	}
	s.mu.Unlock()
	s.closeOnce.Do(func() {
		close(s.closeSignal)
	})
}

// CloseSignal returns the channel closed by SendCloseSignal
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached goroutine called done and returns the close reason
// WaitClosed 等待所有协程退出
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
