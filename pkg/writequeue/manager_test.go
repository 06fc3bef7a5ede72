package writequeue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SerializesSameOwner(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	var running, overlap int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), 1, func(ctx context.Context) error {
				if atomic.AddInt32(&running, 1) > 1 {
					atomic.StoreInt32(&overlap, 1)
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), overlap)
	assert.Equal(t, 0, m.GetMetrics().ActiveLanes)
}

func TestManager_FIFO(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = m.Execute(context.Background(), 7, func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Execute(context.Background(), 7, func(ctx context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}(i)
		// 等待第 i 个写操作进入排队
		require.Eventually(t, func() bool { return m.GetMetrics().Waiting == i+1 }, time.Second, time.Millisecond)
	}

	close(release)
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestManager_DifferentOwnersRunConcurrently(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	inA := make(chan struct{})
	doneB := make(chan struct{})
	go func() {
		_ = m.Execute(context.Background(), 1, func(ctx context.Context) error {
			close(inA)
			<-doneB
			return nil
		})
	}()
	<-inA

	err := m.Execute(context.Background(), 2, func(ctx context.Context) error { return nil })
	close(doneB)
	assert.NoError(t, err)
}

func TestManager_Full(t *testing.T) {
	m := New(&Config{QueueCapacity: 1}, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = m.Execute(context.Background(), 1, func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	go func() {
		_ = m.Execute(context.Background(), 1, func(ctx context.Context) error { return nil })
	}()
	require.Eventually(t, func() bool { return m.GetMetrics().Waiting == 1 }, time.Second, time.Millisecond)

	err := m.Execute(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueFull)
	close(release)
}

func TestManager_Timeout(t *testing.T) {
	m := New(&Config{WriteTimeout: 20 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = m.Execute(context.Background(), 1, func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := m.Execute(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWriteTimeout)
	close(release)
}

func TestManager_Closed(t *testing.T) {
	m := New(nil, nil)
	require.NoError(t, m.Shutdown(context.Background()))

	err := m.Execute(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
}
