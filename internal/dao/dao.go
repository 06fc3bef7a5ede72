// Package dao 实现数据访问层
package dao

import (
	"context"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// txKey context key of the running transaction
type txKey struct{}

// Dao holds the shared connection pool and the per owner write queue
// Dao 持有共享连接池与按用户串行的写队列
type Dao struct {
	db         *gorm.DB
	logger     *zap.Logger
	writeQueue *writequeue.Manager
}

var _ domain.Transactor = (*Dao)(nil)

// New 创建 Dao，wq 为 nil 时写事务不排队
func New(db *gorm.DB, logger *zap.Logger, wq *writequeue.Manager) *Dao {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dao{db: db, logger: logger, writeQueue: wq}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// conn returns the transaction carried by ctx, or the pool bound to ctx
// conn 优先使用 ctx 中的事务
func (d *Dao) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// InTransaction reports whether ctx carries a transaction
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

// Transaction runs fn in one transaction queued behind earlier writes of owner.
// Nested calls join the outer transaction.
// Transaction 在事务中执行 fn，同一用户的写事务按顺序执行，嵌套调用复用外层事务
func (d *Dao) Transaction(ctx context.Context, owner int64, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	run := func(ctx context.Context) error {
		return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
	}

	if d.writeQueue == nil {
		return run(ctx)
	}
	return d.writeQueue.Execute(ctx, owner, run)
}
