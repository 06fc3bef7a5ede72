// Package domain 定义领域模型和接口
package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByID 根据ID获取用户
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户，邮箱重复时返回 ErrDuplicateKey
	Create(ctx context.Context, user *User) (*User, error)
}

// NoteRepository 笔记仓储接口
// Every read and write is scoped to the owner uid, except GetOwnerID.
type NoteRepository interface {
	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// GetByIDForUpdate 在事务中加行锁读取笔记（SQLite 忽略行锁）
	GetByIDForUpdate(ctx context.Context, id, uid int64) (*Note, error)

	// GetOwnerID 获取笔记所属用户，不校验归属
	GetOwnerID(ctx context.Context, id int64) (int64, error)

	// ListByUID 获取用户全部笔记摘要（不含内容），按更新时间倒序
	ListByUID(ctx context.Context, uid int64) ([]*Note, error)

	// UpdateWithVersion 覆盖标题与内容并递增版本号，版本不匹配时返回 ErrVersionConflict
	UpdateWithVersion(ctx context.Context, note *Note, expectedVersion int64) error

	// Delete 删除笔记，返回删除行数
	Delete(ctx context.Context, id, uid int64) (int64, error)
}

// NoteHistoryRepository 笔记历史仓储接口
type NoteHistoryRepository interface {
	// Create 追加历史记录
	Create(ctx context.Context, history *NoteHistory) (*NoteHistory, error)

	// GetByID 根据ID获取历史记录
	GetByID(ctx context.Context, id int64) (*NoteHistory, error)

	// ListByNoteID 按保存时间升序（同一时间按 ID 升序）获取全部历史记录
	ListByNoteID(ctx context.Context, noteID int64) ([]*NoteHistory, error)

	// CountByNoteID 获取历史记录数量
	CountByNoteID(ctx context.Context, noteID int64) (int64, error)

	// DeleteByNoteID 删除笔记的全部历史记录
	DeleteByNoteID(ctx context.Context, noteID int64) (int64, error)

	// DeleteOrphans 删除所属笔记已不存在的历史记录
	DeleteOrphans(ctx context.Context) (int64, error)
}

// Transactor runs fn inside one database transaction, queued behind earlier writes of owner.
// Repository calls made with the ctx passed to fn join that transaction.
// Transactor 在单个数据库事务中执行 fn
type Transactor interface {
	Transaction(ctx context.Context, owner int64, fn func(ctx context.Context) error) error
}
