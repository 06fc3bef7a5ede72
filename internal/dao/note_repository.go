// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/model"
	"github.com/haierkeys/fast-note-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

var _ domain.NoteRepository = (*noteRepository)(nil)

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		UID:       m.UID,
		Title:     m.Title,
		Content:   m.Content,
		Version:   m.Version,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	return &model.Note{
		ID:        note.ID,
		UID:       note.UID,
		Title:     note.Title,
		Content:   note.Content,
		Version:   note.Version,
		CreatedAt: timex.Time(note.CreatedAt.UTC()),
		UpdatedAt: timex.Time(note.UpdatedAt.UTC()),
	}
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	if m.Version <= 0 {
		m.Version = 1
	}
	if err := r.dao.conn(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.conn(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByIDForUpdate 加行锁读取笔记
func (r *noteRepository) GetByIDForUpdate(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetOwnerID 获取笔记所属用户
func (r *noteRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var m model.Note
	err := r.dao.conn(ctx).
		Select("id", "uid").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return 0, err
	}
	return m.UID, nil
}

// ListByUID 获取笔记摘要列表
func (r *noteRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.conn(ctx).
		Select("id", "uid", "title", "version", "created_at", "updated_at").
		Where("uid = ?", uid).
		Order("updated_at desc").
		Order("id desc").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// UpdateWithVersion 乐观锁更新，成功后 note.Version 为新版本号
func (r *noteRepository) UpdateWithVersion(ctx context.Context, note *domain.Note, expectedVersion int64) error {
	res := r.dao.conn(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ? AND version = ?", note.ID, note.UID, expectedVersion).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": timex.Time(note.UpdatedAt.UTC()),
			"version":    gorm.Expr("version + ?", 1),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	note.Version = expectedVersion + 1
	return nil
}

// Delete 在同一事务中先清除历史记录再删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) (int64, error) {
	var affected int64
	err := r.dao.conn(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Session(&gorm.Session{NewDB: true}).
			Model(&model.Note{}).
			Select("id").
			Where("id = ? AND uid = ?", id, uid)

		if err := tx.Where("note_id IN (?)", owned).Delete(&model.NoteHistory{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND uid = ?", id, uid).Delete(&model.Note{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
