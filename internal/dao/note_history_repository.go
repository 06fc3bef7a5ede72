// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/model"
	"github.com/haierkeys/fast-note-service/pkg/timex"

	"gorm.io/gorm"
)

// noteHistoryRepository 实现 domain.NoteHistoryRepository 接口
type noteHistoryRepository struct {
	dao *Dao
}

var _ domain.NoteHistoryRepository = (*noteHistoryRepository)(nil)

// NewNoteHistoryRepository 创建 NoteHistoryRepository 实例
func NewNoteHistoryRepository(dao *Dao) domain.NoteHistoryRepository {
	return &noteHistoryRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteHistoryRepository) toDomain(m *model.NoteHistory) *domain.NoteHistory {
	if m == nil {
		return nil
	}
	return &domain.NoteHistory{
		ID:      m.ID,
		NoteID:  m.NoteID,
		Title:   m.Title,
		Content: m.Content,
		SavedAt: time.Time(m.SavedAt),
	}
}

// Create 追加历史记录
func (r *noteHistoryRepository) Create(ctx context.Context, history *domain.NoteHistory) (*domain.NoteHistory, error) {
	m := &model.NoteHistory{
		NoteID:  history.NoteID,
		Title:   history.Title,
		Content: history.Content,
		SavedAt: timex.Time(history.SavedAt.UTC()),
	}
	if err := r.dao.conn(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取历史记录
func (r *noteHistoryRepository) GetByID(ctx context.Context, id int64) (*domain.NoteHistory, error) {
	var m model.NoteHistory
	if err := r.dao.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByNoteID 按保存时间升序获取历史记录
func (r *noteHistoryRepository) ListByNoteID(ctx context.Context, noteID int64) ([]*domain.NoteHistory, error) {
	var ms []*model.NoteHistory
	err := r.dao.conn(ctx).
		Where("note_id = ?", noteID).
		Order("saved_at asc").
		Order("id asc").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*domain.NoteHistory, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// CountByNoteID 获取历史记录数量
func (r *noteHistoryRepository) CountByNoteID(ctx context.Context, noteID int64) (int64, error) {
	var count int64
	err := r.dao.conn(ctx).Model(&model.NoteHistory{}).Where("note_id = ?", noteID).Count(&count).Error
	return count, err
}

// DeleteByNoteID 删除笔记的全部历史记录
func (r *noteHistoryRepository) DeleteByNoteID(ctx context.Context, noteID int64) (int64, error) {
	res := r.dao.conn(ctx).Where("note_id = ?", noteID).Delete(&model.NoteHistory{})
	return res.RowsAffected, res.Error
}

// DeleteOrphans 删除所属笔记已不存在的历史记录
func (r *noteHistoryRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	db := r.dao.conn(ctx)
	parent := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Note{}).
		Select("1").
		Where(model.TableNameNote + ".id = " + model.TableNameNoteHistory + ".note_id")

	res := db.Where("NOT EXISTS (?)", parent).Delete(&model.NoteHistory{})
	return res.RowsAffected, res.Error
}
