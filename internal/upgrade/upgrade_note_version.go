package upgrade

import (
	"context"

	"github.com/haierkeys/fast-note-service/internal/model"

	"gorm.io/gorm"
)

// NoteVersionBackfill 为旧数据补齐乐观锁版本号
// Notes written before the version column existed read back as 0 and would never match.
type NoteVersionBackfill struct{}

func (m *NoteVersionBackfill) Version() string {
	return "1.0.0"
}

func (m *NoteVersionBackfill) Description() string {
	return "Backfill note.version for rows created before optimistic locking"
}

func (m *NoteVersionBackfill) Up(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Model(&model.Note{}).
		Where("version IS NULL OR version < ?", 1).
		Update("version", 1).Error
}
