package upgrade

import (
	"context"

	"github.com/haierkeys/fast-note-service/internal/model"

	"gorm.io/gorm"
)

// historyIndexName 历史列表按 (note_id, saved_at) 查询
const historyIndexName = "idx_note_history_note_saved"

// HistoryIndexMigrate 为历史表创建 (note_id, saved_at) 复合索引
type HistoryIndexMigrate struct{}

func (m *HistoryIndexMigrate) Version() string {
	return "1.1.0"
}

func (m *HistoryIndexMigrate) Description() string {
	return "Create composite index on note_history(note_id, saved_at)"
}

func (m *HistoryIndexMigrate) Up(ctx context.Context, db *gorm.DB) error {
	migrator := db.WithContext(ctx).Migrator()
	if migrator.HasIndex(&model.NoteHistory{}, historyIndexName) {
		return nil
	}
	return migrator.CreateIndex(&model.NoteHistory{}, historyIndexName)
}
