package upgrade

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/fast-note-service/internal/dao"
	"github.com/haierkeys/fast-note-service/internal/model"
	"github.com/haierkeys/fast-note-service/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{Type: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRun_AppliesInOrderOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	m := NewMigrationManager(db, zap.NewNop(), "1.1.0")
	require.NoError(t, m.Run(ctx))

	var rows []SchemaVersion
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "1.0.0", rows[0].Version)
	assert.Equal(t, "1.1.0", rows[1].Version)
	assert.True(t, db.Migrator().HasIndex(&model.NoteHistory{}, historyIndexName))

	// second run is a no-op
	require.NoError(t, NewMigrationManager(db, zap.NewNop(), "v1.1.0").Run(ctx))
	var count int64
	require.NoError(t, db.Model(&SchemaVersion{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRun_SkipsNewerMigrations(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, NewMigrationManager(db, zap.NewNop(), "1.0.5").Run(context.Background()))

	applied, err := NewMigrationManager(db, zap.NewNop(), "1.0.5").AppliedVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"1.0.0": true}, applied)
}

func TestRun_InvalidRunningVersion(t *testing.T) {
	db := newTestDB(t)
	assert.Error(t, NewMigrationManager(db, zap.NewNop(), "latest").Run(context.Background()))
}

func TestNoteVersionBackfill(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, model.AutoMigrate(db, "all"))

	now := timex.Now()
	note := &model.Note{UID: 1, Title: "t", Content: "c", Version: 1, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(note).Error)
	require.NoError(t, db.Model(&model.Note{}).Where("id = ?", note.ID).Update("version", 0).Error)

	require.NoError(t, (&NoteVersionBackfill{}).Up(context.Background(), db))

	var got model.Note
	require.NoError(t, db.First(&got, note.ID).Error)
	assert.EqualValues(t, 1, got.Version)
}

type failingMigration struct{}

func (failingMigration) Version() string     { return "1.0.1" }
func (failingMigration) Description() string { return "always fails" }
func (failingMigration) Up(ctx context.Context, db *gorm.DB) error {
	if err := db.Create(&SchemaVersion{Version: "ghost"}).Error; err != nil {
		return err
	}
	return errors.New("boom")
}

func TestRun_FailedMigrationRollsBack(t *testing.T) {
	db := newTestDB(t)
	m := NewMigrationManager(db, zap.NewNop(), "1.1.0")
	m.Register(failingMigration{})

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.0.1")

	applied, err := m.AppliedVersions(context.Background())
	require.NoError(t, err)
	assert.True(t, applied["1.0.0"])
	assert.False(t, applied["1.0.1"])
	assert.False(t, applied["ghost"])
	assert.False(t, applied["1.1.0"])
}
