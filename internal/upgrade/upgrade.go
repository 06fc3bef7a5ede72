// Package upgrade applies versioned schema and data migrations
// Package upgrade 按版本执行数据库结构与数据升级
package upgrade

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-service/internal/model"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// SchemaVersion 数据库版本记录表
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

// TableName 指定表名
func (SchemaVersion) TableName() string {
	return "schema_version"
}

// Migration 定义升级接口
// Up 运行在事务中，必须可重复执行
type Migration interface {
	Version() string
	Description() string
	Up(ctx context.Context, db *gorm.DB) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db             *gorm.DB
	logger         *zap.Logger
	runningVersion string
	migrations     []Migration
}

// NewMigrationManager 创建升级管理器
// runningVersion 为当前程序版本，高于该版本的升级脚本不会执行
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, runningVersion string) *MigrationManager {
	return &MigrationManager{
		db:             db,
		logger:         logger,
		runningVersion: canonical(runningVersion),
		migrations: []Migration{
			// 在这里注册所有的升级脚本
			&NoteVersionBackfill{},
			&HistoryIndexMigrate{},
		},
	}
}

// Register appends extra migrations
func (m *MigrationManager) Register(migrations ...Migration) {
	m.migrations = append(m.migrations, migrations...)
}

// canonical adds the "v" prefix semver expects
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Run 执行升级
func (m *MigrationManager) Run(ctx context.Context) error {
	if !semver.IsValid(m.runningVersion) {
		return fmt.Errorf("running version %q is not a valid semver", m.runningVersion)
	}

	m.logger.Info("Migration started", zap.String("runningVersion", m.runningVersion))

	db := m.db.WithContext(ctx)
	if err := model.AutoMigrate(db, "all"); err != nil {
		return fmt.Errorf("failed to auto migrate tables: %w", err)
	}

	// 确保 schema_version 表存在
	if err := db.AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	applied, err := m.AppliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied versions: %w", err)
	}

	pending := make([]Migration, 0, len(m.migrations))
	for _, migration := range m.migrations {
		v := canonical(migration.Version())
		if !semver.IsValid(v) {
			return fmt.Errorf("migration %q has an invalid version", migration.Version())
		}
		if applied[migration.Version()] {
			continue
		}
		if semver.Compare(v, m.runningVersion) > 0 {
			m.logger.Info("skip migration newer than running version",
				zap.String("scriptVersion", migration.Version()))
			continue
		}
		pending = append(pending, migration)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return semver.Compare(canonical(pending[i].Version()), canonical(pending[j].Version())) < 0
	})

	for _, migration := range pending {
		m.logger.Info("applying migration",
			zap.String("scriptVersion", migration.Version()),
			zap.String("desc", migration.Description()))

		// 在事务中执行升级
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(ctx, tx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			// 记录版本
			record := &SchemaVersion{
				Version:     migration.Version(),
				Description: migration.Description(),
				AppliedAt:   time.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version(), err)
		}

		m.logger.Info("migration applied successfully", zap.String("scriptVersion", migration.Version()))
	}

	if len(pending) == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", len(pending)))
	}
	return nil
}

// AppliedVersions 获取已应用的数据库版本
func (m *MigrationManager) AppliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []SchemaVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

// Execute 执行升级(便捷方法)
func Execute(ctx context.Context, db *gorm.DB, logger *zap.Logger, runningVersion string) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	if logger == nil {
		return fmt.Errorf("logger not initialized")
	}
	return NewMigrationManager(db, logger, runningVersion).Run(ctx)
}
