// Package model 数据库表映射
package model

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate migrates the table registered under key; "" or "all" migrates every table
// AutoMigrate 迁移指定表，key 为空或 all 时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "Note":
		return db.AutoMigrate(Note{})

	case "NoteHistory":
		return db.AutoMigrate(NoteHistory{})

	case "", "all":
		return db.AutoMigrate(User{}, Note{}, NoteHistory{})
	}
	return fmt.Errorf("model: unknown table %q", key)
}
