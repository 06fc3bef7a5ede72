// Package domain 定义领域模型和接口
package domain

import "time"

// NoteHistory 笔记历史领域模型，只追加不修改
type NoteHistory struct {
	ID      int64
	NoteID  int64
	Title   string
	Content string
	SavedAt time.Time
}
