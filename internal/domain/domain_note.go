// Package domain 定义领域模型和接口
package domain

import "time"

// Template of every newly created note
// 新建笔记的默认模板
const (
	DefaultNoteTitle   = "Untitled Note"
	DefaultNoteContent = "# Untitled Note\n\nStart typing your ideas here..."
)

// Note 笔记领域模型
type Note struct {
	ID        int64
	UID       int64
	Title     string
	Content   string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefaultNote returns an unsaved note for uid filled with the default template
// NewDefaultNote 创建默认模板笔记（未持久化）
func NewDefaultNote(uid int64, now time.Time) *Note {
	return &Note{
		UID:       uid,
		Title:     DefaultNoteTitle,
		Content:   DefaultNoteContent,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPristineDefault reports whether the note still holds exactly the default template
// IsPristineDefault 笔记是否仍为未修改的默认模板
func (n *Note) IsPristineDefault() bool {
	return IsPristineDefault(n.Title, n.Content)
}

// Differs reports whether title or content differ from the note
// Differs 标题或内容是否与当前笔记不同
func (n *Note) Differs(title, content string) bool {
	return n.Title != title || n.Content != content
}

// IsPristineDefault 判断标题与内容是否为默认模板
func IsPristineDefault(title, content string) bool {
	return title == DefaultNoteTitle && content == DefaultNoteContent
}

// ShouldSnapshot decides whether editing current into (title, content) must first
// save current into history: only real changes of a non template note are kept.
// ShouldSnapshot 判断编辑前是否需要保存历史版本
func ShouldSnapshot(current *Note, title, content string) bool {
	return current.Differs(title, content) && !current.IsPristineDefault()
}
