package model

import "github.com/haierkeys/fast-note-service/pkg/timex"

const TableNameNoteHistory = "note_history"

// NoteHistory mapped from table <note_history>
type NoteHistory struct {
	ID      int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	NoteID  int64      `gorm:"column:note_id;not null;index:idx_note_history_note_saved,priority:1" json:"noteId" form:"noteId"`
	Title   string     `gorm:"column:title;not null;size:255;default:''" json:"title" form:"title"`
	Content string     `gorm:"column:content;type:text;not null" json:"content" form:"content"`
	SavedAt timex.Time `gorm:"column:saved_at;not null;index:idx_note_history_note_saved,priority:2" json:"savedAt" form:"savedAt"`
}

// TableName NoteHistory's table name
func (*NoteHistory) TableName() string {
	return TableNameNoteHistory
}
