package dto

import (
	"github.com/haierkeys/fast-note-service/pkg/diff"
	"github.com/haierkeys/fast-note-service/pkg/timex"
)

// CurrentVersionID marks the live note in a history listing
// CurrentVersionID 历史列表中表示当前版本的 ID
const CurrentVersionID = "current"

// NoteVersionDTO is one entry of a note's history listing.
// ID is the history row id, or "current" for the live note.
// NoteVersionDTO 历史列表项
type NoteVersionDTO struct {
	ID         any        `json:"id" swaggertype:"string"`
	IsLatest   bool       `json:"isLatest"`
	VersionNum int        `json:"versionNum"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	SavedAt    timex.Time `json:"savedAt"`
}

// NoteHistoryDTO 单个历史版本
type NoteHistoryDTO struct {
	ID      int64      `json:"id"`
	NoteID  int64      `json:"-"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	SavedAt timex.Time `json:"savedAt"`
}

// NoteHistoryDiffDTO 历史版本与当前笔记的差异
type NoteHistoryDiffDTO struct {
	ID     int64     `json:"id"`
	NoteID int64     `json:"noteId"`
	Patch  string    `json:"patch"`
	Diffs  []diff.Op `json:"diffs"`
}
