package dto

import "github.com/haierkeys/fast-note-service/pkg/timex"

// NoteUpdateRequest 笔记编辑请求参数
// Content may be empty but must be present
type NoteUpdateRequest struct {
	Title   string  `json:"title" form:"title" binding:"required,max=255" example:"My Title"`
	Content *string `json:"content" form:"content" binding:"required" example:"Hello"`
}

// NoteDTO 笔记完整信息
type NoteDTO struct {
	ID        int64      `json:"id"`
	UID       int64      `json:"userId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Version   int64      `json:"version"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// NoteSummaryDTO 笔记列表项
type NoteSummaryDTO struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	UpdatedAt timex.Time `json:"updatedAt"`
}
