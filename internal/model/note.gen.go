package model

import "github.com/haierkeys/fast-note-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;index:idx_note_uid_updated,priority:1" json:"uid" form:"uid"`
	Title     string     `gorm:"column:title;not null;size:255;default:''" json:"title" form:"title"`
	Content   string     `gorm:"column:content;type:text;not null" json:"content" form:"content"`
	Version   int64      `gorm:"column:version;not null;default:1" json:"version" form:"version"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false;index:idx_note_uid_updated,priority:2" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
