package model

import "github.com/haierkeys/fast-note-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Email     string     `gorm:"column:email;not null;uniqueIndex:idx_user_email;size:255" json:"email" form:"email"`
	Password  string     `gorm:"column:password;not null;size:255" json:"password" form:"password"`
	Salt      string     `gorm:"column:salt;not null;size:64;default:''" json:"salt" form:"salt"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
