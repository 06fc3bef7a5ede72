package domain

import "errors"

var (
	// ErrVersionConflict the note changed between read and write
	// ErrVersionConflict 读写之间笔记已被修改
	ErrVersionConflict = errors.New("note version conflict")

	// ErrDuplicateKey a unique constraint was violated
	// ErrDuplicateKey 违反唯一约束
	ErrDuplicateKey = errors.New("duplicate key")
)
