package model

import "time"

// PostModel mirrors the 'posts' table. UserID carries the author id without
// a foreign key constraint.
type PostModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"type:text;not null"`
	UserID    int64  `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
