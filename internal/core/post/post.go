package post

import (
	"bbs/internal/core/user"
)

type Post struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"type:char(36);uniqueIndex;not null"`
	Title     string    `gorm:"size:255;index;not null"`
	Content   string    `gorm:"type:text;not null"`
	AuthorID  string    `gorm:"type:char(36);index;not null"`
	Author    user.User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt int64     `gorm:"autoCreateTime;index"` // unix seconds
}
