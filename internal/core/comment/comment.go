package comment

import (
	"bbs/internal/core/post"
	"bbs/internal/core/user"
)

type Comment struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"type:char(36);uniqueIndex;not null"`
	Content   string    `gorm:"type:text;not null"`
	AuthorID  string    `gorm:"type:char(36);index;not null"`
	Author    user.User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	PostID    string    `gorm:"type:char(36);index;not null"`
	Post      post.Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt int64     `gorm:"autoCreateTime;index"` // unix seconds
}
