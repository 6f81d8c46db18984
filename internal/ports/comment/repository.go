package comment

import (
	"context"
	"errors"

	"bbs/internal/core/comment"
	userPort "bbs/internal/ports/user"
)

var (
	ErrNotFound = errors.New("comment not found")
	// ErrReferenceNotFound is returned when the author or the post does not exist.
	ErrReferenceNotFound = errors.New("comment author or post not found")
)

// Filter selects a page of comments. Nil fields are not filtered on.
type Filter struct {
	AuthorID *string
	PostID   *string
	Skip     int
	Limit    int
}

// CommentRepository is the storage port for comments. Listings are newest first.
type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id string) (*comment.Comment, error)
	FindByPostID(ctx context.Context, postID string, skip, limit int) ([]*comment.Comment, error)
	FindByAuthorID(ctx context.Context, authorID string, skip, limit int) ([]*comment.Comment, error)
	List(ctx context.Context, filter Filter) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	AuthorID  string           `json:"author_id"`
	Author    userPort.UserDTO `json:"author"`
	PostID    string           `json:"post_id"`
	CreatedAt int64            `json:"created_at"`
}

func ToDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		Author:    *userPort.ToDTO(&c.Author),
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
}

func ToDTOs(comments []*comment.Comment) []*CommentDTO {
	dtos := make([]*CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, ToDTO(c))
	}
	return dtos
}
