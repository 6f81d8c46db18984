package post

import (
	"context"
	"errors"

	"bbs/internal/core/post"
	userPort "bbs/internal/ports/user"
)

var (
	ErrNotFound = errors.New("post not found")
	// ErrAuthorNotFound is returned when the author id does not reference a user.
	ErrAuthorNotFound = errors.New("post author not found")
)

// Filter selects a page of posts. Nil fields are not filtered on.
type Filter struct {
	AuthorID *string
	Title    *string
	Skip     int
	Limit    int
}

// PostRepository is the storage port for posts. Listings are newest first.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	FindByTitle(ctx context.Context, title string) ([]*post.Post, error)
	FindByAuthorID(ctx context.Context, authorID string, skip, limit int) ([]*post.Post, error)
	List(ctx context.Context, filter Filter) ([]*post.Post, error)
}

type PostDTO struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	AuthorID  string           `json:"author_id"`
	Author    userPort.UserDTO `json:"author"`
	CreatedAt int64            `json:"created_at"`
}

func ToDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		Author:    *userPort.ToDTO(&p.Author),
		CreatedAt: p.CreatedAt,
	}
}

func ToDTOs(posts []*post.Post) []*PostDTO {
	dtos := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, ToDTO(p))
	}
	return dtos
}
