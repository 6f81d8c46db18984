package database

import (
	"context"
	"fmt"

	"bbs/internal/core/post"
	postPort "bbs/internal/ports/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

// Create inserts the post and reloads it with its author.
func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, postPort.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return repo.FindByID(ctx, p.ID)
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := repo.query(ctx).Where("posts.id = ?", id).First(&p).Error; err != nil {
		if isNotFound(err) {
			return nil, postPort.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

// FindByTitle returns every post with exactly this title.
func (repo *PostRepositoryDatabase) FindByTitle(ctx context.Context, title string) ([]*post.Post, error) {
	return repo.List(ctx, postPort.Filter{Title: &title})
}

func (repo *PostRepositoryDatabase) FindByAuthorID(ctx context.Context, authorID string, skip, limit int) ([]*post.Post, error) {
	return repo.List(ctx, postPort.Filter{AuthorID: &authorID, Skip: skip, Limit: limit})
}

func (repo *PostRepositoryDatabase) List(ctx context.Context, filter postPort.Filter) ([]*post.Post, error) {
	var posts []*post.Post
	err := repo.query(ctx).
		Scopes(
			whereEq("posts.author_id", filter.AuthorID),
			whereEq("posts.title", filter.Title),
			newestFirst("posts"),
			paginate(filter.Skip, filter.Limit),
		).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// query joins the author in the same statement.
func (repo *PostRepositoryDatabase) query(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Model(&post.Post{}).Joins("Author")
}
