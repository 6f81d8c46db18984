package database

import (
	"context"
	"fmt"

	"bbs/internal/core/comment"
	commentPort "bbs/internal/ports/comment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepositoryDatabase implements CommentRepository on gorm.
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, commentPort.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return repo.FindByID(ctx, c.ID)
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id string) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.query(ctx).Where("comments.id = ?", id).First(&c).Error; err != nil {
		if isNotFound(err) {
			return nil, commentPort.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) FindByPostID(ctx context.Context, postID string, skip, limit int) ([]*comment.Comment, error) {
	return repo.List(ctx, commentPort.Filter{PostID: &postID, Skip: skip, Limit: limit})
}

func (repo *CommentRepositoryDatabase) FindByAuthorID(ctx context.Context, authorID string, skip, limit int) ([]*comment.Comment, error) {
	return repo.List(ctx, commentPort.Filter{AuthorID: &authorID, Skip: skip, Limit: limit})
}

func (repo *CommentRepositoryDatabase) List(ctx context.Context, filter commentPort.Filter) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	err := repo.query(ctx).
		Scopes(
			whereEq("comments.author_id", filter.AuthorID),
			whereEq("comments.post_id", filter.PostID),
			newestFirst("comments"),
			paginate(filter.Skip, filter.Limit),
		).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) query(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Model(&comment.Comment{}).Joins("Author")
}
