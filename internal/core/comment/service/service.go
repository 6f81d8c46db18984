package commentapp

import (
	"context"
	"errors"

	"bbs/internal/core/apperror"
	commentEntity "bbs/internal/core/comment"
	"bbs/internal/core/outbox"
	commentPort "bbs/internal/ports/comment"
	outboxPort "bbs/internal/ports/outbox"
	postPort "bbs/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

var (
	errCommentNotFound = apperror.NotFound("Comment not found")
	errPostNotFound    = apperror.NotFound("Post not found")
	errAuthorNotFound  = apperror.NotFound("User not found")
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	OutboxRepository  outboxPort.OutboxRepository
	Logger            *zap.Logger
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	outboxRepo outboxPort.OutboxRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		OutboxRepository:  outboxRepo,
		Logger:            logger,
	}
}

// CreateComment stores a comment by userID on postID. Both references are checked by
// the foreign keys; the post lookup only runs afterwards to pick the error message.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID, content string) (*commentPort.CommentDTO, error) {
	created, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Content:  content,
		AuthorID: userID,
		PostID:   postID,
	})
	if errors.Is(err, commentPort.ErrReferenceNotFound) {
		return nil, s.missingReference(ctx, postID)
	}
	if err != nil {
		return nil, err
	}

	dto := commentPort.ToDTO(created)
	outbox.Record(ctx, s.OutboxRepository, s.Logger, outbox.CommentCreated, created.ID, dto)
	s.Logger.Info("Created comment", zap.String("commentID", created.ID), zap.String("postID", postID), zap.String("userID", userID))
	return dto, nil
}

func (s *CommentService) missingReference(ctx context.Context, postID string) error {
	_, err := s.PostRepository.FindByID(ctx, postID)
	if errors.Is(err, postPort.ErrNotFound) {
		return errPostNotFound
	}
	if err != nil {
		return err
	}
	return errAuthorNotFound
}

func (s *CommentService) GetComment(ctx context.Context, id string) (*commentPort.CommentDTO, error) {
	c, err := s.CommentRepository.FindByID(ctx, id)
	if errors.Is(err, commentPort.ErrNotFound) {
		return nil, errCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return commentPort.ToDTO(c), nil
}

// ListComments returns a page of comments filtered by author and/or post.
func (s *CommentService) ListComments(ctx context.Context, filter commentPort.Filter) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return commentPort.ToDTOs(comments), nil
}

func (s *CommentService) GetCommentsByPost(ctx context.Context, postID string, skip, limit int) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.FindByPostID(ctx, postID, skip, limit)
	if err != nil {
		return nil, err
	}
	return commentPort.ToDTOs(comments), nil
}

func (s *CommentService) GetCommentsByAuthor(ctx context.Context, authorID string, skip, limit int) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.FindByAuthorID(ctx, authorID, skip, limit)
	if err != nil {
		return nil, err
	}
	return commentPort.ToDTOs(comments), nil
}
