package postapp

import (
	"context"
	"errors"

	"bbs/internal/core/apperror"
	"bbs/internal/core/outbox"
	postEntity "bbs/internal/core/post"
	outboxPort "bbs/internal/ports/outbox"
	postPort "bbs/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

var (
	errPostNotFound   = apperror.NotFound("Post not found")
	errAuthorNotFound = apperror.NotFound("User not found")
)

type PostService struct {
	PostRepository   postPort.PostRepository
	OutboxRepository outboxPort.OutboxRepository
	Logger           *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	outboxRepo outboxPort.OutboxRepository,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:   postRepo,
		OutboxRepository: outboxRepo,
		Logger:           logger,
	}
}

// CreatePost stores a post owned by userID and records a post.created event.
func (s *PostService) CreatePost(ctx context.Context, userID, title, content string) (*postPort.PostDTO, error) {
	created, err := s.PostRepository.Create(ctx, &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Title:    title,
		Content:  content,
		AuthorID: userID,
	})
	if errors.Is(err, postPort.ErrAuthorNotFound) {
		// the token outlived its user
		return nil, errAuthorNotFound
	}
	if err != nil {
		return nil, err
	}

	dto := postPort.ToDTO(created)
	outbox.Record(ctx, s.OutboxRepository, s.Logger, outbox.PostCreated, created.ID, dto)
	s.Logger.Info("Created post", zap.String("postID", created.ID), zap.String("userID", userID))
	return dto, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if errors.Is(err, postPort.ErrNotFound) {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

// ListPosts returns a page of posts, optionally limited to one author.
func (s *PostService) ListPosts(ctx context.Context, filter postPort.Filter) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTOs(posts), nil
}

func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID string, skip, limit int) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.FindByAuthorID(ctx, authorID, skip, limit)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTOs(posts), nil
}

// GetPostsByTitle returns every exact title match, newest first.
func (s *PostService) GetPostsByTitle(ctx context.Context, title string) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTOs(posts), nil
}
