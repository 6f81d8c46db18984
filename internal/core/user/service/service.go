package userapp

import (
	"context"
	"errors"
	"fmt"

	"bbs/internal/core/apperror"
	"bbs/internal/core/outbox"
	"bbs/internal/core/password"
	"bbs/internal/core/token"
	userEntity "bbs/internal/core/user"
	outboxPort "bbs/internal/ports/outbox"
	userPort "bbs/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

var (
	errUserNotFound   = apperror.NotFound("User not found")
	errBadCredentials = apperror.BadRequest("Password or username incorrect")
	errUsernameTaken  = apperror.BadRequest("Username already registered")
)

// UserService handles registration, login and the caller's own account.
type UserService struct {
	UserRepository   userPort.UserRepository
	OutboxRepository outboxPort.OutboxRepository
	Hasher           *password.Hasher
	Tokens           *token.Manager
	Logger           *zap.Logger
}

func NewUserService(
	repo userPort.UserRepository,
	outboxRepo outboxPort.OutboxRepository,
	hasher *password.Hasher,
	tokens *token.Manager,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		UserRepository:   repo,
		OutboxRepository: outboxRepo,
		Hasher:           hasher,
		Tokens:           tokens,
		Logger:           logger,
	}
}

// RegisterUser creates an account with a fresh salt. Empty usernames and passwords are
// accepted. A taken username is rejected here and, if two registrations race, by the
// unique index.
func (s *UserService) RegisterUser(ctx context.Context, username, plain string) (*userPort.UserDTO, error) {
	_, err := s.UserRepository.FindByUsername(ctx, username)
	if err == nil {
		return nil, errUsernameTaken
	}
	if !errors.Is(err, userPort.ErrNotFound) {
		return nil, err
	}

	salt, err := password.NewSalt()
	if err != nil {
		return nil, err
	}
	digest, err := s.Hasher.Digest(plain, salt)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:           uuid.Must(uuid.NewV4()).String(),
		Username:     username,
		PasswordHash: digest,
		PasswordSalt: salt,
	})
	if errors.Is(err, userPort.ErrUsernameTaken) {
		s.Logger.Info("Concurrent registration rejected by unique index", zap.String("username", username))
		return nil, errUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("User registered", zap.String("userID", u.ID))
	return userPort.ToDTO(u), nil
}

// LoginUser checks the password and issues an access and a refresh token.
func (s *UserService) LoginUser(ctx context.Context, username, plain string) (*userPort.LoginInfo, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if errors.Is(err, userPort.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !s.Hasher.Verify(plain, u.PasswordSalt, u.PasswordHash) {
		s.Logger.Info("Invalid password", zap.String("userID", u.ID))
		return nil, errBadCredentials
	}

	pair, err := s.Tokens.IssuePair(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &userPort.LoginInfo{
		Username:     u.Username,
		UserID:       u.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// RefreshToken mints a new access token for the subject of a verified refresh token.
// The refresh token itself is not rotated.
func (s *UserService) RefreshToken(ctx context.Context, userID string) (*userPort.RefreshResponse, error) {
	access, err := s.Tokens.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &userPort.RefreshResponse{AccessToken: access}, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if errors.Is(err, userPort.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return userPort.ToDTO(u), nil
}

// DeleteUser removes the caller's account together with their posts and comments.
func (s *UserService) DeleteUser(ctx context.Context, userID string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.Delete(ctx, userID)
	if errors.Is(err, userPort.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}

	dto := userPort.ToDTO(u)
	outbox.Record(ctx, s.OutboxRepository, s.Logger, outbox.UserDeleted, u.ID, dto)
	s.Logger.Info("User deleted", zap.String("userID", u.ID))
	return dto, nil
}
