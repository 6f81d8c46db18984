package user

import (
	"context"
	"errors"

	"bbs/internal/core/user"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already registered")
)

// UserRepository is the storage port for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Delete(ctx context.Context, id string) (*user.User, error)
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginInfo struct {
	Username     string `json:"username"`
	UserID       string `json:"userId"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

func ToDTO(u *user.User) *UserDTO {
	return &UserDTO{ID: u.ID, Username: u.Username}
}
