package database

import (
	"context"
	"fmt"

	"bbs/internal/core/user"
	userPort "bbs/internal/ports/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return nil, userPort.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.first(ctx, "username = ?", username)
}

// Delete removes the user and returns the deleted row. Posts and comments go with it
// through the ON DELETE CASCADE foreign keys.
func (repo *UserRepositoryDatabase) Delete(ctx context.Context, id string) (*user.User, error) {
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := repo.db.WithContext(ctx).Where("seq = ?", u.Seq).Delete(&user.User{})
	if res.Error != nil {
		return nil, fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, userPort.ErrNotFound
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) first(ctx context.Context, query string, arg string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if isNotFound(err) {
			return nil, userPort.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
