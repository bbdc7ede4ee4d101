package repository

import (
	"context"

	"market/internal/domain/model"
)

type UserRepository interface {
	// email重複は ErrConflict
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
