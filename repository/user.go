package repository

import (
	"context"

	"github.com/taskflow/backend/domain"
)

type UserRepository interface {
	// Create inserts a new user. A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, email, passwordHash, name string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// List returns all users sorted by name ascending.
	List(ctx context.Context) ([]domain.PublicUser, error)
}
