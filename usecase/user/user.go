package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

// UseCase exposes the user directory used for task assignment.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, logger: logger}
}

// ListUsers returns every user sorted by name ascending.
func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	return uc.users.List(ctx)
}
