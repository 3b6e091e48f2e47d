package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

// bcrypt work factor, matching the cost the original deployment used.
const hashCost = 10

// UseCase covers registration and credential verification.
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

// NormalizeEmail canonicalizes an address for storage and lookup.
// Emails are compared lower-cased so a register/login pair differing only
// in case resolves to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns it. A taken email yields
// domain.ErrEmailTaken whether caught by the pre-check or by the unique index.
func (uc *UseCase) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.Create(ctx, email, string(hash), name)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate verifies a credential pair. Unknown emails and wrong
// passwords fail identically so callers cannot enumerate accounts.
func (uc *UseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
