package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prperemyshlev/course-platform/internal/config"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/prperemyshlev/course-platform/internal/utils"
	"go.uber.org/zap"
)

// seedTestUser creates the configured development account. An existing account is left untouched.
func seedTestUser(ctx context.Context, users repository.UserRepository, seed config.SeedConfig, bcryptCost int, logger *zap.Logger) error {
	if !seed.TestUser {
		return nil
	}

	hash, err := utils.HashPassword(seed.TestUserPassword, bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	email := utils.SanitizeEmail(seed.TestUserEmail)
	err = users.Create(ctx, &domain.User{Email: email, PasswordHash: hash})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		logger.Debug("Test user already exists", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed test user: %w", err)
	}

	logger.Info("Test user created", zap.String("email", email))
	return nil
}
