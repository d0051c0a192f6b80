package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/course-platform/internal/repository"
	"go.uber.org/zap"
)

// purgeExpiredTokens drops refresh tokens whose expiry has passed
func purgeExpiredTokens(ctx context.Context, tokens repository.TokenRepository, now time.Time, logger *zap.Logger) error {
	deleted, err := tokens.DeleteExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}

	if deleted > 0 {
		logger.Info("Expired refresh tokens removed", zap.Int64("count", deleted))
	}
	return nil
}
