package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tokenRepository implements TokenRepository interface
type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", translateError(err))
	}

	return nil
}

func (r *tokenRepository) GetByTokenHashForUpdate(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	var token domain.RefreshToken
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get token by hash: %w", translateError(err))
	}

	return &token, nil
}

// Update persists the state flags. Flags only ever move from false to true.
func (r *tokenRepository) Update(ctx context.Context, token *domain.RefreshToken) error {
	result := r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]any{
			"is_used":    gorm.Expr("is_used OR ?", token.IsUsed),
			"is_revoked": gorm.Expr("is_revoked OR ?", token.IsRevoked),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update token: %w", translateError(result.Error))
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("token with id %s: %w", token.ID, ErrNotFound)
	}

	return nil
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expiry_date < ?", before).
		Delete(&domain.RefreshToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}
