package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a ledger row for an opaque refresh token.
// Only the SHA-256 of the token value is persisted.
type RefreshToken struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TokenHash  string    `json:"-" gorm:"not null;uniqueIndex"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	ExpiryDate time.Time `json:"expiryDate" gorm:"not null"`
	IsUsed     bool      `json:"isUsed" gorm:"not null;default:false"`
	IsRevoked  bool      `json:"isRevoked" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsValid reports whether the token can still be exchanged at the given instant
func (t *RefreshToken) IsValid(now time.Time) bool {
	return !t.IsUsed && !t.IsRevoked && t.ExpiryDate.After(now)
}

// IsSpent reports whether the token already reached a terminal state
func (t *RefreshToken) IsSpent() bool {
	return t.IsUsed || t.IsRevoked
}

// MarkUsed consumes the token. It returns false when the token was already spent.
func (t *RefreshToken) MarkUsed() bool {
	if t.IsSpent() {
		return false
	}
	t.IsUsed = true
	return true
}

// Revoke ends the token via logout. It returns false when the token was already spent.
func (t *RefreshToken) Revoke() bool {
	if t.IsSpent() {
		return false
	}
	t.IsRevoked = true
	return true
}

// TokenClaims are the identity claims carried by an access token
type TokenClaims struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
