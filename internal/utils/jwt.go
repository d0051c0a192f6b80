package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/config"
	"github.com/prperemyshlev/course-platform/internal/domain"
)

const refreshTokenBytes = 32

var (
	// ErrSigningKeyMissing is returned when the issuer has no key to sign with
	ErrSigningKeyMissing = errors.New("jwt signing key is not configured")

	// ErrInvalidToken is returned when a token fails signature or claim checks
	ErrInvalidToken = errors.New("invalid token")
)

// accessClaims is the payload of an access token
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates access tokens and mints opaque refresh tokens
type TokenIssuer struct {
	secret             []byte
	issuer             string
	audience           string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewTokenIssuer creates a token issuer from the JWT configuration
func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:             []byte(cfg.Secret),
		issuer:             cfg.Issuer,
		audience:           cfg.Audience,
		accessTokenExpiry:  cfg.AccessTokenExpiry.Duration,
		refreshTokenExpiry: cfg.RefreshTokenExpiry.Duration,
		now:                time.Now,
	}
}

// IssueAccessToken signs an HS256 token carrying sub, email and a unique jti
func (t *TokenIssuer) IssueAccessToken(user *domain.User) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrSigningKeyMissing
	}

	now := t.now()
	claims := accessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.New().String(),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// IssueRefreshToken returns 32 random bytes, base64 encoded
func (t *TokenIssuer) IssueRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// RefreshTokenExpiry returns the expiry instant for a refresh token minted now
func (t *TokenIssuer) RefreshTokenExpiry() time.Time {
	return t.now().Add(t.refreshTokenExpiry)
}

// ValidateAccessToken checks signature, expiry, issuer and audience
func (t *TokenIssuer) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return t.parse(tokenString,
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
}

// ValidateExpiredAccessToken checks the signature only. Used during refresh,
// where the access token is expected to be past its expiry.
func (t *TokenIssuer) ValidateExpiredAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return t.parse(tokenString, jwt.WithoutClaimsValidation())
}

func (t *TokenIssuer) parse(tokenString string, opts ...jwt.ParserOption) (*domain.TokenClaims, error) {
	if len(t.secret) == 0 {
		return nil, ErrSigningKeyMissing
	}

	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	var claims accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	result := &domain.TokenClaims{
		UserID:  claims.Subject,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}

// HashToken returns the SHA-256 hex digest stored in place of a refresh token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
