package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/config"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/prperemyshlev/course-platform/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func newTestAuthService(uow repository.UnitOfWork) *authService {
	issuer := utils.NewTokenIssuer(config.JWTConfig{
		Secret:             testSecret,
		Issuer:             "CoursePlatform",
		Audience:           "CoursePlatform",
		AccessTokenExpiry:  config.Duration{Duration: 15 * time.Minute},
		RefreshTokenExpiry: config.Duration{Duration: 7 * 24 * time.Hour},
	})
	return NewAuthService(uow, issuer, bcrypt.MinCost, testLogger).(*authService)
}

func newTestUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: uuid.New(), Email: email, PasswordHash: hash}
}

// memoryTokenRepository keeps ledger rows by hash so a test can replay tokens
type memoryTokenRepository struct {
	mu     sync.Mutex
	byHash map[string]domain.RefreshToken
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{byHash: make(map[string]domain.RefreshToken)}
}

func (m *memoryTokenRepository) Create(_ context.Context, token *domain.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	m.byHash[token.TokenHash] = *token
	return nil
}

func (m *memoryTokenRepository) GetByTokenHashForUpdate(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.byHash[tokenHash]
	if !ok {
		return nil, fmt.Errorf("token: %w", repository.ErrNotFound)
	}
	return &token, nil
}

func (m *memoryTokenRepository) Update(_ context.Context, token *domain.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.byHash[token.TokenHash]
	stored.IsUsed = stored.IsUsed || token.IsUsed
	stored.IsRevoked = stored.IsRevoked || token.IsRevoked
	m.byHash[token.TokenHash] = stored
	return nil
}

func (m *memoryTokenRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newTestAuthService(repos.uow)

	repos.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "New@User.com" && u.PasswordHash != "" && u.PasswordHash != "Password123!"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = uuid.New()
	}).Return(nil)

	var saved *domain.RefreshToken
	repos.tokens.On("Create", mock.Anything, mock.AnythingOfType("*domain.RefreshToken")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.RefreshToken)
	}).Return(nil)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: " New@User.com ", Password: "Password123!"})
	require.NoError(t, err)

	assert.Equal(t, "New@User.com", resp.Email, "casing is kept")
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, saved)
	assert.Equal(t, utils.HashToken(resp.RefreshToken), saved.TokenHash, "only the hash is stored")
	assert.False(t, saved.IsUsed)
	assert.False(t, saved.IsRevoked)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), saved.ExpiryDate, time.Minute)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, saved.UserID.String(), claims.UserID)
	assert.Equal(t, "New@User.com", claims.Email)

	repos.assertExpectations(t)
}

func TestAuthService_Register_Rejected(t *testing.T) {
	ctx := context.Background()

	t.Run("weak password", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)

		_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "weak"})
		assert.ErrorIs(t, err, ErrRegistrationFailed)
		repos.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		repos.users.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("failed to create user: %w", repository.ErrDuplicateEmail))

		_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "test@user.com", Password: "Password123!"})
		assert.ErrorIs(t, err, ErrRegistrationFailed)
		repos.tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := newTestUser(t, "test@user.com", "Password123!")

	t.Run("success", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		repos.users.On("GetByEmail", mock.Anything, "Test@User.com").Return(user, nil)
		repos.tokens.On("Create", mock.Anything, mock.MatchedBy(func(tok *domain.RefreshToken) bool {
			return tok.UserID == user.ID
		})).Return(nil)

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: " Test@User.com ", Password: "Password123!"})
		require.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
		assert.NotEmpty(t, resp.RefreshToken)
		repos.assertExpectations(t)
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		repos.users.On("GetByEmail", mock.Anything, "test@user.com").Return(user, nil)
		repos.users.On("GetByEmail", mock.Anything, "nobody@user.com").
			Return(nil, fmt.Errorf("user: %w", repository.ErrNotFound))

		_, wrongPassword := svc.Login(ctx, &dto.LoginRequest{Email: "test@user.com", Password: "Wrong123!"})
		_, unknownUser := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@user.com", Password: "Password123!"})

		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
		repos.tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newTestAuthService(repos.uow)
	user := newTestUser(t, "test@user.com", "Password123!")

	accessToken, err := svc.issuer.IssueAccessToken(user)
	require.NoError(t, err)

	stored := &domain.RefreshToken{
		ID:         uuid.New(),
		TokenHash:  utils.HashToken("old-refresh"),
		UserID:     user.ID,
		ExpiryDate: time.Now().Add(time.Hour),
	}
	repos.tokens.On("GetByTokenHashForUpdate", mock.Anything, stored.TokenHash).Return(stored, nil)
	repos.tokens.On("Update", mock.Anything, mock.MatchedBy(func(tok *domain.RefreshToken) bool {
		return tok.ID == stored.ID && tok.IsUsed && !tok.IsRevoked
	})).Return(nil)
	repos.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	repos.tokens.On("Create", mock.Anything, mock.MatchedBy(func(tok *domain.RefreshToken) bool {
		return tok.UserID == user.ID && tok.TokenHash != stored.TokenHash
	})).Return(nil)

	resp, err := svc.Refresh(ctx, &dto.RefreshRequest{Token: accessToken, RefreshToken: "old-refresh"})
	require.NoError(t, err)
	assert.NotEqual(t, "old-refresh", resp.RefreshToken)
	assert.Equal(t, user.Email, resp.Email)
	repos.assertExpectations(t)
}

func TestAuthService_Refresh_AcceptsExpiredAccessToken(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newTestAuthService(repos.uow)
	user := newTestUser(t, "test@user.com", "Password123!")

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	stored := &domain.RefreshToken{ID: uuid.New(), UserID: user.ID, ExpiryDate: time.Now().Add(time.Hour)}
	repos.tokens.On("GetByTokenHashForUpdate", mock.Anything, utils.HashToken("refresh")).Return(stored, nil)
	repos.tokens.On("Update", mock.Anything, stored).Return(nil)
	repos.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	repos.tokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{Token: expired, RefreshToken: "refresh"})
	require.NoError(t, err)
	assert.True(t, stored.IsUsed)
}

func TestAuthService_Refresh_InvalidAccessToken(t *testing.T) {
	ctx := context.Background()

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
	}).SignedString([]byte("some-other-secret-key-that-is-long-enough"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not-a-jwt",
		"foreign secret": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			repos := newTestRepos()
			svc := newTestAuthService(repos.uow)

			_, err := svc.Refresh(ctx, &dto.RefreshRequest{Token: token, RefreshToken: "refresh"})
			assert.ErrorIs(t, err, ErrInvalidAccessToken)
			repos.tokens.AssertNotCalled(t, "GetByTokenHashForUpdate", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Refresh_RejectedTokens(t *testing.T) {
	ctx := context.Background()
	user := newTestUser(t, "test@user.com", "Password123!")

	tests := []struct {
		name   string
		mutate func(tok *domain.RefreshToken)
	}{
		{name: "used", mutate: func(tok *domain.RefreshToken) { tok.IsUsed = true }},
		{name: "revoked", mutate: func(tok *domain.RefreshToken) { tok.IsRevoked = true }},
		{name: "expired", mutate: func(tok *domain.RefreshToken) { tok.ExpiryDate = time.Now().Add(-time.Second) }},
		{name: "other user", mutate: func(tok *domain.RefreshToken) { tok.UserID = uuid.New() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newTestRepos()
			svc := newTestAuthService(repos.uow)
			accessToken, err := svc.issuer.IssueAccessToken(user)
			require.NoError(t, err)

			stored := &domain.RefreshToken{ID: uuid.New(), UserID: user.ID, ExpiryDate: time.Now().Add(time.Hour)}
			tt.mutate(stored)
			repos.tokens.On("GetByTokenHashForUpdate", mock.Anything, utils.HashToken("refresh")).Return(stored, nil)

			_, err = svc.Refresh(ctx, &dto.RefreshRequest{Token: accessToken, RefreshToken: "refresh"})
			assert.ErrorIs(t, err, ErrInvalidRefreshToken)
			repos.tokens.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			repos.tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		accessToken, err := svc.issuer.IssueAccessToken(user)
		require.NoError(t, err)

		repos.tokens.On("GetByTokenHashForUpdate", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("token: %w", repository.ErrNotFound))

		_, err = svc.Refresh(ctx, &dto.RefreshRequest{Token: accessToken, RefreshToken: "unknown"})
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthService_RefreshTokenIsSingleUse(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	repos.uow.repos.Token = newMemoryTokenRepository()
	svc := newTestAuthService(repos.uow)

	user := newTestUser(t, "test@user.com", "Password123!")
	repos.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repos.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	first, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "Password123!"})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, &dto.RefreshRequest{Token: first.Token, RefreshToken: first.RefreshToken})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{Token: first.Token, RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "replay is rejected")

	// replay detection does not touch the newer session
	third, err := svc.Refresh(ctx, &dto.RefreshRequest{Token: second.Token, RefreshToken: second.RefreshToken})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, third.RefreshToken))
	require.NoError(t, svc.Logout(ctx, third.RefreshToken), "logout is idempotent")

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{Token: third.Token, RefreshToken: third.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "revoked token is rejected")
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token is not an error", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		repos.tokens.On("GetByTokenHashForUpdate", mock.Anything, utils.HashToken("unknown")).
			Return(nil, fmt.Errorf("token: %w", repository.ErrNotFound))

		assert.NoError(t, svc.Logout(ctx, "unknown"))
		repos.tokens.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("active token is revoked", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		stored := &domain.RefreshToken{ID: uuid.New(), ExpiryDate: time.Now().Add(time.Hour)}
		repos.tokens.On("GetByTokenHashForUpdate", mock.Anything, utils.HashToken("active")).Return(stored, nil)
		repos.tokens.On("Update", mock.Anything, stored).Return(nil)

		require.NoError(t, svc.Logout(ctx, "active"))
		assert.True(t, stored.IsRevoked)
		assert.False(t, stored.IsUsed)
	})

	t.Run("used token stays used", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		stored := &domain.RefreshToken{ID: uuid.New(), IsUsed: true, ExpiryDate: time.Now().Add(time.Hour)}
		repos.tokens.On("GetByTokenHashForUpdate", mock.Anything, utils.HashToken("used")).Return(stored, nil)

		require.NoError(t, svc.Logout(ctx, "used"))
		assert.False(t, stored.IsRevoked)
		repos.tokens.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("empty token", func(t *testing.T) {
		repos := newTestRepos()
		svc := newTestAuthService(repos.uow)
		assert.NoError(t, svc.Logout(ctx, ""))
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := newTestAuthService(newTestRepos().uow)

	_, err := svc.ValidateToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}
