package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/prperemyshlev/course-platform/internal/utils"
	"go.uber.org/zap"
)

// refresh rejection reasons, used for logs and metrics
const (
	rejectInvalidAccessToken = "invalid_access_token"
	rejectNotFound           = "not_found"
	rejectUserMismatch       = "user_mismatch"
	rejectReplayed           = "replayed"
	rejectRevoked            = "revoked"
	rejectExpired            = "expired"
)

// authService implements AuthService interface
type authService struct {
	uow        repository.UnitOfWork
	issuer     *utils.TokenIssuer
	bcryptCost int
	logger     *zap.Logger
	counters   *counters
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	uow repository.UnitOfWork,
	issuer *utils.TokenIssuer,
	bcryptCost int,
	logger *zap.Logger,
) AuthService {
	return &authService{
		uow:        uow,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		logger:     logger,
		counters:   newCounters(logger),
		now:        time.Now,
	}
}

// Register registers a new user
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrRegistrationFailed)
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 6 characters long and contain uppercase, lowercase, and digit", ErrRegistrationFailed)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var response *dto.AuthResponse
	err = s.uow.Do(ctx, func(repos *repository.Repositories) error {
		user := &domain.User{
			Email:        email,
			PasswordHash: passwordHash,
		}

		if err := repos.User.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return fmt.Errorf("%w: email %s is already taken", ErrRegistrationFailed, email)
			}
			return err
		}

		response, err = s.issueSession(ctx, repos, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.counters.sessionIssued(ctx, sessionReasonRegister)
	s.logger.Info("user registered", zap.String("email", email))

	return response, nil
}

// Login authenticates a user
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := utils.SanitizeEmail(req.Email)

	var response *dto.AuthResponse
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		user, err := repos.User.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
			return ErrInvalidCredentials
		}

		response, err = s.issueSession(ctx, repos, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.counters.sessionIssued(ctx, sessionReasonLogin)
	return response, nil
}

// Refresh exchanges a refresh token for a new session. The presented refresh
// token is consumed and cannot be exchanged again.
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	claims, err := s.issuer.ValidateExpiredAccessToken(req.Token)
	if err != nil {
		s.rejectRefresh(ctx, rejectInvalidAccessToken, zap.Error(err))
		return nil, ErrInvalidAccessToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		s.rejectRefresh(ctx, rejectInvalidAccessToken, zap.Error(err))
		return nil, ErrInvalidAccessToken
	}

	var response *dto.AuthResponse
	err = s.uow.Do(ctx, func(repos *repository.Repositories) error {
		stored, err := repos.Token.GetByTokenHashForUpdate(ctx, utils.HashToken(req.RefreshToken))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.rejectRefresh(ctx, rejectNotFound, zap.String("user_id", claims.UserID))
				return ErrInvalidRefreshToken
			}
			return fmt.Errorf("failed to get refresh token: %w", err)
		}

		if reason, ok := s.checkRefreshToken(stored, userID); !ok {
			s.rejectRefresh(ctx, reason,
				zap.String("user_id", claims.UserID),
				zap.String("token_id", stored.ID.String()),
			)
			return ErrInvalidRefreshToken
		}

		stored.MarkUsed()
		if err := repos.Token.Update(ctx, stored); err != nil {
			return fmt.Errorf("failed to consume refresh token: %w", err)
		}

		user, err := repos.User.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.rejectRefresh(ctx, rejectNotFound, zap.String("user_id", claims.UserID))
				return ErrInvalidRefreshToken
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		response, err = s.issueSession(ctx, repos, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.counters.sessionIssued(ctx, sessionReasonRefresh)
	return response, nil
}

// checkRefreshToken returns the rejection reason for a token that cannot be exchanged
func (s *authService) checkRefreshToken(stored *domain.RefreshToken, userID uuid.UUID) (string, bool) {
	switch {
	case stored.UserID != userID:
		return rejectUserMismatch, false
	case stored.IsUsed:
		return rejectReplayed, false
	case stored.IsRevoked:
		return rejectRevoked, false
	case !stored.IsValid(s.now()):
		return rejectExpired, false
	}
	return "", true
}

func (s *authService) rejectRefresh(ctx context.Context, reason string, fields ...zap.Field) {
	s.counters.refreshRejectedFor(ctx, reason)

	fields = append(fields, zap.String("reason", reason))
	if reason == rejectReplayed {
		s.logger.Warn("refresh token replay rejected", fields...)
		return
	}
	s.logger.Info("refresh rejected", fields...)
}

// Logout revokes a refresh token. Unknown or already spent tokens are ignored.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	return s.uow.Do(ctx, func(repos *repository.Repositories) error {
		stored, err := repos.Token.GetByTokenHashForUpdate(ctx, utils.HashToken(refreshToken))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get refresh token: %w", err)
		}

		if !stored.Revoke() {
			return nil
		}

		if err := repos.Token.Update(ctx, stored); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		return nil
	})
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(_ context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.issuer.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, err)
	}

	return claims, nil
}
