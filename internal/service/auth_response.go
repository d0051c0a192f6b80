package service

import (
	"context"
	"fmt"

	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/prperemyshlev/course-platform/internal/utils"
)

const (
	sessionReasonRegister = "register"
	sessionReasonLogin    = "login"
	sessionReasonRefresh  = "refresh"
)

// issueSession mints an access token and a refresh token for user and records
// the refresh token in the ledger of the current unit of work
func (s *authService) issueSession(ctx context.Context, repos *repository.Repositories, user *domain.User) (*dto.AuthResponse, error) {
	accessToken, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.issuer.IssueRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	entry := &domain.RefreshToken{
		TokenHash:  utils.HashToken(refreshToken),
		UserID:     user.ID,
		ExpiryDate: s.issuer.RefreshTokenExpiry(),
	}
	if err := repos.Token.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Email:        user.Email,
	}, nil
}
