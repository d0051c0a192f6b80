package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// CourseService defines methods for course operations
type CourseService interface {
	Search(ctx context.Context, req *dto.CourseSearchRequest) (*dto.CourseSearchResponse, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*dto.CourseDetail, error)
	Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseSummary, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.CourseRequest) (*dto.CourseSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID) error
	Unpublish(ctx context.Context, id uuid.UUID) error
}

// LessonService defines methods for lesson operations
type LessonService interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]dto.LessonResponse, error)
	Create(ctx context.Context, courseID uuid.UUID, req *dto.LessonRequest) (*dto.LessonResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.LessonRequest) (*dto.LessonResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, courseID uuid.UUID, req *dto.ReorderRequest) error
}
