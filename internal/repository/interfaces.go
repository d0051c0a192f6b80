package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// TokenRepository defines methods for the refresh token ledger
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	// GetByTokenHashForUpdate loads a token and locks its row until the transaction ends
	GetByTokenHashForUpdate(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Update(ctx context.Context, token *domain.RefreshToken) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// CourseFilter narrows a course search
type CourseFilter struct {
	Query  string
	Status *domain.CourseStatus
	Offset int
	Limit  int
}

// CourseRepository defines methods for course operations.
// Soft-deleted courses are invisible unless a method says otherwise.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	// GetByIDWithLessons loads the course with its non-deleted lessons ordered by position
	GetByIDWithLessons(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	Search(ctx context.Context, filter CourseFilter) ([]*domain.Course, int64, error)
	Update(ctx context.Context, course *domain.Course) error
}

// LessonRepository defines methods for lesson operations
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	Update(ctx context.Context, lesson *domain.Lesson) error
}

// UnitOfWork runs fn against repositories that share one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos *Repositories) error) error
}
