package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepository) GetByTokenHashForUpdate(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if t := args.Get(0); t != nil {
		return t.(*domain.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenRepository) Update(ctx context.Context, token *domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockCourseRepository struct {
	mock.Mock
}

func (m *mockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCourseRepository) GetByIDWithLessons(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCourseRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCourseRepository) Search(ctx context.Context, filter repository.CourseFilter) ([]*domain.Course, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Course), args.Get(1).(int64), args.Error(2)
}

func (m *mockCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

type mockLessonRepository struct {
	mock.Mock
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLessonRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

// fakeUnitOfWork hands the same repositories to every call. commitErr stands
// in for a failure raised by the store at commit.
type fakeUnitOfWork struct {
	repos     *repository.Repositories
	commitErr error
}

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(repos *repository.Repositories) error) error {
	if err := fn(u.repos); err != nil {
		return err
	}
	return u.commitErr
}

type testRepos struct {
	users   *mockUserRepository
	tokens  *mockTokenRepository
	courses *mockCourseRepository
	lessons *mockLessonRepository
	uow     *fakeUnitOfWork
}

func newTestRepos() *testRepos {
	r := &testRepos{
		users:   new(mockUserRepository),
		tokens:  new(mockTokenRepository),
		courses: new(mockCourseRepository),
		lessons: new(mockLessonRepository),
	}
	r.uow = &fakeUnitOfWork{repos: &repository.Repositories{
		User:   r.users,
		Token:  r.tokens,
		Course: r.courses,
		Lesson: r.lessons,
	}}
	return r
}

func (r *testRepos) assertExpectations(t mock.TestingT) {
	r.users.AssertExpectations(t)
	r.tokens.AssertExpectations(t)
	r.courses.AssertExpectations(t)
	r.lessons.AssertExpectations(t)
}

var testLogger = zap.NewNop()
