package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User   UserRepository
	Token  TokenRepository
	Course CourseRepository
	Lesson LessonRepository
}

// NewRepositories creates all repositories on the given gorm session
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Token:  NewTokenRepository(db),
		Course: NewCourseRepository(db),
		Lesson: NewLessonRepository(db),
	}
}

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transactional unit of work
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos *Repositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
	// deferred constraints surface on commit
	return translateError(err)
}

// notDeleted is the default visibility scope for soft-deletable tables
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
