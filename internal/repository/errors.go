package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateToken is returned when trying to create a token with an existing hash
	ErrDuplicateToken = errors.New("token with this hash already exists")

	// ErrDuplicateOrder is returned when two active lessons of a course would share an order
	ErrDuplicateOrder = errors.New("lesson order already taken in this course")
)

const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"

	constraintUsersEmail        = "ux_users_email"
	constraintRefreshTokenHash  = "ux_refresh_tokens_token_hash"
	constraintLessonCourseOrder = "ex_lessons_course_order"
)

// translateError maps driver and gorm errors onto repository sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqExclusionViolation:
		if pqErr.Constraint == constraintLessonCourseOrder {
			return fmt.Errorf("%s: %w", pqErr.Message, ErrDuplicateOrder)
		}
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case constraintUsersEmail:
			return fmt.Errorf("%s: %w", pqErr.Message, ErrDuplicateEmail)
		case constraintRefreshTokenHash:
			return fmt.Errorf("%s: %w", pqErr.Message, ErrDuplicateToken)
		}
	}

	return err
}
