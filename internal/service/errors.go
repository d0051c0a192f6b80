package service

import (
	"errors"
	"fmt"

	"github.com/prperemyshlev/course-platform/internal/domain"
)

var (
	ErrRegistrationFailed  = errors.New("user registration failed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrDuplicateOrder = errors.New("lesson order already exists in this course")

	ErrNoActiveLessons          = domain.ErrNoActiveLessons
	ErrDuplicateOrdersInRequest = domain.ErrDuplicateOrdersInRequest
)

// DuplicateOrderError reports the order that collided. It matches ErrDuplicateOrder.
type DuplicateOrderError struct {
	Order int
	// Known is false when the collision was only detected by the store at commit
	Known bool
}

func (e *DuplicateOrderError) Error() string {
	if !e.Known {
		return "a lesson with the same order already exists in this course"
	}
	return fmt.Sprintf("a lesson with order %d already exists in this course", e.Order)
}

func (e *DuplicateOrderError) Is(target error) bool {
	return target == ErrDuplicateOrder
}
