package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
)

// LessonRequest is the body of lesson create and update
type LessonRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Order int    `json:"order"`
}

type LessonOrder struct {
	LessonID uuid.UUID `json:"lessonId" binding:"required"`
	NewOrder int       `json:"newOrder"`
}

// ReorderRequest moves several lessons of one course at once
type ReorderRequest struct {
	Orders []LessonOrder `json:"orders" binding:"required,dive"`
}

type LessonResponse struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"courseId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewLessonResponse(lesson *domain.Lesson) LessonResponse {
	return LessonResponse{
		ID:        lesson.ID,
		CourseID:  lesson.CourseID,
		Title:     lesson.Title,
		Order:     lesson.Order,
		UpdatedAt: lesson.UpdatedAt,
	}
}
