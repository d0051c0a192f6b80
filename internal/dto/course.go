package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// CourseRequest is the body of course create and update
type CourseRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

// CourseSearchRequest holds the query string of a course search
type CourseSearchRequest struct {
	Query    string `form:"q"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// Normalize clamps paging parameters into their allowed range
func (r *CourseSearchRequest) Normalize() {
	if r.Page < 1 {
		r.Page = defaultPage
	}
	if r.PageSize < 1 {
		r.PageSize = defaultPageSize
	}
	if r.PageSize > maxPageSize {
		r.PageSize = maxPageSize
	}
}

// Offset returns the number of rows to skip for the requested page
func (r *CourseSearchRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

type CourseSummary struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Status       domain.CourseStatus `json:"status"`
	TotalLessons int                 `json:"totalLessons"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type CourseDetail struct {
	CourseSummary
	CreatedAt time.Time `json:"createdAt"`
}

type CourseSearchResponse struct {
	Items      []CourseSummary `json:"items"`
	TotalCount int64           `json:"totalCount"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
}

func NewCourseSummary(course *domain.Course) CourseSummary {
	return CourseSummary{
		ID:           course.ID,
		Title:        course.Title,
		Status:       course.Status,
		TotalLessons: course.ActiveLessonCount(),
		UpdatedAt:    course.UpdatedAt,
	}
}

func NewCourseDetail(course *domain.Course) CourseDetail {
	return CourseDetail{
		CourseSummary: NewCourseSummary(course),
		CreatedAt:     course.CreatedAt,
	}
}
