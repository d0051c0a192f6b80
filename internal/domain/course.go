package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "Draft"
	CourseStatusPublished CourseStatus = "Published"
)

// ParseCourseStatus matches a status name case-insensitively
func ParseCourseStatus(s string) (CourseStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft":
		return CourseStatusDraft, true
	case "published":
		return CourseStatusPublished, true
	}
	return "", false
}

type Course struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string       `json:"title" gorm:"type:varchar(200);not null"`
	Status    CourseStatus `json:"status" gorm:"type:varchar(20);not null"`
	IsDeleted bool         `json:"-" gorm:"not null;default:false"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`

	// Lessons holds the non-deleted lessons when loaded by the repository
	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

// NewCourse creates a course in Draft status
func NewCourse(title string, now time.Time) *Course {
	return &Course{
		ID:        uuid.New(),
		Title:     title,
		Status:    CourseStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ActiveLessonCount counts loaded lessons that are not soft-deleted
func (c *Course) ActiveLessonCount() int {
	count := 0
	for i := range c.Lessons {
		if !c.Lessons[i].IsDeleted {
			count++
		}
	}
	return count
}

// HasActiveLessonWithOrder reports whether a non-deleted lesson other than exclude holds order
func (c *Course) HasActiveLessonWithOrder(order int, exclude uuid.UUID) bool {
	for i := range c.Lessons {
		l := &c.Lessons[i]
		if !l.IsDeleted && l.Order == order && l.ID != exclude {
			return true
		}
	}
	return false
}

// FindLesson returns the loaded lesson with the given id, or nil
func (c *Course) FindLesson(id uuid.UUID) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].ID == id {
			return &c.Lessons[i]
		}
	}
	return nil
}

// Publish moves the course to Published. The active-lesson rule is checked
// only at the moment of transition.
func (c *Course) Publish(now time.Time) error {
	if c.ActiveLessonCount() == 0 {
		return ErrNoActiveLessons
	}
	c.Status = CourseStatusPublished
	c.UpdatedAt = now
	return nil
}

func (c *Course) Unpublish(now time.Time) {
	c.Status = CourseStatusDraft
	c.UpdatedAt = now
}

func (c *Course) Rename(title string, now time.Time) {
	c.Title = title
	c.UpdatedAt = now
}

func (c *Course) SoftDelete(now time.Time) {
	c.IsDeleted = true
	c.UpdatedAt = now
}
