package domain

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID `json:"courseId" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"type:varchar(200);not null"`
	Order     int       `json:"order" gorm:"column:lesson_order;not null"`
	IsDeleted bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func NewLesson(courseID uuid.UUID, title string, order int, now time.Time) *Lesson {
	return &Lesson{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (l *Lesson) SoftDelete(now time.Time) {
	l.IsDeleted = true
	l.UpdatedAt = now
}
