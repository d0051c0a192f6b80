package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"gorm.io/gorm"
)

// lessonRepository implements LessonRepository interface
type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return fmt.Errorf("failed to create lesson: %w", translateError(err))
	}

	return nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("lesson with id %s: %w", id, translateError(err))
	}

	return &lesson, nil
}

func (r *lessonRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("lesson with id %s: %w", id, translateError(err))
	}

	return &lesson, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]any{
			"title":        lesson.Title,
			"lesson_order": lesson.Order,
			"is_deleted":   lesson.IsDeleted,
			"updated_at":   lesson.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update lesson: %w", translateError(result.Error))
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("lesson with id %s: %w", lesson.ID, ErrNotFound)
	}

	return nil
}
