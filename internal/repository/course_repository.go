package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// courseRepository implements CourseRepository interface
type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func activeLessons(db *gorm.DB) *gorm.DB {
	return db.Scopes(notDeleted).Order("lesson_order ASC")
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", translateError(err))
	}

	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("course with id %s: %w", id, translateError(err))
	}

	return &course, nil
}

func (r *courseRepository) GetByIDWithLessons(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		Preload("Lessons", activeLessons).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("course with id %s: %w", id, translateError(err))
	}

	return &course, nil
}

func (r *courseRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("course with id %s: %w", id, translateError(err))
	}

	return &course, nil
}

// Search returns one page of matching courses, most recently updated first,
// together with the size of the whole filtered set.
func (r *courseRepository) Search(ctx context.Context, filter CourseFilter) ([]*domain.Course, int64, error) {
	filtered := func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(notDeleted)
		if filter.Query != "" {
			db = db.Where("title ILIKE ?", "%"+likeEscaper.Replace(filter.Query)+"%")
		}
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		return db
	}

	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Course{}).
		Scopes(filtered).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var courses []*domain.Course
	err = r.db.WithContext(ctx).
		Scopes(filtered).
		Preload("Lessons", activeLessons).
		Order("updated_at DESC").
		Order("id").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search courses: %w", err)
	}

	return courses, total, nil
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]any{
			"title":      course.Title,
			"status":     course.Status,
			"is_deleted": course.IsDeleted,
			"updated_at": course.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update course: %w", translateError(result.Error))
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("course with id %s: %w", course.ID, ErrNotFound)
	}

	return nil
}
