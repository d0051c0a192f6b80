package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/prperemyshlev/course-platform/internal/utils"
	"go.uber.org/zap"
)

// lessonService implements LessonService interface
type lessonService struct {
	uow    repository.UnitOfWork
	logger *zap.Logger
	now    func() time.Time
}

// NewLessonService creates a new lesson service
func NewLessonService(uow repository.UnitOfWork, logger *zap.Logger) LessonService {
	return &lessonService{
		uow:    uow,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListByCourse returns the non-deleted lessons of a course ordered by position.
// An unknown course yields an empty list.
func (s *lessonService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]dto.LessonResponse, error) {
	lessons := make([]dto.LessonResponse, 0)
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		course, err := repos.Course.GetByIDWithLessons(ctx, courseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get course: %w", err)
		}

		for i := range course.Lessons {
			lessons = append(lessons, dto.NewLessonResponse(&course.Lessons[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lessons, nil
}

func (s *lessonService) Create(ctx context.Context, courseID uuid.UUID, req *dto.LessonRequest) (*dto.LessonResponse, error) {
	title := utils.SanitizeTitle(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	var lesson *domain.Lesson
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		course, err := loadCourse(ctx, repos, courseID)
		if err != nil {
			return err
		}

		if course.HasActiveLessonWithOrder(req.Order, uuid.Nil) {
			return &DuplicateOrderError{Order: req.Order, Known: true}
		}

		lesson = domain.NewLesson(course.ID, title, req.Order, s.now())
		return repos.Lesson.Create(ctx, lesson)
	})
	if err != nil {
		return nil, lessonWriteError(err)
	}

	response := dto.NewLessonResponse(lesson)
	return &response, nil
}

// Update changes title and order. A changed order is checked against the
// other non-deleted lessons of the course.
func (s *lessonService) Update(ctx context.Context, id uuid.UUID, req *dto.LessonRequest) (*dto.LessonResponse, error) {
	title := utils.SanitizeTitle(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	var lesson *domain.Lesson
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		var err error
		lesson, err = repos.Lesson.GetByID(ctx, id)
		if err != nil {
			return lessonLookupError(err)
		}

		if lesson.Order != req.Order {
			course, err := repos.Course.GetByIDWithLessons(ctx, lesson.CourseID)
			switch {
			case err == nil:
				if course.HasActiveLessonWithOrder(req.Order, lesson.ID) {
					return &DuplicateOrderError{Order: req.Order, Known: true}
				}
			case !errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("failed to get course: %w", err)
			}
		}

		lesson.Title = title
		lesson.Order = req.Order
		lesson.UpdatedAt = s.now()
		return saveLesson(ctx, repos, lesson)
	})
	if err != nil {
		return nil, lessonWriteError(err)
	}

	response := dto.NewLessonResponse(lesson)
	return &response, nil
}

// Delete soft-deletes a lesson
func (s *lessonService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(repos *repository.Repositories) error {
		lesson, err := repos.Lesson.GetByID(ctx, id)
		if err != nil {
			return lessonLookupError(err)
		}

		lesson.SoftDelete(s.now())
		return saveLesson(ctx, repos, lesson)
	})
}

// Reorder applies every move in one transaction. Lessons that do not belong
// to the course are skipped. Only the requested orders are checked against
// each other; a collision with an untouched lesson is rejected by the store
// at commit.
func (s *lessonService) Reorder(ctx context.Context, courseID uuid.UUID, req *dto.ReorderRequest) error {
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		course, err := loadCourse(ctx, repos, courseID)
		if err != nil {
			return err
		}

		seen := make(map[int]struct{}, len(req.Orders))
		for _, move := range req.Orders {
			if _, dup := seen[move.NewOrder]; dup {
				return ErrDuplicateOrdersInRequest
			}
			seen[move.NewOrder] = struct{}{}
		}

		now := s.now()
		for _, move := range req.Orders {
			lesson := course.FindLesson(move.LessonID)
			if lesson == nil {
				s.logger.Debug("reorder skipped lesson outside course",
					zap.String("course_id", courseID.String()),
					zap.String("lesson_id", move.LessonID.String()),
				)
				continue
			}

			lesson.Order = move.NewOrder
			lesson.UpdatedAt = now
			if err := saveLesson(ctx, repos, lesson); err != nil {
				return err
			}
		}
		return nil
	})

	return lessonWriteError(err)
}

func saveLesson(ctx context.Context, repos *repository.Repositories, lesson *domain.Lesson) error {
	if err := repos.Lesson.Update(ctx, lesson); err != nil {
		return lessonLookupError(err)
	}
	return nil
}

func lessonLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLessonNotFound
	}
	return fmt.Errorf("failed to access lesson: %w", err)
}

// lessonWriteError turns a storage-level order collision into DuplicateOrderError
func lessonWriteError(err error) error {
	if err == nil {
		return nil
	}

	var dup *DuplicateOrderError
	if errors.As(err, &dup) {
		return dup
	}

	if errors.Is(err, repository.ErrDuplicateOrder) {
		return &DuplicateOrderError{}
	}
	return err
}
