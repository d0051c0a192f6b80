package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/domain"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/prperemyshlev/course-platform/internal/utils"
	"go.uber.org/zap"
)

// courseService implements CourseService interface
type courseService struct {
	uow      repository.UnitOfWork
	logger   *zap.Logger
	counters *counters
	now      func() time.Time
}

// NewCourseService creates a new course service
func NewCourseService(uow repository.UnitOfWork, logger *zap.Logger) CourseService {
	return &courseService{
		uow:      uow,
		logger:   logger,
		counters: newCounters(logger),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Search returns a page of courses. An unrecognised status is ignored.
func (s *courseService) Search(ctx context.Context, req *dto.CourseSearchRequest) (*dto.CourseSearchResponse, error) {
	req.Normalize()

	filter := repository.CourseFilter{
		Offset: req.Offset(),
		Limit:  req.PageSize,
	}
	// blank means no filter; anything else is matched as typed
	if strings.TrimSpace(req.Query) != "" {
		filter.Query = req.Query
	}
	if status, ok := domain.ParseCourseStatus(req.Status); ok {
		filter.Status = &status
	}

	var (
		courses []*domain.Course
		total   int64
	)
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		var err error
		courses, total, err = repos.Course.Search(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		items = append(items, dto.NewCourseSummary(course))
	}

	return &dto.CourseSearchResponse{
		Items:      items,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

func (s *courseService) GetDetail(ctx context.Context, id uuid.UUID) (*dto.CourseDetail, error) {
	var course *domain.Course
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		var err error
		course, err = loadCourse(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	detail := dto.NewCourseDetail(course)
	return &detail, nil
}

// Create creates a course in Draft status
func (s *courseService) Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseSummary, error) {
	title := utils.SanitizeTitle(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	course := domain.NewCourse(title, s.now())
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		return repos.Course.Create(ctx, course)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course created", zap.String("course_id", course.ID.String()))

	summary := dto.NewCourseSummary(course)
	return &summary, nil
}

func (s *courseService) Update(ctx context.Context, id uuid.UUID, req *dto.CourseRequest) (*dto.CourseSummary, error) {
	title := utils.SanitizeTitle(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	var course *domain.Course
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		var err error
		course, err = loadCourse(ctx, repos, id)
		if err != nil {
			return err
		}

		course.Rename(title, s.now())
		return saveCourse(ctx, repos, course)
	})
	if err != nil {
		return nil, err
	}

	summary := dto.NewCourseSummary(course)
	return &summary, nil
}

// Delete soft-deletes a course
func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(repos *repository.Repositories) error {
		course, err := repos.Course.GetByID(ctx, id)
		if err != nil {
			return courseLookupError(err)
		}

		course.SoftDelete(s.now())
		return saveCourse(ctx, repos, course)
	})
}

// Publish requires at least one non-deleted lesson at the moment of the call
func (s *courseService) Publish(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(repos *repository.Repositories) error {
		course, err := loadCourse(ctx, repos, id)
		if err != nil {
			return err
		}

		if err := course.Publish(s.now()); err != nil {
			return err
		}
		return saveCourse(ctx, repos, course)
	})

	switch {
	case err == nil:
		s.counters.publishAttempt(ctx, "published")
		s.logger.Info("course published", zap.String("course_id", id.String()))
	case errors.Is(err, ErrNoActiveLessons):
		s.counters.publishAttempt(ctx, "no_active_lessons")
	}

	return err
}

// Unpublish moves a course back to Draft without any lesson check
func (s *courseService) Unpublish(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(repos *repository.Repositories) error {
		course, err := repos.Course.GetByID(ctx, id)
		if err != nil {
			return courseLookupError(err)
		}

		course.Unpublish(s.now())
		return saveCourse(ctx, repos, course)
	})
}

// loadCourse fetches a visible course with its non-deleted lessons
func loadCourse(ctx context.Context, repos *repository.Repositories, id uuid.UUID) (*domain.Course, error) {
	course, err := repos.Course.GetByIDWithLessons(ctx, id)
	if err != nil {
		return nil, courseLookupError(err)
	}
	return course, nil
}

func saveCourse(ctx context.Context, repos *repository.Repositories, course *domain.Course) error {
	if err := repos.Course.Update(ctx, course); err != nil {
		return courseLookupError(err)
	}
	return nil
}

func courseLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return fmt.Errorf("failed to access course: %w", err)
}
