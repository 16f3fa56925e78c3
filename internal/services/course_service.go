package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/feedback-service/internal/cache"
	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

const courseListCacheKey = "all"

type courseService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
	logger *slog.Logger,
	v *validator.Validator,
) CourseService {
	return &courseService{
		repo:      repo,
		cache:     cacheManager,
		logger:    logger,
		validator: v,
	}
}

func (s *courseService) List(ctx context.Context) ([]*models.Course, error) {
	if s.cache != nil {
		var cached []*models.Course
		if err := s.cache.Course.Get(ctx, courseListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	courses, err := s.repo.Course().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Course.Set(ctx, courseListCacheKey, courses, cache.CourseCacheConfig.TTL); err != nil {
			s.logger.Warn("Failed to cache course list", "error", err)
		}
	}

	return courses, nil
}

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	course := &models.Course{
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCourse
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.invalidateCourses(ctx)

	s.logger.Info("Course created", "course_id", course.ID, "code", course.Code)

	return course, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}

	// Missing fields keep the stored value.
	if req.Name != "" {
		course.Name = strings.TrimSpace(req.Name)
	}
	if req.Code != "" {
		course.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	}
	if req.Description != "" {
		course.Description = strings.TrimSpace(req.Description)
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCourse
		}
		return nil, fmt.Errorf("failed to update course %d: %w", id, err)
	}

	s.invalidateCourses(ctx)

	s.logger.Info("Course updated", "course_id", course.ID, "code", course.Code)

	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Course().GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get course %d: %w", id, err)
	}

	// Refuse deletion while any feedback still references the course.
	count, err := s.repo.Feedback().CountByCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count feedback for course %d: %w", id, err)
	}
	if count > 0 {
		return ErrCourseHasFeedback
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}

	s.invalidateCourses(ctx)

	s.logger.Info("Course deleted", "course_id", id)

	return nil
}

func (s *courseService) invalidateCourses(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCourses(ctx); err != nil {
		s.logger.Warn("Failed to invalidate course cache", "error", err)
	}
	// Course renames change the dashboard aggregation labels too.
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}
}
