package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/feedback-service/internal/cache"
	"github.com/SAP-F-2025/feedback-service/internal/events"
	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
)

type studentService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewStudentService(
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
) StudentService {
	return &studentService{
		repo:      repo,
		cache:     cacheManager,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *studentService) List(ctx context.Context, page, pageSize int) (*StudentListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	students, total, err := s.repo.User().ListStudents(ctx, repositories.UserFilters{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &StudentListResponse{
		Items:       students,
		CurrentPage: page,
		TotalPages:  totalPages(total, pageSize),
		TotalCount:  total,
	}, nil
}

func (s *studentService) SetBlocked(ctx context.Context, id uint, blocked bool) (*models.User, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	student.IsBlocked = blocked
	if err := s.repo.User().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student %d: %w", id, err)
	}

	if blocked {
		event := events.NewEvent(events.EventUserBlocked, events.UserEvent{
			UserID:    student.ID,
			Email:     student.Email,
			IsBlocked: true,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish user blocked event", "error", err, "user_id", student.ID)
		}
	}

	s.logger.Info("Student block flag changed", "student_id", student.ID, "is_blocked", blocked)

	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return err
	}

	// The student and all feedback they authored go together or not at all.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Feedback().DeleteByStudent(ctx, id); err != nil {
			return err
		}
		return tx.User().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete student %d: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDashboard(ctx); err != nil {
			s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
		}
	}

	event := events.NewEvent(events.EventUserDeleted, events.UserEvent{
		UserID: student.ID,
		Email:  student.Email,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish user deleted event", "error", err, "user_id", student.ID)
	}

	s.logger.Info("Student deleted", "student_id", id)

	return nil
}

// getStudent loads a user and verifies it is a student account. Admin
// accounts are never managed through this surface.
func (s *studentService) getStudent(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get student %d: %w", id, err)
	}
	if user.Role != models.RoleStudent {
		return nil, ErrNotFound
	}
	return user, nil
}
