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
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

type feedbackService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFeedbackService(
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) FeedbackService {
	return &feedbackService{
		repo:      repo,
		cache:     cacheManager,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *feedbackService) List(ctx context.Context, caller *models.User, query ListFeedbackQuery) (*FeedbackListResponse, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)

	filters := repositories.FeedbackFilters{
		CourseID: query.CourseID,
		Rating:   query.Rating,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	// Students only ever see their own submissions.
	if caller.Role != models.RoleAdmin {
		studentID := caller.ID
		filters.StudentID = &studentID
	}

	records, total, err := s.repo.Feedback().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	items := make([]*FeedbackResponse, len(records))
	for i, record := range records {
		items[i] = feedbackToResponse(record)
	}

	return &FeedbackListResponse{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages(total, pageSize),
		TotalCount:  total,
	}, nil
}

func (s *feedbackService) Create(ctx context.Context, caller *models.User, req *CreateFeedbackRequest) (*FeedbackResponse, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if caller.Role != models.RoleStudent {
		return nil, ErrForbidden
	}

	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	course, err := s.repo.Course().GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load course %d: %w", req.CourseID, err)
	}

	exists, err := s.repo.Feedback().ExistsForStudentAndCourse(ctx, caller.ID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing feedback: %w", err)
	}
	if exists {
		return nil, ErrDuplicateFeedback
	}

	feedback := &models.Feedback{
		StudentID: caller.ID,
		CourseID:  course.ID,
		Rating:    req.Rating,
		Message:   req.Message,
	}

	if err := s.repo.Feedback().Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	feedback.Student = caller
	feedback.Course = course

	s.invalidateStats(ctx)
	s.publishFeedbackEvent(ctx, events.EventFeedbackCreated, feedback, course.Code)

	s.logger.Info("Feedback created",
		"feedback_id", feedback.ID, "student_id", caller.ID, "course_id", course.ID, "rating", feedback.Rating)

	return feedbackToResponse(feedback), nil
}

func (s *feedbackService) Update(ctx context.Context, caller *models.User, id uint, req *UpdateFeedbackRequest) (*FeedbackResponse, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	feedback, err := s.getOwnedFeedback(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	// Missing fields keep the stored value.
	if req.Rating != 0 {
		feedback.Rating = req.Rating
	}
	if req.Message != "" {
		feedback.Message = req.Message
	}

	if err := s.repo.Feedback().Update(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to update feedback %d: %w", id, err)
	}

	s.invalidateStats(ctx)

	courseCode := ""
	if feedback.Course != nil {
		courseCode = feedback.Course.Code
	}
	s.publishFeedbackEvent(ctx, events.EventFeedbackUpdated, feedback, courseCode)

	s.logger.Info("Feedback updated", "feedback_id", feedback.ID, "caller_id", caller.ID)

	return feedbackToResponse(feedback), nil
}

func (s *feedbackService) Delete(ctx context.Context, caller *models.User, id uint) error {
	if caller == nil {
		return ErrUnauthorized
	}

	feedback, err := s.getOwnedFeedback(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Feedback().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete feedback %d: %w", id, err)
	}

	s.invalidateStats(ctx)

	courseCode := ""
	if feedback.Course != nil {
		courseCode = feedback.Course.Code
	}
	s.publishFeedbackEvent(ctx, events.EventFeedbackDeleted, feedback, courseCode)

	s.logger.Info("Feedback deleted", "feedback_id", id, "caller_id", caller.ID)

	return nil
}

// getOwnedFeedback loads a feedback record and enforces that the caller is
// either its author or an admin.
func (s *feedbackService) getOwnedFeedback(ctx context.Context, caller *models.User, id uint) (*models.Feedback, error) {
	feedback, err := s.repo.Feedback().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback %d: %w", id, err)
	}

	if caller.Role != models.RoleAdmin && feedback.StudentID != caller.ID {
		return nil, ErrForbidden
	}

	return feedback, nil
}

func (s *feedbackService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}
}

func (s *feedbackService) publishFeedbackEvent(ctx context.Context, eventType string, feedback *models.Feedback, courseCode string) {
	event := events.NewEvent(eventType, events.FeedbackEvent{
		FeedbackID: feedback.ID,
		StudentID:  feedback.StudentID,
		CourseID:   feedback.CourseID,
		Rating:     feedback.Rating,
		CourseCode: courseCode,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish feedback event", "error", err, "event_type", eventType, "feedback_id", feedback.ID)
	}
}

func feedbackToResponse(feedback *models.Feedback) *FeedbackResponse {
	resp := &FeedbackResponse{Feedback: feedback}
	if feedback.Course != nil {
		resp.Course = feedback.Course.Summary()
	}
	if feedback.Student != nil {
		resp.Student = feedback.Student.Summary()
	}
	return resp
}
