package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
)

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackPostgreSQL(db *gorm.DB) repositories.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		First(&feedback, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get feedback %d: %w", id, err)
	}
	return &feedback, nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	// Loaded Student/Course associations must not be written back.
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(feedback).Error; err != nil {
		return fmt.Errorf("failed to update feedback %d: %w", feedback.ID, err)
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Feedback{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete feedback %d: %w", id, err)
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context, filters repositories.FeedbackFilters) ([]*models.Feedback, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Feedback{})
	query = applyFeedbackFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	var feedback []*models.Feedback
	if err := query.
		Preload("Student").
		Preload("Course").
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&feedback).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	return feedback, total, nil
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	var feedback []*models.Feedback
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list all feedback: %w", err)
	}
	return feedback, nil
}

func (r *feedbackRepository) ExistsForStudentAndCourse(ctx context.Context, studentID, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing feedback: %w", err)
	}
	return count > 0, nil
}

func (r *feedbackRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count feedback for course %d: %w", courseID, err)
	}
	return count, nil
}

func (r *feedbackRepository) DeleteByStudent(ctx context.Context, studentID uint) error {
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.Feedback{}).Error; err != nil {
		return fmt.Errorf("failed to delete feedback for student %d: %w", studentID, err)
	}
	return nil
}

func applyFeedbackFilters(query *gorm.DB, filters repositories.FeedbackFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.Rating != nil {
		query = query.Where("rating = ?", *filters.Rating)
	}
	return query
}
