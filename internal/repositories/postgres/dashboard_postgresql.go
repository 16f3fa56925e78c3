package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetTotalFeedback(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get total feedback: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) GetTotalStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get total students: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) GetCourseRatings(ctx context.Context) ([]repositories.CourseRatingStat, error) {
	var stats []repositories.CourseRatingStat

	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("feedback.course_id AS course_id, courses.name AS course_name, courses.code AS course_code, AVG(feedback.rating) AS average_rating, COUNT(feedback.id) AS feedback_count").
		Joins("JOIN courses ON courses.id = feedback.course_id").
		Group("feedback.course_id, courses.name, courses.code").
		Order("courses.name ASC").
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to get course ratings: %w", err)
	}

	return stats, nil
}
