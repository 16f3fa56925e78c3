package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	return &course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course %d: %w", course.ID, err)
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Course{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}
	return nil
}

func (r *courseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}
