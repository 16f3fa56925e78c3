package repositories

import (
	"context"

	"github.com/SAP-F-2025/feedback-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type FeedbackFilters struct {
	StudentID *uint `json:"student_id"`
	CourseID  *uint `json:"course_id"`
	Rating    *int  `json:"rating"`
	Limit     int   `json:"limit"`
	Offset    int   `json:"offset"`
}

type UserFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type CourseRatingStat struct {
	CourseID      uint    `json:"courseId"`
	CourseName    string  `json:"courseName"`
	CourseCode    string  `json:"courseCode"`
	AverageRating float64 `json:"averageRating"`
	FeedbackCount int64   `json:"feedbackCount"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	// ListStudents returns role=student users, newest first.
	ListStudents(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	CountStudents(ctx context.Context) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error

	// ListAll returns every course sorted by name.
	ListAll(ctx context.Context) ([]*models.Course, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error

	// GetByID loads the feedback with its student and course expanded.
	GetByID(ctx context.Context, id uint) (*models.Feedback, error)
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id uint) error

	// List returns feedback matching the filters, newest first, with
	// student and course expanded.
	List(ctx context.Context, filters FeedbackFilters) ([]*models.Feedback, int64, error)

	// ListAll returns every feedback record, newest first, expanded.
	ListAll(ctx context.Context) ([]*models.Feedback, error)

	ExistsForStudentAndCourse(ctx context.Context, studentID, courseID uint) (bool, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
	DeleteByStudent(ctx context.Context, studentID uint) error
}

type DashboardRepository interface {
	GetTotalFeedback(ctx context.Context) (int64, error)
	GetTotalStudents(ctx context.Context) (int64, error)

	// GetCourseRatings returns per-course average rating and feedback count.
	GetCourseRatings(ctx context.Context) ([]CourseRatingStat, error)
}
