package services

import (
	"context"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use validator request types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreateFeedbackRequest = validator.CreateFeedbackRequest
type UpdateFeedbackRequest = validator.UpdateFeedbackRequest
type CreateCourseRequest = validator.CreateCourseRequest
type UpdateCourseRequest = validator.UpdateCourseRequest
type UpdateProfileRequest = validator.UpdateProfileRequest
type ChangePasswordRequest = validator.ChangePasswordRequest

// ListFeedbackQuery carries the caller-supplied list filters.
type ListFeedbackQuery struct {
	CourseID *uint
	Rating   *int
	Page     int
	PageSize int
}

// ===== RESPONSE DTOs =====

// FeedbackResponse is a feedback record expanded with course and author
// summaries.
type FeedbackResponse struct {
	*models.Feedback
	Course  models.CourseSummary `json:"course"`
	Student models.UserSummary   `json:"student"`
}

// FeedbackListResponse is the paginated list envelope.
type FeedbackListResponse struct {
	Items       []*FeedbackResponse `json:"items"`
	CurrentPage int                 `json:"currentPage"`
	TotalPages  int                 `json:"totalPages"`
	TotalCount  int64               `json:"totalCount"`
}

type StudentListResponse struct {
	Items       []*models.User `json:"items"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalCount  int64          `json:"totalCount"`
}

type DashboardResponse struct {
	TotalFeedback  int64                          `json:"totalFeedback"`
	TotalStudents  int64                          `json:"totalStudents"`
	AverageRatings []repositories.CourseRatingStat `json:"averageRatings"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register creates a student account and returns a fresh token.
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)

	// Login verifies credentials. Blocked accounts are rejected.
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	// VerifyToken resolves a bearer token to an existing, non-blocked user.
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

type FeedbackService interface {
	// List returns feedback visible to the caller: students see only
	// their own records, admins see everything.
	List(ctx context.Context, caller *models.User, query ListFeedbackQuery) (*FeedbackListResponse, error)

	// Create submits feedback; students only, one per course.
	Create(ctx context.Context, caller *models.User, req *CreateFeedbackRequest) (*FeedbackResponse, error)

	// Update mutates rating/message with merge-missing semantics.
	// Author or admin only.
	Update(ctx context.Context, caller *models.User, id uint, req *UpdateFeedbackRequest) (*FeedbackResponse, error)

	// Delete removes a feedback record. Author or admin only.
	Delete(ctx context.Context, caller *models.User, id uint) error
}

type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.Course, error)

	// Delete is refused while any feedback references the course.
	Delete(ctx context.Context, id uint) error
}

type StudentService interface {
	// List returns the paginated student roster, newest first.
	List(ctx context.Context, page, pageSize int) (*StudentListResponse, error)

	// SetBlocked toggles the block flag on a student account.
	SetBlocked(ctx context.Context, id uint, blocked bool) (*models.User, error)

	// Delete removes a student and all feedback they authored.
	Delete(ctx context.Context, id uint) error
}

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardResponse, error)
}

type ExportService interface {
	// ExportCSV renders all feedback as the flat CSV document, newest
	// first. Commas and newlines in free text are replaced, not escaped.
	ExportCSV(ctx context.Context) ([]byte, error)

	// ExportXLSX renders the same rows as an XLSX workbook.
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type ProfileService interface {
	Get(ctx context.Context, caller *models.User) (*models.User, error)

	// Update applies merge-missing profile changes; email is immutable.
	Update(ctx context.Context, caller *models.User, req *UpdateProfileRequest) (*models.User, error)

	// ChangePassword verifies the current password before setting a new one.
	ChangePassword(ctx context.Context, caller *models.User, req *ChangePasswordRequest) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Feedback() FeedbackService
	Course() CourseService
	Student() StudentService
	Dashboard() DashboardService
	Export() ExportService
	Profile() ProfileService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ===== SHARED HELPERS =====

// totalPages computes ceil(totalCount / pageSize).
func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}

// normalizePage clamps page/size to their defaults (1/10).
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}
