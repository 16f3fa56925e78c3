package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/feedback-service/internal/auth"
	"github.com/SAP-F-2025/feedback-service/internal/cache"
	"github.com/SAP-F-2025/feedback-service/internal/events"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

// ServiceManagerConfig holds the dependencies every service draws from.
type ServiceManagerConfig struct {
	Repository   repositories.Repository
	CacheManager *cache.CacheManager
	Publisher    events.EventPublisher
	TokenMaker   *auth.JWTMaker
	Logger       *slog.Logger
	Validator    *validator.Validator
}

type serviceManager struct {
	config ServiceManagerConfig

	authService      AuthService
	feedbackService  FeedbackService
	courseService    CourseService
	studentService   StudentService
	dashboardService DashboardService
	exportService    ExportService
	profileService   ProfileService
}

// NewServiceManager wires all services against the shared dependencies.
func NewServiceManager(config ServiceManagerConfig) (ServiceManager, error) {
	if config.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if config.TokenMaker == nil {
		return nil, fmt.Errorf("token maker is required")
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if config.Validator == nil {
		config.Validator = validator.New()
	}
	if config.Publisher == nil {
		config.Publisher = events.NewNoopEventPublisher()
	}

	sm := &serviceManager{config: config}

	sm.authService = NewAuthService(config.Repository, config.TokenMaker, config.Publisher, config.Logger, config.Validator)
	sm.feedbackService = NewFeedbackService(config.Repository, config.CacheManager, config.Publisher, config.Logger, config.Validator)
	sm.courseService = NewCourseService(config.Repository, config.CacheManager, config.Logger, config.Validator)
	sm.studentService = NewStudentService(config.Repository, config.CacheManager, config.Publisher, config.Logger)
	sm.dashboardService = NewDashboardService(config.Repository, config.CacheManager, config.Logger)
	sm.exportService = NewExportService(config.Repository, config.Logger)
	sm.profileService = NewProfileService(config.Repository, config.Logger, config.Validator)

	return sm, nil
}

func (sm *serviceManager) Auth() AuthService           { return sm.authService }
func (sm *serviceManager) Feedback() FeedbackService   { return sm.feedbackService }
func (sm *serviceManager) Course() CourseService       { return sm.courseService }
func (sm *serviceManager) Student() StudentService     { return sm.studentService }
func (sm *serviceManager) Dashboard() DashboardService { return sm.dashboardService }
func (sm *serviceManager) Export() ExportService       { return sm.exportService }
func (sm *serviceManager) Profile() ProfileService     { return sm.profileService }

func (sm *serviceManager) Initialize(ctx context.Context) error {
	if err := sm.config.Repository.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}
	return nil
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	return sm.config.Repository.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	if err := sm.config.Publisher.Close(); err != nil {
		sm.config.Logger.Warn("Failed to close event publisher", "error", err)
	}
	return sm.config.Repository.Close()
}
