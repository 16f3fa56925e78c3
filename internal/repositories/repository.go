package repositories

import "context"

// Repository aggregates all domain repositories behind one injected handle.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Feedback() FeedbackRepository
	Dashboard() DashboardRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
