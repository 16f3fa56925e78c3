package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/SAP-F-2025/feedback-service/internal/cache"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
)

const dashboardCacheKey = "dashboard"

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewDashboardService(
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
	logger *slog.Logger,
) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  cacheManager,
		logger: logger,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*DashboardResponse, error) {
	if s.cache != nil {
		var cached DashboardResponse
		if err := s.cache.Stats.Get(ctx, dashboardCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	totalFeedback, err := s.repo.Dashboard().GetTotalFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total feedback: %w", err)
	}

	totalStudents, err := s.repo.Dashboard().GetTotalStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total students: %w", err)
	}

	ratings, err := s.repo.Dashboard().GetCourseRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get course ratings: %w", err)
	}

	for i := range ratings {
		ratings[i].AverageRating = roundRating(ratings[i].AverageRating)
	}

	stats := &DashboardResponse{
		TotalFeedback:  totalFeedback,
		TotalStudents:  totalStudents,
		AverageRatings: ratings,
	}

	if s.cache != nil {
		if err := s.cache.Stats.Set(ctx, dashboardCacheKey, stats, cache.StatsCacheConfig.TTL); err != nil {
			s.logger.Warn("Failed to cache dashboard stats", "error", err)
		}
	}

	return stats, nil
}

// roundRating rounds an average to two decimal places.
func roundRating(value float64) float64 {
	return math.Round(value*100) / 100
}
