package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/persistence"
	"github.com/spec-kit/auth-gateway/internal/repository"
)

const reportCacheKey = "report:summary"

// ReportSummary is the aggregate served by the reports endpoint.
type ReportSummary struct {
	TotalUsers  int64                 `json:"total_users"`
	UsersByRole map[domain.Role]int64 `json:"users_by_role"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// ReportService serves the account summary through a Redis read-through
// cache so repeated dashboard hits skip the aggregate query.
type ReportService struct {
	users  repository.UserRepository
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportService builds the service.
func NewReportService(users repository.UserRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{users: users, cache: cache, ttl: ttl, logger: logger}
}

// Summary returns the report and whether it was served from cache. Cache
// failures degrade to a fresh computation rather than an error.
func (s *ReportService) Summary(ctx context.Context) (*ReportSummary, bool, error) {
	if cached, err := s.cache.Client.Get(ctx, reportCacheKey).Result(); err == nil {
		var summary ReportSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, true, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("report cache read failed", zap.Error(err))
	}

	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, false, err
	}

	summary := &ReportSummary{
		UsersByRole: counts,
		GeneratedAt: time.Now(),
	}
	for _, count := range counts {
		summary.TotalUsers += count
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err := s.cache.Client.Set(ctx, reportCacheKey, encoded, s.ttl).Err(); err != nil {
			s.logger.Warn("report cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}
