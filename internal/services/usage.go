package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
)

// UsageService counts completed checks per user per calendar month, backing
// the monthly_check_limit entitlement field. Counters live in Redis and
// expire on their own; a Redis outage degrades to an unmetered month rather
// than blocking analysis.
type UsageService interface {
	MonthlyCount(ctx context.Context, userID uuid.UUID) (int, error)
	Increment(ctx context.Context, userID uuid.UUID) (int, error)
}

type usageService struct {
	log *logger.Logger
	rdb *redis.Client
}

func NewUsageService(baseLog *logger.Logger, rdb *redis.Client) UsageService {
	return &usageService{
		log: baseLog.With("service", "UsageService"),
		rdb: rdb,
	}
}

func monthlyUsageKey(userID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("usage:%s:%s", userID.String(), now.UTC().Format("2006-01"))
}

func (s *usageService) MonthlyCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if s.rdb == nil || userID == uuid.Nil {
		return 0, nil
	}
	val, err := s.rdb.Get(ctx, monthlyUsageKey(userID, time.Now())).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		s.log.Warn("usage count read failed", "user_id", userID.String(), "error", err)
		return 0, nil
	}
	n, convErr := strconv.Atoi(val)
	if convErr != nil {
		return 0, nil
	}
	return n, nil
}

func (s *usageService) Increment(ctx context.Context, userID uuid.UUID) (int, error) {
	if s.rdb == nil || userID == uuid.Nil {
		return 0, nil
	}
	key := monthlyUsageKey(userID, time.Now())
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		s.log.Warn("usage increment failed", "user_id", userID.String(), "error", err)
		return 0, nil
	}
	// Counters outlive their month by a few days for reporting, then expire.
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, 40*24*time.Hour).Err(); err != nil {
			s.log.Warn("usage expiry set failed", "error", err)
		}
	}
	return int(n), nil
}
