package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTrendPeriods = 6
	MaxTrendPeriods     = 24
	defaultCacheTTL     = time.Minute
)

// Service computes budget analytics over a Repository. It holds no per-user
// state; every call reads a fresh snapshot.
type Service struct {
	repo         Repository
	cache        Cache
	cacheTTL     time.Duration
	trendPeriods int
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables short-lived caching of computed reports.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithTrendPeriods sets how many periods the analysis report walks back.
func WithTrendPeriods(n int) Option {
	return func(s *Service) {
		if n > 0 && n <= MaxTrendPeriods {
			s.trendPeriods = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		cacheTTL:     defaultCacheTTL,
		trendPeriods: DefaultTrendPeriods,
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func cacheKey(userID uuid.UUID, op string, p Period, r DateRange, extra ...any) string {
	key := fmt.Sprintf("budget:%s:%s:%s:%s:%s", userID, op, p, r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	for _, e := range extra {
		key += fmt.Sprintf(":%v", e)
	}
	return key
}

// cached serves key from the cache when possible and stores fresh results.
// Cache failures never fail the request.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		if err == nil {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
		} else if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("budget cache read failed", "key", key, "error", err)
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(v); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
				slog.Warn("budget cache write failed", "key", key, "error", err)
			}
		}
	}
	return v, nil
}

// Invalidate drops cached reports for userID. Writes that bypass this service
// (transactions) must call it too.
func (s *Service) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("budget cache invalidation failed", "user_id", userID, "error", err)
	}
}
