package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/provely/server/internal/shared/config"
	"github.com/provely/server/internal/utils/metrics"
)

const cacheKey = "settings:platform"

// Service reads and updates platform settings. Reads go through redis
// with a short TTL so the limits check on every invite send does not hit
// the database.
type Service struct {
	repo     Repository
	redis    redis.UniversalClient
	defaults config.InviteConfig
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a settings service. redisClient and m may be nil.
func NewService(repo Repository, redisClient redis.UniversalClient, cfg config.InviteConfig, m *metrics.Metrics, logger *zap.Logger) *Service {
	ttl := cfg.SettingsTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		repo:     repo,
		redis:    redisClient,
		defaults: cfg,
		ttl:      ttl,
		metrics:  m,
		logger:   logger,
	}
}

// Get returns the current platform settings. Falls back to configured
// defaults when no row exists yet. Cache failures degrade to a direct
// database read.
func (s *Service) Get(ctx context.Context) (*PlatformSettings, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			row = s.defaultSettings()
		} else {
			return nil, err
		}
	}

	s.toCache(ctx, row)
	return row, nil
}

// Update persists new settings and invalidates the cache.
func (s *Service) Update(ctx context.Context, row *PlatformSettings) error {
	if err := s.repo.Upsert(ctx, row); err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}
	return nil
}

// LimitFor returns the invite limit for a multi-invitee domain. Zero
// means unlimited.
func (s *PlatformSettings) LimitFor(domain string) int {
	switch domain {
	case "skills":
		return s.SkillInviteLimit
	case "project":
		return s.ProjectInviteLimit
	case "team":
		return s.TeamInviteLimit
	default:
		return 0
	}
}

func (s *Service) defaultSettings() *PlatformSettings {
	return &PlatformSettings{
		SkillInviteLimit:   s.defaults.SkillLimit,
		ProjectInviteLimit: s.defaults.ProjectLimit,
		TeamInviteLimit:    s.defaults.TeamLimit,
	}
}

func (s *Service) fromCache(ctx context.Context) *PlatformSettings {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("settings cache read failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss("settings")
		}
		return nil
	}

	var row PlatformSettings
	if err := json.Unmarshal(data, &row); err != nil {
		s.logger.Warn("settings cache entry corrupt", zap.Error(err))
		return nil
	}
	if s.metrics != nil {
		s.metrics.RecordCacheHit("settings")
	}
	return &row
}

func (s *Service) toCache(ctx context.Context, row *PlatformSettings) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(row)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
		s.logger.Warn("settings cache write failed", zap.Error(err))
	}
}
