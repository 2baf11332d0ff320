package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
)

const capabilityCacheKey = "capabilities:all"

// CapabilityServiceImpl implements domain.CapabilityService. The
// capability list is cached in Redis with a short TTL and invalidated
// on every mutation, so the per-request authorization lookup does not
// hit the store each time.
type CapabilityServiceImpl struct {
	capabilityRepo domain.CapabilityRepository
	redisClient    *redis.Client
	cacheTTL       time.Duration
	logger         *zap.Logger
}

// NewCapabilityService creates a new capability service. A zero
// cacheTTL disables caching.
func NewCapabilityService(capabilityRepo domain.CapabilityRepository, redisClient *redis.Client, cacheTTL time.Duration, logger *zap.Logger) domain.CapabilityService {
	return &CapabilityServiceImpl{
		capabilityRepo: capabilityRepo,
		redisClient:    redisClient,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

// Authorize implements domain.CapabilityService. Superadmins bypass
// capability checks entirely. For everyone else the requested path is
// normalized and matched against capability names; no matching
// capability means no grant (fail-closed).
func (s *CapabilityServiceImpl) Authorize(ctx context.Context, claims *domain.TokenClaims, requestedPath string) error {
	if claims.Role == domain.RoleSuperAdmin {
		return nil
	}

	normalized := normalizePath(requestedPath)
	if normalized == "" {
		return domain.ErrUnauthorized
	}

	capabilities, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load capabilities: %w", err)
	}

	for i := range capabilities {
		if strings.EqualFold(strings.TrimSpace(capabilities[i].Name), normalized) {
			if claims.HasCapability(capabilities[i].CapabilityID) {
				return nil
			}
			return domain.ErrUnauthorized
		}
	}
	return domain.ErrUnauthorized
}

// Create implements domain.CapabilityService
func (s *CapabilityServiceImpl) Create(ctx context.Context, name, description string) (*domain.Capability, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidationFailed
	}
	capability := &domain.Capability{Name: name, Description: description}
	if err := s.capabilityRepo.Create(ctx, capability); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return capability, nil
}

// List implements domain.CapabilityService
func (s *CapabilityServiceImpl) List(ctx context.Context) ([]domain.Capability, error) {
	return s.load(ctx)
}

// GetByID implements domain.CapabilityService
func (s *CapabilityServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Capability, error) {
	return s.capabilityRepo.FindByID(ctx, id)
}

// Update implements domain.CapabilityService
func (s *CapabilityServiceImpl) Update(ctx context.Context, id uint, name, description string) (*domain.Capability, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidationFailed
	}
	capability := &domain.Capability{CapabilityID: id, Name: name, Description: description}
	if err := s.capabilityRepo.Update(ctx, capability); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.capabilityRepo.FindByID(ctx, id)
}

// Delete implements domain.CapabilityService
func (s *CapabilityServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.capabilityRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// load returns the capability list, from cache when fresh
func (s *CapabilityServiceImpl) load(ctx context.Context) ([]domain.Capability, error) {
	if s.cacheTTL > 0 && s.redisClient != nil {
		data, err := s.redisClient.Get(ctx, capabilityCacheKey).Result()
		if err == nil {
			var cached []domain.Capability
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("capability cache read failed", zap.Error(err))
		}
	}

	capabilities, err := s.capabilityRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 && s.redisClient != nil {
		if data, err := json.Marshal(capabilities); err == nil {
			if err := s.redisClient.Set(ctx, capabilityCacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("capability cache write failed", zap.Error(err))
			}
		}
	}

	return capabilities, nil
}

func (s *CapabilityServiceImpl) invalidate(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, capabilityCacheKey).Err(); err != nil {
		s.logger.Warn("capability cache invalidation failed", zap.Error(err))
	}
}

// normalizePath strips the leading slash and lowercases the remainder
func normalizePath(path string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(path), "/"))
}
