package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rental-system/internal/repositories"
)

const rolePermissionsCacheTTL = 10 * time.Minute

type AuthPermissionServiceInterface interface {
	GetPermissionsMapForRole(ctx context.Context, roleID uint64) (map[string]bool, error)
	InvalidateRole(ctx context.Context, roleID uint64) error
}

// AuthPermissionService собирает карту прав роли, кэшируя её в Redis.
// Промах или сбой кэша не фатален, источник истины — база.
type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *AuthPermissionService {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
	}
}

func rolePermissionsCacheKey(roleID uint64) string {
	return fmt.Sprintf("role_permissions:%d", roleID)
}

func (s *AuthPermissionService) GetPermissionsMapForRole(ctx context.Context, roleID uint64) (map[string]bool, error) {
	key := rolePermissionsCacheKey(roleID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil && cached != "" {
		var codes []string
		if err := json.Unmarshal([]byte(cached), &codes); err == nil {
			return codesToMap(codes), nil
		}
		s.logger.Warn("Повреждённая запись в кэше прав", zap.String("key", key))
	}

	codes, err := s.permissionRepo.GetPermissionCodesByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(codes); err == nil {
		if err := s.cacheRepo.Set(ctx, key, string(payload), rolePermissionsCacheTTL); err != nil {
			s.logger.Warn("Не удалось записать права в кэш", zap.Error(err))
		}
	}

	return codesToMap(codes), nil
}

func (s *AuthPermissionService) InvalidateRole(ctx context.Context, roleID uint64) error {
	return s.cacheRepo.Del(ctx, rolePermissionsCacheKey(roleID))
}

func codesToMap(codes []string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, code := range codes {
		m[code] = true
	}
	return m
}
