package middleware

import (
	"context"
	"strings"

	"rental-system/pkg/contextkeys"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/service"
	"rental-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PermissionProvider отдаёт карту пермишенов роли (с кешем поверх БД).
type PermissionProvider interface {
	GetPermissionsMapForRole(ctx context.Context, roleID uint64) (map[string]bool, error)
}

type AuthMiddleware struct {
	jwtService  service.JWTService
	permissions PermissionProvider
	logger      *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, permissions PermissionProvider, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtSvc,
		permissions: permissions,
		logger:      logger,
	}
}

// Auth проверяет Bearer-токен и кладёт UserID, RoleID и карту пермишенов в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		perms, err := m.permissions.GetPermissionsMapForRole(c.Request().Context(), claims.RoleID)
		if err != nil {
			m.logger.Error("AuthMiddleware: Не удалось получить пермишены роли", zap.Uint64("roleID", claims.RoleID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, contextkeys.UserPermissionsMapKey, perms)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
