package services

import (
	"context"

	"go.uber.org/zap"

	"rental-system/internal/dto"
	"rental-system/internal/repositories"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/service"
	"rental-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, jwtService: jwtService, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByLogin(ctx, in.Login)
	if err != nil {
		s.logger.Warn("Попытка входа с неизвестным логином", zap.String("login", in.Login))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, in.Password); err != nil {
		s.logger.Warn("Неверный пароль", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.RoleID)
	if err != nil {
		s.logger.Error("Ошибка при генерации токенов", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Пользователь вошёл в систему", zap.Uint64("userID", user.ID))
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
