package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/entities"
	"rental-system/internal/repositories"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/types"
	"rental-system/pkg/utils"
)

type ClientServiceInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error)
	FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error)
	CreateClient(ctx context.Context, in dto.CreateClientDTO) (*dto.ClientDTO, error)
	UpdateClient(ctx context.Context, id uint64, in dto.UpdateClientDTO) (*dto.ClientDTO, error)
	DeleteClient(ctx context.Context, id uint64) error
}

type ClientService struct {
	clientRepo repositories.ClientRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewClientService(clientRepo repositories.ClientRepositoryInterface, gatekeeper *authz.Gatekeeper, logger *zap.Logger) ClientServiceInterface {
	return &ClientService{clientRepo: clientRepo, gatekeeper: gatekeeper, logger: logger}
}

func (s *ClientService) authorize(ctx context.Context, permission string) error {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return err
	}
	if !s.gatekeeper.Can(perms, permission) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *ClientService) GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	list, total, err := s.clientRepo.GetClients(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ClientDTO, 0, len(list))
	for _, c := range list {
		result = append(result, newClientDTO(c))
	}
	return result, total, nil
}

func (s *ClientService) FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error) {
	c, err := s.clientRepo.FindClient(ctx, id)
	if err != nil {
		return nil, err
	}
	res := newClientDTO(*c)
	return &res, nil
}

func (s *ClientService) CreateClient(ctx context.Context, in dto.CreateClientDTO) (*dto.ClientDTO, error) {
	if err := s.authorize(ctx, authz.CatalogsCreate); err != nil {
		return nil, err
	}

	client := entities.Client{
		Name:        in.Name,
		ContactName: null.StringFromPtr(in.ContactName),
		Phone:       null.StringFromPtr(in.Phone),
		Email:       null.StringFromPtr(in.Email),
	}

	id, err := s.clientRepo.CreateClient(ctx, &client)
	if err != nil {
		s.logger.Error("Ошибка при создании клиента", zap.Error(err))
		return nil, err
	}

	return s.FindClient(ctx, id)
}

func (s *ClientService) UpdateClient(ctx context.Context, id uint64, in dto.UpdateClientDTO) (*dto.ClientDTO, error) {
	if err := s.authorize(ctx, authz.CatalogsUpdate); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.ContactName != nil {
		client.ContactName = null.StringFrom(*in.ContactName)
	}
	if in.Phone != nil {
		client.Phone = null.StringFrom(*in.Phone)
	}
	if in.Email != nil {
		client.Email = null.StringFrom(*in.Email)
	}

	if err := s.clientRepo.UpdateClient(ctx, client); err != nil {
		return nil, err
	}

	return s.FindClient(ctx, id)
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint64) error {
	if err := s.authorize(ctx, authz.CatalogsDelete); err != nil {
		return err
	}
	return s.clientRepo.DeleteClient(ctx, id)
}

func newClientDTO(c entities.Client) dto.ClientDTO {
	return dto.ClientDTO{
		ID:          c.ID,
		Name:        c.Name,
		ContactName: nullStringPtr(c.ContactName),
		Phone:       nullStringPtr(c.Phone),
		Email:       nullStringPtr(c.Email),
		CreatedAt:   formatEntityTime(c.CreatedAt),
		UpdatedAt:   formatEntityTime(c.UpdatedAt),
	}
}
