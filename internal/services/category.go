package services

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/entities"
	"rental-system/internal/repositories"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/utils"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context) ([]dto.CategoryDTO, error)
	FindCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, in dto.CreateCategoryDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint64, in dto.UpdateCategoryDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	gatekeeper   *authz.Gatekeeper
	logger       *zap.Logger
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) CategoryServiceInterface {
	return &CategoryService{categoryRepo: categoryRepo, gatekeeper: gatekeeper, logger: logger}
}

func (s *CategoryService) authorize(ctx context.Context, permission string) error {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return err
	}
	if !s.gatekeeper.Can(perms, permission) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	list, err := s.categoryRepo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CategoryDTO, 0, len(list))
	for _, c := range list {
		result = append(result, newCategoryDTO(c))
	}
	return result, nil
}

func (s *CategoryService) FindCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	c, err := s.categoryRepo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	res := newCategoryDTO(*c)
	return &res, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	if err := s.authorize(ctx, authz.CatalogsCreate); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		if _, err := s.categoryRepo.FindCategory(ctx, *in.ParentID); err != nil {
			return nil, err
		}
	}

	id, err := s.categoryRepo.CreateCategory(ctx, &entities.Category{Name: in.Name, ParentID: in.ParentID})
	if err != nil {
		s.logger.Error("Ошибка при создании категории", zap.Error(err))
		return nil, err
	}

	return s.FindCategory(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint64, in dto.UpdateCategoryDTO) (*dto.CategoryDTO, error) {
	if err := s.authorize(ctx, authz.CatalogsUpdate); err != nil {
		return nil, err
	}

	c, err := s.categoryRepo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Категория не может быть родителем самой себя", nil, nil)
		}
		if _, err := s.categoryRepo.FindCategory(ctx, *in.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = in.ParentID
	}

	if err := s.categoryRepo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return s.FindCategory(ctx, id)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := s.authorize(ctx, authz.CatalogsDelete); err != nil {
		return err
	}
	return s.categoryRepo.DeleteCategory(ctx, id)
}

func newCategoryDTO(c entities.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: formatEntityTime(c.CreatedAt),
		UpdatedAt: formatEntityTime(c.UpdatedAt),
	}
}
