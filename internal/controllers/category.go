package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/dto"
	"rental-system/internal/services"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/utils"
)

type CategoryController struct {
	categoryService services.CategoryServiceInterface
	treeService     services.CategoryTreeServiceInterface
	logger          *zap.Logger
}

func NewCategoryController(
	categoryService services.CategoryServiceInterface,
	treeService services.CategoryTreeServiceInterface,
	logger *zap.Logger,
) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		treeService:     treeService,
		logger:          logger,
	}
}

func (c *CategoryController) GetCategories(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	list, err := c.categoryService.GetCategories(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список категорий успешно получен", http.StatusOK)
}

func (c *CategoryController) FindCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.FindCategory(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно найдена", http.StatusOK)
}

func (c *CategoryController) CreateCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var in dto.CreateCategoryDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.CreateCategory(reqCtx, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно создана", http.StatusCreated)
}

func (c *CategoryController) UpdateCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.UpdateCategoryDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.UpdateCategory(reqCtx, id, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно обновлена", http.StatusOK)
}

func (c *CategoryController) DeleteCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.categoryService.DeleteCategory(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Категория успешно удалена", http.StatusOK)
}

// GetInventoryTree отдаёт объединённое дерево категорий и оборудования.
func (c *CategoryController) GetInventoryTree(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	tree, err := c.treeService.BuildTree(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tree, "Дерево инвентаря успешно получено", http.StatusOK)
}
