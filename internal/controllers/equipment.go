package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/dto"
	"rental-system/internal/services"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/filestorage"
	"rental-system/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	fileStorage      filestorage.FileStorageInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		fileStorage:      fileStorage,
		logger:           logger,
	}
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный ID",
			err,
			map[string]interface{}{"param": ctx.Param("id")},
		)
	}
	return id, nil
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.equipmentService.GetEquipments(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	perms, err := utils.GetPermissionsMapFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	list = services.RedactEquipmentPricesList(list, perms)

	return utils.SuccessResponse(ctx, list, "Список оборудования успешно получен", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	perms, err := utils.GetPermissionsMapFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	redacted := services.RedactEquipmentPrices(*res, perms)

	return utils.SuccessResponse(ctx, redacted, "Оборудование успешно найдено", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var in dto.CreateEquipmentDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(reqCtx, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.UpdateEquipmentDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(reqCtx, id, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Оборудование успешно удалено", http.StatusOK)
}

func (c *EquipmentController) UploadPhoto(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл 'photo' обязателен", err, nil),
			c.logger,
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	path, err := c.fileStorage.Save(src, fileHeader.Filename, "equipment")
	if err != nil {
		c.logger.Error("Ошибка при сохранении фото", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.AttachPhoto(reqCtx, id, path); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]string{"photo_url": "/uploads/" + path}, "Фото успешно загружено", http.StatusOK)
}
