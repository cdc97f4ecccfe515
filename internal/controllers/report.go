package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"rental-system/internal/dto"
	"rental-system/internal/services"
	"rental-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetEquipmentReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	format := strings.ToLower(ctx.QueryParam("format"))

	data, err := c.reportService.GetEquipmentReport(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}
	return utils.SuccessResponse(ctx, data, "Отчет успешно сформирован", http.StatusOK, uint64(len(data)))
}

var equipmentReportHeaders = []string{
	"№", "Название", "Бренд", "Модель", "Серийный номер", "Цена аренды", "Инвестиционная цена",
	"Вес (кг)", "Местоположение", "Собственное", "Не в строю", "Причина простоя",
}

func equipmentRowToSlice(i int, item dto.EquipmentDTO) []interface{} {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	yesNo := func(b bool) string {
		if b {
			return "Да"
		}
		return "Нет"
	}

	return []interface{}{
		i + 1, item.Name, deref(item.Brand), deref(item.Model), deref(item.SerialNumber),
		item.RentalPrice, item.InvestmentPrice, item.WeightKg, deref(item.Location),
		yesNo(item.Owned), yesNo(item.OutOfService), deref(item.OutOfServiceReason),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.EquipmentDTO) error {
	f := excelize.NewFile()
	sheet := "Оборудование"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &equipmentReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := equipmentRowToSlice(i, item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "E", 25)
	f.SetColWidth(sheet, "I", "I", 30)
	f.SetColWidth(sheet, "L", "L", 40)

	fileName := fmt.Sprintf("equipment_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
