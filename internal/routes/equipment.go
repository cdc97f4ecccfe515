package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/controllers"
	"rental-system/internal/services"
	"rental-system/pkg/filestorage"
)

func runEquipmentRouter(
	g *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	historyService services.EquipmentHistoryServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, fileStorage, logger)
	historyCtrl := controllers.NewEquipmentHistoryController(historyService, logger)

	g.GET("/equipment", equipmentCtrl.GetEquipments)
	g.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	g.POST("/equipment", equipmentCtrl.CreateEquipment)
	g.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
	g.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)
	g.POST("/equipment/:id/photo", equipmentCtrl.UploadPhoto)

	g.GET("/equipment/:id/history", historyCtrl.GetHistory)
	g.POST("/equipment/:id/history", historyCtrl.AppendEntry)
}
