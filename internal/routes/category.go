package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/controllers"
	"rental-system/internal/services"
)

func runCategoryRouter(
	g *echo.Group,
	categoryService services.CategoryServiceInterface,
	treeService services.CategoryTreeServiceInterface,
	logger *zap.Logger,
) {
	categoryCtrl := controllers.NewCategoryController(categoryService, treeService, logger)

	g.GET("/categories", categoryCtrl.GetCategories)
	g.GET("/categories/:id", categoryCtrl.FindCategory)
	g.POST("/categories", categoryCtrl.CreateCategory)
	g.PUT("/categories/:id", categoryCtrl.UpdateCategory)
	g.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

	g.GET("/inventory/tree", categoryCtrl.GetInventoryTree)
}
