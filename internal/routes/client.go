package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/controllers"
	"rental-system/internal/services"
)

func runClientRouter(g *echo.Group, clientService services.ClientServiceInterface, logger *zap.Logger) {
	clientCtrl := controllers.NewClientController(clientService, logger)

	g.GET("/clients", clientCtrl.GetClients)
	g.GET("/clients/:id", clientCtrl.FindClient)
	g.POST("/clients", clientCtrl.CreateClient)
	g.PUT("/clients/:id", clientCtrl.UpdateClient)
	g.DELETE("/clients/:id", clientCtrl.DeleteClient)
}
