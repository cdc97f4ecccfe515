package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/repositories"
	"rental-system/internal/services"
	"rental-system/pkg/filestorage"
	"rental-system/pkg/middleware"
	"rental-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
// Публичны только вход и календарная лента, остальное за авторизацией.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger) {
	api := e.Group("/api")

	fileStorage, err := filestorage.NewLocalFileStorage("uploads")
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	gatekeeper := authz.NewGatekeeper()

	userRepo := repositories.NewUserRepository(dbConn)
	permissionRepo := repositories.NewPermissionRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	historyRepo := repositories.NewEquipmentHistoryRepository(dbConn)
	categoryRepo := repositories.NewCategoryRepository(dbConn)
	eventRepo := repositories.NewEventRepository(dbConn)
	clientRepo := repositories.NewClientRepository(dbConn)

	authPermissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	equipmentService := services.NewEquipmentService(txManager, equipmentRepo, historyRepo, gatekeeper, logger)
	historyService := services.NewEquipmentHistoryService(historyRepo, equipmentRepo, gatekeeper, logger)
	categoryService := services.NewCategoryService(categoryRepo, gatekeeper, logger)
	treeService := services.NewCategoryTreeService(categoryRepo, equipmentRepo, logger)
	eventService := services.NewEventService(txManager, eventRepo, equipmentRepo, historyRepo, clientRepo, gatekeeper, logger)
	calendarService := services.NewCalendarService(eventRepo, logger)
	clientService := services.NewClientService(clientRepo, gatekeeper, logger)
	reportService := services.NewReportService(equipmentRepo, gatekeeper, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, authPermissionService, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, logger)
	runCalendarRouter(api, calendarService, eventService, logger, secureGroup)
	runEquipmentRouter(secureGroup, equipmentService, historyService, fileStorage, logger)
	runCategoryRouter(secureGroup, categoryService, treeService, logger)
	runClientRouter(secureGroup, clientService, logger)
	runReportRouter(secureGroup, reportService, logger)
}
