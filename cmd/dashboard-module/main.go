// main.go — точка входа Dashboard Module.
// Собирает конфигурацию, клиент бекенда, JWT middleware, сервисный слой
// и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/assetboard/dashboard-module/internal/api/handlers"
	"github.com/assetboard/dashboard-module/internal/api/middleware"
	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/config"
	"github.com/assetboard/dashboard-module/internal/server"
	"github.com/assetboard/dashboard-module/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Dashboard Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("backend_url", cfg.BackendURL),
	)

	// 3. Клиент бекенда
	backendClient, err := backend.New(cfg.BackendURL, cfg.BackendCACert, cfg.BackendTimeout, logger)
	if err != nil {
		log.Fatalf("Ошибка создания клиента бекенда: %v", err)
	}

	// 4. JWT middleware (JWKS IdP)
	jwtAuth, err := middleware.NewJWTAuth(
		cfg.JWKSURL,
		cfg.BackendCACert,
		cfg.JWTIssuer,
		cfg.JWKSClientTimeout,
		cfg.JWKSRefreshInterval,
		cfg.JWTLeeway,
		logger,
	)
	if err != nil {
		log.Fatalf("Ошибка создания JWT middleware: %v", err)
	}

	// 5. Сервисный слой
	store := service.NewStore(backendClient, cfg.CacheSize, cfg.CacheTTL)
	coord := service.NewMutationCoordinator()
	states := service.NewListStateStore(1024, cfg.ListStateTTL)
	actors := service.NewActorResolver(store, logger)

	authService := service.NewAuthService(backendClient, logger)
	assetService := service.NewAssetService(store, backendClient, coord, states,
		cfg.CollationLocale, cfg.PageSize, logger)
	assetTypeService := service.NewAssetTypeService(store, backendClient, coord, states,
		cfg.CollationLocale, cfg.PageSize, logger)
	departmentService := service.NewDepartmentService(store, backendClient, coord, states,
		cfg.CollationLocale, cfg.PageSize, logger)
	userService := service.NewUserService(store, backendClient, coord, states,
		cfg.CollationLocale, cfg.PageSize, logger)
	notificationService := service.NewNotificationService(backendClient, coord, logger)
	chatbotService := service.NewChatbotService(backendClient, logger)
	dashboardService := service.NewDashboardService(store, logger)

	// 6. Мониторинг зависимостей (topologymetrics)
	dephealthService, err := service.NewDephealthService(
		"dashboard-module",
		cfg.DephealthGroup,
		cfg.BackendURL,
		cfg.BackendHealthPath,
		cfg.JWKSURL,
		cfg.DephealthCheckInterval,
		cfg.DephealthIsEntry,
		logger,
	)
	if err != nil {
		log.Fatalf("Ошибка создания dephealth: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := dephealthService.Start(ctx); err != nil {
		log.Fatalf("Ошибка запуска dephealth: %v", err)
	}
	defer dephealthService.Stop()

	// 7. Health handler: readiness бекенда и IdP
	idpChecker, err := middleware.NewIdPReadinessChecker(cfg.JWKSURL, cfg.BackendCACert, cfg.JWKSClientTimeout)
	if err != nil {
		log.Fatalf("Ошибка создания IdP readiness checker: %v", err)
	}
	healthHandler := handlers.NewHealthHandler(
		backendClient.NewReadinessChecker(cfg.BackendHealthPath),
		idpChecker,
	)

	// 8. API handler
	apiHandler := handlers.NewHandler(
		healthHandler,
		actors,
		authService,
		assetService,
		assetTypeService,
		departmentService,
		userService,
		notificationService,
		chatbotService,
		dashboardService,
		logger,
	)

	// 9. HTTP-сервер: metrics → logging → JWT (health, metrics и login — без JWT)
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
		server.JWTAuthWithExclusions(jwtAuth.Middleware(),
			"/health/", "/metrics", "/api/v1/login"),
	)

	// 10. Запуск сервера (блокирующий вызов с graceful shutdown)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		log.Fatalf("Сервер завершился с ошибкой: %v", err)
	}

	logger.Info("Dashboard Module остановлен")
}
