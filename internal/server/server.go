// Пакет server — HTTP-сервер Dashboard Module с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на API Gateway.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/assetboard/dashboard-module/internal/api/handlers"
	"github.com/assetboard/dashboard-module/internal/api/middleware"
	"github.com/assetboard/dashboard-module/internal/config"
	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// Server — HTTP-сервер Dashboard Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// middlewares — глобальные middleware (metrics, logging, JWT),
// добавляются в порядке переданного среза.
func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handler, middlewares ...func(http.Handler) http.Handler) *Server {
	router := chi.NewRouter()

	// Применяем переданные middleware
	for _, mw := range middlewares {
		router.Use(mw)
	}

	registerRoutes(router, h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// registerRoutes регистрирует маршруты API.
// Аутентификация выполняется глобальным JWT middleware (с исключениями),
// здесь навешиваются только ролевые ограничения мутаций:
// активы — ADMIN и MANAGER, справочники и пользователи — только ADMIN.
func registerRoutes(router chi.Router, h *handlers.Handler) {
	// Health и метрики (вне аутентификации)
	router.Get("/health/live", h.HealthLive)
	router.Get("/health/ready", h.HealthReady)
	router.Get("/metrics", h.GetMetrics)

	// Вход (вне аутентификации)
	router.Post("/api/v1/login", h.Login)

	manageAssets := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	router.Route("/api/v1/assets", func(r chi.Router) {
		r.Get("/", h.ListAssets)
		r.Get("/{id}", h.GetAsset)

		r.Group(func(r chi.Router) {
			r.Use(manageAssets)
			r.Post("/", h.CreateAsset)
			r.Put("/{id}", h.UpdateAsset)
			r.Delete("/{id}", h.DeleteAsset)
			r.Post("/{id}/assign", h.AssignAsset)
			r.Post("/{id}/evaluate", h.EvaluateAsset)
			r.Post("/{id}/reclaim", h.ReclaimAsset)
		})
	})

	router.Route("/api/v1/asset-types", func(r chi.Router) {
		r.Get("/", h.ListAssetTypes)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateAssetType)
			r.Put("/{id}", h.UpdateAssetType)
			r.Delete("/{id}", h.DeleteAssetType)
		})
	})

	router.Route("/api/v1/departments", func(r chi.Router) {
		r.Get("/", h.ListDepartments)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateDepartment)
			r.Put("/{id}", h.UpdateDepartment)
			r.Delete("/{id}", h.DeleteDepartment)
		})
	})

	router.Route("/api/v1/users", func(r chi.Router) {
		r.With(manageAssets).Get("/", h.ListUsers)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})
	})

	router.Route("/api/v1/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.Post("/{id}/read", h.MarkNotificationRead)
		r.Post("/read-all", h.MarkAllNotificationsRead)
		r.Delete("/{id}", h.DeleteNotification)
	})

	router.Get("/api/v1/dashboard/summary", h.DashboardSummary)

	router.Route("/api/chatbot", func(r chi.Router) {
		r.Post("/chat", h.SendChatMessage)
		r.Get("/history", h.ChatHistory)
	})
}

// JWTAuthWithExclusions оборачивает middleware, пропуская указанные пути.
// Запросы к путям, начинающимся с любого из excludePrefixes, проходят без middleware.
func JWTAuthWithExclusions(mw func(http.Handler) http.Handler, excludePrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Проверяем, начинается ли путь с исключённого префикса
			for _, prefix := range excludePrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// Применяем middleware
			mw(next).ServeHTTP(w, r)
		})
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
