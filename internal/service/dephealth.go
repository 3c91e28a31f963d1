// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Dashboard Module мониторит:
//   - Asset Backend — HTTP checker к health endpoint (critical)
//   - IdP — HTTP checker к JWKS endpoint (critical)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/prometheus/client_golang/prometheus"
)

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
//
// Параметры:
//   - serviceID — имя вершины графа текущего приложения (e.g. "dashboard-module")
//   - group — имя группы в метриках (DM_DEPHEALTH_GROUP)
//   - backendURL — базовый URL бекенда
//   - backendHealthPath — probe path бекенда (DM_BACKEND_HEALTH_PATH)
//   - jwksURL — JWKS endpoint IdP
//   - checkInterval — интервал проверки зависимостей (DM_DEPHEALTH_CHECK_INTERVAL)
//   - isEntry — при true добавляет лейбл isentry=yes ко всем зависимостям (DEPHEALTH_ISENTRY)
func NewDephealthService(
	serviceID string,
	group string,
	backendURL string,
	backendHealthPath string,
	jwksURL string,
	checkInterval time.Duration,
	isEntry bool,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, backendURL, backendHealthPath, jwksURL,
		checkInterval, isEntry, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	backendURL string,
	backendHealthPath string,
	jwksURL string,
	checkInterval time.Duration,
	isEntry bool,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, backendURL, backendHealthPath, jwksURL,
		checkInterval, isEntry, logger, dephealth.WithRegisterer(registerer))
}

// newDephealthService — внутренний конструктор.
func newDephealthService(
	serviceID string,
	group string,
	backendURL string,
	backendHealthPath string,
	jwksURL string,
	checkInterval time.Duration,
	isEntry bool,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	// Опции зависимости Asset Backend
	backendOpts := []dephealth.DependencyOption{
		dephealth.FromURL(backendURL),
		dephealth.WithHTTPHealthPath(backendHealthPath),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}
	if isEntry {
		backendOpts = append(backendOpts, dephealth.WithLabel("isentry", "yes"))
	}
	if parsed, err := url.Parse(backendURL); err == nil && parsed.Scheme == "https" {
		backendOpts = append(backendOpts, dephealth.WithHTTPTLSSkipVerify(false))
	}

	// Опции зависимости IdP: JWKS endpoint и есть health probe
	idpOpts := []dephealth.DependencyOption{
		dephealth.FromURL(jwksURL),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}
	if isEntry {
		idpOpts = append(idpOpts, dephealth.WithLabel("isentry", "yes"))
	}

	opts := make([]dephealth.Option, 0, 3+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.HTTP("asset-backend", backendOpts...),
		dephealth.HTTP("idp", idpOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен (Asset Backend + IdP)")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}
