// Пакет config — загрузка и валидация конфигурации Dashboard Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Dashboard Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8040-8049)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- Бекенд ---

	// Базовый URL REST-бекенда (обязательный)
	BackendURL string
	// Таймаут запросов к бекенду (по умолчанию 30s)
	BackendTimeout time.Duration
	// Путь к CA-сертификату бекенда (опционально)
	BackendCACert string
	// Probe path health endpoint бекенда (по умолчанию /health)
	BackendHealthPath string

	// --- JWT / IdP ---

	// URL JWKS endpoint IdP (обязательный)
	JWKSURL string
	// Ожидаемый issuer JWT (пустой — не проверяется)
	JWTIssuer string
	// Допустимое отклонение времени при проверке JWT (по умолчанию 30s)
	JWTLeeway time.Duration
	// Таймаут HTTP-клиента JWKS (по умолчанию 10s)
	JWKSClientTimeout time.Duration
	// Интервал обновления JWKS-ключей (по умолчанию 1h)
	JWKSRefreshInterval time.Duration

	// --- Кэш и списочные экраны ---

	// Максимальный размер каждого LRU-кэша (по умолчанию 16)
	CacheSize int
	// TTL записи кэша коллекций (по умолчанию 30s)
	CacheTTL time.Duration
	// TTL позиции списочного экрана (по умолчанию 30m)
	ListStateTTL time.Duration
	// Размер страницы по умолчанию (по умолчанию 10)
	PageSize int
	// BCP 47 локаль сортировки текстовых полей (по умолчанию vi)
	CollationLocale string

	// --- Dephealth ---

	// Имя группы в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей (по умолчанию 30s)
	DephealthCheckInterval time.Duration
	// Лейбл isentry=yes для зависимостей
	DephealthIsEntry bool
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// DM_PORT — порт HTTP-сервера (по умолчанию 8040)
	cfg.Port, err = getEnvInt("DM_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("DM_PORT: %w", err)
	}

	// DM_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("DM_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("DM_LOG_LEVEL: %w", err)
	}

	// DM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("DM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("DM_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	// DM_HTTP_READ_TIMEOUT — таймаут чтения (по умолчанию 30s)
	cfg.HTTPReadTimeout, err = getEnvDuration("DM_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_HTTP_READ_TIMEOUT: %w", err)
	}

	// DM_HTTP_WRITE_TIMEOUT — таймаут записи (по умолчанию 60s)
	cfg.HTTPWriteTimeout, err = getEnvDuration("DM_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_HTTP_WRITE_TIMEOUT: %w", err)
	}

	// DM_HTTP_IDLE_TIMEOUT — таймаут простоя (по умолчанию 120s)
	cfg.HTTPIdleTimeout, err = getEnvDuration("DM_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	// DM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("DM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Бекенд ---

	// DM_BACKEND_URL — базовый URL бекенда (обязательный)
	cfg.BackendURL, err = getEnvRequired("DM_BACKEND_URL")
	if err != nil {
		return nil, err
	}

	// DM_BACKEND_TIMEOUT — таймаут запросов к бекенду (по умолчанию 30s)
	cfg.BackendTimeout, err = getEnvDuration("DM_BACKEND_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_BACKEND_TIMEOUT: %w", err)
	}

	// DM_BACKEND_CA_CERT — CA-сертификат бекенда (опционально)
	cfg.BackendCACert = getEnvDefault("DM_BACKEND_CA_CERT", "")

	// DM_BACKEND_HEALTH_PATH — probe path бекенда (по умолчанию /health)
	cfg.BackendHealthPath = getEnvDefault("DM_BACKEND_HEALTH_PATH", "/health")

	// --- JWT / IdP ---

	// DM_JWKS_URL — JWKS endpoint IdP (обязательный)
	cfg.JWKSURL, err = getEnvRequired("DM_JWKS_URL")
	if err != nil {
		return nil, err
	}

	// DM_JWT_ISSUER — ожидаемый issuer (опционально)
	cfg.JWTIssuer = getEnvDefault("DM_JWT_ISSUER", "")

	// DM_JWT_LEEWAY — допустимое отклонение времени (по умолчанию 30s)
	cfg.JWTLeeway, err = getEnvDuration("DM_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_JWT_LEEWAY: %w", err)
	}

	// DM_JWKS_CLIENT_TIMEOUT — таймаут HTTP-клиента JWKS (по умолчанию 10s)
	cfg.JWKSClientTimeout, err = getEnvDuration("DM_JWKS_CLIENT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_JWKS_CLIENT_TIMEOUT: %w", err)
	}

	// DM_JWKS_REFRESH_INTERVAL — интервал обновления ключей (по умолчанию 1h)
	cfg.JWKSRefreshInterval, err = getEnvDuration("DM_JWKS_REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("DM_JWKS_REFRESH_INTERVAL: %w", err)
	}

	// --- Кэш и списочные экраны ---

	// DM_CACHE_SIZE — максимальный размер каждого LRU-кэша (по умолчанию 16)
	cfg.CacheSize, err = getEnvInt("DM_CACHE_SIZE", 16)
	if err != nil {
		return nil, fmt.Errorf("DM_CACHE_SIZE: %w", err)
	}

	// DM_CACHE_TTL — TTL кэша коллекций (по умолчанию 30s)
	cfg.CacheTTL, err = getEnvDuration("DM_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_CACHE_TTL: %w", err)
	}

	// DM_LIST_STATE_TTL — TTL позиции списочного экрана (по умолчанию 30m)
	cfg.ListStateTTL, err = getEnvDuration("DM_LIST_STATE_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("DM_LIST_STATE_TTL: %w", err)
	}

	// DM_PAGE_SIZE — размер страницы по умолчанию (по умолчанию 10)
	cfg.PageSize, err = getEnvInt("DM_PAGE_SIZE", 10)
	if err != nil {
		return nil, fmt.Errorf("DM_PAGE_SIZE: %w", err)
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("DM_PAGE_SIZE: значение должно быть >= 1")
	}

	// DM_COLLATION_LOCALE — локаль сортировки (по умолчанию vi)
	cfg.CollationLocale = getEnvDefault("DM_COLLATION_LOCALE", "vi")

	// --- Dephealth ---

	// DM_DEPHEALTH_GROUP — имя группы в метриках (по умолчанию assetboard)
	cfg.DephealthGroup = getEnvDefault("DM_DEPHEALTH_GROUP", "assetboard")

	// DM_DEPHEALTH_CHECK_INTERVAL — интервал проверки (по умолчанию 30s)
	cfg.DephealthCheckInterval, err = getEnvDuration("DM_DEPHEALTH_CHECK_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// DEPHEALTH_ISENTRY — лейбл isentry=yes (по умолчанию false)
	cfg.DephealthIsEntry, err = getEnvBool("DEPHEALTH_ISENTRY", false)
	if err != nil {
		return nil, fmt.Errorf("DEPHEALTH_ISENTRY: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
