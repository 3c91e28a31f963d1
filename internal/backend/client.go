// Пакет backend — HTTP-клиент REST-бекенда управления активами.
// Единственный внешний коллаборатор Dashboard Module: отдаёт коллекции
// сущностей и принимает мутации. Bearer-токен вызывающего пробрасывается
// без изменений, ответы декодируются из конверта {message, data}.
package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ошибки клиента бекенда.
var (
	// ErrNotFound — бекенд вернул 404.
	ErrNotFound = errors.New("запись не найдена на бекенде")
	// ErrUnauthorized — бекенд отклонил токен (401/403).
	ErrUnauthorized = errors.New("бекенд отклонил токен")
)

// StatusError — не-успешный ответ бекенда с кодом и телом.
type StatusError struct {
	// Code — HTTP-статус ответа
	Code int
	// Body — тело ответа (усечённое)
	Body string
}

// Error реализует интерфейс error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("бекенд вернул статус %d: %s", e.Code, e.Body)
}

// Client — HTTP-клиент бекенда.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// New создаёт клиент бекенда.
// baseURL — базовый URL бекенда (например, http://asset-backend:8080).
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
// timeout — таймаут HTTP-запросов (из конфигурации DM_BACKEND_TIMEOUT).
func New(baseURL, caCertPath string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата бекенда: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат бекенда добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With(slog.String("component", "backend_client")),
	}, nil
}

// do выполняет запрос к бекенду и декодирует конверт ответа в out.
// token пробрасывается как Bearer; out == nil — тело ответа игнорируется.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация тела запроса %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("создание запроса %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		return fmt.Errorf("запрос %s %s к бекенду: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа %s %s: %w", method, path, err)
	}
	return nil
}

// list — общий помощник GET-коллекций: декодирует конверт {data: []T}.
func list[T any](ctx context.Context, c *Client, path, token string) ([]T, error) {
	var env Envelope[[]T]
	if err := c.do(ctx, http.MethodGet, path, token, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// --- Чтение коллекций ---

// ListAssets возвращает все активы. GET /api/v1/assets
func (c *Client) ListAssets(ctx context.Context, token string) ([]AssetDTO, error) {
	return list[AssetDTO](ctx, c, "/api/v1/assets", token)
}

// GetAsset возвращает актив по id. GET /api/v1/assets/{id}
func (c *Client) GetAsset(ctx context.Context, token string, id int64) (*AssetDTO, error) {
	var env Envelope[AssetDTO]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/assets/%d", id), token, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListAssetTypes возвращает все типы активов. GET /api/v1/asset-types
func (c *Client) ListAssetTypes(ctx context.Context, token string) ([]AssetTypeDTO, error) {
	return list[AssetTypeDTO](ctx, c, "/api/v1/asset-types", token)
}

// ListDepartments возвращает все подразделения. GET /api/v1/departments
func (c *Client) ListDepartments(ctx context.Context, token string) ([]DepartmentDTO, error) {
	return list[DepartmentDTO](ctx, c, "/api/v1/departments", token)
}

// ListUsers возвращает всех пользователей. GET /api/v1/users
func (c *Client) ListUsers(ctx context.Context, token string) ([]UserDTO, error) {
	return list[UserDTO](ctx, c, "/api/v1/users", token)
}

// GetUser возвращает пользователя по id. GET /api/v1/users/{id}
func (c *Client) GetUser(ctx context.Context, token string, id int64) (*UserDTO, error) {
	var env Envelope[UserDTO]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), token, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListAssetHistory возвращает журнал операций. GET /api/v1/asset-history
func (c *Client) ListAssetHistory(ctx context.Context, token string) ([]AssetHistoryDTO, error) {
	return list[AssetHistoryDTO](ctx, c, "/api/v1/asset-history", token)
}

// ListNotifications возвращает уведомления пользователя.
// GET /api/v1/notifications/user/{userId}
func (c *Client) ListNotifications(ctx context.Context, token string, userID int64) ([]NotificationDTO, error) {
	return list[NotificationDTO](ctx, c, fmt.Sprintf("/api/v1/notifications/user/%d", userID), token)
}

// --- Мутации ---

// CreateAsset создаёт актив. POST /api/v1/assets
func (c *Client) CreateAsset(ctx context.Context, token string, p AssetPayload) error {
	return c.do(ctx, http.MethodPost, "/api/v1/assets", token, p, nil)
}

// UpdateAsset обновляет актив. PUT /api/v1/assets/{id}
func (c *Client) UpdateAsset(ctx context.Context, token string, id int64, p AssetPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/assets/%d", id), token, p, nil)
}

// DeleteAsset удаляет актив. DELETE /api/v1/assets/{id}
func (c *Client) DeleteAsset(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/assets/%d", id), token, nil, nil)
}

// AssignAsset закрепляет актив за пользователем. POST /api/v1/assets/{id}/assign
func (c *Client) AssignAsset(ctx context.Context, token string, id int64, p AssignPayload) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/assets/%d/assign", id), token, p, nil)
}

// EvaluateAsset сохраняет оценку состояния актива. POST /api/v1/assets/{id}/evaluate
func (c *Client) EvaluateAsset(ctx context.Context, token string, id int64, p EvaluatePayload) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/assets/%d/evaluate", id), token, p, nil)
}

// ReclaimAsset снимает закрепление актива. POST /api/v1/assets/{id}/reclaim
func (c *Client) ReclaimAsset(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/assets/%d/reclaim", id), token, struct{}{}, nil)
}

// CreateAssetType создаёт тип актива. POST /api/v1/asset-types
func (c *Client) CreateAssetType(ctx context.Context, token string, p AssetTypePayload) error {
	return c.do(ctx, http.MethodPost, "/api/v1/asset-types", token, p, nil)
}

// UpdateAssetType обновляет тип актива. PUT /api/v1/asset-types/{id}
func (c *Client) UpdateAssetType(ctx context.Context, token string, id int64, p AssetTypePayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/asset-types/%d", id), token, p, nil)
}

// DeleteAssetType удаляет тип актива. DELETE /api/v1/asset-types/{id}
func (c *Client) DeleteAssetType(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/asset-types/%d", id), token, nil, nil)
}

// CreateDepartment создаёт подразделение. POST /api/v1/departments
func (c *Client) CreateDepartment(ctx context.Context, token string, p DepartmentPayload) error {
	return c.do(ctx, http.MethodPost, "/api/v1/departments", token, p, nil)
}

// UpdateDepartment обновляет подразделение. PUT /api/v1/departments/{id}
func (c *Client) UpdateDepartment(ctx context.Context, token string, id int64, p DepartmentPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/departments/%d", id), token, p, nil)
}

// DeleteDepartment удаляет подразделение. DELETE /api/v1/departments/{id}
func (c *Client) DeleteDepartment(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/departments/%d", id), token, nil, nil)
}

// CreateUser создаёт пользователя. POST /api/v1/users
func (c *Client) CreateUser(ctx context.Context, token string, p UserPayload) error {
	return c.do(ctx, http.MethodPost, "/api/v1/users", token, p, nil)
}

// UpdateUser обновляет пользователя. PUT /api/v1/users/{id}
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, p UserPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", id), token, p, nil)
}

// DeleteUser удаляет пользователя. DELETE /api/v1/users/{id}
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", id), token, nil, nil)
}

// UpdateNotification обновляет уведомление (mark-read). PUT /api/v1/notifications/{id}
func (c *Client) UpdateNotification(ctx context.Context, token string, id int64, p NotificationPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d", id), token, p, nil)
}

// DeleteNotification удаляет уведомление. DELETE /api/v1/notifications/{id}
func (c *Client) DeleteNotification(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", id), token, nil, nil)
}

// --- Аутентификация и чат-бот ---

// loginRequest — тело запроса входа.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginData — полезная нагрузка ответа входа.
type loginData struct {
	Token string `json:"token"`
}

// Login выполняет вход и возвращает токен бекенда. POST /login
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var env Envelope[loginData]
	err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password}, &env)
	if err != nil {
		return "", err
	}
	if env.Data.Token == "" {
		return "", fmt.Errorf("пустой токен в ответе бекенда")
	}
	return env.Data.Token, nil
}

// SendChatMessage отправляет сообщение чат-боту.
// POST /api/chatbot/chat?userId={id}
func (c *Client) SendChatMessage(ctx context.Context, token string, userID int64, message string) (*ChatMessageDTO, error) {
	var env Envelope[ChatMessageDTO]
	path := fmt.Sprintf("/api/chatbot/chat?userId=%d", userID)
	if err := c.do(ctx, http.MethodPost, path, token, ChatPayload{Message: message, UserID: userID}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ChatHistory возвращает историю переписки с чат-ботом.
// GET /api/chatbot/history?userId={id}
func (c *Client) ChatHistory(ctx context.Context, token string, userID int64) ([]ChatMessageDTO, error) {
	return list[ChatMessageDTO](ctx, c, fmt.Sprintf("/api/chatbot/history?userId=%d", userID), token)
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA-сертификатом.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}
