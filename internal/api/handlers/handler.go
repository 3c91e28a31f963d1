// handler.go — основной обработчик API Dashboard Module.
// Объединяет health и бизнес-обработчики, разбирает параметры запросов
// и маппит ошибки сервисного слоя в HTTP-статусы.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	apierrors "github.com/assetboard/dashboard-module/internal/api/errors"
	"github.com/assetboard/dashboard-module/internal/api/middleware"
	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/query"
	"github.com/assetboard/dashboard-module/internal/service"
)

// maxPageSize — верхний предел размера страницы.
const maxPageSize = 100

// Handler — основной обработчик API Dashboard Module.
type Handler struct {
	health        *HealthHandler
	actors        *service.ActorResolver
	auth          *service.AuthService
	assets        *service.AssetService
	assetTypes    *service.AssetTypeService
	departments   *service.DepartmentService
	users         *service.UserService
	notifications *service.NotificationService
	chatbot       *service.ChatbotService
	dashboard     *service.DashboardService
	logger        *slog.Logger
}

// NewHandler создаёт основной обработчик API.
func NewHandler(
	health *HealthHandler,
	actors *service.ActorResolver,
	auth *service.AuthService,
	assets *service.AssetService,
	assetTypes *service.AssetTypeService,
	departments *service.DepartmentService,
	users *service.UserService,
	notifications *service.NotificationService,
	chatbot *service.ChatbotService,
	dashboard *service.DashboardService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		health:        health,
		actors:        actors,
		auth:          auth,
		assets:        assets,
		assetTypes:    assetTypes,
		departments:   departments,
		users:         users,
		notifications: notifications,
		chatbot:       chatbot,
		dashboard:     dashboard,
		logger:        logger.With(slog.String("component", "api_handler")),
	}
}

// subject возвращает субъекта запроса (дополненного подразделением)
// и его Bearer-токен для проброса в бекенд.
func (h *Handler) subject(r *http.Request) (*model.Actor, string) {
	token := middleware.TokenFromContext(r.Context())
	actor := h.actors.Resolve(r.Context(), token, middleware.ActorFromContext(r.Context()))
	return actor, token
}

// listParams разбирает параметры списочного запроса из query string.
// filterKeys — имена точных фильтров, допустимых для экрана.
func listParams(r *http.Request, filterKeys ...string) service.ListParams {
	q := r.URL.Query()

	filters := make(map[string]string, len(filterKeys))
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return service.ListParams{
		Params: query.Params{
			Search:    q.Get("search"),
			Filters:   filters,
			SortBy:    q.Get("sortBy"),
			SortOrder: q.Get("sortOrder"),
		},
		Page:     page,
		PageSize: pageSize,
	}
}

// decodeBody десериализует JSON-тело запроса.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON в теле запроса")
		return false
	}
	return true
}

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError маппит ошибку сервисного слоя в HTTP-ответ.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var statusErr *backend.StatusError
	var urlErr *url.Error

	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationError(w, validationErr.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "Запись не найдена")
	case errors.Is(err, service.ErrMutationInFlight):
		apierrors.Conflict(w, "Мутация записи уже выполняется, повторите позже")
	case errors.Is(err, service.ErrAssetInUse):
		apierrors.Conflict(w, "Актив закреплён за пользователем и не может быть удалён")
	case errors.Is(err, service.ErrDepartmentHasEmployees):
		apierrors.Conflict(w, "В подразделении есть активные сотрудники, деактивация запрещена")
	case errors.Is(err, service.ErrInvalidCredentials):
		apierrors.Unauthorized(w, "Неверные учётные данные")
	case errors.Is(err, backend.ErrUnauthorized):
		apierrors.Unauthorized(w, "Бекенд отклонил токен")
	case errors.As(err, &statusErr):
		h.logger.Error("Ошибка бекенда", slog.Int("status", statusErr.Code), slog.String("error", err.Error()))
		apierrors.BackendError(w, "Бекенд вернул ошибку, локальное состояние не изменено")
	case errors.As(err, &urlErr):
		h.logger.Error("Бекенд недоступен", slog.String("error", err.Error()))
		apierrors.BackendError(w, "Бекенд недоступен, повторите позже")
	default:
		h.logger.Error("Внутренняя ошибка", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Внутренняя ошибка Dashboard Module")
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// HealthLive — liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}
