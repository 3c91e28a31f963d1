// Пакет errors — единый JSON-формат ошибок API Dashboard Module.
// Ошибки не фатальны для процесса: каждая скоупится на вызвавший запрос.
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse — тело ответа об ошибке.
type ErrorResponse struct {
	// Code — машиночитаемый код ошибки
	Code string `json:"code"`
	// Message — человекочитаемое описание
	Message string `json:"message"`
}

// WriteError записывает JSON-ответ об ошибке с указанным статусом и кодом.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message})
}

// ValidationError — 400: клиентская валидация не пройдена, запрос к бекенду
// не выполнялся.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// Unauthorized — 401: отсутствует или невалиден токен.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden — 403: недостаточно прав.
func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound — 404: запись не найдена.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// Conflict — 409: бизнес-правило отклонило операцию до обращения к бекенду.
func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "CONFLICT", message)
}

// BackendError — 502: бекенд недоступен или вернул ошибку;
// локальное состояние не изменено, повтор — только вручную.
func BackendError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, "BACKEND_ERROR", message)
}

// InternalError — 500: внутренняя ошибка Dashboard Module.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
