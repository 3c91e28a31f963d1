// notifications.go — обработчики /api/v1/notifications.
// Уведомления строго персональные: субъект берётся из токена,
// параметр userId не принимается.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListNotifications — GET /api/v1/notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	result, err := h.notifications.List(r.Context(), token, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MarkNotificationRead — POST /api/v1/notifications/{id}/read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	if err := h.notifications.MarkRead(r.Context(), token, actor, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Уведомление прочитано"})
}

// MarkAllNotificationsRead — POST /api/v1/notifications/read-all.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	marked, err := h.notifications.MarkAllRead(r.Context(), token, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Уведомления прочитаны",
		"marked":  marked,
	})
}

// DeleteNotification — DELETE /api/v1/notifications/{id}.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	if err := h.notifications.Delete(r.Context(), token, actor, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Уведомление удалено"})
}
