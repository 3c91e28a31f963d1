// misc.go — обработчики входа, чат-бота и сводки главного экрана.
package handlers

import (
	"net/http"
)

// loginInput — тело POST /api/v1/login.
type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login — POST /api/v1/login: прокси входа через бекенд.
// Единственный endpoint без JWT-аутентификации (кроме health и metrics).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if !decodeBody(w, r, &in) {
		return
	}

	token, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// chatInput — тело POST /api/chatbot/chat.
type chatInput struct {
	Message string `json:"message"`
}

// SendChatMessage — POST /api/chatbot/chat.
func (h *Handler) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in chatInput
	if !decodeBody(w, r, &in) {
		return
	}

	msg, err := h.chatbot.Send(r.Context(), token, actor, in.Message)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// ChatHistory — GET /api/chatbot/history.
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	history, err := h.chatbot.History(r.Context(), token, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// DashboardSummary — GET /api/v1/dashboard/summary.
func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	summary, err := h.dashboard.Summary(r.Context(), token, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
