// assets.go — обработчики /api/v1/assets.
// Разбор параметров, вызов сервиса активов, сериализация ответа.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assetboard/dashboard-module/internal/service"
)

// ListAssets — GET /api/v1/assets.
// Параметры: search, status, condition, typeId, departmentId,
// sortBy, sortOrder, page, pageSize.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)
	params := listParams(r, "status", "condition", "typeId", "departmentId")

	result, err := h.assets.List(r.Context(), token, actor, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetAsset — GET /api/v1/assets/{id}: карточка актива с журналом операций.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	detail, err := h.assets.Detail(r.Context(), token, actor, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CreateAsset — POST /api/v1/assets.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.AssetInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.assets.Create(r.Context(), token, actor, in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Актив создан"})
}

// UpdateAsset — PUT /api/v1/assets/{id}.
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.AssetInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.assets.Update(r.Context(), token, actor, chi.URLParam(r, "id"), in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Актив обновлён"})
}

// DeleteAsset — DELETE /api/v1/assets/{id}.
// Закреплённый актив (IN_USE) отклоняется с 409 без обращения к бекенду.
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	if err := h.assets.Delete(r.Context(), token, actor, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Актив удалён"})
}

// AssignAsset — POST /api/v1/assets/{id}/assign.
func (h *Handler) AssignAsset(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.AssignInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.assets.Assign(r.Context(), token, actor, chi.URLParam(r, "id"), in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Актив закреплён"})
}

// EvaluateAsset — POST /api/v1/assets/{id}/evaluate.
func (h *Handler) EvaluateAsset(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.EvaluateInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.assets.Evaluate(r.Context(), token, actor, chi.URLParam(r, "id"), in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Оценка сохранена"})
}

// ReclaimAsset — POST /api/v1/assets/{id}/reclaim.
func (h *Handler) ReclaimAsset(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	if err := h.assets.Reclaim(r.Context(), token, actor, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Закрепление снято"})
}
