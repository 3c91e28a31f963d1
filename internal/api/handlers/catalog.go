// catalog.go — обработчики справочников: /api/v1/asset-types,
// /api/v1/departments, /api/v1/users.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assetboard/dashboard-module/internal/service"
)

// --- Типы активов ---

// ListAssetTypes — GET /api/v1/asset-types.
// Параметры: search, isActive, sortBy, sortOrder, page, pageSize.
func (h *Handler) ListAssetTypes(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)
	params := listParams(r, "isActive")

	result, err := h.assetTypes.List(r.Context(), token, actor, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CreateAssetType — POST /api/v1/asset-types.
func (h *Handler) CreateAssetType(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.AssetTypeInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.assetTypes.Create(r.Context(), token, actor, in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Тип актива создан"})
}

// UpdateAssetType — PUT /api/v1/asset-types/{id}.
func (h *Handler) UpdateAssetType(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.AssetTypeInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.assetTypes.Update(r.Context(), token, actor, chi.URLParam(r, "id"), in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Тип актива обновлён"})
}

// DeleteAssetType — DELETE /api/v1/asset-types/{id}.
func (h *Handler) DeleteAssetType(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	if err := h.assetTypes.Delete(r.Context(), token, actor, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Тип актива удалён"})
}

// --- Подразделения ---

// ListDepartments — GET /api/v1/departments.
// Параметры: search, isActive, sortBy, sortOrder, page, pageSize.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)
	params := listParams(r, "isActive")

	result, err := h.departments.List(r.Context(), token, actor, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CreateDepartment — POST /api/v1/departments.
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.DepartmentInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.departments.Create(r.Context(), token, actor, in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Подразделение создано"})
}

// UpdateDepartment — PUT /api/v1/departments/{id}.
// Деактивация с активными сотрудниками отклоняется с 409.
func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.DepartmentInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.departments.Update(r.Context(), token, actor, chi.URLParam(r, "id"), in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Подразделение обновлено"})
}

// DeleteDepartment — DELETE /api/v1/departments/{id}.
func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	if err := h.departments.Delete(r.Context(), token, actor, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Подразделение удалено"})
}

// --- Пользователи ---

// ListUsers — GET /api/v1/users.
// Параметры: search, role, departmentId, isActive, sortBy, sortOrder,
// page, pageSize.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)
	params := listParams(r, "role", "departmentId", "isActive")

	result, err := h.users.List(r.Context(), token, actor, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CreateUser — POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.UserInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.users.Create(r.Context(), token, actor, in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Пользователь создан"})
}

// UpdateUser — PUT /api/v1/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	var in service.UserInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.users.Update(r.Context(), token, actor, chi.URLParam(r, "id"), in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Пользователь обновлён"})
}

// DeleteUser — DELETE /api/v1/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, token := h.subject(r)

	if err := h.users.Delete(r.Context(), token, actor, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Пользователь удалён"})
}
