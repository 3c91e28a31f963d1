// Пакет normalize — Entity Normalizer: приведение сырых записей бекенда
// к доменным моделям. Числовые идентификаторы становятся строками, даты
// парсятся с деградацией к текущему моменту, перечисления приводятся к
// закрытым доменным типам с определёнными дефолтами. Функции чистые и
// никогда не возвращают ошибку: некорректный вход деградирует к дефолтам,
// каждая деградация учитывается в Prometheus-счётчике.
package normalize

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// Метрика деградаций маппинга: ошибки формата не фатальны,
// но должны быть видны в диагностике.
var fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dm_normalize_fallbacks_total",
	Help: "Количество деградаций к дефолтам при нормализации записей бекенда.",
}, []string{"entity", "field"})

// now — источник текущего времени, подменяется в тестах.
var now = time.Now

// id приводит числовой идентификатор бекенда к строке.
func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// optionalID приводит опциональный числовой идентификатор к строке.
// nil — пустая строка (ссылки нет).
func optionalID(v *int64) string {
	if v == nil {
		return ""
	}
	return id(*v)
}

// parseTime парсит дату бекенда (RFC3339 или YYYY-MM-DD).
// Пустая или некорректная строка деградирует к текущему моменту.
func parseTime(value, entity, field string) time.Time {
	if value == "" {
		fallbacksTotal.WithLabelValues(entity, field).Inc()
		return now()
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	fallbacksTotal.WithLabelValues(entity, field).Inc()
	return now()
}

// Asset нормализует актив.
func Asset(dto backend.AssetDTO) model.Asset {
	status := model.ParseAssetStatus(dto.Status)
	if string(status) != dto.Status {
		fallbacksTotal.WithLabelValues("asset", "status").Inc()
	}
	condition := model.ParseAssetCondition(dto.Condition)
	if string(condition) != dto.Condition {
		fallbacksTotal.WithLabelValues("asset", "condition").Inc()
	}

	return model.Asset{
		ID:           id(dto.ID),
		Code:         dto.Code,
		Name:         dto.Name,
		TypeID:       id(dto.TypeID),
		DepartmentID: optionalID(dto.DepartmentID),
		AssignedTo:   optionalID(dto.AssignedTo),
		PurchaseDate: parseTime(dto.PurchaseDate, "asset", "purchase_date"),
		Value:        dto.Value,
		Status:       status,
		Condition:    condition,
		Description:  dto.Description,
		CreatedBy:    dto.CreatedBy,
		CreatedAt:    parseTime(dto.CreatedAt, "asset", "created_at"),
	}
}

// AssetType нормализует тип актива.
func AssetType(dto backend.AssetTypeDTO) model.AssetType {
	return model.AssetType{
		ID:          id(dto.ID),
		Name:        dto.Name,
		Description: dto.Description,
		IsActive:    dto.IsActive,
	}
}

// Department нормализует подразделение.
func Department(dto backend.DepartmentDTO) model.Department {
	return model.Department{
		ID:            id(dto.ID),
		Name:          dto.Name,
		Description:   dto.Description,
		ManagerID:     optionalID(dto.ManagerID),
		IsActive:      dto.IsActive,
		EmployeeCount: dto.EmployeeCount,
	}
}

// User нормализует пользователя.
func User(dto backend.UserDTO) model.User {
	role := model.ParseRole(dto.Role)
	if string(role) != dto.Role {
		fallbacksTotal.WithLabelValues("user", "role").Inc()
	}

	return model.User{
		ID:           id(dto.ID),
		Name:         dto.Name,
		Email:        dto.Email,
		Role:         role,
		DepartmentID: optionalID(dto.DepartmentID),
		IsActive:     dto.Active,
		Avatar:       dto.AvatarURL,
		CreatedAt:    parseTime(dto.CreatedAt, "user", "created_at"),
	}
}

// AssetHistory нормализует запись журнала операций.
// Отсутствующие статусы до/после остаются пустыми, а не приводятся к дефолту.
func AssetHistory(dto backend.AssetHistoryDTO) model.AssetHistory {
	h := model.AssetHistory{
		ID:          id(dto.ID),
		AssetID:     id(dto.AssetID),
		ActionType:  dto.ActionType,
		PerformedBy: dto.PerformedBy,
		PerformedAt: parseTime(dto.PerformedAt, "history", "performed_at"),
		Details:     dto.Details,
		Notes:       dto.Notes,
	}
	if dto.PreviousStatus != "" {
		h.PreviousStatus = model.ParseAssetStatus(dto.PreviousStatus)
	}
	if dto.NewStatus != "" {
		h.NewStatus = model.ParseAssetStatus(dto.NewStatus)
	}
	return h
}

// Notification нормализует уведомление.
func Notification(dto backend.NotificationDTO) model.Notification {
	t := model.ParseNotificationType(dto.Type)
	if string(t) != dto.Type {
		fallbacksTotal.WithLabelValues("notification", "type").Inc()
	}

	return model.Notification{
		ID:        id(dto.ID),
		UserID:    id(dto.UserID),
		AssetID:   optionalID(dto.AssetID),
		Title:     dto.Title,
		Message:   dto.Message,
		Type:      t,
		IsRead:    dto.IsRead,
		LinkURL:   dto.LinkURL,
		CreatedAt: parseTime(dto.CreatedAt, "notification", "created_at"),
	}
}

// Assets нормализует коллекцию активов.
func Assets(dtos []backend.AssetDTO) []model.Asset {
	out := make([]model.Asset, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, Asset(dto))
	}
	return out
}

// AssetTypes нормализует коллекцию типов активов.
func AssetTypes(dtos []backend.AssetTypeDTO) []model.AssetType {
	out := make([]model.AssetType, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, AssetType(dto))
	}
	return out
}

// Departments нормализует коллекцию подразделений.
func Departments(dtos []backend.DepartmentDTO) []model.Department {
	out := make([]model.Department, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, Department(dto))
	}
	return out
}

// Users нормализует коллекцию пользователей.
func Users(dtos []backend.UserDTO) []model.User {
	out := make([]model.User, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, User(dto))
	}
	return out
}

// AssetHistories нормализует коллекцию записей журнала.
func AssetHistories(dtos []backend.AssetHistoryDTO) []model.AssetHistory {
	out := make([]model.AssetHistory, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, AssetHistory(dto))
	}
	return out
}

// Notifications нормализует коллекцию уведомлений.
func Notifications(dtos []backend.NotificationDTO) []model.Notification {
	out := make([]model.Notification, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, Notification(dto))
	}
	return out
}
