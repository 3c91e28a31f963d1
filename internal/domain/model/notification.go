package model

import "time"

// NotificationType — тип уведомления.
type NotificationType string

// Допустимые типы уведомлений.
const (
	NotificationInfo        NotificationType = "INFO"
	NotificationWarning     NotificationType = "WARNING"
	NotificationError       NotificationType = "ERROR"
	NotificationUserCreated NotificationType = "USER_CREATED"
	NotificationUserUpdated NotificationType = "USER_UPDATED"
)

// ParseNotificationType приводит строку бекенда к закрытому перечислению.
// Неизвестный тип деградирует к INFO.
func ParseNotificationType(t string) NotificationType {
	switch NotificationType(t) {
	case NotificationInfo, NotificationWarning, NotificationError,
		NotificationUserCreated, NotificationUserUpdated:
		return NotificationType(t)
	}
	return NotificationInfo
}

// Notification — уведомление пользователя.
// Изменяется только операциями mark-read и delete.
type Notification struct {
	// ID — идентификатор уведомления
	ID string
	// UserID — получатель
	UserID string
	// AssetID — связанный актив (пустая строка — нет привязки)
	AssetID string
	// Title — заголовок
	Title string
	// Message — текст уведомления
	Message string
	// Type — тип уведомления
	Type NotificationType
	// IsRead — прочитано ли
	IsRead bool
	// LinkURL — ссылка для перехода (опционально)
	LinkURL string
	// CreatedAt — время создания
	CreatedAt time.Time
}
