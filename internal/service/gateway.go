// gateway.go — интерфейс бекенда для сервисного слоя.
// Сервисы зависят от интерфейса, а не от конкретного HTTP-клиента:
// в тестах подставляется mock с функциональными полями.
package service

import (
	"context"

	"github.com/assetboard/dashboard-module/internal/backend"
)

// Gateway — операции REST-бекенда, используемые сервисным слоем.
// Реализуется backend.Client.
type Gateway interface {
	// Чтение коллекций
	ListAssets(ctx context.Context, token string) ([]backend.AssetDTO, error)
	GetAsset(ctx context.Context, token string, id int64) (*backend.AssetDTO, error)
	ListAssetTypes(ctx context.Context, token string) ([]backend.AssetTypeDTO, error)
	ListDepartments(ctx context.Context, token string) ([]backend.DepartmentDTO, error)
	ListUsers(ctx context.Context, token string) ([]backend.UserDTO, error)
	GetUser(ctx context.Context, token string, id int64) (*backend.UserDTO, error)
	ListAssetHistory(ctx context.Context, token string) ([]backend.AssetHistoryDTO, error)
	ListNotifications(ctx context.Context, token string, userID int64) ([]backend.NotificationDTO, error)

	// Мутации активов
	CreateAsset(ctx context.Context, token string, p backend.AssetPayload) error
	UpdateAsset(ctx context.Context, token string, id int64, p backend.AssetPayload) error
	DeleteAsset(ctx context.Context, token string, id int64) error
	AssignAsset(ctx context.Context, token string, id int64, p backend.AssignPayload) error
	EvaluateAsset(ctx context.Context, token string, id int64, p backend.EvaluatePayload) error
	ReclaimAsset(ctx context.Context, token string, id int64) error

	// Мутации справочников
	CreateAssetType(ctx context.Context, token string, p backend.AssetTypePayload) error
	UpdateAssetType(ctx context.Context, token string, id int64, p backend.AssetTypePayload) error
	DeleteAssetType(ctx context.Context, token string, id int64) error
	CreateDepartment(ctx context.Context, token string, p backend.DepartmentPayload) error
	UpdateDepartment(ctx context.Context, token string, id int64, p backend.DepartmentPayload) error
	DeleteDepartment(ctx context.Context, token string, id int64) error
	CreateUser(ctx context.Context, token string, p backend.UserPayload) error
	UpdateUser(ctx context.Context, token string, id int64, p backend.UserPayload) error
	DeleteUser(ctx context.Context, token string, id int64) error

	// Уведомления
	UpdateNotification(ctx context.Context, token string, id int64, p backend.NotificationPayload) error
	DeleteNotification(ctx context.Context, token string, id int64) error

	// Аутентификация и чат-бот
	Login(ctx context.Context, email, password string) (string, error)
	SendChatMessage(ctx context.Context, token string, userID int64, message string) (*backend.ChatMessageDTO, error)
	ChatHistory(ctx context.Context, token string, userID int64) ([]backend.ChatMessageDTO, error)
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ Gateway = (*backend.Client)(nil)
