package model

import "time"

// Role — роль пользователя в системе.
type Role string

// Роли в порядке возрастания привилегий.
const (
	RoleStaff   Role = "STAFF"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// roleWeight — вес роли для сравнения привилегий.
var roleWeight = map[Role]int{
	RoleStaff:   1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// ParseRole приводит строку бекенда к закрытому перечислению.
// Неизвестная роль деградирует к STAFF — минимальные привилегии.
func ParseRole(role string) Role {
	switch Role(role) {
	case RoleAdmin, RoleManager, RoleStaff:
		return Role(role)
	}
	return RoleStaff
}

// AtLeast сообщает, не ниже ли роль r указанной роли.
func (r Role) AtLeast(other Role) bool {
	return roleWeight[r] >= roleWeight[other]
}

// User — пользователь системы.
// ADMIN может не иметь подразделения; MANAGER и STAFF привязаны к нему.
type User struct {
	// ID — идентификатор пользователя
	ID string
	// Name — полное имя
	Name string
	// Email — электронная почта
	Email string
	// Role — роль (ADMIN, MANAGER, STAFF)
	Role Role
	// DepartmentID — идентификатор подразделения (пустая строка — не привязан)
	DepartmentID string
	// IsActive — активна ли учётная запись
	IsActive bool
	// Avatar — URL аватара (опционально)
	Avatar string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}
