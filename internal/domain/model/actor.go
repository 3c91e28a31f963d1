package model

// Actor — аутентифицированный субъект текущего запроса.
// Создаётся при входе (claims JWT + запись пользователя) и живёт до выхода;
// Scope Filter и Mutation Coordinator получают его явно, а не из глобального
// состояния.
type Actor struct {
	// ID — идентификатор пользователя (sub из JWT)
	ID string
	// Role — роль субъекта
	Role Role
	// DepartmentID — подразделение субъекта (пустая строка для ADMIN без привязки)
	DepartmentID string
}
