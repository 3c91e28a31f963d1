package model

// Department — подразделение организации.
// Деактивация заблокирована, пока в подразделении есть активные сотрудники;
// правило проверяется на стороне Dashboard Module по коллекции пользователей.
type Department struct {
	// ID — идентификатор подразделения
	ID string
	// Name — название
	Name string
	// Description — описание
	Description string
	// ManagerID — идентификатор руководителя (пустая строка — не назначен)
	ManagerID string
	// IsActive — активно ли подразделение
	IsActive bool
	// EmployeeCount — количество сотрудников (по данным бекенда)
	EmployeeCount int
}

// AssetType — тип актива. Деактивируется мягко (isActive = false),
// существующие ссылки активов на тип остаются валидными.
type AssetType struct {
	// ID — идентификатор типа
	ID string
	// Name — название типа
	Name string
	// Description — описание
	Description string
	// IsActive — активен ли тип
	IsActive bool
}
