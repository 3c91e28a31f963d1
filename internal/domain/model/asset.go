// Пакет model — доменные модели Dashboard Module.
// Все идентификаторы — строки: бекенд использует числовые id,
// нормализатор приводит их к строкам на границе.
package model

import "time"

// AssetStatus — статус жизненного цикла актива.
type AssetStatus string

// Допустимые статусы актива.
const (
	AssetStatusInStock     AssetStatus = "IN_STOCK"
	AssetStatusInUse       AssetStatus = "IN_USE"
	AssetStatusMaintenance AssetStatus = "MAINTENANCE"
	AssetStatusRetired     AssetStatus = "RETIRED"
)

// AssetCondition — оценка физического состояния актива.
type AssetCondition string

// Допустимые состояния актива.
const (
	AssetConditionGood        AssetCondition = "GOOD"
	AssetConditionNeedsRepair AssetCondition = "NEEDS_REPAIR"
	AssetConditionObsolete    AssetCondition = "OBSOLETE"
)

// ParseAssetStatus приводит строку бекенда к закрытому перечислению.
// Легаси-значение REPAIR маппится в MAINTENANCE, неизвестные значения —
// в IN_STOCK (деградация к дефолту вместо ошибки).
func ParseAssetStatus(status string) AssetStatus {
	switch AssetStatus(status) {
	case AssetStatusInStock, AssetStatusInUse, AssetStatusMaintenance, AssetStatusRetired:
		return AssetStatus(status)
	}
	if status == "REPAIR" {
		return AssetStatusMaintenance
	}
	return AssetStatusInStock
}

// ParseAssetCondition приводит строку бекенда к закрытому перечислению.
// Легаси-значение DAMAGED маппится в NEEDS_REPAIR, неизвестные — в GOOD.
func ParseAssetCondition(condition string) AssetCondition {
	switch AssetCondition(condition) {
	case AssetConditionGood, AssetConditionNeedsRepair, AssetConditionObsolete:
		return AssetCondition(condition)
	}
	if condition == "DAMAGED" {
		return AssetConditionNeedsRepair
	}
	return AssetConditionGood
}

// Asset — актив организации.
type Asset struct {
	// ID — идентификатор актива
	ID string
	// Code — уникальный код (заглавные буквы, цифры, дефис)
	Code string
	// Name — название актива
	Name string
	// TypeID — идентификатор типа актива
	TypeID string
	// DepartmentID — идентификатор подразделения (пустая строка — не привязан)
	DepartmentID string
	// AssignedTo — идентификатор пользователя, за которым закреплён актив
	AssignedTo string
	// PurchaseDate — дата покупки
	PurchaseDate time.Time
	// Value — стоимость (> 0)
	Value float64
	// Status — статус актива
	Status AssetStatus
	// Condition — состояние актива
	Condition AssetCondition
	// Description — описание (опционально)
	Description string
	// CreatedBy — кто создал запись
	CreatedBy string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}
