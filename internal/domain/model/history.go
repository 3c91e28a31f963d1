package model

import "time"

// AssetHistory — запись журнала операций над активом (append-only).
// Отображается в обратном хронологическом порядке.
type AssetHistory struct {
	// ID — идентификатор записи
	ID string
	// AssetID — идентификатор актива
	AssetID string
	// ActionType — тип операции (CREATED, ASSIGNED, EVALUATED, ...)
	ActionType string
	// PerformedBy — кто выполнил операцию
	PerformedBy string
	// PerformedAt — когда выполнена операция
	PerformedAt time.Time
	// Details — описание операции
	Details string
	// Notes — заметки (опционально)
	Notes string
	// PreviousStatus — статус до операции (пустая строка — не фиксировался)
	PreviousStatus AssetStatus
	// NewStatus — статус после операции (пустая строка — не фиксировался)
	NewStatus AssetStatus
}
