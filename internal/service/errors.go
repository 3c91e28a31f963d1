// errors.go — ошибки сервисного слоя Dashboard Module.
package service

import (
	"errors"
	"fmt"
)

// Ошибки сервисного слоя.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrMutationInFlight — мутация той же записи уже выполняется.
	ErrMutationInFlight = errors.New("мутация записи уже выполняется")
	// ErrAssetInUse — актив закреплён за пользователем, удаление запрещено.
	ErrAssetInUse = errors.New("актив закреплён за пользователем и не может быть удалён")
	// ErrDepartmentHasEmployees — в подразделении есть активные сотрудники,
	// деактивация запрещена.
	ErrDepartmentHasEmployees = errors.New("в подразделении есть активные сотрудники, деактивация запрещена")
)

// ValidationError — клиентская валидация не пройдена; запрос к бекенду
// не выполнялся.
type ValidationError struct {
	// Field — имя поля, не прошедшего валидацию
	Field string
	// Reason — причина отклонения
	Reason string
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("поле %s: %s", e.Field, e.Reason)
}

// invalid — короткий конструктор ошибки валидации.
func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
