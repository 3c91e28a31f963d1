// validate.go — клиентская валидация мутаций.
// Правила применяются до обращения к бекенду: невалидный ввод отклоняется
// ошибкой ValidationError, сетевой запрос не выполняется.
package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// assetCodeRe — формат кода актива: заглавные латинские буквы, цифры, дефис.
var assetCodeRe = regexp.MustCompile(`^[A-Z0-9-]+$`)

// emailRe — минимальная проверка формата электронной почты.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateAsset проверяет поля актива перед create/update.
func validateAsset(in AssetInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "обязательное поле")
	}
	if in.Code == "" {
		return invalid("code", "обязательное поле")
	}
	if !assetCodeRe.MatchString(in.Code) {
		return invalid("code", "допустимы только заглавные буквы, цифры и дефис")
	}
	if in.TypeID == "" {
		return invalid("typeId", "обязательное поле")
	}
	if in.Value <= 0 {
		return invalid("value", "стоимость должна быть больше нуля")
	}
	if in.PurchaseDate != "" {
		if _, err := parseDate(in.PurchaseDate); err != nil {
			return invalid("purchaseDate", "ожидается дата в формате YYYY-MM-DD")
		}
	}
	return nil
}

// validateAssetType проверяет поля типа актива.
func validateAssetType(in AssetTypeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "обязательное поле")
	}
	return nil
}

// validateDepartment проверяет поля подразделения.
func validateDepartment(in DepartmentInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "обязательное поле")
	}
	return nil
}

// validateUser проверяет поля пользователя.
// Подразделение обязательно для всех ролей, кроме ADMIN; неизвестная роль
// деградирует к STAFF и тоже требует подразделения.
func validateUser(in UserInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "обязательное поле")
	}
	if !emailRe.MatchString(in.Email) {
		return invalid("email", "некорректный адрес электронной почты")
	}
	if model.ParseRole(in.Role) != model.RoleAdmin && in.DepartmentID == "" {
		return invalid("departmentId", "обязательное поле для ролей MANAGER и STAFF")
	}
	return nil
}

// parseDate парсит дату мутации: YYYY-MM-DD или RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseID парсит строковый идентификатор в числовой id бекенда.
func parseID(field, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, invalid(field, "некорректный идентификатор")
	}
	return id, nil
}

// parseOptionalID парсит опциональный идентификатор.
// Пустая строка — nil (ссылки нет).
func parseOptionalID(field, value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
