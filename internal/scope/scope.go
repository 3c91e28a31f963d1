// Пакет scope — Scope Filter: ограничение коллекций сущностей видимостью
// текущего субъекта. Правила образуют полный порядок приоритетов, первое
// совпадение выигрывает:
//
//	ADMIN   — вся коллекция (порядок и длина сохраняются);
//	MANAGER — записи своего подразделения;
//	STAFF   — записи, закреплённые за субъектом;
//	нет субъекта или неизвестная роль — пустой результат.
//
// Функции чистые и не инкрементальные: применяются заново при каждом
// изменении коллекции или субъекта.
package scope

import "github.com/assetboard/dashboard-module/internal/domain/model"

// Assets ограничивает коллекцию активов видимостью субъекта.
func Assets(assets []model.Asset, actor *model.Actor) []model.Asset {
	if actor == nil {
		return nil
	}

	switch actor.Role {
	case model.RoleAdmin:
		return assets
	case model.RoleManager:
		// MANAGER без подразделения не видит ничего: пустой DepartmentID
		// субъекта не должен совпадать с активами без подразделения
		if actor.DepartmentID == "" {
			return []model.Asset{}
		}
		out := make([]model.Asset, 0, len(assets))
		for _, a := range assets {
			if a.DepartmentID == actor.DepartmentID {
				out = append(out, a)
			}
		}
		return out
	case model.RoleStaff:
		out := make([]model.Asset, 0, len(assets))
		for _, a := range assets {
			if a.AssignedTo == actor.ID {
				out = append(out, a)
			}
		}
		return out
	}
	return nil
}

// Notifications ограничивает коллекцию уведомлений: субъект видит только свои.
func Notifications(items []model.Notification, actor *model.Actor) []model.Notification {
	if actor == nil {
		return nil
	}
	out := make([]model.Notification, 0, len(items))
	for _, n := range items {
		if n.UserID == actor.ID {
			out = append(out, n)
		}
	}
	return out
}
