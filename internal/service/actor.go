// actor.go — дополнение субъекта данными пользователя.
// JWT может не нести departmentId; для MANAGER без подразделения
// Scope Filter отдал бы пустой результат, поэтому недостающее поле
// дочитывается из коллекции пользователей (с кэшем).
package service

import (
	"context"
	"log/slog"

	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// ActorResolver — дополнение субъекта запроса данными бекенда.
type ActorResolver struct {
	store  *Store
	logger *slog.Logger
}

// NewActorResolver создаёт resolver субъекта.
func NewActorResolver(store *Store, logger *slog.Logger) *ActorResolver {
	return &ActorResolver{
		store:  store,
		logger: logger.With(slog.String("component", "actor_resolver")),
	}
}

// Resolve возвращает субъекта с заполненным подразделением.
// Недостающее подразделение дочитывается из коллекции пользователей;
// ошибка чтения не фатальна — субъект возвращается как есть и видит
// только то, что позволяют claims (для MANAGER без подразделения — ничего).
func (r *ActorResolver) Resolve(ctx context.Context, token string, claims *model.Actor) *model.Actor {
	if claims == nil {
		return nil
	}
	if claims.DepartmentID != "" || claims.Role != model.RoleManager {
		return claims
	}

	users, err := r.store.Users(ctx, token)
	if err != nil {
		r.logger.Warn("Не удалось дочитать подразделение субъекта",
			slog.String("actor_id", claims.ID),
			slog.String("error", err.Error()),
		)
		return claims
	}

	for _, u := range users {
		if u.ID == claims.ID {
			enriched := *claims
			enriched.DepartmentID = u.DepartmentID
			return &enriched
		}
	}
	return claims
}
