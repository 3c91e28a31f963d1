// user.go — сервис пользователей.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/query"
)

// UserView — пользователь, обогащённый названием подразделения.
type UserView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           model.Role `json:"role"`
	DepartmentID   string     `json:"departmentId,omitempty"`
	DepartmentName string     `json:"departmentName,omitempty"`
	IsActive       bool       `json:"isActive"`
	Avatar         string     `json:"avatar,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// UserListResult — страница пользователей.
type UserListResult struct {
	Items      []UserView `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// UserInput — ввод мутации create/update пользователя.
// Пароль передаётся только при создании или смене.
type UserInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	Role         string `json:"role"`
	DepartmentID string `json:"departmentId,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// UserService — операции над пользователями.
type UserService struct {
	store    *Store
	gw       Gateway
	coord    *MutationCoordinator
	states   *ListStateStore
	pipeline *query.Pipeline[UserView]
	pageSize int
	logger   *slog.Logger
}

// NewUserService создаёт сервис пользователей.
func NewUserService(
	store *Store,
	gw Gateway,
	coord *MutationCoordinator,
	states *ListStateStore,
	locale string,
	pageSize int,
	logger *slog.Logger,
) *UserService {
	spec := query.Spec[UserView]{
		Search: []func(UserView) string{
			func(u UserView) string { return u.Name },
			func(u UserView) string { return u.Email },
		},
		Filters: map[string]func(UserView) string{
			"role":         func(u UserView) string { return string(u.Role) },
			"departmentId": func(u UserView) string { return u.DepartmentID },
			"isActive":     func(u UserView) string { return boolFilter(u.IsActive) },
		},
		Sort: map[string]query.SortKey[UserView]{
			"name":      {Text: func(u UserView) string { return u.Name }},
			"email":     {Text: func(u UserView) string { return u.Email }},
			"role":      {Text: func(u UserView) string { return string(u.Role) }},
			"createdAt": {Time: func(u UserView) int64 { return u.CreatedAt.UnixNano() }},
		},
		DefaultSort: "name",
	}

	return &UserService{
		store:    store,
		gw:       gw,
		coord:    coord,
		states:   states,
		pipeline: query.New(spec, locale),
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "user_service")),
	}
}

// List возвращает страницу пользователей.
func (s *UserService) List(ctx context.Context, token string, actor *model.Actor, p ListParams) (*UserListResult, error) {
	var (
		users       []model.User
		departments []model.Department
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.store.Users(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		departments, err = s.store.Departments(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	departmentNames := make(map[string]string, len(departments))
	for _, d := range departments {
		departmentNames[d.ID] = d.Name
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Role:           u.Role,
			DepartmentID:   u.DepartmentID,
			DepartmentName: departmentNames[u.DepartmentID],
			IsActive:       u.IsActive,
			Avatar:         u.Avatar,
			CreatedAt:      u.CreatedAt,
		})
	}

	state := s.states.For(actor.ID, ScreenUsers)
	page := state.Resolve(p.Params, p.Page)

	filtered := s.pipeline.Apply(views, p.Params)

	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	pg := query.Paginate(filtered, pageSize, page)
	state.Remember(pg.Current)

	return &UserListResult{
		Items:      pg.Items,
		Pagination: paginationOf(pg, pageSize),
	}, nil
}

// Create создаёт пользователя.
func (s *UserService) Create(ctx context.Context, token string, actor *model.Actor, in UserInput) error {
	if err := validateUser(in); err != nil {
		return err
	}
	if in.Password == "" {
		return invalid("password", "обязательное поле при создании")
	}
	payload, err := userPayload(in)
	if err != nil {
		return err
	}

	return s.coord.Run("user", "new/"+actor.ID, func() error {
		if err := s.gw.CreateUser(ctx, token, payload); err != nil {
			return fmt.Errorf("создание пользователя: %w", err)
		}
		s.store.InvalidateUsers()
		s.logger.Info("Пользователь создан", slog.String("email", in.Email), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Update обновляет пользователя.
func (s *UserService) Update(ctx context.Context, token string, actor *model.Actor, id string, in UserInput) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}
	if err := validateUser(in); err != nil {
		return err
	}
	payload, err := userPayload(in)
	if err != nil {
		return err
	}

	return s.coord.Run("user", id, func() error {
		if err := s.gw.UpdateUser(ctx, token, backendID, payload); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("обновление пользователя %s: %w", id, err)
		}
		s.store.InvalidateUsers()
		s.logger.Info("Пользователь обновлён", slog.String("user_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Delete удаляет пользователя.
func (s *UserService) Delete(ctx context.Context, token string, actor *model.Actor, id string) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}

	return s.coord.Run("user", id, func() error {
		if err := s.gw.DeleteUser(ctx, token, backendID); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("удаление пользователя %s: %w", id, err)
		}
		s.store.InvalidateUsers()
		s.logger.Info("Пользователь удалён", slog.String("user_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// userPayload собирает тело мутации из провалидированного ввода.
func userPayload(in UserInput) (backend.UserPayload, error) {
	departmentID, err := parseOptionalID("departmentId", in.DepartmentID)
	if err != nil {
		return backend.UserPayload{}, err
	}
	return backend.UserPayload{
		Name:         in.Name,
		Email:        in.Email,
		Password:     in.Password,
		Role:         string(model.ParseRole(in.Role)),
		DepartmentID: departmentID,
		Active:       in.IsActive,
	}, nil
}
