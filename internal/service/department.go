// department.go — сервис подразделений.
// Деактивация подразделения заблокирована, пока в нём есть активные
// сотрудники; правило проверяется по коллекции пользователей до
// обращения к бекенду.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/query"
)

// DepartmentView — подразделение, обогащённое именем руководителя
// и признаком возможности деактивации.
type DepartmentView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ManagerID   string `json:"managerId,omitempty"`
	ManagerName string `json:"managerName,omitempty"`
	IsActive    bool   `json:"isActive"`
	// EmployeeCount — количество активных сотрудников по коллекции
	// пользователей (не значение бекенда: оно может отставать)
	EmployeeCount int `json:"employeeCount"`
	// CanDeactivate — false, пока есть активные сотрудники
	CanDeactivate bool `json:"canDeactivate"`
}

// DepartmentListResult — страница подразделений.
type DepartmentListResult struct {
	Items      []DepartmentView `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// DepartmentInput — ввод мутации create/update подразделения.
type DepartmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ManagerID   string `json:"managerId,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// DepartmentService — операции над подразделениями.
type DepartmentService struct {
	store    *Store
	gw       Gateway
	coord    *MutationCoordinator
	states   *ListStateStore
	pipeline *query.Pipeline[DepartmentView]
	pageSize int
	logger   *slog.Logger
}

// NewDepartmentService создаёт сервис подразделений.
func NewDepartmentService(
	store *Store,
	gw Gateway,
	coord *MutationCoordinator,
	states *ListStateStore,
	locale string,
	pageSize int,
	logger *slog.Logger,
) *DepartmentService {
	spec := query.Spec[DepartmentView]{
		Search: []func(DepartmentView) string{
			func(d DepartmentView) string { return d.Name },
			func(d DepartmentView) string { return d.Description },
		},
		Filters: map[string]func(DepartmentView) string{
			"isActive": func(d DepartmentView) string { return boolFilter(d.IsActive) },
		},
		Sort: map[string]query.SortKey[DepartmentView]{
			"name":          {Text: func(d DepartmentView) string { return d.Name }},
			"managerName":   {Text: func(d DepartmentView) string { return d.ManagerName }},
			"employeeCount": {Number: func(d DepartmentView) float64 { return float64(d.EmployeeCount) }},
		},
		DefaultSort: "name",
	}

	return &DepartmentService{
		store:    store,
		gw:       gw,
		coord:    coord,
		states:   states,
		pipeline: query.New(spec, locale),
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "department_service")),
	}
}

// List возвращает страницу подразделений.
func (s *DepartmentService) List(ctx context.Context, token string, actor *model.Actor, p ListParams) (*DepartmentListResult, error) {
	var (
		departments []model.Department
		users       []model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		departments, err = s.store.Departments(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.store.Users(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := joinDepartments(departments, users)

	state := s.states.For(actor.ID, ScreenDepartments)
	page := state.Resolve(p.Params, p.Page)

	filtered := s.pipeline.Apply(views, p.Params)

	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	pg := query.Paginate(filtered, pageSize, page)
	state.Remember(pg.Current)

	return &DepartmentListResult{
		Items:      pg.Items,
		Pagination: paginationOf(pg, pageSize),
	}, nil
}

// Create создаёт подразделение.
func (s *DepartmentService) Create(ctx context.Context, token string, actor *model.Actor, in DepartmentInput) error {
	if err := validateDepartment(in); err != nil {
		return err
	}
	payload, err := departmentPayload(in)
	if err != nil {
		return err
	}

	return s.coord.Run("department", "new/"+actor.ID, func() error {
		if err := s.gw.CreateDepartment(ctx, token, payload); err != nil {
			return fmt.Errorf("создание подразделения: %w", err)
		}
		s.store.InvalidateDepartments()
		s.logger.Info("Подразделение создано", slog.String("name", in.Name), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Update обновляет подразделение.
// Деактивация (isActive: true → false) отклоняется с
// ErrDepartmentHasEmployees, пока в подразделении есть активные
// сотрудники; запрос к бекенду в этом случае не выполняется.
func (s *DepartmentService) Update(ctx context.Context, token string, actor *model.Actor, id string, in DepartmentInput) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}
	if err := validateDepartment(in); err != nil {
		return err
	}
	payload, err := departmentPayload(in)
	if err != nil {
		return err
	}

	if !in.IsActive {
		count, err := s.activeEmployees(ctx, token, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDepartmentHasEmployees
		}
	}

	return s.coord.Run("department", id, func() error {
		if err := s.gw.UpdateDepartment(ctx, token, backendID, payload); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("обновление подразделения %s: %w", id, err)
		}
		s.store.InvalidateDepartments()
		s.logger.Info("Подразделение обновлено", slog.String("department_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Delete удаляет подразделение. Правило активных сотрудников действует
// и здесь: подразделение с сотрудниками удалить нельзя.
func (s *DepartmentService) Delete(ctx context.Context, token string, actor *model.Actor, id string) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}

	count, err := s.activeEmployees(ctx, token, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDepartmentHasEmployees
	}

	return s.coord.Run("department", id, func() error {
		if err := s.gw.DeleteDepartment(ctx, token, backendID); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("удаление подразделения %s: %w", id, err)
		}
		s.store.InvalidateDepartments()
		s.logger.Info("Подразделение удалено", slog.String("department_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// activeEmployees возвращает количество активных сотрудников подразделения.
func (s *DepartmentService) activeEmployees(ctx context.Context, token, departmentID string) (int, error) {
	users, err := s.store.Users(ctx, token)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, u := range users {
		if u.DepartmentID == departmentID && u.IsActive {
			count++
		}
	}
	return count, nil
}

// departmentPayload собирает тело мутации из провалидированного ввода.
func departmentPayload(in DepartmentInput) (backend.DepartmentPayload, error) {
	managerID, err := parseOptionalID("managerId", in.ManagerID)
	if err != nil {
		return backend.DepartmentPayload{}, err
	}
	return backend.DepartmentPayload{
		Name:        in.Name,
		Description: in.Description,
		ManagerID:   managerID,
		IsActive:    in.IsActive,
	}, nil
}

// joinDepartments обогащает подразделения именем руководителя и счётчиком
// активных сотрудников.
func joinDepartments(departments []model.Department, users []model.User) []DepartmentView {
	userNames := make(map[string]string, len(users))
	activeCounts := make(map[string]int)
	for _, u := range users {
		userNames[u.ID] = u.Name
		if u.IsActive {
			activeCounts[u.DepartmentID]++
		}
	}

	views := make([]DepartmentView, 0, len(departments))
	for _, d := range departments {
		count := activeCounts[d.ID]
		views = append(views, DepartmentView{
			ID:            d.ID,
			Name:          d.Name,
			Description:   d.Description,
			ManagerID:     d.ManagerID,
			ManagerName:   userNames[d.ManagerID],
			IsActive:      d.IsActive,
			EmployeeCount: count,
			CanDeactivate: count == 0,
		})
	}
	return views
}
