// asset.go — сервис активов: списочный запрос с ограничением видимости,
// карточка с журналом операций и мутации через Mutation Coordinator.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/normalize"
	"github.com/assetboard/dashboard-module/internal/query"
	"github.com/assetboard/dashboard-module/internal/scope"
)

// AssetView — актив, обогащённый названиями связанных сущностей.
type AssetView struct {
	ID             string                `json:"id"`
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	TypeID         string                `json:"typeId"`
	TypeName       string                `json:"typeName,omitempty"`
	DepartmentID   string                `json:"departmentId,omitempty"`
	DepartmentName string                `json:"departmentName,omitempty"`
	AssignedTo     string                `json:"assignedTo,omitempty"`
	AssignedToName string                `json:"assignedToName,omitempty"`
	PurchaseDate   time.Time             `json:"purchaseDate"`
	Value          float64               `json:"value"`
	Status         model.AssetStatus     `json:"status"`
	Condition      model.AssetCondition  `json:"condition"`
	Description    string                `json:"description,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// HistoryView — запись журнала операций для ответа API.
type HistoryView struct {
	ID             string            `json:"id"`
	AssetID        string            `json:"assetId"`
	ActionType     string            `json:"actionType"`
	PerformedBy    string            `json:"performedBy"`
	PerformedAt    time.Time         `json:"performedAt"`
	Details        string            `json:"details,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	PreviousStatus model.AssetStatus `json:"previousStatus,omitempty"`
	NewStatus      model.AssetStatus `json:"newStatus,omitempty"`
}

// AssetListResult — страница активов с блоком пагинации.
type AssetListResult struct {
	Items      []AssetView `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// AssetDetail — карточка актива с журналом операций
// (журнал — в обратном хронологическом порядке).
type AssetDetail struct {
	Asset   AssetView     `json:"asset"`
	History []HistoryView `json:"history"`
}

// AssetInput — ввод мутации create/update актива.
type AssetInput struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	TypeID       string  `json:"typeId"`
	DepartmentID string  `json:"departmentId,omitempty"`
	AssignedTo   string  `json:"assignedTo,omitempty"`
	PurchaseDate string  `json:"purchaseDate"`
	Value        float64 `json:"value"`
	Status       string  `json:"status"`
	Condition    string  `json:"condition"`
	Description  string  `json:"description,omitempty"`
}

// AssignInput — ввод операции закрепления актива.
type AssignInput struct {
	UserID     string `json:"userId"`
	AssignDate string `json:"assignDate,omitempty"`
}

// EvaluateInput — ввод операции оценки состояния актива.
type EvaluateInput struct {
	Condition string `json:"condition"`
	NewStatus string `json:"newStatus,omitempty"`
	Details   string `json:"details,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// AssetService — операции над активами.
type AssetService struct {
	store    *Store
	gw       Gateway
	coord    *MutationCoordinator
	states   *ListStateStore
	pipeline *query.Pipeline[AssetView]
	pageSize int
	logger   *slog.Logger
}

// NewAssetService создаёт сервис активов.
// locale — локаль сравнения текстовых полей, pageSize — размер страницы
// по умолчанию.
func NewAssetService(
	store *Store,
	gw Gateway,
	coord *MutationCoordinator,
	states *ListStateStore,
	locale string,
	pageSize int,
	logger *slog.Logger,
) *AssetService {
	spec := query.Spec[AssetView]{
		Search: []func(AssetView) string{
			func(a AssetView) string { return a.Name },
			func(a AssetView) string { return a.Code },
		},
		Filters: map[string]func(AssetView) string{
			"status":       func(a AssetView) string { return string(a.Status) },
			"condition":    func(a AssetView) string { return string(a.Condition) },
			"typeId":       func(a AssetView) string { return a.TypeID },
			"departmentId": func(a AssetView) string { return a.DepartmentID },
		},
		Sort: map[string]query.SortKey[AssetView]{
			"name":         {Text: func(a AssetView) string { return a.Name }},
			"code":         {Text: func(a AssetView) string { return a.Code }},
			"typeName":     {Text: func(a AssetView) string { return a.TypeName }},
			"status":       {Text: func(a AssetView) string { return string(a.Status) }},
			"value":        {Number: func(a AssetView) float64 { return a.Value }},
			"purchaseDate": {Time: func(a AssetView) int64 { return a.PurchaseDate.UnixNano() }},
		},
		DefaultSort: "name",
	}

	return &AssetService{
		store:    store,
		gw:       gw,
		coord:    coord,
		states:   states,
		pipeline: query.New(spec, locale),
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "asset_service")),
	}
}

// List возвращает страницу активов, видимых субъекту.
// Коллекции активов, типов, подразделений и пользователей читаются
// конкурентно; изменение поиска, фильтров или сортировки сбрасывает
// позицию экрана на первую страницу.
func (s *AssetService) List(ctx context.Context, token string, actor *model.Actor, p ListParams) (*AssetListResult, error) {
	var (
		assets      []model.Asset
		types       []model.AssetType
		departments []model.Department
		users       []model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.store.Assets(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = s.store.AssetTypes(gctx, token)
		return err
	})
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

	views := joinAssets(scope.Assets(assets, actor), types, departments, users)

	state := s.states.For(actor.ID, ScreenAssets)
	page := state.Resolve(p.Params, p.Page)

	filtered := s.pipeline.Apply(views, p.Params)

	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	pg := query.Paginate(filtered, pageSize, page)
	state.Remember(pg.Current)

	return &AssetListResult{
		Items:      pg.Items,
		Pagination: paginationOf(pg, pageSize),
	}, nil
}

// Detail возвращает карточку актива с журналом операций.
// Невидимый субъекту актив неотличим от несуществующего (ErrNotFound).
func (s *AssetService) Detail(ctx context.Context, token string, actor *model.Actor, id string) (*AssetDetail, error) {
	backendID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	var (
		dto         *backend.AssetDTO
		types       []model.AssetType
		departments []model.Department
		users       []model.User
		history     []model.AssetHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dto, err = s.gw.GetAsset(gctx, token, backendID)
		if errors.Is(err, backend.ErrNotFound) {
			return ErrNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		types, err = s.store.AssetTypes(gctx, token)
		return err
	})
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
	g.Go(func() error {
		var err error
		history, err = s.store.AssetHistory(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	asset := normalize.Asset(*dto)
	visible := scope.Assets([]model.Asset{asset}, actor)
	if len(visible) == 0 {
		return nil, ErrNotFound
	}

	views := joinAssets(visible, types, departments, users)

	// Журнал актива — в обратном хронологическом порядке
	records := make([]HistoryView, 0)
	for _, h := range history {
		if h.AssetID != asset.ID {
			continue
		}
		records = append(records, HistoryView{
			ID:             h.ID,
			AssetID:        h.AssetID,
			ActionType:     h.ActionType,
			PerformedBy:    h.PerformedBy,
			PerformedAt:    h.PerformedAt,
			Details:        h.Details,
			Notes:          h.Notes,
			PreviousStatus: h.PreviousStatus,
			NewStatus:      h.NewStatus,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PerformedAt.After(records[j].PerformedAt)
	})

	return &AssetDetail{
		Asset:   views[0],
		History: records,
	}, nil
}

// Create создаёт актив.
func (s *AssetService) Create(ctx context.Context, token string, actor *model.Actor, in AssetInput) error {
	if err := validateAsset(in); err != nil {
		return err
	}
	payload, err := assetPayload(in)
	if err != nil {
		return err
	}

	// Ключ защиты от двойного submit — per-subject
	return s.coord.Run("asset", "new/"+actor.ID, func() error {
		if err := s.gw.CreateAsset(ctx, token, payload); err != nil {
			return fmt.Errorf("создание актива: %w", err)
		}
		s.store.InvalidateAssets()
		s.logger.Info("Актив создан", slog.String("code", in.Code), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Update обновляет актив.
func (s *AssetService) Update(ctx context.Context, token string, actor *model.Actor, id string, in AssetInput) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}
	if err := validateAsset(in); err != nil {
		return err
	}
	payload, err := assetPayload(in)
	if err != nil {
		return err
	}

	return s.coord.Run("asset", id, func() error {
		if err := s.gw.UpdateAsset(ctx, token, backendID, payload); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("обновление актива %s: %w", id, err)
		}
		s.store.InvalidateAssets()
		s.logger.Info("Актив обновлён", slog.String("asset_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Delete удаляет актив.
// Закреплённый актив (IN_USE) отклоняется до обращения к бекенду:
// проверка выполняется по локальной записи, сетевых вызовов нет.
func (s *AssetService) Delete(ctx context.Context, token string, actor *model.Actor, id string) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}

	assets, err := s.store.Assets(ctx, token)
	if err != nil {
		return err
	}
	var record *model.Asset
	for i := range assets {
		if assets[i].ID == id {
			record = &assets[i]
			break
		}
	}
	if record == nil || len(scope.Assets([]model.Asset{*record}, actor)) == 0 {
		return ErrNotFound
	}
	if record.Status == model.AssetStatusInUse {
		return ErrAssetInUse
	}

	return s.coord.Run("asset", id, func() error {
		if err := s.gw.DeleteAsset(ctx, token, backendID); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("удаление актива %s: %w", id, err)
		}
		s.store.InvalidateAssets()
		s.logger.Info("Актив удалён", slog.String("asset_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Assign закрепляет актив за пользователем.
func (s *AssetService) Assign(ctx context.Context, token string, actor *model.Actor, id string, in AssignInput) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}
	userID, err := parseID("userId", in.UserID)
	if err != nil {
		return err
	}
	if in.AssignDate != "" {
		if _, err := parseDate(in.AssignDate); err != nil {
			return invalid("assignDate", "ожидается дата в формате YYYY-MM-DD")
		}
	}

	return s.coord.Run("asset", id, func() error {
		p := backend.AssignPayload{UserID: userID, AssignDate: in.AssignDate}
		if err := s.gw.AssignAsset(ctx, token, backendID, p); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("закрепление актива %s: %w", id, err)
		}
		s.store.InvalidateAssets()
		s.logger.Info("Актив закреплён",
			slog.String("asset_id", id),
			slog.String("user_id", in.UserID),
			slog.String("actor_id", actor.ID),
		)
		return nil
	})
}

// Evaluate сохраняет оценку состояния актива.
// Статус до операции берётся из локальной записи, исполнитель — из субъекта.
func (s *AssetService) Evaluate(ctx context.Context, token string, actor *model.Actor, id string, in EvaluateInput) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}
	switch model.AssetCondition(in.Condition) {
	case model.AssetConditionGood, model.AssetConditionNeedsRepair, model.AssetConditionObsolete:
	default:
		return invalid("condition", "недопустимое состояние актива")
	}
	if in.NewStatus != "" && string(model.ParseAssetStatus(in.NewStatus)) != in.NewStatus {
		return invalid("newStatus", "недопустимый статус актива")
	}

	performedBy, err := parseID("performedBy", actor.ID)
	if err != nil {
		return err
	}

	assets, err := s.store.Assets(ctx, token)
	if err != nil {
		return err
	}
	previous := ""
	for _, a := range assets {
		if a.ID == id {
			previous = string(a.Status)
			break
		}
	}

	return s.coord.Run("asset", id, func() error {
		p := backend.EvaluatePayload{
			PerformedBy:    performedBy,
			Details:        in.Details,
			Notes:          in.Notes,
			PreviousStatus: previous,
			NewStatus:      in.NewStatus,
			Condition:      in.Condition,
		}
		if err := s.gw.EvaluateAsset(ctx, token, backendID, p); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("оценка актива %s: %w", id, err)
		}
		s.store.InvalidateAssets()
		s.logger.Info("Оценка актива сохранена",
			slog.String("asset_id", id),
			slog.String("condition", in.Condition),
			slog.String("actor_id", actor.ID),
		)
		return nil
	})
}

// Reclaim снимает закрепление актива.
func (s *AssetService) Reclaim(ctx context.Context, token string, actor *model.Actor, id string) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}

	return s.coord.Run("asset", id, func() error {
		if err := s.gw.ReclaimAsset(ctx, token, backendID); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("снятие закрепления актива %s: %w", id, err)
		}
		s.store.InvalidateAssets()
		s.logger.Info("Закрепление актива снято", slog.String("asset_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// assetPayload собирает тело мутации из провалидированного ввода.
func assetPayload(in AssetInput) (backend.AssetPayload, error) {
	typeID, err := parseID("typeId", in.TypeID)
	if err != nil {
		return backend.AssetPayload{}, err
	}
	departmentID, err := parseOptionalID("departmentId", in.DepartmentID)
	if err != nil {
		return backend.AssetPayload{}, err
	}
	assignedTo, err := parseOptionalID("assignedTo", in.AssignedTo)
	if err != nil {
		return backend.AssetPayload{}, err
	}

	return backend.AssetPayload{
		Code:         in.Code,
		Name:         in.Name,
		TypeID:       typeID,
		DepartmentID: departmentID,
		AssignedTo:   assignedTo,
		PurchaseDate: in.PurchaseDate,
		Value:        in.Value,
		Status:       string(model.ParseAssetStatus(in.Status)),
		Condition:    string(model.ParseAssetCondition(in.Condition)),
		Description:  in.Description,
	}, nil
}

// joinAssets обогащает активы названиями типов, подразделений и
// пользователей. Битая ссылка оставляет название пустым.
func joinAssets(
	assets []model.Asset,
	types []model.AssetType,
	departments []model.Department,
	users []model.User,
) []AssetView {
	typeNames := make(map[string]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}
	departmentNames := make(map[string]string, len(departments))
	for _, d := range departments {
		departmentNames[d.ID] = d.Name
	}
	userNames := make(map[string]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	views := make([]AssetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, AssetView{
			ID:             a.ID,
			Code:           a.Code,
			Name:           a.Name,
			TypeID:         a.TypeID,
			TypeName:       typeNames[a.TypeID],
			DepartmentID:   a.DepartmentID,
			DepartmentName: departmentNames[a.DepartmentID],
			AssignedTo:     a.AssignedTo,
			AssignedToName: userNames[a.AssignedTo],
			PurchaseDate:   a.PurchaseDate,
			Value:          a.Value,
			Status:         a.Status,
			Condition:      a.Condition,
			Description:    a.Description,
			CreatedAt:      a.CreatedAt,
		})
	}
	return views
}
