// assettype.go — сервис типов активов.
// Тип деактивируется мягко (isActive = false); ссылки существующих
// активов на тип остаются валидными.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/query"
)

// AssetTypeView — тип актива для ответа API.
type AssetTypeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	// AssetCount — количество активов этого типа
	AssetCount int `json:"assetCount"`
}

// AssetTypeListResult — страница типов активов.
type AssetTypeListResult struct {
	Items      []AssetTypeView `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// AssetTypeInput — ввод мутации create/update типа актива.
type AssetTypeInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// AssetTypeService — операции над типами активов.
type AssetTypeService struct {
	store    *Store
	gw       Gateway
	coord    *MutationCoordinator
	states   *ListStateStore
	pipeline *query.Pipeline[AssetTypeView]
	pageSize int
	logger   *slog.Logger
}

// NewAssetTypeService создаёт сервис типов активов.
func NewAssetTypeService(
	store *Store,
	gw Gateway,
	coord *MutationCoordinator,
	states *ListStateStore,
	locale string,
	pageSize int,
	logger *slog.Logger,
) *AssetTypeService {
	spec := query.Spec[AssetTypeView]{
		Search: []func(AssetTypeView) string{
			func(t AssetTypeView) string { return t.Name },
			func(t AssetTypeView) string { return t.Description },
		},
		Filters: map[string]func(AssetTypeView) string{
			"isActive": func(t AssetTypeView) string { return boolFilter(t.IsActive) },
		},
		Sort: map[string]query.SortKey[AssetTypeView]{
			"name":       {Text: func(t AssetTypeView) string { return t.Name }},
			"assetCount": {Number: func(t AssetTypeView) float64 { return float64(t.AssetCount) }},
		},
		DefaultSort: "name",
	}

	return &AssetTypeService{
		store:    store,
		gw:       gw,
		coord:    coord,
		states:   states,
		pipeline: query.New(spec, locale),
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "asset_type_service")),
	}
}

// List возвращает страницу типов активов.
// Справочник не скоупится по ролям: он нужен всем для отображения ссылок.
func (s *AssetTypeService) List(ctx context.Context, token string, actor *model.Actor, p ListParams) (*AssetTypeListResult, error) {
	types, err := s.store.AssetTypes(ctx, token)
	if err != nil {
		return nil, err
	}
	assets, err := s.store.Assets(ctx, token)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(types))
	for _, a := range assets {
		counts[a.TypeID]++
	}
	views := make([]AssetTypeView, 0, len(types))
	for _, t := range types {
		views = append(views, AssetTypeView{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			IsActive:    t.IsActive,
			AssetCount:  counts[t.ID],
		})
	}

	state := s.states.For(actor.ID, ScreenAssetTypes)
	page := state.Resolve(p.Params, p.Page)

	filtered := s.pipeline.Apply(views, p.Params)

	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	pg := query.Paginate(filtered, pageSize, page)
	state.Remember(pg.Current)

	return &AssetTypeListResult{
		Items:      pg.Items,
		Pagination: paginationOf(pg, pageSize),
	}, nil
}

// Create создаёт тип актива.
func (s *AssetTypeService) Create(ctx context.Context, token string, actor *model.Actor, in AssetTypeInput) error {
	if err := validateAssetType(in); err != nil {
		return err
	}

	return s.coord.Run("asset-type", "new/"+actor.ID, func() error {
		p := backend.AssetTypePayload{Name: in.Name, Description: in.Description, IsActive: in.IsActive}
		if err := s.gw.CreateAssetType(ctx, token, p); err != nil {
			return fmt.Errorf("создание типа актива: %w", err)
		}
		s.store.InvalidateAssetTypes()
		s.logger.Info("Тип актива создан", slog.String("name", in.Name), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Update обновляет тип актива.
func (s *AssetTypeService) Update(ctx context.Context, token string, actor *model.Actor, id string, in AssetTypeInput) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}
	if err := validateAssetType(in); err != nil {
		return err
	}

	return s.coord.Run("asset-type", id, func() error {
		p := backend.AssetTypePayload{Name: in.Name, Description: in.Description, IsActive: in.IsActive}
		if err := s.gw.UpdateAssetType(ctx, token, backendID, p); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("обновление типа актива %s: %w", id, err)
		}
		s.store.InvalidateAssetTypes()
		s.logger.Info("Тип актива обновлён", slog.String("type_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// Delete удаляет тип актива.
func (s *AssetTypeService) Delete(ctx context.Context, token string, actor *model.Actor, id string) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}

	return s.coord.Run("asset-type", id, func() error {
		if err := s.gw.DeleteAssetType(ctx, token, backendID); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("удаление типа актива %s: %w", id, err)
		}
		s.store.InvalidateAssetTypes()
		s.logger.Info("Тип актива удалён", slog.String("type_id", id), slog.String("actor_id", actor.ID))
		return nil
	})
}

// boolFilter приводит булево поле к значению точного фильтра.
func boolFilter(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
