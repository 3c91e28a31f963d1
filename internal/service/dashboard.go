// dashboard.go — сводка для главного экрана: счётчики активов по статусам,
// суммарная стоимость и последние операции. Считается по видимым субъекту
// активам — ADMIN и MANAGER видят разные цифры.
package service

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/scope"
)

// recentHistoryLimit — количество последних операций в сводке.
const recentHistoryLimit = 5

// DashboardSummary — сводка главного экрана.
type DashboardSummary struct {
	// TotalAssets — количество видимых активов
	TotalAssets int `json:"totalAssets"`
	// TotalValue — суммарная стоимость видимых активов
	TotalValue float64 `json:"totalValue"`
	// ByStatus — количество активов по статусам
	ByStatus map[model.AssetStatus]int `json:"byStatus"`
	// ByCondition — количество активов по состояниям
	ByCondition map[model.AssetCondition]int `json:"byCondition"`
	// RecentHistory — последние операции над видимыми активами
	RecentHistory []HistoryView `json:"recentHistory"`
}

// DashboardService — сводка главного экрана.
type DashboardService struct {
	store  *Store
	logger *slog.Logger
}

// NewDashboardService создаёт сервис сводки.
func NewDashboardService(store *Store, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// Summary возвращает сводку по видимым субъекту активам.
func (s *DashboardService) Summary(ctx context.Context, token string, actor *model.Actor) (*DashboardSummary, error) {
	var (
		assets  []model.Asset
		history []model.AssetHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.store.Assets(gctx, token)
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

	visible := scope.Assets(assets, actor)

	summary := &DashboardSummary{
		ByStatus:      make(map[model.AssetStatus]int),
		ByCondition:   make(map[model.AssetCondition]int),
		RecentHistory: make([]HistoryView, 0, recentHistoryLimit),
	}
	visibleIDs := make(map[string]struct{}, len(visible))
	for _, a := range visible {
		summary.TotalAssets++
		summary.TotalValue += a.Value
		summary.ByStatus[a.Status]++
		summary.ByCondition[a.Condition]++
		visibleIDs[a.ID] = struct{}{}
	}

	// Последние операции — только над видимыми активами
	recent := make([]model.AssetHistory, 0, len(history))
	for _, h := range history {
		if _, ok := visibleIDs[h.AssetID]; ok {
			recent = append(recent, h)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PerformedAt.After(recent[j].PerformedAt)
	})
	if len(recent) > recentHistoryLimit {
		recent = recent[:recentHistoryLimit]
	}
	for _, h := range recent {
		summary.RecentHistory = append(summary.RecentHistory, HistoryView{
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

	return summary, nil
}
