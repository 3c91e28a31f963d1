package service

import (
	"context"
	"testing"
	"time"

	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// TestDashboardService_Summary проверяет сводку: счётчики по статусам,
// суммарную стоимость и последние операции только над видимыми активами.
func TestDashboardService_Summary(t *testing.T) {
	gw := newAssetFixture()
	svc := NewDashboardService(NewStore(gw, 16, time.Minute), testLogger())

	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}
	sum, err := svc.Summary(context.Background(), "token", admin)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if sum.TotalAssets != 3 {
		t.Errorf("TotalAssets = %d, ожидалось 3", sum.TotalAssets)
	}
	if sum.TotalValue != 2500 {
		t.Errorf("TotalValue = %v, ожидалось 2500", sum.TotalValue)
	}
	if sum.ByStatus[model.AssetStatusInUse] != 1 || sum.ByStatus[model.AssetStatusMaintenance] != 1 {
		t.Errorf("ByStatus = %v", sum.ByStatus)
	}
	if sum.ByCondition[model.AssetConditionGood] != 2 {
		t.Errorf("ByCondition = %v", sum.ByCondition)
	}
	if len(sum.RecentHistory) != 3 {
		t.Fatalf("RecentHistory из %d записей, ожидались 3", len(sum.RecentHistory))
	}
	// Свежая операция первой
	if sum.RecentHistory[0].ID != "3" {
		t.Errorf("первая запись %s, ожидалась 3 (самая свежая)", sum.RecentHistory[0].ID)
	}
}

// TestDashboardService_Summary_Scoped проверяет, что MANAGER и ADMIN
// видят разные цифры: сводка считается по видимым активам.
func TestDashboardService_Summary_Scoped(t *testing.T) {
	gw := newAssetFixture()
	svc := NewDashboardService(NewStore(gw, 16, time.Minute), testLogger())

	manager := &model.Actor{ID: "7", Role: model.RoleManager, DepartmentID: "20"}
	sum, err := svc.Summary(context.Background(), "token", manager)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if sum.TotalAssets != 1 {
		t.Errorf("TotalAssets = %d, ожидался 1 (только подразделение 20)", sum.TotalAssets)
	}
	if sum.TotalValue != 700 {
		t.Errorf("TotalValue = %v, ожидалось 700", sum.TotalValue)
	}
	// Журнал чужих активов скрыт
	for _, h := range sum.RecentHistory {
		if h.AssetID != "3" {
			t.Errorf("операция над чужим активом %s в сводке", h.AssetID)
		}
	}
}
