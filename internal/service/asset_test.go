package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/query"
)

// newAssetFixture — мок бекенда с тремя активами в двух подразделениях.
// Актив 1 закреплён за пользователем 100.
func newAssetFixture() *mockGateway {
	dept10, dept20 := int64(10), int64(20)
	user100 := int64(100)
	return &mockGateway{
		assets: []backend.AssetDTO{
			{ID: 1, Code: "NB-001", Name: "Ноутбук", TypeID: 1, DepartmentID: &dept10, AssignedTo: &user100, PurchaseDate: "2024-01-10", Value: 1500, Status: "IN_USE", Condition: "GOOD"},
			{ID: 2, Code: "MON-002", Name: "Монитор", TypeID: 2, DepartmentID: &dept10, PurchaseDate: "2024-02-10", Value: 300, Status: "IN_STOCK", Condition: "GOOD"},
			{ID: 3, Code: "PRN-003", Name: "Принтер", TypeID: 2, DepartmentID: &dept20, PurchaseDate: "2023-05-01", Value: 700, Status: "MAINTENANCE", Condition: "NEEDS_REPAIR"},
		},
		assetTypes: []backend.AssetTypeDTO{
			{ID: 1, Name: "Ноутбуки", IsActive: true},
			{ID: 2, Name: "Периферия", IsActive: true},
		},
		departments: []backend.DepartmentDTO{
			{ID: 10, Name: "ИТ", IsActive: true},
			{ID: 20, Name: "Бухгалтерия", IsActive: true},
		},
		users: []backend.UserDTO{
			{ID: 100, Name: "Иванов", Email: "ivanov@example.com", Role: "STAFF", DepartmentID: &dept10, Active: true},
		},
		history: []backend.AssetHistoryDTO{
			{ID: 1, AssetID: 1, ActionType: "CREATED", PerformedAt: "2024-01-10T10:00:00Z"},
			{ID: 2, AssetID: 1, ActionType: "ASSIGNED", PerformedAt: "2024-02-01T10:00:00Z"},
			{ID: 3, AssetID: 2, ActionType: "CREATED", PerformedAt: "2024-02-10T10:00:00Z"},
		},
	}
}

// newAssetService собирает сервис активов поверх мока.
func newAssetService(gw Gateway) *AssetService {
	store := NewStore(gw, 16, time.Minute)
	return NewAssetService(store, gw, NewMutationCoordinator(), NewListStateStore(16, time.Minute), "ru", 10, testLogger())
}

// TestAssetService_List_ManagerScope проверяет ограничение видимости:
// MANAGER видит только активы своего подразделения.
func TestAssetService_List_ManagerScope(t *testing.T) {
	svc := newAssetService(newAssetFixture())
	manager := &model.Actor{ID: "7", Role: model.RoleManager, DepartmentID: "10"}

	res, err := svc.List(context.Background(), "token", manager, ListParams{Page: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(res.Items) != 2 {
		t.Fatalf("MANAGER видит %d активов, ожидалось 2", len(res.Items))
	}
	for _, item := range res.Items {
		if item.DepartmentID != "10" {
			t.Errorf("актив %s чужого подразделения %q в результате", item.ID, item.DepartmentID)
		}
	}
	if res.Pagination.Total != 2 {
		t.Errorf("Pagination.Total = %d, ожидалось 2", res.Pagination.Total)
	}
}

// TestAssetService_List_JoinNames проверяет обогащение активов
// названиями типа, подразделения и именем пользователя.
func TestAssetService_List_JoinNames(t *testing.T) {
	svc := newAssetService(newAssetFixture())
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	res, err := svc.List(context.Background(), "token", admin, ListParams{
		Params: query.Params{Search: "ноутбук"},
		Page:   1,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("найдено %d активов, ожидался 1", len(res.Items))
	}

	item := res.Items[0]
	if item.TypeName != "Ноутбуки" {
		t.Errorf("TypeName = %q, ожидалось \"Ноутбуки\"", item.TypeName)
	}
	if item.DepartmentName != "ИТ" {
		t.Errorf("DepartmentName = %q, ожидалось \"ИТ\"", item.DepartmentName)
	}
	if item.AssignedToName != "Иванов" {
		t.Errorf("AssignedToName = %q, ожидалось \"Иванов\"", item.AssignedToName)
	}
}

// TestAssetService_List_UsesCache проверяет, что повторный запрос
// не обращается к бекенду.
func TestAssetService_List_UsesCache(t *testing.T) {
	gw := newAssetFixture()
	svc := newAssetService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	for i := 0; i < 3; i++ {
		if _, err := svc.List(context.Background(), "token", admin, ListParams{Page: 1}); err != nil {
			t.Fatalf("List #%d: %v", i+1, err)
		}
	}

	if got := gw.callCount("ListAssets"); got != 1 {
		t.Errorf("ListAssets вызван %d раз, ожидался 1 (кэш)", got)
	}
}

// TestAssetService_Detail проверяет карточку актива с журналом
// в обратном хронологическом порядке.
func TestAssetService_Detail(t *testing.T) {
	svc := newAssetService(newAssetFixture())
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	detail, err := svc.Detail(context.Background(), "token", admin, "1")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}

	if detail.Asset.Code != "NB-001" {
		t.Errorf("Code = %q, ожидался NB-001", detail.Asset.Code)
	}
	if len(detail.History) != 2 {
		t.Fatalf("журнал из %d записей, ожидались 2", len(detail.History))
	}
	// Свежая запись первой
	if detail.History[0].ActionType != "ASSIGNED" || detail.History[1].ActionType != "CREATED" {
		t.Errorf("порядок журнала %q, %q, ожидался ASSIGNED, CREATED",
			detail.History[0].ActionType, detail.History[1].ActionType)
	}
}

// TestAssetService_Detail_InvisibleIsNotFound проверяет, что невидимый
// субъекту актив неотличим от несуществующего.
func TestAssetService_Detail_InvisibleIsNotFound(t *testing.T) {
	svc := newAssetService(newAssetFixture())
	staff := &model.Actor{ID: "999", Role: model.RoleStaff}

	if _, err := svc.Detail(context.Background(), "token", staff, "2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("чужой актив: %v, ожидалась ErrNotFound", err)
	}

	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}
	if _, err := svc.Detail(context.Background(), "token", admin, "77"); !errors.Is(err, ErrNotFound) {
		t.Errorf("несуществующий актив: %v, ожидалась ErrNotFound", err)
	}
}

// TestAssetService_Delete_InUseRejected проверяет защиту закреплённого
// актива: отказ по локальной записи, мутация бекенда не вызывается.
func TestAssetService_Delete_InUseRejected(t *testing.T) {
	gw := newAssetFixture()
	svc := newAssetService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	if err := svc.Delete(context.Background(), "token", admin, "1"); !errors.Is(err, ErrAssetInUse) {
		t.Fatalf("удаление закреплённого актива: %v, ожидалась ErrAssetInUse", err)
	}
	if got := gw.callCount("DeleteAsset"); got != 0 {
		t.Errorf("DeleteAsset вызван %d раз, ожидалось 0 — отказ до бекенда", got)
	}
}

// TestAssetService_Delete проверяет удаление свободного актива
// и инвалидацию кэша после мутации.
func TestAssetService_Delete(t *testing.T) {
	gw := newAssetFixture()
	svc := newAssetService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	if err := svc.Delete(context.Background(), "token", admin, "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := gw.callCount("DeleteAsset"); got != 1 {
		t.Errorf("DeleteAsset вызван %d раз, ожидался 1", got)
	}

	// Кэш активов инвалидирован — следующее чтение идёт к бекенду
	if err := svc.Delete(context.Background(), "token", admin, "3"); err != nil {
		t.Fatalf("Delete #2: %v", err)
	}
	if got := gw.callCount("ListAssets"); got != 2 {
		t.Errorf("ListAssets вызван %d раз, ожидалось 2 (кэш инвалидирован)", got)
	}
}

// TestAssetService_Delete_InvisibleIsNotFound проверяет, что STAFF
// не может удалить чужой актив: ErrNotFound без обращения к бекенду.
func TestAssetService_Delete_InvisibleIsNotFound(t *testing.T) {
	gw := newAssetFixture()
	svc := newAssetService(gw)
	staff := &model.Actor{ID: "999", Role: model.RoleStaff}

	if err := svc.Delete(context.Background(), "token", staff, "2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("чужой актив: %v, ожидалась ErrNotFound", err)
	}
	if got := gw.callCount("DeleteAsset"); got != 0 {
		t.Errorf("DeleteAsset вызван %d раз, ожидалось 0", got)
	}
}

// TestAssetService_Evaluate проверяет оценку состояния: статус до операции
// берётся из локальной записи, исполнитель — из субъекта.
func TestAssetService_Evaluate(t *testing.T) {
	gw := newAssetFixture()
	svc := newAssetService(gw)
	manager := &model.Actor{ID: "7", Role: model.RoleManager, DepartmentID: "20"}

	err := svc.Evaluate(context.Background(), "token", manager, "3", EvaluateInput{
		Condition: "GOOD",
		NewStatus: "IN_STOCK",
		Notes:     "после ремонта",
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	p := gw.lastEvaluate
	if p.PreviousStatus != "MAINTENANCE" {
		t.Errorf("PreviousStatus = %q, ожидался MAINTENANCE из локальной записи", p.PreviousStatus)
	}
	if p.PerformedBy != 7 {
		t.Errorf("PerformedBy = %d, ожидался 7 (субъект)", p.PerformedBy)
	}
	if p.NewStatus != "IN_STOCK" || p.Condition != "GOOD" {
		t.Errorf("payload %+v", p)
	}
}

// TestAssetService_Evaluate_BadInput проверяет отклонение недопустимых
// значений состояния и статуса.
func TestAssetService_Evaluate_BadInput(t *testing.T) {
	gw := newAssetFixture()
	svc := newAssetService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	var vErr *ValidationError
	err := svc.Evaluate(context.Background(), "token", admin, "3", EvaluateInput{Condition: "BROKEN"})
	if !errors.As(err, &vErr) || vErr.Field != "condition" {
		t.Errorf("недопустимое состояние: %v", err)
	}

	err = svc.Evaluate(context.Background(), "token", admin, "3", EvaluateInput{Condition: "GOOD", NewStatus: "FLYING"})
	if !errors.As(err, &vErr) || vErr.Field != "newStatus" {
		t.Errorf("недопустимый статус: %v", err)
	}

	if got := gw.callCount("EvaluateAsset"); got != 0 {
		t.Errorf("EvaluateAsset вызван %d раз, ожидалось 0", got)
	}
}

// TestAssetService_Create_Validation проверяет, что невалидный ввод
// отклоняется до обращения к бекенду.
func TestAssetService_Create_Validation(t *testing.T) {
	gw := newAssetFixture()
	svc := newAssetService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	err := svc.Create(context.Background(), "token", admin, AssetInput{Name: "Без кода", TypeID: "1", Value: 10})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("ожидалась ValidationError, получено %v", err)
	}
	if got := gw.callCount("CreateAsset"); got != 0 {
		t.Errorf("CreateAsset вызван %d раз, ожидалось 0", got)
	}
}
