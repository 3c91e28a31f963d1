package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// newDepartmentFixture — мок бекенда: в подразделении 10 два активных
// сотрудника и один неактивный, подразделение 20 пустое.
func newDepartmentFixture() *mockGateway {
	dept10 := int64(10)
	manager := int64(100)
	return &mockGateway{
		departments: []backend.DepartmentDTO{
			// EmployeeCount бекенда намеренно отстаёт от коллекции пользователей
			{ID: 10, Name: "ИТ", ManagerID: &manager, IsActive: true, EmployeeCount: 99},
			{ID: 20, Name: "Бухгалтерия", IsActive: true, EmployeeCount: 99},
		},
		users: []backend.UserDTO{
			{ID: 100, Name: "Иванов", Role: "MANAGER", DepartmentID: &dept10, Active: true},
			{ID: 101, Name: "Петров", Role: "STAFF", DepartmentID: &dept10, Active: true},
			{ID: 102, Name: "Сидоров", Role: "STAFF", DepartmentID: &dept10, Active: false},
		},
	}
}

// newDepartmentService собирает сервис подразделений поверх мока.
func newDepartmentService(gw Gateway) *DepartmentService {
	store := NewStore(gw, 16, time.Minute)
	return NewDepartmentService(store, gw, NewMutationCoordinator(), NewListStateStore(16, time.Minute), "ru", 10, testLogger())
}

// TestDepartmentService_List проверяет обогащение: имя руководителя,
// счётчик активных сотрудников по коллекции пользователей и признак
// возможности деактивации.
func TestDepartmentService_List(t *testing.T) {
	svc := newDepartmentService(newDepartmentFixture())
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	res, err := svc.List(context.Background(), "token", admin, ListParams{Page: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("видно %d подразделений, ожидалось 2", len(res.Items))
	}

	byID := make(map[string]DepartmentView, len(res.Items))
	for _, d := range res.Items {
		byID[d.ID] = d
	}

	it := byID["10"]
	if it.ManagerName != "Иванов" {
		t.Errorf("ManagerName = %q, ожидалось \"Иванов\"", it.ManagerName)
	}
	// Неактивный сотрудник не считается, значение бекенда игнорируется
	if it.EmployeeCount != 2 {
		t.Errorf("EmployeeCount = %d, ожидалось 2", it.EmployeeCount)
	}
	if it.CanDeactivate {
		t.Error("CanDeactivate = true при активных сотрудниках")
	}

	empty := byID["20"]
	if empty.EmployeeCount != 0 || !empty.CanDeactivate {
		t.Errorf("пустое подразделение: EmployeeCount = %d, CanDeactivate = %v",
			empty.EmployeeCount, empty.CanDeactivate)
	}
}

// TestDepartmentService_Update_DeactivateBlocked проверяет блокировку
// деактивации при активных сотрудниках: отказ до обращения к бекенду.
func TestDepartmentService_Update_DeactivateBlocked(t *testing.T) {
	gw := newDepartmentFixture()
	svc := newDepartmentService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	err := svc.Update(context.Background(), "token", admin, "10", DepartmentInput{Name: "ИТ", IsActive: false})
	if !errors.Is(err, ErrDepartmentHasEmployees) {
		t.Fatalf("деактивация: %v, ожидалась ErrDepartmentHasEmployees", err)
	}
	if got := gw.callCount("UpdateDepartment"); got != 0 {
		t.Errorf("UpdateDepartment вызван %d раз, ожидалось 0", got)
	}

	// Обновление без деактивации проходит
	if err := svc.Update(context.Background(), "token", admin, "10", DepartmentInput{Name: "ИТ-отдел", IsActive: true}); err != nil {
		t.Fatalf("обновление без деактивации: %v", err)
	}
	if got := gw.callCount("UpdateDepartment"); got != 1 {
		t.Errorf("UpdateDepartment вызван %d раз, ожидался 1", got)
	}
}

// TestDepartmentService_Update_DeactivateEmpty проверяет, что пустое
// подразделение деактивируется.
func TestDepartmentService_Update_DeactivateEmpty(t *testing.T) {
	gw := newDepartmentFixture()
	svc := newDepartmentService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	if err := svc.Update(context.Background(), "token", admin, "20", DepartmentInput{Name: "Бухгалтерия", IsActive: false}); err != nil {
		t.Fatalf("деактивация пустого подразделения: %v", err)
	}
	if got := gw.callCount("UpdateDepartment"); got != 1 {
		t.Errorf("UpdateDepartment вызван %d раз, ожидался 1", got)
	}
}

// TestDepartmentService_Delete_Blocked проверяет, что правило активных
// сотрудников действует и при удалении.
func TestDepartmentService_Delete_Blocked(t *testing.T) {
	gw := newDepartmentFixture()
	svc := newDepartmentService(gw)
	admin := &model.Actor{ID: "1", Role: model.RoleAdmin}

	if err := svc.Delete(context.Background(), "token", admin, "10"); !errors.Is(err, ErrDepartmentHasEmployees) {
		t.Fatalf("удаление: %v, ожидалась ErrDepartmentHasEmployees", err)
	}
	if got := gw.callCount("DeleteDepartment"); got != 0 {
		t.Errorf("DeleteDepartment вызван %d раз, ожидалось 0", got)
	}

	if err := svc.Delete(context.Background(), "token", admin, "20"); err != nil {
		t.Fatalf("удаление пустого подразделения: %v", err)
	}
	if got := gw.callCount("DeleteDepartment"); got != 1 {
		t.Errorf("DeleteDepartment вызван %d раз, ожидался 1", got)
	}
}
