package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/assetboard/dashboard-module/internal/backend"
)

// testLogger — логгер для тестов, вывод отбрасывается.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockGateway — мок бекенда с фикстурами коллекций и счётчиком вызовов.
// Методы, не перечисленные ниже, наследуются от nil-интерфейса и паникуют:
// тест, которому они нужны, обязан их добавить.
type mockGateway struct {
	Gateway

	mu    sync.Mutex
	calls map[string]int

	assets        []backend.AssetDTO
	assetTypes    []backend.AssetTypeDTO
	departments   []backend.DepartmentDTO
	users         []backend.UserDTO
	history       []backend.AssetHistoryDTO
	notifications []backend.NotificationDTO

	lastEvaluate backend.EvaluatePayload

	err error
}

// record учитывает вызов метода.
func (m *mockGateway) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

// callCount возвращает количество вызовов метода.
func (m *mockGateway) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockGateway) ListAssets(ctx context.Context, token string) ([]backend.AssetDTO, error) {
	m.record("ListAssets")
	return m.assets, m.err
}

func (m *mockGateway) GetAsset(ctx context.Context, token string, id int64) (*backend.AssetDTO, error) {
	m.record("GetAsset")
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.assets {
		if m.assets[i].ID == id {
			return &m.assets[i], nil
		}
	}
	return nil, backend.ErrNotFound
}

func (m *mockGateway) ListAssetTypes(ctx context.Context, token string) ([]backend.AssetTypeDTO, error) {
	m.record("ListAssetTypes")
	return m.assetTypes, m.err
}

func (m *mockGateway) ListDepartments(ctx context.Context, token string) ([]backend.DepartmentDTO, error) {
	m.record("ListDepartments")
	return m.departments, m.err
}

func (m *mockGateway) ListUsers(ctx context.Context, token string) ([]backend.UserDTO, error) {
	m.record("ListUsers")
	return m.users, m.err
}

func (m *mockGateway) ListAssetHistory(ctx context.Context, token string) ([]backend.AssetHistoryDTO, error) {
	m.record("ListAssetHistory")
	return m.history, m.err
}

func (m *mockGateway) ListNotifications(ctx context.Context, token string, userID int64) ([]backend.NotificationDTO, error) {
	m.record("ListNotifications")
	if m.err != nil {
		return nil, m.err
	}
	out := make([]backend.NotificationDTO, 0, len(m.notifications))
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockGateway) CreateAsset(ctx context.Context, token string, p backend.AssetPayload) error {
	m.record("CreateAsset")
	return m.err
}

func (m *mockGateway) UpdateAsset(ctx context.Context, token string, id int64, p backend.AssetPayload) error {
	m.record("UpdateAsset")
	return m.err
}

func (m *mockGateway) DeleteAsset(ctx context.Context, token string, id int64) error {
	m.record("DeleteAsset")
	return m.err
}

func (m *mockGateway) AssignAsset(ctx context.Context, token string, id int64, p backend.AssignPayload) error {
	m.record("AssignAsset")
	return m.err
}

func (m *mockGateway) EvaluateAsset(ctx context.Context, token string, id int64, p backend.EvaluatePayload) error {
	m.record("EvaluateAsset")
	m.mu.Lock()
	m.lastEvaluate = p
	m.mu.Unlock()
	return m.err
}

func (m *mockGateway) ReclaimAsset(ctx context.Context, token string, id int64) error {
	m.record("ReclaimAsset")
	return m.err
}

func (m *mockGateway) CreateDepartment(ctx context.Context, token string, p backend.DepartmentPayload) error {
	m.record("CreateDepartment")
	return m.err
}

func (m *mockGateway) UpdateDepartment(ctx context.Context, token string, id int64, p backend.DepartmentPayload) error {
	m.record("UpdateDepartment")
	return m.err
}

func (m *mockGateway) DeleteDepartment(ctx context.Context, token string, id int64) error {
	m.record("DeleteDepartment")
	return m.err
}

func (m *mockGateway) UpdateNotification(ctx context.Context, token string, id int64, p backend.NotificationPayload) error {
	m.record("UpdateNotification")
	return m.err
}

func (m *mockGateway) DeleteNotification(ctx context.Context, token string, id int64) error {
	m.record("DeleteNotification")
	return m.err
}
