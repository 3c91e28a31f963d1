// notification.go — сервис уведомлений.
// Уведомления строго персональные: субъект видит и изменяет только свои.
// Коллекция читается у бекенда по получателю и не кэшируется — счётчик
// непрочитанных должен быть актуальным.
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
	"github.com/assetboard/dashboard-module/internal/scope"
)

// markAllConcurrency — предел конкурентных запросов mark-read при
// массовом прочтении.
const markAllConcurrency = 4

// NotificationView — уведомление для ответа API.
type NotificationView struct {
	ID        string                 `json:"id"`
	AssetID   string                 `json:"assetId,omitempty"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      model.NotificationType `json:"type"`
	IsRead    bool                   `json:"isRead"`
	LinkURL   string                 `json:"linkUrl,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// NotificationListResult — уведомления субъекта со счётчиком непрочитанных.
type NotificationListResult struct {
	Items       []NotificationView `json:"items"`
	UnreadCount int                `json:"unreadCount"`
}

// NotificationService — операции над уведомлениями.
type NotificationService struct {
	gw     Gateway
	coord  *MutationCoordinator
	logger *slog.Logger
}

// NewNotificationService создаёт сервис уведомлений.
func NewNotificationService(gw Gateway, coord *MutationCoordinator, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		gw:     gw,
		coord:  coord,
		logger: logger.With(slog.String("component", "notification_service")),
	}
}

// List возвращает уведомления субъекта в обратном хронологическом порядке.
func (s *NotificationService) List(ctx context.Context, token string, actor *model.Actor) (*NotificationListResult, error) {
	items, err := s.fetch(ctx, token, actor)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	views := make([]NotificationView, 0, len(items))
	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
		views = append(views, NotificationView{
			ID:        n.ID,
			AssetID:   n.AssetID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			LinkURL:   n.LinkURL,
			CreatedAt: n.CreatedAt,
		})
	}

	return &NotificationListResult{Items: views, UnreadCount: unread}, nil
}

// MarkRead помечает уведомление прочитанным.
// Чужое уведомление неотличимо от несуществующего (ErrNotFound).
func (s *NotificationService) MarkRead(ctx context.Context, token string, actor *model.Actor, id string) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}

	items, err := s.fetch(ctx, token, actor)
	if err != nil {
		return err
	}
	target := findNotification(items, id)
	if target == nil {
		return ErrNotFound
	}
	if target.IsRead {
		return nil
	}

	return s.coord.Run("notification", id, func() error {
		if err := s.gw.UpdateNotification(ctx, token, backendID, markReadPayload(*target)); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("прочтение уведомления %s: %w", id, err)
		}
		return nil
	})
}

// MarkAllRead помечает все уведомления субъекта прочитанными.
// Запросы к бекенду выполняются конкурентно с ограничением; первая ошибка
// прерывает операцию, уже прочитанные уведомления остаются прочитанными.
func (s *NotificationService) MarkAllRead(ctx context.Context, token string, actor *model.Actor) (int, error) {
	items, err := s.fetch(ctx, token, actor)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(markAllConcurrency)
	marked := 0
	for _, n := range items {
		if n.IsRead {
			continue
		}
		marked++
		backendID, err := parseID("id", n.ID)
		if err != nil {
			return 0, err
		}
		payload := markReadPayload(n)
		g.Go(func() error {
			return s.gw.UpdateNotification(gctx, token, backendID, payload)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("массовое прочтение уведомлений: %w", err)
	}

	s.logger.Info("Уведомления прочитаны", slog.Int("count", marked), slog.String("actor_id", actor.ID))
	return marked, nil
}

// Delete удаляет уведомление субъекта.
func (s *NotificationService) Delete(ctx context.Context, token string, actor *model.Actor, id string) error {
	backendID, err := parseID("id", id)
	if err != nil {
		return err
	}

	items, err := s.fetch(ctx, token, actor)
	if err != nil {
		return err
	}
	if findNotification(items, id) == nil {
		return ErrNotFound
	}

	return s.coord.Run("notification", id, func() error {
		if err := s.gw.DeleteNotification(ctx, token, backendID); err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("удаление уведомления %s: %w", id, err)
		}
		return nil
	})
}

// fetch читает уведомления субъекта и дополнительно скоупит их:
// бекенд уже фильтрует по получателю, но чужие записи в ответе
// отбрасываются в любом случае.
func (s *NotificationService) fetch(ctx context.Context, token string, actor *model.Actor) ([]model.Notification, error) {
	userID, err := parseID("userId", actor.ID)
	if err != nil {
		return nil, err
	}
	dtos, err := s.gw.ListNotifications(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("чтение уведомлений: %w", err)
	}
	return scope.Notifications(normalize.Notifications(dtos), actor), nil
}

// findNotification ищет уведомление по id.
func findNotification(items []model.Notification, id string) *model.Notification {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// markReadPayload собирает тело update с установленным isRead:
// бекенд ожидает полную запись, а не patch.
func markReadPayload(n model.Notification) backend.NotificationPayload {
	p := backend.NotificationPayload{
		Title:   n.Title,
		Message: n.Message,
		Type:    string(n.Type),
		IsRead:  true,
		LinkURL: n.LinkURL,
	}
	if userID, err := parseID("userId", n.UserID); err == nil {
		p.UserID = userID
	}
	if n.AssetID != "" {
		if assetID, err := parseID("assetId", n.AssetID); err == nil {
			p.AssetID = &assetID
		}
	}
	return p
}
