// chatbot.go — прокси чат-бота бекенда.
// Dashboard Module не содержит логики бота: сообщения и история
// пробрасываются как есть, с подстановкой идентификатора субъекта.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/assetboard/dashboard-module/internal/backend"
	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// ChatMessageView — сообщение чат-бота для ответа API.
type ChatMessageView struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response,omitempty"`
	Sender    string    `json:"sender,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatbotService — прокси чат-бота.
type ChatbotService struct {
	gw     Gateway
	logger *slog.Logger
}

// NewChatbotService создаёт прокси чат-бота.
func NewChatbotService(gw Gateway, logger *slog.Logger) *ChatbotService {
	return &ChatbotService{
		gw:     gw,
		logger: logger.With(slog.String("component", "chatbot_service")),
	}
}

// Send отправляет сообщение чат-боту от имени субъекта.
func (s *ChatbotService) Send(ctx context.Context, token string, actor *model.Actor, message string) (*ChatMessageView, error) {
	if strings.TrimSpace(message) == "" {
		return nil, invalid("message", "обязательное поле")
	}
	userID, err := parseID("userId", actor.ID)
	if err != nil {
		return nil, err
	}

	dto, err := s.gw.SendChatMessage(ctx, token, userID, message)
	if err != nil {
		return nil, fmt.Errorf("отправка сообщения чат-боту: %w", err)
	}

	view := chatMessageView(*dto)
	return &view, nil
}

// History возвращает историю переписки субъекта с чат-ботом.
func (s *ChatbotService) History(ctx context.Context, token string, actor *model.Actor) ([]ChatMessageView, error) {
	userID, err := parseID("userId", actor.ID)
	if err != nil {
		return nil, err
	}

	dtos, err := s.gw.ChatHistory(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("чтение истории чат-бота: %w", err)
	}

	views := make([]ChatMessageView, 0, len(dtos))
	for _, dto := range dtos {
		views = append(views, chatMessageView(dto))
	}
	return views, nil
}

// chatMessageView приводит DTO бекенда к представлению API.
func chatMessageView(dto backend.ChatMessageDTO) ChatMessageView {
	createdAt, err := time.Parse(time.RFC3339, dto.CreatedAt)
	if err != nil {
		createdAt = time.Now()
	}
	return ChatMessageView{
		ID:        fmt.Sprintf("%d", dto.ID),
		Message:   dto.Message,
		Response:  dto.Response,
		Sender:    dto.Sender,
		CreatedAt: createdAt,
	}
}
