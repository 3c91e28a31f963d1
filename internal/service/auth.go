// auth.go — прокси аутентификации: вход выполняет бекенд, Dashboard Module
// только пробрасывает учётные данные и возвращает выданный токен.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/assetboard/dashboard-module/internal/backend"
)

// ErrInvalidCredentials — бекенд отклонил учётные данные.
var ErrInvalidCredentials = errors.New("неверные учётные данные")

// AuthService — прокси входа.
type AuthService struct {
	gw     Gateway
	logger *slog.Logger
}

// NewAuthService создаёт прокси аутентификации.
func NewAuthService(gw Gateway, logger *slog.Logger) *AuthService {
	return &AuthService{
		gw:     gw,
		logger: logger.With(slog.String("component", "auth_service")),
	}
}

// Login выполняет вход и возвращает JWT бекенда.
// Пароль не логируется ни при каком исходе.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return "", invalid("email", "некорректный адрес электронной почты")
	}
	if password == "" {
		return "", invalid("password", "обязательное поле")
	}

	token, err := s.gw.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			s.logger.Warn("Вход отклонён", slog.String("email", email))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("вход через бекенд: %w", err)
	}

	s.logger.Info("Вход выполнен", slog.String("email", email))
	return token, nil
}
