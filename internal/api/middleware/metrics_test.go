package middleware

import "testing"

// TestNormalizePath проверяет нормализацию путей для лейблов метрик.
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health/live", "/health/live"},
		{"/metrics", "/metrics"},
		{"/api/v1/login", "/api/v1/login"},
		{"/api/v1/dashboard/summary", "/api/v1/dashboard/summary"},
		{"/api/v1/notifications/read-all", "/api/v1/notifications/read-all"},
		{"/api/chatbot/chat", "/api/chatbot/chat"},
		{"/api/v1/assets", "/api/v1/assets"},
		{"/api/v1/assets/42", "/api/v1/assets/{id}"},
		{"/api/v1/assets/42/assign", "/api/v1/assets/{id}/assign"},
		{"/api/v1/assets/42/evaluate", "/api/v1/assets/{id}/evaluate"},
		{"/api/v1/notifications/7/read", "/api/v1/notifications/{id}/read"},
		{"/api/v1/departments/100500", "/api/v1/departments/{id}"},
		// Нечисловой сегмент не трогаем
		{"/api/v1/asset-types", "/api/v1/asset-types"},
		{"/неизвестный/путь", "/неизвестный/путь"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидалось %q", tt.path, got, tt.want)
		}
	}
}

// TestIsNumeric проверяет распознавание числовых сегментов.
func TestIsNumeric(t *testing.T) {
	for _, s := range []string{"1", "42", "100500"} {
		if !isNumeric(s) {
			t.Errorf("isNumeric(%q) = false, ожидалось true", s)
		}
	}
	for _, s := range []string{"", "abc", "4a2", "read-all", "-1"} {
		if isNumeric(s) {
			t.Errorf("isNumeric(%q) = true, ожидалось false", s)
		}
	}
}
