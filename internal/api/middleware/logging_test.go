package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// TestRequestLogger_ActorInLog проверяет, что субъект, опубликованный
// внутренним слоем цепочки, попадает в лог запроса: логирующий слой
// стоит раньше JWT middleware и контекст внутренних обработчиков не видит.
func TestRequestLogger_ActorInLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		publishActor(w, &model.Actor{ID: "7", Role: model.RoleManager})
		w.WriteHeader(http.StatusOK)
	})

	h := RequestLogger(logger)(inner)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))

	line := buf.String()
	if !strings.Contains(line, `"actor_id":"7"`) {
		t.Errorf("в логе нет actor_id: %s", line)
	}
	if !strings.Contains(line, `"actor_role":"MANAGER"`) {
		t.Errorf("в логе нет actor_role: %s", line)
	}
}

// TestRequestLogger_ActorThroughWrapperChain проверяет публикацию субъекта
// через промежуточную обёртку ResponseWriter (цепочка Unwrap).
func TestRequestLogger_ActorThroughWrapperChain(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		publishActor(w, &model.Actor{ID: "42", Role: model.RoleAdmin})
		w.WriteHeader(http.StatusOK)
	})

	// Между логирующим слоем и публикацией стоит ещё одна обёртка
	h := RequestLogger(logger)(MetricsMiddleware()(inner))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))

	if !strings.Contains(buf.String(), `"actor_id":"42"`) {
		t.Errorf("субъект не прошёл через цепочку обёрток: %s", buf.String())
	}
}

// TestRequestLogger_NoActor проверяет, что запрос без субъекта
// логируется без полей actor_id/actor_role.
func TestRequestLogger_NoActor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := RequestLogger(logger)(inner)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if strings.Contains(buf.String(), "actor_id") {
		t.Errorf("actor_id в логе запроса без субъекта: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"status":200`) {
		t.Errorf("в логе нет статуса: %s", buf.String())
	}
}
