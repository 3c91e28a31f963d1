// logging.go — middleware логирования входящих HTTP-запросов через slog.
// Перехватывает статус-код, размер ответа и длительность обработки.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/assetboard/dashboard-module/internal/domain/model"
)

// responseWriter — обёртка для перехвата статус-кода ответа и субъекта.
// Логирующий слой стоит в цепочке раньше JWT middleware и не видит
// контекст внутренних обработчиков, поэтому субъект передаётся наружу
// через обёртку, а не через контекст.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
	actor      *model.Actor
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// actorSink принимает субъекта от внутренних слоёв цепочки.
type actorSink interface {
	setActor(*model.Actor)
}

func (rw *responseWriter) setActor(a *model.Actor) {
	rw.actor = a
}

// publishActor передаёт субъекта логирующему слою через цепочку обёрток
// ResponseWriter. Если логирующего слоя в цепочке нет, вызов безвреден.
func publishActor(w http.ResponseWriter, actor *model.Actor) {
	for w != nil {
		if sink, ok := w.(actorSink); ok {
			sink.setActor(actor)
			return
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return
		}
		w = u.Unwrap()
	}
}

// RequestLogger возвращает middleware, логирующий каждый HTTP-запрос:
// метод, путь, статус, длительность, размер ответа, remote_addr, субъект.
// Уровень логирования зависит от статус-кода: INFO (1xx-3xx), WARN (4xx), ERROR (5xx).
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			// Уровень логирования зависит от статус-кода
			level := slog.LevelInfo
			if wrapped.statusCode >= 500 {
				level = slog.LevelError
			} else if wrapped.statusCode >= 400 {
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", duration),
				slog.Int64("bytes", wrapped.written),
				slog.String("remote_addr", r.RemoteAddr),
			}
			// Субъекта публикует JWT middleware через publishActor
			if wrapped.actor != nil {
				attrs = append(attrs,
					slog.String("actor_id", wrapped.actor.ID),
					slog.String("actor_role", string(wrapped.actor.Role)),
				)
			}

			logger.LogAttrs(r.Context(), level, "HTTP запрос", attrs...)
		})
	}
}
