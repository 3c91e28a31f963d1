// coordinator.go — Mutation Coordinator: сериализация мутаций одной записи.
// Пока мутация записи выполняется, повторная мутация того же ключа
// отклоняется с ErrMutationInFlight — защита от двойного клика и
// конкурирующих вкладок. Ключ — пара сущность:идентификатор.
package service

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики мутаций.
var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dm_mutations_total",
		Help: "Общее количество мутаций по сущностям и результатам.",
	}, []string{"entity", "result"})
	mutationsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dm_mutations_in_flight",
		Help: "Количество выполняющихся мутаций.",
	})
)

// MutationCoordinator — single-flight для мутаций записей.
type MutationCoordinator struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewMutationCoordinator создаёт координатор мутаций.
func NewMutationCoordinator() *MutationCoordinator {
	return &MutationCoordinator{
		inFlight: make(map[string]struct{}),
	}
}

// Run выполняет мутацию fn под ключом entity:id.
// Если мутация того же ключа уже выполняется, возвращает
// ErrMutationInFlight, не вызывая fn. Ошибка fn возвращается как есть.
func (c *MutationCoordinator) Run(entity, id string, fn func() error) error {
	key := entity + ":" + id

	c.mu.Lock()
	if _, busy := c.inFlight[key]; busy {
		c.mu.Unlock()
		mutationsTotal.WithLabelValues(entity, "rejected").Inc()
		return ErrMutationInFlight
	}
	c.inFlight[key] = struct{}{}
	c.mu.Unlock()

	mutationsInFlight.Inc()
	defer func() {
		mutationsInFlight.Dec()
		c.mu.Lock()
		delete(c.inFlight, key)
		c.mu.Unlock()
	}()

	if err := fn(); err != nil {
		mutationsTotal.WithLabelValues(entity, "error").Inc()
		return err
	}
	mutationsTotal.WithLabelValues(entity, "ok").Inc()
	return nil
}
