// Пакет service — бизнес-логика Dashboard Module.
// Cache — обобщённый LRU-кэш с TTL поверх hashicorp/golang-lru/v2/expirable.
// Каждый экземпляр Dashboard Module имеет собственный in-memory кэш
// (per-instance, stateless архитектура).
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики кэша, лейбл cache — имя кэша.
var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dm_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш.",
	}, []string{"cache"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dm_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша.",
	}, []string{"cache"})
)

// Cache — LRU-кэш значений типа V с автоматическим TTL.
type Cache[V any] struct {
	name string
	lru  *expirable.LRU[string, V]
}

// NewCache создаёт LRU-кэш с указанным именем (для метрик),
// максимальным размером и TTL записи.
func NewCache[V any](name string, maxSize int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		name: name,
		lru:  expirable.NewLRU[string, V](maxSize, nil, ttl),
	}
}

// Get возвращает значение из кэша по ключу.
// Возвращает (значение, true) при hit или (zero, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	val, ok := c.lru.Get(key)
	if ok {
		cacheHitsTotal.WithLabelValues(c.name).Inc()
		return val, true
	}
	cacheMissesTotal.WithLabelValues(c.name).Inc()
	return val, false
}

// Set добавляет или обновляет значение в кэше.
func (c *Cache[V]) Set(key string, val V) {
	c.lru.Add(key, val)
}

// Delete удаляет значение из кэша (инвалидация после мутации).
func (c *Cache[V]) Delete(key string) {
	c.lru.Remove(key)
}

// Purge очищает кэш целиком.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}
