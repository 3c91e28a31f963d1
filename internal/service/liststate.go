// liststate.go — хранилище позиций списочных экранов.
// Позиция привязана к паре (субъект, экран) и живёт в LRU с TTL:
// после долгого бездействия субъект начинает с первой страницы.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/assetboard/dashboard-module/internal/query"
)

// Имена списочных экранов.
const (
	ScreenAssets      = "assets"
	ScreenAssetTypes  = "asset-types"
	ScreenDepartments = "departments"
	ScreenUsers       = "users"
)

// ListStateStore — позиции списочных экранов всех субъектов.
type ListStateStore struct {
	lru *expirable.LRU[string, *query.ListState]
}

// NewListStateStore создаёт хранилище позиций.
// maxSize — максимальное количество пар (субъект, экран), ttl — время
// жизни позиции с момента создания.
func NewListStateStore(maxSize int, ttl time.Duration) *ListStateStore {
	return &ListStateStore{
		lru: expirable.NewLRU[string, *query.ListState](maxSize, nil, ttl),
	}
}

// For возвращает состояние экрана для субъекта, создавая его при
// отсутствии. Возможная гонка двух первых запросов одного субъекта
// безвредна: проигравший экземпляр начнёт с первой страницы.
func (s *ListStateStore) For(actorID, screen string) *query.ListState {
	key := actorID + "/" + screen
	if state, ok := s.lru.Get(key); ok {
		return state
	}
	state := query.NewListState()
	s.lru.Add(key, state)
	return state
}
