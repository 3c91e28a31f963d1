// store.go — кэширующая прослойка чтения коллекций бекенда.
// Сначала проверяется LRU-кэш, при промахе — запрос к бекенду, результат
// нормализуется и кэшируется. Мутации инвалидируют соответствующую
// коллекцию, следующее чтение перечитывает её заново.
//
// Коллекции у бекенда глобальные, ограничение видимости выполняется
// после чтения (пакет scope), поэтому кэш общий для всех субъектов.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/assetboard/dashboard-module/internal/domain/model"
	"github.com/assetboard/dashboard-module/internal/normalize"
)

// Ключ кэша коллекции: коллекция в кэше одна.
const collectionKey = "all"

// Store — кэширующее чтение коллекций бекенда.
type Store struct {
	gw Gateway

	assets      *Cache[[]model.Asset]
	assetTypes  *Cache[[]model.AssetType]
	departments *Cache[[]model.Department]
	users       *Cache[[]model.User]
	history     *Cache[[]model.AssetHistory]
}

// NewStore создаёт кэширующую прослойку.
// maxSize и ttl применяются к каждой коллекции отдельно.
func NewStore(gw Gateway, maxSize int, ttl time.Duration) *Store {
	return &Store{
		gw:          gw,
		assets:      NewCache[[]model.Asset]("assets", maxSize, ttl),
		assetTypes:  NewCache[[]model.AssetType]("asset_types", maxSize, ttl),
		departments: NewCache[[]model.Department]("departments", maxSize, ttl),
		users:       NewCache[[]model.User]("users", maxSize, ttl),
		history:     NewCache[[]model.AssetHistory]("asset_history", maxSize, ttl),
	}
}

// Assets возвращает коллекцию активов (из кэша или от бекенда).
func (s *Store) Assets(ctx context.Context, token string) ([]model.Asset, error) {
	if cached, ok := s.assets.Get(collectionKey); ok {
		return cached, nil
	}
	dtos, err := s.gw.ListAssets(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("чтение активов: %w", err)
	}
	items := normalize.Assets(dtos)
	s.assets.Set(collectionKey, items)
	return items, nil
}

// AssetTypes возвращает коллекцию типов активов.
func (s *Store) AssetTypes(ctx context.Context, token string) ([]model.AssetType, error) {
	if cached, ok := s.assetTypes.Get(collectionKey); ok {
		return cached, nil
	}
	dtos, err := s.gw.ListAssetTypes(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("чтение типов активов: %w", err)
	}
	items := normalize.AssetTypes(dtos)
	s.assetTypes.Set(collectionKey, items)
	return items, nil
}

// Departments возвращает коллекцию подразделений.
func (s *Store) Departments(ctx context.Context, token string) ([]model.Department, error) {
	if cached, ok := s.departments.Get(collectionKey); ok {
		return cached, nil
	}
	dtos, err := s.gw.ListDepartments(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("чтение подразделений: %w", err)
	}
	items := normalize.Departments(dtos)
	s.departments.Set(collectionKey, items)
	return items, nil
}

// Users возвращает коллекцию пользователей.
func (s *Store) Users(ctx context.Context, token string) ([]model.User, error) {
	if cached, ok := s.users.Get(collectionKey); ok {
		return cached, nil
	}
	dtos, err := s.gw.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("чтение пользователей: %w", err)
	}
	items := normalize.Users(dtos)
	s.users.Set(collectionKey, items)
	return items, nil
}

// AssetHistory возвращает журнал операций.
func (s *Store) AssetHistory(ctx context.Context, token string) ([]model.AssetHistory, error) {
	if cached, ok := s.history.Get(collectionKey); ok {
		return cached, nil
	}
	dtos, err := s.gw.ListAssetHistory(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("чтение журнала операций: %w", err)
	}
	items := normalize.AssetHistories(dtos)
	s.history.Set(collectionKey, items)
	return items, nil
}

// InvalidateAssets сбрасывает кэш активов и журнала: любая мутация актива
// порождает запись журнала.
func (s *Store) InvalidateAssets() {
	s.assets.Delete(collectionKey)
	s.history.Delete(collectionKey)
}

// InvalidateAssetTypes сбрасывает кэш типов активов.
func (s *Store) InvalidateAssetTypes() {
	s.assetTypes.Delete(collectionKey)
}

// InvalidateDepartments сбрасывает кэш подразделений.
func (s *Store) InvalidateDepartments() {
	s.departments.Delete(collectionKey)
}

// InvalidateUsers сбрасывает кэш пользователей.
func (s *Store) InvalidateUsers() {
	s.users.Delete(collectionKey)
}
