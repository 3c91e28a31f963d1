package service

import (
	"testing"
	"time"
)

// TestCache_GetSet проверяет базовые операции кэша.
func TestCache_GetSet(t *testing.T) {
	c := NewCache[string]("test_get_set", 10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get по отсутствующему ключу вернул hit")
	}

	c.Set("key", "значение")
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get после Set вернул miss")
	}
	if got != "значение" {
		t.Errorf("Get = %q, ожидалось %q", got, "значение")
	}

	// Повторный Set обновляет значение
	c.Set("key", "новое")
	if got, _ := c.Get("key"); got != "новое" {
		t.Errorf("после обновления Get = %q, ожидалось %q", got, "новое")
	}
}

// TestCache_Delete проверяет точечную инвалидацию.
func TestCache_Delete(t *testing.T) {
	c := NewCache[int]("test_delete", 10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("значение доступно после Delete")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Delete задел соседний ключ")
	}
}

// TestCache_Purge проверяет полную очистку.
func TestCache_Purge(t *testing.T) {
	c := NewCache[int]("test_purge", 10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()

	if _, ok := c.Get("a"); ok {
		t.Error("значение доступно после Purge")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("значение доступно после Purge")
	}
}

// TestCache_TTLExpiration проверяет истечение записи по TTL.
func TestCache_TTLExpiration(t *testing.T) {
	c := NewCache[string]("test_ttl", 10, 50*time.Millisecond)

	c.Set("key", "значение")
	if _, ok := c.Get("key"); !ok {
		t.Fatal("значение недоступно сразу после Set")
	}

	time.Sleep(120 * time.Millisecond)
	if _, ok := c.Get("key"); ok {
		t.Error("значение доступно после истечения TTL")
	}
}

// TestCache_Eviction проверяет вытеснение при переполнении.
func TestCache_Eviction(t *testing.T) {
	c := NewCache[int]("test_eviction", 2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Старейший ключ вытеснен
	if _, ok := c.Get("a"); ok {
		t.Error("старейший ключ не вытеснен при переполнении")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("новейший ключ недоступен")
	}
}

// TestCache_SliceValues проверяет кэширование срезов —
// основной сценарий Store.
func TestCache_SliceValues(t *testing.T) {
	c := NewCache[[]string]("test_slices", 10, time.Minute)

	c.Set("all", []string{"a", "b"})
	got, ok := c.Get("all")
	if !ok || len(got) != 2 || got[0] != "a" {
		t.Errorf("Get = %v, %v", got, ok)
	}
}
