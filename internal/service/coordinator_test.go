package service

import (
	"errors"
	"testing"
)

// TestCoordinator_RejectsConcurrentSameKey проверяет single-flight:
// пока мутация записи выполняется, повторная мутация того же ключа
// отклоняется без вызова fn.
func TestCoordinator_RejectsConcurrentSameKey(t *testing.T) {
	c := NewMutationCoordinator()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- c.Run("asset", "1", func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	called := false
	err := c.Run("asset", "1", func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrMutationInFlight) {
		t.Errorf("повторная мутация: %v, ожидалась ErrMutationInFlight", err)
	}
	if called {
		t.Error("fn повторной мутации вызвана, ожидался отказ до вызова")
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("первая мутация завершилась с ошибкой: %v", err)
	}
}

// TestCoordinator_DifferentKeysProceed проверяет, что мутации разных
// ключей не блокируют друг друга.
func TestCoordinator_DifferentKeysProceed(t *testing.T) {
	c := NewMutationCoordinator()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- c.Run("asset", "1", func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// Другая запись той же сущности
	if err := c.Run("asset", "2", func() error { return nil }); err != nil {
		t.Errorf("мутация другой записи отклонена: %v", err)
	}
	// Та же запись другой сущности
	if err := c.Run("department", "1", func() error { return nil }); err != nil {
		t.Errorf("мутация другой сущности отклонена: %v", err)
	}

	close(release)
	<-done
}

// TestCoordinator_KeyReleasedAfterRun проверяет освобождение ключа
// после завершения мутации, включая завершение с ошибкой.
func TestCoordinator_KeyReleasedAfterRun(t *testing.T) {
	c := NewMutationCoordinator()

	boom := errors.New("бекенд недоступен")
	if err := c.Run("asset", "1", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("ошибка fn не проброшена: %v", err)
	}

	if err := c.Run("asset", "1", func() error { return nil }); err != nil {
		t.Errorf("ключ не освобождён после ошибки: %v", err)
	}
}
