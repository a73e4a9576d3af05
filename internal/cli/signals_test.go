package cli

import (
	"context"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestSignalHandler_New(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewSignalHandler(cancel)

	if handler == nil {
		t.Fatal("NewSignalHandler(cancel) should not return nil")
	}

	if handler.cancel == nil {
		t.Error("SignalHandler.cancel should be set")
	}

	if handler.signals == nil {
		t.Error("SignalHandler.signals channel should be initialized")
	}

	if handler.shutdown == nil {
		t.Error("SignalHandler.shutdown channel should be initialized")
	}

	if handler.onShutdown == nil {
		t.Error("SignalHandler.onShutdown slice should be initialized")
	}

	if handler.exit == nil {
		t.Error("SignalHandler.exit should default to os.Exit")
	}
}

func TestSignalHandler_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handler := NewSignalHandler(cancel)

	callbackCalled := false

	handler.OnShutdown(func() {
		callbackCalled = true
	})

	handler.StartWithNotify(false)
	defer handler.Stop()

	// Send SIGINT
	handler.signals <- syscall.SIGINT

	// Wait for shutdown to complete
	select {
	case <-handler.shutdown:
		// Shutdown completed
	case <-time.After(1 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}

	if !callbackCalled {
		t.Error("SIGINT should trigger callback execution")
	}

	// Verify context was cancelled
	select {
	case <-ctx.Done():
		// Context was cancelled
	case <-time.After(100 * time.Millisecond):
		t.Error("Context should be cancelled on signal")
	}

	if ctx.Err() != context.Canceled {
		t.Errorf("Expected context.Canceled error, got %v", ctx.Err())
	}
}

func TestSignalHandler_MultipleCallbacks(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewSignalHandler(cancel)

	var mu sync.Mutex
	callOrder := []int{}

	handler.OnShutdown(func() {
		mu.Lock()
		callOrder = append(callOrder, 1)
		mu.Unlock()
	})

	handler.OnShutdown(func() {
		mu.Lock()
		callOrder = append(callOrder, 2)
		mu.Unlock()
	})

	handler.OnShutdown(func() {
		mu.Lock()
		callOrder = append(callOrder, 3)
		mu.Unlock()
	})

	handler.StartWithNotify(false)
	defer handler.Stop()

	// Send SIGTERM
	handler.signals <- syscall.SIGTERM

	// Wait for shutdown to complete
	select {
	case <-handler.shutdown:
		// Shutdown completed
	case <-time.After(1 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}

	mu.Lock()
	defer mu.Unlock()

	if len(callOrder) != 3 {
		t.Errorf("Expected 3 callbacks to be called, got %d", len(callOrder))
	}

	// Verify callbacks were called in registration order
	for i, expected := range []int{1, 2, 3} {
		if i >= len(callOrder) {
			t.Errorf("Missing callback at index %d", i)
			continue
		}
		if callOrder[i] != expected {
			t.Errorf("Callback %d: expected %d, got %d", i, expected, callOrder[i])
		}
	}
}

func TestSignalHandler_SecondSignalForcesExit(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewSignalHandler(cancel)

	exitCode := make(chan int, 1)
	handler.exit = func(code int) {
		exitCode <- code
	}

	handler.StartWithNotify(false)
	defer handler.Stop()

	// First signal triggers the graceful path
	handler.signals <- syscall.SIGINT

	select {
	case <-handler.shutdown:
		// Graceful shutdown ran
	case <-time.After(1 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}

	// Second signal skips cleanup
	handler.signals <- syscall.SIGINT

	select {
	case code := <-exitCode:
		if code != 130 {
			t.Errorf("Expected exit code 130, got %d", code)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Second signal should force an exit")
	}
}

func TestSignalHandler_Stop(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewSignalHandler(cancel)
	handler.StartWithNotify(false)

	// Stop should not panic
	handler.Stop()

	// Verify that sending a signal after Stop doesn't cause issues
	handler.signals <- syscall.SIGINT

	// Give it a moment to ensure nothing bad happens
	time.Sleep(50 * time.Millisecond)
}
