package pkgroutine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0)
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2)
	errOne := errors.New("one")
	errTwo := errors.New("two")

	if err := mgr.Go(context.Background(), func(ctx context.Context) error {
		return errOne
	}); err != nil {
		t.Fatalf("go: %v", err)
	}
	if err := mgr.Go(context.Background(), func(ctx context.Context) error {
		return errTwo
	}); err != nil {
		t.Fatalf("go: %v", err)
	}

	joined := mgr.Wait()
	if joined == nil {
		t.Fatalf("expected errors")
	}
	if !errors.Is(joined, errOne) {
		t.Fatalf("expected errOne to be present")
	}
	if !errors.Is(joined, errTwo) {
		t.Fatalf("expected errTwo to be present")
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1)
	if err := mgr.Go(context.Background(), func(ctx context.Context) error {
		panic("boom")
	}); err != nil {
		t.Fatalf("go: %v", err)
	}

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestManagerGoReturnsErrorWhenFull(t *testing.T) {
	mgr := NewManager(1)
	release := make(chan struct{})

	if err := mgr.Go(context.Background(), func(ctx context.Context) error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("go: %v", err)
	}
	if got := mgr.Running(); got != 1 {
		t.Fatalf("expected 1 running, got %d", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := mgr.Go(ctx, func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrCanceledBeforeStart) {
		t.Fatalf("expected ErrCanceledBeforeStart, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded cause, got %v", err)
	}

	close(release)
	if err := mgr.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
}
