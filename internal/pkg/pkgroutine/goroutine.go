package pkgroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

// ErrCanceledBeforeStart is returned by Go when the context ends while waiting for a slot.
var ErrCanceledBeforeStart = errors.New("goroutine canceled before start")

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// It collects errors returned by tasks and can be waited on using Wait.
type Manager struct {
	mu   sync.Mutex
	errs []error
	wg   *sync.WaitGroup
	sema chan struct{}
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		wg:   &sync.WaitGroup{},
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules f to run in a goroutine once a slot is free.
//
// It blocks while the manager is at its limit. If pCtx ends first, f is not
// run and ErrCanceledBeforeStart is returned.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) error {
	select {
	case g.sema <- struct{}{}:
	case <-pCtx.Done():
		slog.WarnContext(pCtx, "goroutine canceled before start", "because", pCtx.Err())
		return errors.Join(ErrCanceledBeforeStart, pCtx.Err())
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				slog.ErrorContext(pCtx, "panic occurred in goroutine", "because", rvr, "stack", string(stack))
			}
		}()

		select {
		case <-pCtx.Done():
			slog.WarnContext(pCtx, "goroutine canceled", "because", pCtx.Err())
		default:
			if err := f(pCtx); err != nil {
				g.mu.Lock()
				g.errs = append(g.errs, err)
				g.mu.Unlock()
			}
		}
	}()

	return nil
}

// Running returns how many goroutines currently hold a slot.
func (g *Manager) Running() int {
	return len(g.sema)
}

// Wait blocks until all scheduled goroutines finish and returns any collected errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}
