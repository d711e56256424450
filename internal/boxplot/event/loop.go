package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

var ErrLoopClosed = errors.New("event loop is closed")

// Runner starts the loop worker. pkgroutine.Manager satisfies it.
type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error) error
}

type reply struct {
	resp any
	err  error
}

type envelope struct {
	ctx     context.Context
	name    string
	payload any
	reply   chan reply
}

// Loop delivers events to handlers one at a time, in arrival order.
type Loop[S any] struct {
	registry *Registry[S]
	state    S

	mu     sync.RWMutex
	closed bool
	ch     chan envelope
	done   chan struct{}
}

func NewLoop[S any](registry *Registry[S], state S, buffer int) *Loop[S] {
	if buffer < 1 {
		buffer = 1
	}

	return &Loop[S]{
		registry: registry,
		state:    state,
		ch:       make(chan envelope, buffer),
		done:     make(chan struct{}),
	}
}

// Start runs the single worker on runner. The worker lives until Stop, so a
// canceled ctx never strands queued events. Start blocks while runner is full.
func (l *Loop[S]) Start(ctx context.Context, runner Runner) error {
	select {
	case <-ctx.Done():
		l.abort()
		return ctx.Err()
	default:
	}

	err := runner.Go(context.WithoutCancel(ctx), func(context.Context) error {
		l.work()
		return nil
	})
	if err != nil {
		l.abort()
	}
	return err
}

func (l *Loop[S]) abort() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.closed {
		l.closed = true
		close(l.ch)
		close(l.done)
	}
}

func (l *Loop[S]) work() {
	defer close(l.done)

	for ev := range l.ch {
		resp, err := l.handle(ev)
		ev.reply <- reply{resp: resp, err: err}
	}
}

func (l *Loop[S]) handle(ev envelope) (resp any, err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ev.ctx, "panic occurred in event handler", "event", ev.name, "because", rvr, "stack", string(debug.Stack()))
			resp, err = nil, fmt.Errorf("event %q: handler panicked: %v", ev.name, rvr)
		}
	}()

	h, err := l.registry.lookup(ev.name)
	if err != nil {
		return nil, err
	}

	return h(ev.ctx, l.state, ev.payload)
}

// Dispatch enqueues an event and waits for the handler result.
//
// If ctx ends before the event is queued it is dropped. Once queued the handler
// runs to completion even when the caller stops waiting.
func (l *Loop[S]) Dispatch(ctx context.Context, name string, payload any) (any, error) {
	ev := envelope{
		ctx:     context.WithoutCancel(ctx),
		name:    name,
		payload: payload,
		reply:   make(chan reply, 1),
	}

	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return nil, ErrLoopClosed
	}

	select {
	case l.ch <- ev:
		l.mu.RUnlock()
	case <-ctx.Done():
		l.mu.RUnlock()
		return nil, ctx.Err()
	}

	select {
	case r := <-ev.reply:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop closes the loop and waits for queued events to drain.
func (l *Loop[S]) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
	l.mu.Unlock()

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
