package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownEvent = errors.New("unknown event")

// Handler reacts to one named event against the session state S.
//
// A nil response with a nil error means "no update".
type Handler[S any] func(ctx context.Context, state S, payload any) (any, error)

// Registry maps event names to handlers.
type Registry[S any] struct {
	mu       sync.RWMutex
	handlers map[string]Handler[S]
}

func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{handlers: make(map[string]Handler[S])}
}

// On registers h for name, replacing any previous handler.
func (r *Registry[S]) On(name string, h Handler[S]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[name] = h
}

func (r *Registry[S]) lookup(name string) (Handler[S], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	return h, nil
}

// Names lists the registered event names in sorted order.
func (r *Registry[S]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
