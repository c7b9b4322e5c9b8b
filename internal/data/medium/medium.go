// Package medium contains the key-value media a booking store can persist to.
//
// A medium only knows about opaque string values under string keys. Parsing,
// seeding and corruption recovery live in the repository layer.
package medium

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable is returned when the medium cannot be used at all in this
// execution context.
var ErrUnavailable = errors.New("storage medium unavailable")

type Medium interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// Memory is a process-local medium. Values survive only as long as the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Unavailable models an execution context without persistent storage.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (Unavailable) Set(context.Context, string, string) error {
	return ErrUnavailable
}
