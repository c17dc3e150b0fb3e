// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
)

// FakeKV is an in-memory implementation of storage.KV for testing.
type FakeKV struct {
	mu     sync.RWMutex
	values map[string]string
	sets   int

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error

	Closed bool
}

// NewFakeKV creates an empty FakeKV.
func NewFakeKV() *FakeKV {
	return &FakeKV{values: make(map[string]string)}
}

// Put stores a raw value without counting it as a write.
func (f *FakeKV) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Raw returns the raw stored value for key.
func (f *FakeKV) Raw(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Sets returns how many successful Set calls were made.
func (f *FakeKV) Sets() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sets
}

// Get implements storage.KV.
func (f *FakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements storage.KV.
func (f *FakeKV) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.sets++
	return nil
}

// Close implements storage.KV.
func (f *FakeKV) Close() error {
	f.Closed = true
	return f.CloseErr
}
