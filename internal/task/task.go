// Package task holds the to-do list model and the manager that keeps it in
// sync with the persisted store.
package task

import (
	"context"
	"errors"
)

var (
	// ErrBlankText is returned when a task text is empty or whitespace-only.
	ErrBlankText = errors.New("text required")

	// ErrOutOfRange is returned when an index does not name a task.
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnknownIntent is returned by Apply for an unrecognised intent kind.
	ErrUnknownIntent = errors.New("unknown intent")
)

// Task represents a single to-do entry.
// Identity is positional: a task is addressed by its index in the list.
type Task struct {
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Store persists the whole list under a single key.
//
// Load never fails: an absent or unreadable value yields an empty list.
// Save overwrites whatever was stored before.
type Store interface {
	Load(ctx context.Context) []Task
	Save(ctx context.Context, tasks []Task) error
}

// clone returns a copy of tasks that never aliases the input.
func clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
