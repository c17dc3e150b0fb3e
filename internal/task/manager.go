package task

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Manager owns the ordered task list and keeps it equal to the persisted copy.
// Every mutation is written to the store in full before it returns; if the
// write fails the previous list is restored.
type Manager struct {
	mu    sync.Mutex
	store Store
	tasks []Task
}

// NewManager creates a manager populated from the store.
func NewManager(ctx context.Context, store Store) *Manager {
	tasks := store.Load(ctx)
	log.FromContext(ctx).Debug("tasks loaded", "count", len(tasks))
	return &Manager{
		store: store,
		tasks: clone(tasks),
	}
}

// Tasks returns a copy of the current list in display order.
func (m *Manager) Tasks() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.tasks)
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Add appends a new, not completed task. Blank text is rejected.
func (m *Manager) Add(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankText
	}
	return m.mutate(ctx, "add", func(tasks []Task) ([]Task, error) {
		return append(tasks, Task{Text: text}), nil
	})
}

// Toggle flips the completion state of the task at index.
func (m *Manager) Toggle(ctx context.Context, index int) error {
	return m.mutate(ctx, "toggle", func(tasks []Task) ([]Task, error) {
		if err := checkIndex(tasks, index); err != nil {
			return nil, err
		}
		tasks[index].Completed = !tasks[index].Completed
		return tasks, nil
	})
}

// Delete removes the task at index, keeping the order of the others.
func (m *Manager) Delete(ctx context.Context, index int) error {
	return m.mutate(ctx, "delete", func(tasks []Task) ([]Task, error) {
		if err := checkIndex(tasks, index); err != nil {
			return nil, err
		}
		return append(tasks[:index], tasks[index+1:]...), nil
	})
}

// Edit replaces the text of the task at index with the trimmed text.
// Blank text is rejected and leaves the task untouched.
func (m *Manager) Edit(ctx context.Context, index int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrBlankText
	}
	return m.mutate(ctx, "edit", func(tasks []Task) ([]Task, error) {
		if err := checkIndex(tasks, index); err != nil {
			return nil, err
		}
		tasks[index].Text = text
		return tasks, nil
	})
}

// Change is a partial update of one task. Nil fields are left as they are.
type Change struct {
	Text      *string
	Completed *bool
}

// Update applies c to the task at index in a single write and returns the
// updated task. Text is trimmed and must not be blank.
func (m *Manager) Update(ctx context.Context, index int, c Change) (Task, error) {
	var text string
	if c.Text != nil {
		text = strings.TrimSpace(*c.Text)
		if text == "" {
			return Task{}, ErrBlankText
		}
	}
	var updated Task
	err := m.mutate(ctx, "update", func(tasks []Task) ([]Task, error) {
		if err := checkIndex(tasks, index); err != nil {
			return nil, err
		}
		if c.Text != nil {
			tasks[index].Text = text
		}
		if c.Completed != nil {
			tasks[index].Completed = *c.Completed
		}
		updated = tasks[index]
		return tasks, nil
	})
	if err != nil {
		return Task{}, err
	}
	return updated, nil
}

// mutate applies fn to a copy of the list, persists the result and only then
// makes it current.
func (m *Manager) mutate(ctx context.Context, op string, fn func([]Task) ([]Task, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(clone(m.tasks))
	if err != nil {
		return err
	}
	if err := m.store.Save(ctx, next); err != nil {
		log.FromContext(ctx).Error("persist failed, list unchanged", "op", op, "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	m.tasks = next
	log.FromContext(ctx).Debug("tasks saved", "op", op, "count", len(next))
	return nil
}

func checkIndex(tasks []Task, index int) error {
	if index < 0 || index >= len(tasks) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return nil
}
