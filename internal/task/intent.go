package task

import (
	"context"
	"fmt"
)

// IntentKind identifies the user action an Intent carries.
type IntentKind int

const (
	IntentAdd IntentKind = iota + 1
	IntentToggle
	IntentDelete
	IntentEdit
)

func (k IntentKind) String() string {
	switch k {
	case IntentAdd:
		return "add"
	case IntentToggle:
		return "toggle"
	case IntentDelete:
		return "delete"
	case IntentEdit:
		return "edit"
	default:
		return fmt.Sprintf("intent(%d)", int(k))
	}
}

// Intent is one user action produced by a surface (CLI, web page, terminal UI).
// Index is ignored for IntentAdd; Text is ignored for IntentToggle and IntentDelete.
type Intent struct {
	Kind  IntentKind
	Index int
	Text  string
}

// Add returns an intent that appends a task.
func Add(text string) Intent { return Intent{Kind: IntentAdd, Text: text} }

// Toggle returns an intent that flips the completion of the task at index.
func Toggle(index int) Intent { return Intent{Kind: IntentToggle, Index: index} }

// Delete returns an intent that removes the task at index.
func Delete(index int) Intent { return Intent{Kind: IntentDelete, Index: index} }

// Edit returns an intent that replaces the text of the task at index.
func Edit(index int, text string) Intent { return Intent{Kind: IntentEdit, Index: index, Text: text} }

// Apply dispatches an intent to the matching Manager operation.
func (m *Manager) Apply(ctx context.Context, in Intent) error {
	switch in.Kind {
	case IntentAdd:
		return m.Add(ctx, in.Text)
	case IntentToggle:
		return m.Toggle(ctx, in.Index)
	case IntentDelete:
		return m.Delete(ctx, in.Index)
	case IntentEdit:
		return m.Edit(ctx, in.Index, in.Text)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownIntent, in.Kind)
	}
}
