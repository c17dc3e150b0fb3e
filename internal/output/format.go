// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

// EmptyMessage is printed by list when there is nothing to show.
const EmptyMessage = "no tasks found"

// Filter selects which tasks a listing shows.
type Filter int

const (
	// All shows every task.
	All Filter = iota
	// OpenOnly shows tasks that are not completed.
	OpenOnly
	// DoneOnly shows completed tasks.
	DoneOnly
)

// Match reports whether t passes the filter.
func (f Filter) Match(t task.Task) bool {
	switch f {
	case OpenOnly:
		return !t.Completed
	case DoneOnly:
		return t.Completed
	default:
		return true
	}
}

// FormatTask formats a task line.
// Format: "{N:>4}  [ ] {TEXT}\n", with [x] for completed tasks.
func FormatTask(w io.Writer, num int, t task.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, mark, normalizeText(t.Text))
}

// RenderList writes the tasks matching f, numbered by position in the full
// list so the numbers stay valid for done, edit and rm.
// Returns the number of lines written.
func RenderList(w io.Writer, tasks []task.Task, f Filter) int {
	n := 0
	for i, t := range tasks {
		if !f.Match(t) {
			continue
		}
		FormatTask(w, i+1, t)
		n++
	}
	return n
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
