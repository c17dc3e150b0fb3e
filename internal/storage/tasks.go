package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/task"
)

// DefaultKey is the key the task list is stored under.
const DefaultKey = "todoListData"

// tasksSchema describes the stored document. It is advisory only: a document
// that fails it is still loaded as far as it parses.
const tasksSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text"],
    "properties": {
      "text": {"type": "string"},
      "completed": {"type": "boolean"},
      "checked": {"type": "boolean"}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("tasks.schema.json", tasksSchema)

// record is the stored shape of a task. Checked is the field name used by the
// older page variant and is only read.
type record struct {
	Text      string `json:"text"`
	Completed *bool  `json:"completed,omitempty"`
	Checked   *bool  `json:"checked,omitempty"`
}

// TaskStore persists a task list as a JSON array under one key of a KV.
// It implements task.Store.
type TaskStore struct {
	kv  KV
	key string
}

// NewTaskStore returns a TaskStore for key, or DefaultKey if key is empty.
func NewTaskStore(kv KV, key string) *TaskStore {
	if key == "" {
		key = DefaultKey
	}
	return &TaskStore{kv: kv, key: key}
}

// Key returns the store key.
func (s *TaskStore) Key() string { return s.key }

// Load implements task.Store. Absent, unreadable or unparsable data yields an
// empty list.
func (s *TaskStore) Load(ctx context.Context) []task.Task {
	logger := log.FromContext(ctx)

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		logger.Warn("read stored tasks, starting empty", "key", s.key, "err", err)
		return []task.Task{}
	}
	if !ok {
		return []task.Task{}
	}

	tasks, err := Decode([]byte(raw))
	if err != nil {
		logger.Warn("stored tasks unparsable, starting empty", "key", s.key, "err", err)
		return []task.Task{}
	}
	if err := Validate([]byte(raw)); err != nil {
		logger.Warn("stored tasks do not match schema", "key", s.key, "err", err)
	}
	return tasks
}

// Save implements task.Store.
func (s *TaskStore) Save(ctx context.Context, tasks []task.Task) error {
	b, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Encode returns the stored form of tasks. An empty list encodes as [].
func Encode(tasks []task.Task) ([]byte, error) {
	recs := make([]record, len(tasks))
	for i, t := range tasks {
		completed := t.Completed
		recs[i] = record{Text: t.Text, Completed: &completed}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(recs); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses the stored form. Missing fields take their zero value; a
// record without "completed" falls back to "checked".
func Decode(b []byte) ([]task.Task, error) {
	var recs []record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(recs))
	for _, r := range recs {
		t := task.Task{Text: r.Text}
		switch {
		case r.Completed != nil:
			t.Completed = *r.Completed
		case r.Checked != nil:
			t.Completed = *r.Checked
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Validate checks b against the stored document schema.
func Validate(b []byte) error {
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	return compiledSchema.Validate(doc)
}
