package task_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/testutil"
)

func newManager(t *testing.T) (*task.Manager, *testutil.FakeKV, *storage.TaskStore) {
	t.Helper()
	kv := testutil.NewFakeKV()
	s := storage.NewTaskStore(kv, storage.DefaultKey)
	return task.NewManager(context.Background(), s), kv, s
}

// assertSynced checks that the persisted list equals the manager's list.
func assertSynced(t *testing.T, m *task.Manager, s *storage.TaskStore, want []task.Task) {
	t.Helper()
	got := m.Tasks()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("manager: expected %#v, got %#v", want, got)
	}
	stored := s.Load(context.Background())
	if !reflect.DeepEqual(stored, want) {
		t.Fatalf("store: expected %#v, got %#v", want, stored)
	}
}

func TestManager_Walkthrough(t *testing.T) {
	m, _, s := newManager(t)
	ctx := context.Background()

	assertSynced(t, m, s, []task.Task{})

	if err := m.Add(ctx, "Buy milk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSynced(t, m, s, []task.Task{{Text: "Buy milk"}})

	if err := m.Toggle(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSynced(t, m, s, []task.Task{{Text: "Buy milk", Completed: true}})

	if err := m.Add(ctx, "Walk dog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSynced(t, m, s, []task.Task{{Text: "Buy milk", Completed: true}, {Text: "Walk dog"}})

	if err := m.Delete(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSynced(t, m, s, []task.Task{{Text: "Walk dog"}})
}

func TestManager_LoadsExistingList(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put(storage.DefaultKey, `[{"text":"a","completed":true},{"text":"b","completed":false}]`)
	m := task.NewManager(context.Background(), storage.NewTaskStore(kv, storage.DefaultKey))

	want := []task.Task{{Text: "a", Completed: true}, {Text: "b"}}
	if got := m.Tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestManager_AddBlank(t *testing.T) {
	m, kv, _ := newManager(t)
	ctx := context.Background()

	for _, text := range []string{"", " ", "\t\n  "} {
		err := m.Add(ctx, text)
		if !errors.Is(err, task.ErrBlankText) {
			t.Errorf("text %q: expected ErrBlankText, got %v", text, err)
		}
	}
	if m.Len() != 0 {
		t.Errorf("expected empty list, got %d tasks", m.Len())
	}
	if kv.Sets() != 0 {
		t.Errorf("expected no writes, got %d", kv.Sets())
	}
}

func TestManager_AddKeepsTextVerbatim(t *testing.T) {
	m, _, _ := newManager(t)

	if err := m.Add(context.Background(), "  <i>raw</i>  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Tasks()[0].Text; got != "  <i>raw</i>  " {
		t.Errorf("expected text stored as given, got %q", got)
	}
}

func TestManager_Edit(t *testing.T) {
	m, kv, s := newManager(t)
	ctx := context.Background()
	_ = m.Add(ctx, "Buy milk")
	_ = m.Toggle(ctx, 0)

	if err := m.Edit(ctx, 0, "  Buy oat milk "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSynced(t, m, s, []task.Task{{Text: "Buy oat milk", Completed: true}})

	writes := kv.Sets()
	if err := m.Edit(ctx, 0, "   "); !errors.Is(err, task.ErrBlankText) {
		t.Errorf("expected ErrBlankText, got %v", err)
	}
	if kv.Sets() != writes {
		t.Error("blank edit should not write")
	}
	assertSynced(t, m, s, []task.Task{{Text: "Buy oat milk", Completed: true}})
}

func TestManager_OutOfRange(t *testing.T) {
	m, kv, _ := newManager(t)
	ctx := context.Background()
	_ = m.Add(ctx, "only")
	writes := kv.Sets()

	for _, idx := range []int{-1, 1, 5} {
		if err := m.Toggle(ctx, idx); !errors.Is(err, task.ErrOutOfRange) {
			t.Errorf("toggle %d: expected ErrOutOfRange, got %v", idx, err)
		}
		if err := m.Delete(ctx, idx); !errors.Is(err, task.ErrOutOfRange) {
			t.Errorf("delete %d: expected ErrOutOfRange, got %v", idx, err)
		}
		if err := m.Edit(ctx, idx, "x"); !errors.Is(err, task.ErrOutOfRange) {
			t.Errorf("edit %d: expected ErrOutOfRange, got %v", idx, err)
		}
	}
	if kv.Sets() != writes {
		t.Errorf("expected no writes, got %d", kv.Sets()-writes)
	}
}

func TestManager_SaveFailureRollsBack(t *testing.T) {
	m, kv, s := newManager(t)
	ctx := context.Background()
	_ = m.Add(ctx, "keep")

	kv.SetErr = errors.New("quota exceeded")
	if err := m.Add(ctx, "lost"); !errors.Is(err, kv.SetErr) {
		t.Errorf("expected wrapped save error, got %v", err)
	}
	if err := m.Toggle(ctx, 0); err == nil {
		t.Error("expected save error on toggle")
	}
	if err := m.Delete(ctx, 0); err == nil {
		t.Error("expected save error on delete")
	}

	kv.SetErr = nil
	assertSynced(t, m, s, []task.Task{{Text: "keep"}})
}

func TestManager_TasksIsACopy(t *testing.T) {
	m, _, _ := newManager(t)
	_ = m.Add(context.Background(), "a")

	got := m.Tasks()
	got[0].Text = "mutated"
	if m.Tasks()[0].Text != "a" {
		t.Error("Tasks should return a copy")
	}
}

func TestManager_Apply(t *testing.T) {
	m, _, s := newManager(t)
	ctx := context.Background()

	intents := []task.Intent{
		task.Add("one"),
		task.Add("two"),
		task.Add("three"),
		task.Toggle(1),
		task.Edit(2, "THREE"),
		task.Delete(0),
	}
	for _, in := range intents {
		if err := m.Apply(ctx, in); err != nil {
			t.Fatalf("%s: unexpected error: %v", in.Kind, err)
		}
	}
	assertSynced(t, m, s, []task.Task{{Text: "two", Completed: true}, {Text: "THREE"}})

	err := m.Apply(ctx, task.Intent{Kind: task.IntentKind(42)})
	if !errors.Is(err, task.ErrUnknownIntent) {
		t.Errorf("expected ErrUnknownIntent, got %v", err)
	}
}

func TestIntentKind_String(t *testing.T) {
	cases := map[task.IntentKind]string{
		task.IntentAdd:        "add",
		task.IntentToggle:     "toggle",
		task.IntentDelete:     "delete",
		task.IntentEdit:       "edit",
		task.IntentKind(0):    "intent(0)",
		task.IntentKind(1000): "intent(1000)",
	}
	for kind, expected := range cases {
		if kind.String() != expected {
			t.Errorf("expected %q, got %q", expected, kind.String())
		}
	}
}

func TestManager_UpdateIsOneWrite(t *testing.T) {
	m, kv, s := newManager(t)
	ctx := context.Background()
	_ = m.Add(ctx, "Buy milk")
	writes := kv.Sets()

	text, done := " Buy oat milk ", true
	got, err := m.Update(ctx, 0, task.Change{Text: &text, Completed: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := task.Task{Text: "Buy oat milk", Completed: true}
	if got != want {
		t.Errorf("expected %#v, got %#v", want, got)
	}
	if kv.Sets()-writes != 1 {
		t.Errorf("expected 1 write, got %d", kv.Sets()-writes)
	}
	assertSynced(t, m, s, []task.Task{want})
}

func TestManager_UpdateFailureChangesNothing(t *testing.T) {
	m, kv, s := newManager(t)
	ctx := context.Background()
	_ = m.Add(ctx, "keep")

	text, done := "changed", true
	kv.SetErr = errors.New("disk full")
	if _, err := m.Update(ctx, 0, task.Change{Text: &text, Completed: &done}); !errors.Is(err, kv.SetErr) {
		t.Errorf("expected wrapped save error, got %v", err)
	}
	kv.SetErr = nil
	assertSynced(t, m, s, []task.Task{{Text: "keep"}})

	blank := "  "
	if _, err := m.Update(ctx, 0, task.Change{Text: &blank, Completed: &done}); !errors.Is(err, task.ErrBlankText) {
		t.Errorf("expected ErrBlankText, got %v", err)
	}
	if _, err := m.Update(ctx, 3, task.Change{Completed: &done}); !errors.Is(err, task.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	assertSynced(t, m, s, []task.Task{{Text: "keep"}})
}
