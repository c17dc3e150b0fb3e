package task_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/testutil"
)

var taskGen = rapid.Custom(func(t *rapid.T) task.Task {
	return task.Task{
		Text:      rapid.String().Draw(t, "text"),
		Completed: rapid.Bool().Draw(t, "completed"),
	}
})

// seeded returns a manager whose store already holds tasks.
func seeded(t *rapid.T, tasks []task.Task) (*task.Manager, *storage.TaskStore) {
	kv := testutil.NewFakeKV()
	s := storage.NewTaskStore(kv, storage.DefaultKey)
	if err := s.Save(context.Background(), tasks); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return task.NewManager(context.Background(), s), s
}

func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := rapid.SliceOf(taskGen).Draw(t, "tasks")
		_, s := seeded(t, tasks)

		got := s.Load(context.Background())
		if len(tasks) == 0 {
			if len(got) != 0 {
				t.Fatalf("expected empty list, got %#v", got)
			}
			return
		}
		if !reflect.DeepEqual(got, tasks) {
			t.Fatalf("expected %#v, got %#v", tasks, got)
		}
	})
}

func TestProperty_Add(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := rapid.SliceOf(taskGen).Draw(t, "tasks")
		text := rapid.String().Draw(t, "new")
		m, _ := seeded(t, tasks)

		err := m.Add(context.Background(), text)
		got := m.Tasks()
		if strings.TrimSpace(text) == "" {
			if !errors.Is(err, task.ErrBlankText) {
				t.Fatalf("expected ErrBlankText, got %v", err)
			}
			if len(got) != len(tasks) {
				t.Fatalf("expected length %d, got %d", len(tasks), len(got))
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(tasks)+1 {
			t.Fatalf("expected length %d, got %d", len(tasks)+1, len(got))
		}
		if last := got[len(got)-1]; last != (task.Task{Text: text}) {
			t.Fatalf("expected last task %q not completed, got %#v", text, last)
		}
	})
}

func TestProperty_ToggleTwice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := rapid.SliceOfN(taskGen, 1, 20).Draw(t, "tasks")
		idx := rapid.IntRange(0, len(tasks)-1).Draw(t, "index")
		m, s := seeded(t, tasks)
		ctx := context.Background()

		if err := m.Toggle(ctx, idx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Tasks()[idx].Completed == tasks[idx].Completed {
			t.Fatalf("first toggle did not flip task %d", idx)
		}
		if err := m.Toggle(ctx, idx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Load(ctx); !reflect.DeepEqual(got, tasks) {
			t.Fatalf("expected %#v, got %#v", tasks, got)
		}
	})
}

func TestProperty_Delete(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := rapid.SliceOfN(taskGen, 1, 20).Draw(t, "tasks")
		idx := rapid.IntRange(0, len(tasks)-1).Draw(t, "index")
		m, s := seeded(t, tasks)

		if err := m.Delete(context.Background(), idx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := append(append([]task.Task{}, tasks[:idx]...), tasks[idx+1:]...)
		got := m.Tasks()
		if len(got) != len(tasks)-1 {
			t.Fatalf("expected length %d, got %d", len(tasks)-1, len(got))
		}
		if len(want) > 0 && !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %#v, got %#v", want, got)
		}
		if stored := s.Load(context.Background()); !reflect.DeepEqual(stored, got) {
			t.Fatalf("store diverged: %#v vs %#v", stored, got)
		}
	})
}

// TestProperty_StoreMatchesManager drives random intents against a plain
// slice model and checks manager, model and store agree after every step.
func TestProperty_StoreMatchesManager(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m, s := seeded(t, nil)
		ctx := context.Background()
		var model []task.Task

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			kind := task.IntentKind(rapid.IntRange(1, 4).Draw(t, "kind"))
			in := task.Intent{
				Kind:  kind,
				Index: rapid.IntRange(-1, len(model)).Draw(t, "index"),
				Text:  rapid.StringMatching(`[ a-z]{0,6}`).Draw(t, "text"),
			}
			err := m.Apply(ctx, in)

			valid := in.Index >= 0 && in.Index < len(model)
			blank := strings.TrimSpace(in.Text) == ""
			switch kind {
			case task.IntentAdd:
				if !blank {
					model = append(model, task.Task{Text: in.Text})
				}
			case task.IntentToggle:
				if valid {
					model[in.Index].Completed = !model[in.Index].Completed
				}
			case task.IntentDelete:
				if valid {
					model = append(model[:in.Index], model[in.Index+1:]...)
				}
			case task.IntentEdit:
				if valid && !blank {
					model[in.Index].Text = strings.TrimSpace(in.Text)
				}
			}
			if err != nil && !errors.Is(err, task.ErrBlankText) && !errors.Is(err, task.ErrOutOfRange) {
				t.Fatalf("unexpected error: %v", err)
			}

			got := m.Tasks()
			if len(got) != len(model) || (len(model) > 0 && !reflect.DeepEqual(got, model)) {
				t.Fatalf("step %d (%s): expected %#v, got %#v", i, kind, model, got)
			}
			if stored := s.Load(ctx); !reflect.DeepEqual(stored, got) {
				t.Fatalf("step %d: store %#v diverged from manager %#v", i, stored, got)
			}
		}
	})
}
