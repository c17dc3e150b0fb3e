package storage_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/testutil"
)

func TestTaskStore_LoadMissingKey(t *testing.T) {
	kv := testutil.NewFakeKV()
	s := storage.NewTaskStore(kv, "")

	tasks := s.Load(context.Background())
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", tasks)
	}
	if s.Key() != storage.DefaultKey {
		t.Errorf("expected key %q, got %q", storage.DefaultKey, s.Key())
	}
}

func TestTaskStore_LoadCorruptIsEmpty(t *testing.T) {
	for _, raw := range []string{"{not json", `{"text":"x"}`, `"hello"`, `[{"text": 5}]`} {
		kv := testutil.NewFakeKV()
		kv.Put(storage.DefaultKey, raw)
		s := storage.NewTaskStore(kv, storage.DefaultKey)

		tasks := s.Load(context.Background())
		if len(tasks) != 0 {
			t.Errorf("raw %q: expected empty list, got %#v", raw, tasks)
		}
	}
}

func TestTaskStore_LoadReadErrorIsEmpty(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put(storage.DefaultKey, `[{"text":"a","completed":true}]`)
	kv.GetErr = errors.New("disk gone")
	s := storage.NewTaskStore(kv, storage.DefaultKey)

	if tasks := s.Load(context.Background()); len(tasks) != 0 {
		t.Errorf("expected empty list, got %#v", tasks)
	}
}

func TestTaskStore_LoadNull(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put(storage.DefaultKey, "null")
	s := storage.NewTaskStore(kv, storage.DefaultKey)

	if tasks := s.Load(context.Background()); len(tasks) != 0 {
		t.Errorf("expected empty list, got %#v", tasks)
	}
}

func TestTaskStore_SaveFormat(t *testing.T) {
	kv := testutil.NewFakeKV()
	s := storage.NewTaskStore(kv, storage.DefaultKey)
	ctx := context.Background()

	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := kv.Raw(storage.DefaultKey)
	if raw != "[]" {
		t.Errorf("expected %q, got %q", "[]", raw)
	}

	err := s.Save(ctx, []task.Task{{Text: "Buy milk", Completed: true}, {Text: "<b>Walk</b> dog"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ = kv.Raw(storage.DefaultKey)
	expected := `[{"text":"Buy milk","completed":true},{"text":"<b>Walk</b> dog","completed":false}]`
	if raw != expected {
		t.Errorf("expected %q, got %q", expected, raw)
	}
}

func TestTaskStore_SaveError(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.SetErr = errors.New("quota exceeded")
	s := storage.NewTaskStore(kv, storage.DefaultKey)

	err := s.Save(context.Background(), []task.Task{{Text: "a"}})
	if !errors.Is(err, kv.SetErr) {
		t.Errorf("expected wrapped set error, got %v", err)
	}
}

func TestTaskStore_RoundTrip(t *testing.T) {
	kv := testutil.NewFakeKV()
	s := storage.NewTaskStore(kv, storage.DefaultKey)
	ctx := context.Background()

	want := []task.Task{
		{Text: "Buy milk", Completed: true},
		{Text: "  spaced  "},
		{Text: "ünïcødé ✎ ×"},
		{Text: `quote " and \ backslash`, Completed: true},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := s.Load(ctx)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestDecode_CheckedCompatibility(t *testing.T) {
	raw := `[{"text":"old","checked":true},{"text":"new","completed":false,"checked":true},{"text":"bare"}]`
	got, err := storage.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []task.Task{
		{Text: "old", Completed: true},
		{Text: "new", Completed: false},
		{Text: "bare", Completed: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestValidate(t *testing.T) {
	if err := storage.Validate([]byte(`[{"text":"a","completed":true}]`)); err != nil {
		t.Errorf("expected valid document, got %v", err)
	}
	if err := storage.Validate([]byte(`[{"label":"a"}]`)); err == nil {
		t.Error("expected schema error for record without text")
	}
	if err := storage.Validate([]byte(`[{"text":"a","completed":"yes"}]`)); err == nil {
		t.Error("expected schema error for non-boolean completed")
	}
}

func TestTaskStore_LoadSchemaMismatchStillLoads(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put(storage.DefaultKey, `[{"label":"renamed","done":true}]`)
	s := storage.NewTaskStore(kv, storage.DefaultKey)

	got := s.Load(context.Background())
	want := []task.Task{{}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestEncode_KeepsMarkupLiteral(t *testing.T) {
	b, err := storage.Encode([]task.Task{{Text: `<script>alert("x")</script> & more`}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `[{"text":"<script>alert(\"x\")</script> & more","completed":false}]`
	if string(b) != expected {
		t.Errorf("expected %q, got %q", expected, string(b))
	}
}
