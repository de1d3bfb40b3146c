package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(suffix string) Run {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Run{
		RunID:         "run-" + suffix,
		Suffix:        suffix,
		StartedAt:     start,
		FinishedAt:    start.Add(1500 * time.Millisecond),
		ImageDir:      "/data/images",
		LabelDir:      "/data/labels",
		SourceNames:   "/data/coco.names",
		TargetNames:   "/data/target.names",
		LabelOutDir:   "/work/labels_" + suffix,
		ManifestPath:  "/work/train_" + suffix + ".txt",
		LabelFiles:    10,
		LabelsWritten: 7,
		LinesKept:     12,
		LinesDropped:  30,
		Images:        11,
		ImagesListed:  7,
	}
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleRun("120000ab12")
	id, err := store.Record(ctx, want)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want.ID = id
	if !got.StartedAt.Equal(want.StartedAt) || !got.FinishedAt.Equal(want.FinishedAt) {
		t.Fatalf("times = %v/%v, want %v/%v", got.StartedAt, got.FinishedAt, want.StartedAt, want.FinishedAt)
	}
	got.StartedAt, got.FinishedAt = want.StartedAt, want.FinishedAt
	if got != want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
	if got.Duration() != 1500*time.Millisecond {
		t.Fatalf("Duration = %v", got.Duration())
	}
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirstAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, suffix := range []string{"a", "b", "c"} {
		if _, err := store.Record(ctx, sampleRun(suffix)); err != nil {
			t.Fatalf("Record %s: %v", suffix, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].Suffix != "c" || runs[1].Suffix != "b" {
		t.Fatalf("unexpected runs %+v", runs)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}

func TestPruneAndClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, suffix := range []string{"a", "b", "c", "d"} {
		if _, err := store.Record(ctx, sampleRun(suffix)); err != nil {
			t.Fatalf("Record %s: %v", suffix, err)
		}
	}

	removed, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("Prune removed %d, want 2", removed)
	}
	runs, _ := store.List(ctx, 0)
	if len(runs) != 2 || runs[0].Suffix != "d" || runs[1].Suffix != "c" {
		t.Fatalf("unexpected runs after prune %+v", runs)
	}

	if n, _ := store.Prune(ctx, 0); n != 0 {
		t.Fatalf("Prune(0) removed %d", n)
	}

	cleared, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("Clear removed %d, want 2", cleared)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(ctx, sampleRun("a")); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.List(ctx, 0)
	if err != nil || len(runs) != 1 {
		t.Fatalf("List after reopen = %v, %v", runs, err)
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, "PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(ctx, path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
