package history_test

import (
	"context"
	"testing"

	"finaxis-assistant/internal/history"
)

func TestRecord_CapAndOrder(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore()

	commands := []string{"uno", "dos", "tres", "cuatro", "cinco", "seis", "siete"}
	for _, c := range commands {
		if err := history.Record(ctx, store, c); err != nil {
			t.Fatalf("Record(%q): %v", c, err)
		}
	}

	got, err := history.List(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != history.MaxEntries {
		t.Fatalf("len = %d, want %d", len(got), history.MaxEntries)
	}
	// Newest first; "uno" fell off.
	want := []string{"siete", "seis", "cinco", "cuatro", "tres", "dos"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecord_DedupeMovesToFront(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore()

	for _, c := range []string{"uno", "dos", "tres"} {
		if err := history.Record(ctx, store, c); err != nil {
			t.Fatal(err)
		}
	}
	if err := history.Record(ctx, store, "uno"); err != nil {
		t.Fatal(err)
	}

	got, _ := history.List(ctx, store)
	if len(got) != 3 {
		t.Fatalf("re-adding must not grow the list: len = %d", len(got))
	}
	if got[0] != "uno" {
		t.Errorf("re-added entry should move to front, got %v", got)
	}
}

func TestRecord_IgnoresEmpty(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore()

	if err := history.Record(ctx, store, "   "); err != nil {
		t.Fatal(err)
	}
	if got, _ := history.List(ctx, store); len(got) != 0 {
		t.Errorf("blank command must not be recorded: %v", got)
	}
}

func TestRecord_TrimsInput(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore()

	if err := history.Record(ctx, store, "  ver gastos  "); err != nil {
		t.Fatal(err)
	}
	got, _ := history.List(ctx, store)
	if len(got) != 1 || got[0] != "ver gastos" {
		t.Errorf("entry should be trimmed: %v", got)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore()

	_ = history.Record(ctx, store, "uno")
	if err := history.Clear(ctx, store); err != nil {
		t.Fatal(err)
	}
	if got, _ := history.List(ctx, store); len(got) != 0 {
		t.Errorf("clear should empty the history: %v", got)
	}
}

func TestList_CorruptValueReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore()
	_ = store.Set(ctx, history.Key, "{not json")

	got, err := history.List(ctx, store)
	if err != nil {
		t.Fatalf("corrupt value must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("corrupt value should read as empty, got %v", got)
	}
}
