package sheetstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinic_review/internal/domain/entities"
	"clinic_review/pkg/retry"
)

// fakeSheet is an in-memory SheetAPI with a controllable failure budget.
type fakeSheet struct {
	mu    sync.Mutex
	cells [][]string

	failReads  int
	failWrites int

	readCalls   int
	updateCalls int
	batchCalls  int
	appendCalls int
}

func newFakeSheet(rows ...[]string) *fakeSheet {
	return &fakeSheet{cells: rows}
}

func (f *fakeSheet) ReadAll(context.Context) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readCalls++
	if f.failReads > 0 {
		f.failReads--
		return nil, errors.New("transient read failure")
	}
	out := make([][]string, len(f.cells))
	for i, row := range f.cells {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (f *fakeSheet) UpdateRange(_ context.Context, row, col int, values [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.failWrites > 0 {
		f.failWrites--
		return errors.New("transient write failure")
	}
	for i, vals := range values {
		for j, v := range vals {
			f.set(row+i, col+j, v)
		}
	}
	return nil
}

func (f *fakeSheet) BatchUpdateCells(_ context.Context, writes []CellWrite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	if f.failWrites > 0 {
		f.failWrites--
		return errors.New("transient write failure")
	}
	for _, w := range writes {
		f.set(w.Row, w.Col, w.Value)
	}
	return nil
}

func (f *fakeSheet) AppendRow(_ context.Context, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendCalls++
	if f.failWrites > 0 {
		f.failWrites--
		return errors.New("transient write failure")
	}
	f.cells = append(f.cells, append([]string(nil), values...))
	return nil
}

// set grows the grid as needed; row/col are 1-based.
func (f *fakeSheet) set(row, col int, value string) {
	for len(f.cells) < row {
		f.cells = append(f.cells, nil)
	}
	r := f.cells[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	f.cells[row-1] = r
}

func (f *fakeSheet) header() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.cells) == 0 {
		return nil
	}
	return append([]string(nil), f.cells[0]...)
}

func fastRetry() *retry.Policy {
	return &retry.Policy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func newTestStore(sheet *fakeSheet) *Store {
	return NewStore(sheet, fastRetry())
}

func TestStore_Locate(t *testing.T) {
	sheet := newFakeSheet(
		[]string{"status", "name", "date"},
		[]string{"PENDING_INITIAL", "Alice", "2024-01-05"},
		[]string{"COMPLETED", "Bob", "2024-02-01"},
	)
	store := newTestStore(sheet)

	t.Run("normalizes both sides of the key", func(t *testing.T) {
		handle, err := store.Locate(context.Background(), "Alice ", "2024/01/05")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if handle != 2 {
			t.Fatalf("expected handle 2, got %d", handle)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.Locate(context.Background(), "Carol", "2024-01-05")
		if !errors.Is(err, entities.ErrCaseNotFound) {
			t.Fatalf("expected ErrCaseNotFound, got %v", err)
		}
	})

	t.Run("ambiguous key is rejected, never picked", func(t *testing.T) {
		dup := newFakeSheet(
			[]string{"status", "name", "date"},
			[]string{"PENDING_INITIAL", "Alice", "2024-01-05"},
			[]string{"COMPLETED", " Alice", "2024/1/5"},
		)
		_, err := newTestStore(dup).Locate(context.Background(), "Alice", "2024-01-05")
		if !errors.Is(err, entities.ErrAmbiguousCaseKey) {
			t.Fatalf("expected ErrAmbiguousCaseKey, got %v", err)
		}
	})
}

func TestStore_LoadAllRetries(t *testing.T) {
	t.Run("fails twice then succeeds", func(t *testing.T) {
		sheet := newFakeSheet([]string{"status", "name", "date"})
		sheet.failReads = 2
		store := newTestStore(sheet)

		records, err := store.Records(context.Background())
		if err != nil {
			t.Fatalf("expected third attempt to succeed, got %v", err)
		}
		if len(records) != 0 {
			t.Fatalf("expected no data rows, got %d", len(records))
		}
		if sheet.readCalls != 3 {
			t.Fatalf("expected 3 read calls, got %d", sheet.readCalls)
		}
	})

	t.Run("exhaustion surfaces StoreUnavailableError", func(t *testing.T) {
		sheet := newFakeSheet([]string{"status"})
		sheet.failReads = 10
		store := newTestStore(sheet)

		_, err := store.Records(context.Background())
		var unavailable *retry.StoreUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected StoreUnavailableError, got %v", err)
		}
	})
}

func TestStore_Cache(t *testing.T) {
	sheet := newFakeSheet([]string{"status", "name", "date"}, []string{"DRAFT", "Alice", "2024-01-05"})
	store := newTestStore(sheet)

	if _, err := store.Records(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Records(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.readCalls != 1 {
		t.Fatalf("expected second read served from cache, got %d calls", sheet.readCalls)
	}

	store.Invalidate()
	if _, err := store.Records(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.readCalls != 2 {
		t.Fatalf("expected invalidation to force a re-read, got %d calls", sheet.readCalls)
	}

	// Expired snapshots are re-fetched too.
	store.now = func() time.Time { return time.Now().Add(time.Minute) }
	if _, err := store.Records(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.readCalls != 3 {
		t.Fatalf("expected TTL expiry to force a re-read, got %d calls", sheet.readCalls)
	}
}

func TestStore_EnsureColumns(t *testing.T) {
	t.Run("appends missing columns at the right edge", func(t *testing.T) {
		sheet := newFakeSheet([]string{"status", "name", "date"})
		store := newTestStore(sheet)

		err := store.EnsureColumns(context.Background(), []string{"name", "grade", "final_action"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"status", "name", "date", "grade", "final_action"}
		got := sheet.header()
		if len(got) != len(want) {
			t.Fatalf("unexpected header %v", got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("unexpected header %v", got)
			}
		}
	})

	t.Run("idempotent: second call issues no write", func(t *testing.T) {
		sheet := newFakeSheet([]string{"status", "name", "date"})
		store := newTestStore(sheet)

		if err := store.EnsureColumns(context.Background(), []string{"grade"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		writesAfterFirst := sheet.updateCalls

		if err := store.EnsureColumns(context.Background(), []string{"grade"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sheet.updateCalls != writesAfterFirst {
			t.Fatalf("expected no write on second call, got %d -> %d", writesAfterFirst, sheet.updateCalls)
		}

		want := []string{"status", "name", "date", "grade"}
		got := sheet.header()
		if len(got) != len(want) {
			t.Fatalf("header changed on second call: %v", got)
		}
	})

	t.Run("empty sheet gets a full header", func(t *testing.T) {
		sheet := newFakeSheet()
		store := newTestStore(sheet)

		if err := store.EnsureColumns(context.Background(), []string{"status", "name"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := sheet.header()
		if len(got) != 2 || got[0] != "status" || got[1] != "name" {
			t.Fatalf("unexpected header %v", got)
		}
	})
}

func TestStore_AppendRow(t *testing.T) {
	sheet := newFakeSheet([]string{"status", "name", "date"})
	store := newTestStore(sheet)

	t.Run("orders fields by header and defaults missing to empty", func(t *testing.T) {
		err := store.AppendRow(context.Background(), map[string]string{
			"name":   "Alice",
			"status": "PENDING_INITIAL",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		row := sheet.cells[1]
		if row[0] != "PENDING_INITIAL" || row[1] != "Alice" || row[2] != "" {
			t.Fatalf("unexpected row %v", row)
		}
	})

	t.Run("unknown column is rejected before any write", func(t *testing.T) {
		appendsBefore := sheet.appendCalls
		err := store.AppendRow(context.Background(), map[string]string{"ghost": "x"})
		if err == nil {
			t.Fatalf("expected error for unknown column")
		}
		if sheet.appendCalls != appendsBefore {
			t.Fatalf("expected no append call")
		}
	})
}

func TestStore_UpdateCells(t *testing.T) {
	sheet := newFakeSheet(
		[]string{"status", "name", "date", "initial_total"},
		[]string{"PENDING_INITIAL", "Alice", "2024-01-05", ""},
	)
	store := newTestStore(sheet)

	t.Run("one batched call per delta", func(t *testing.T) {
		err := store.UpdateCells(context.Background(), 2, map[string]string{
			"status":        "PENDING_SECONDARY",
			"initial_total": "87",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sheet.batchCalls != 1 {
			t.Fatalf("expected exactly one batched write, got %d", sheet.batchCalls)
		}
		if sheet.cells[1][0] != "PENDING_SECONDARY" || sheet.cells[1][3] != "87" {
			t.Fatalf("unexpected row %v", sheet.cells[1])
		}
	})

	t.Run("unknown column is rejected before any write", func(t *testing.T) {
		batchesBefore := sheet.batchCalls
		err := store.UpdateCells(context.Background(), 2, map[string]string{"ghost": "x"})
		if err == nil {
			t.Fatalf("expected error for unknown column")
		}
		if sheet.batchCalls != batchesBefore {
			t.Fatalf("expected no batched write")
		}
	})

	t.Run("invalid handle", func(t *testing.T) {
		if err := store.UpdateCells(context.Background(), 1, map[string]string{"status": "x"}); err == nil {
			t.Fatalf("expected error for header-row handle")
		}
	})
}
