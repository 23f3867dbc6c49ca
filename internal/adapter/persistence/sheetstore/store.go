// Package sheetstore maps review cases onto a remote header-indexed flat
// table. The table has no fixed schema and no transactions: columns are
// addressed by name through the header row, rows are located by the
// (name, date) natural key, and every remote call goes through the retry
// policy because the network API fails intermittently.
package sheetstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"clinic_review/internal/domain/entities"
	"clinic_review/pkg/retry"
)

const defaultCacheTTL = 5 * time.Second

// CellWrite is one position-addressed cell assignment. Row and Col are
// 1-based sheet coordinates.
type CellWrite struct {
	Row   int
	Col   int
	Value string
}

// SheetAPI is the remote table transport the store is built on. The concrete
// technology is swappable; the Google Sheets client in
// internal/infrastructure/sheets is the production implementation.
type SheetAPI interface {
	ReadAll(ctx context.Context) ([][]string, error)
	UpdateRange(ctx context.Context, row, col int, values [][]string) error
	BatchUpdateCells(ctx context.Context, writes []CellWrite) error
	AppendRow(ctx context.Context, values []string) error
}

type snapshot struct {
	header    []string
	index     map[string]int // column name -> 0-based position
	rows      [][]string     // rows[i] is sheet row i+2
	fetchedAt time.Time
}

func (s *snapshot) cell(row []string, column string) (string, bool) {
	idx, ok := s.index[column]
	if !ok || idx >= len(row) {
		return "", ok
	}
	return row[idx], true
}

// Store provides the lookup/update primitives over the remote table: a
// short-TTL read cache to bound read amplification, natural-key location,
// idempotent column provisioning, and batched position-addressed writes.
type Store struct {
	api      SheetAPI
	retry    *retry.Policy
	cacheTTL time.Duration

	mu   sync.Mutex
	snap *snapshot
	now  func() time.Time
}

func NewStore(api SheetAPI, policy *retry.Policy) *Store {
	if policy == nil {
		policy = retry.NewPolicy()
	}
	return &Store{
		api:      api,
		retry:    policy,
		cacheTTL: defaultCacheTTL,
		now:      time.Now,
	}
}

// Invalidate drops the cached snapshot. Every write path calls it so that
// read-then-write sequences never act on stale positions.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

func (s *Store) loadAll(ctx context.Context) (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && s.now().Sub(s.snap.fetchedAt) < s.cacheTTL {
		return s.snap, nil
	}

	var raw [][]string
	err := s.retry.Do(ctx, "loadAll", func(ctx context.Context) error {
		var readErr error
		raw, readErr = s.api.ReadAll(ctx)
		return readErr
	})
	if err != nil {
		return nil, err
	}

	snap := &snapshot{fetchedAt: s.now(), index: map[string]int{}}
	if len(raw) > 0 {
		snap.header = raw[0]
		snap.rows = raw[1:]
		for i, name := range snap.header {
			if _, seen := snap.index[name]; !seen {
				snap.index[name] = i
			}
		}
	}
	s.snap = snap
	return snap, nil
}

// Records returns every case row as a field-name to value map.
func (s *Store) Records(ctx context.Context) ([]map[string]string, error) {
	snap, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]string, 0, len(snap.rows))
	for _, row := range snap.rows {
		rec := make(map[string]string, len(snap.header))
		for name, idx := range snap.index {
			if idx < len(row) {
				rec[name] = row[idx]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Locate resolves the natural key to a row handle. Both sides of the
// comparison are normalized first: the store may hold stray whitespace and
// varying date serializations. Zero matches is ErrCaseNotFound; more than
// one is ErrAmbiguousCaseKey, never a silent pick.
func (s *Store) Locate(ctx context.Context, name, date string) (entities.RowHandle, error) {
	snap, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}

	wantName := normalizeName(name)
	wantDate := normalizeDate(date)

	var matches []entities.RowHandle
	for i, row := range snap.rows {
		rowName, _ := snap.cell(row, colName)
		rowDate, _ := snap.cell(row, colDate)
		if normalizeName(rowName) == wantName && normalizeDate(rowDate) == wantDate {
			matches = append(matches, entities.RowHandle(i+2))
		}
	}

	switch len(matches) {
	case 0:
		return 0, entities.ErrCaseNotFound
	case 1:
		return matches[0], nil
	default:
		return 0, entities.ErrAmbiguousCaseKey
	}
}

// EnsureColumns provisions any of the requested columns that the header does
// not yet carry, appending them at the right edge in request order. A second
// call with the same names performs no write at all.
func (s *Store) EnsureColumns(ctx context.Context, names []string) error {
	s.Invalidate()
	snap, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	var missing []string
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := snap.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	// Write only the header extension, starting one past the current edge.
	startCol := len(snap.header) + 1
	err = s.retry.Do(ctx, "ensureColumns", func(ctx context.Context) error {
		return s.api.UpdateRange(ctx, 1, startCol, [][]string{missing})
	})
	if err != nil {
		return err
	}

	s.Invalidate()
	return nil
}

// AppendRow writes one new row positioned by the current header order.
// Fields absent from the record default to empty; fields the header does not
// know are a programming error, callers must EnsureColumns first.
func (s *Store) AppendRow(ctx context.Context, record map[string]string) error {
	s.Invalidate()
	snap, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	for field := range record {
		if _, ok := snap.index[field]; !ok {
			return fmt.Errorf("sheetstore: unknown column %q", field)
		}
	}

	values := make([]string, len(snap.header))
	for field, value := range record {
		values[snap.index[field]] = value
	}

	err = s.retry.Do(ctx, "appendRow", func(ctx context.Context) error {
		return s.api.AppendRow(ctx, values)
	})
	if err != nil {
		return err
	}

	s.Invalidate()
	return nil
}

// UpdateCells resolves each field name to its column position and issues one
// batched, position-addressed write. The whole per-stage delta lands in a
// single remote call: the call count tracks dirty fields, not table width,
// and a submission can never half-apply across independently failing calls.
func (s *Store) UpdateCells(ctx context.Context, handle entities.RowHandle, fields map[string]string) error {
	if handle < 2 {
		return fmt.Errorf("sheetstore: invalid row handle %d", handle)
	}

	s.Invalidate()
	snap, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	writes := make([]CellWrite, 0, len(fields))
	for field, value := range fields {
		idx, ok := snap.index[field]
		if !ok {
			return fmt.Errorf("sheetstore: unknown column %q", field)
		}
		writes = append(writes, CellWrite{Row: int(handle), Col: idx + 1, Value: value})
	}
	sort.Slice(writes, func(i, j int) bool { return writes[i].Col < writes[j].Col })

	err = s.retry.Do(ctx, "updateCells", func(ctx context.Context) error {
		return s.api.BatchUpdateCells(ctx, writes)
	})
	if err != nil {
		return err
	}

	s.Invalidate()
	return nil
}
