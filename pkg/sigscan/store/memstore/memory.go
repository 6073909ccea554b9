// Package memstore is an in-memory implementation of store.Store for tests.
package memstore

import (
	"context"
	"sync"

	"github.com/signalworks/sigscan/pkg/sigscan/store"
)

// Store keeps appended rows per sheet in memory.
type Store struct {
	mu     sync.RWMutex
	sheets map[string][][]string

	// Failure injection for tests.
	AppendErr error
	LookupErr error
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{sheets: make(map[string][][]string)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AppendRows appends rows to the named sheet.
func (s *Store) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	if s.AppendErr != nil {
		return s.AppendErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		copied := make([]string, len(row))
		copy(copied, row)
		s.sheets[sheet] = append(s.sheets[sheet], copied)
	}
	return nil
}

// ColumnContains reports whether value exists in the sheet's column.
func (s *Store) ColumnContains(ctx context.Context, sheet, column, value string) (bool, error) {
	if s.LookupErr != nil {
		return false, s.LookupErr
	}

	idx, err := store.ColumnIndex(column)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.sheets[sheet] {
		if idx < len(row) && row[idx] == value {
			return true, nil
		}
	}
	return false, nil
}

// Rows returns a snapshot of the sheet's rows for assertions.
func (s *Store) Rows(sheet string) [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.sheets[sheet]
	out := make([][]string, len(rows))
	for i, row := range rows {
		copied := make([]string, len(row))
		copy(copied, row)
		out[i] = copied
	}
	return out
}

var _ store.Store = (*Store)(nil)
