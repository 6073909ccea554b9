// Package sink appends signal rows to the destination store, dropping rows
// whose dedup key is already present in the store's key column.
package sink

import (
	"context"
	"fmt"
	"log"

	"github.com/signalworks/sigscan/pkg/sigscan/store"
)

// Row is one destination row plus the value used for duplicate detection.
// The key also appears somewhere in Cells; which column depends on the
// pipeline's row layout.
type Row struct {
	Key   string
	Cells []string
}

// Sink deduplicates against one column of one sheet before appending.
//
// The duplicate check and the append are not atomic. The deployment must
// guarantee a single writer per sheet; no in-process locking is provided.
type Sink struct {
	store     store.Store
	sheet     string
	keyColumn string
	logger    *log.Logger
}

// New creates a sink writing to the named sheet, deduplicating on the
// given key column.
func New(st store.Store, sheet, keyColumn string, logger *log.Logger) (*Sink, error) {
	if _, err := store.ColumnIndex(keyColumn); err != nil {
		return nil, err
	}
	return &Sink{store: st, sheet: sheet, keyColumn: keyColumn, logger: logger}, nil
}

// Append writes every row whose key is not already present, returning the
// number of rows written. Duplicates are dropped and logged, not errors. A
// failed duplicate check counts the row as new: possible re-insertion is
// preferred over silent signal loss. When nothing survives dedup, no write
// call is issued at all.
func (s *Sink) Append(ctx context.Context, rows []Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := make([][]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Key]; ok {
			s.logger.Printf("skipping duplicate within batch: %s", row.Key)
			continue
		}
		seen[row.Key] = struct{}{}

		dup, err := s.store.ColumnContains(ctx, s.sheet, s.keyColumn, row.Key)
		if err != nil {
			s.logger.Printf("duplicate check failed for %s, assuming new: %v", row.Key, err)
		} else if dup {
			s.logger.Printf("skipping duplicate: %s", row.Key)
			continue
		}

		batch = append(batch, row.Cells)
	}

	if len(batch) == 0 {
		s.logger.Printf("no new rows to write (all duplicates)")
		return 0, nil
	}

	if err := s.store.AppendRows(ctx, s.sheet, batch); err != nil {
		return 0, fmt.Errorf("append %d rows to %s: %w", len(batch), s.sheet, err)
	}
	s.logger.Printf("wrote %d rows to %s", len(batch), s.sheet)
	return len(batch), nil
}
