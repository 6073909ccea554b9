// Package store defines the destination tabular store shared by all
// pipelines. Rows are appended in a fixed column order; columns are
// addressed by single-letter identifiers the way the remote API addresses
// them.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/signalworks/sigscan/pkg/sigscan/internalerr"
)

// Store is the narrow interface to the destination store.
type Store interface {
	Close() error

	// AppendRows appends rows to the named sheet. The write is
	// all-or-nothing per call from the caller's perspective.
	AppendRows(ctx context.Context, sheet string, rows [][]string) error

	// ColumnContains reports whether value already exists in the sheet's
	// column ("A".."Z").
	ColumnContains(ctx context.Context, sheet, column, value string) (bool, error)
}

// ColumnIndex converts a single-letter column identifier to a zero-based
// index.
func ColumnIndex(column string) (int, error) {
	c := strings.ToUpper(strings.TrimSpace(column))
	if len(c) != 1 || c[0] < 'A' || c[0] > 'Z' {
		return 0, fmt.Errorf("%w: column %q", internalerr.ErrInvalidConfig, column)
	}
	return int(c[0] - 'A'), nil
}
