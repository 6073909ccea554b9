// Package sheets implements store.Store against the Google Sheets v4 API.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/signalworks/sigscan/pkg/sigscan/internalerr"
	"github.com/signalworks/sigscan/pkg/sigscan/store"
)

// Store appends to and reads from one spreadsheet.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// Open authenticates with a service-account credentials file and binds to
// the given spreadsheet.
func Open(ctx context.Context, credentialsFile, spreadsheetID string) (*Store, error) {
	if credentialsFile == "" || spreadsheetID == "" {
		return nil, fmt.Errorf("%w: credentials file and spreadsheet id are required",
			internalerr.ErrInvalidConfig)
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Close implements store.Store. The underlying HTTP client needs no
// teardown.
func (s *Store) Close() error { return nil }

// AppendRows appends rows below the sheet's existing data.
func (s *Store) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, fmt.Sprintf("%s!A:Z", sheet), &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %d rows to %s: %w", len(rows), sheet, err)
	}
	return nil
}

// ColumnContains reads the full column and scans it for value.
func (s *Store) ColumnContains(ctx context.Context, sheet, column, value string) (bool, error) {
	if _, err := store.ColumnIndex(column); err != nil {
		return false, err
	}

	rng := fmt.Sprintf("%s!%s:%s", sheet, column, column)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("read %s: %w", rng, err)
	}

	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if cell, ok := row[0].(string); ok && cell == value {
			return true, nil
		}
	}
	return false, nil
}

var _ store.Store = (*Store)(nil)
