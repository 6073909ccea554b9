// Package sqlite implements store.Store on a local SQLite database. It
// emulates the remote tabular API for development and integration tests:
// one logical sheet per name, rows as ordered cell lists.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/signalworks/sigscan/pkg/sigscan/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sheet_rows (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sheet TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sheet_cells (
	row_id INTEGER NOT NULL,
	col INTEGER NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY(row_id, col),
	FOREIGN KEY(row_id) REFERENCES sheet_rows(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cells_lookup ON sheet_cells(col, value);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AppendRows appends rows inside one transaction so a failure leaves the
// sheet unchanged.
func (s *sqliteStore) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		res, err := tx.ExecContext(ctx, "INSERT INTO sheet_rows(sheet) VALUES(?)", sheet)
		if err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("row id: %w", err)
		}
		for col, value := range row {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO sheet_cells(row_id, col, value) VALUES(?, ?, ?)",
				rowID, col, value); err != nil {
				return fmt.Errorf("insert cell: %w", err)
			}
		}
	}

	return tx.Commit()
}

// ColumnContains reports whether value exists in the sheet's column.
func (s *sqliteStore) ColumnContains(ctx context.Context, sheet, column, value string) (bool, error) {
	idx, err := store.ColumnIndex(column)
	if err != nil {
		return false, err
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `
SELECT EXISTS(
	SELECT 1 FROM sheet_cells c
	JOIN sheet_rows r ON r.id = c.row_id
	WHERE r.sheet = ? AND c.col = ? AND c.value = ?
)`, sheet, idx, value).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("lookup %s!%s: %w", sheet, column, err)
	}
	return exists, nil
}
