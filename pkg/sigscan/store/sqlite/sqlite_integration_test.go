package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestAppendAndLookup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sigscan_test.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	rows := [][]string{
		{"", "Debt Scanner", "Acme", "Technical Debt", "legacy system", "4",
			"Pending Review", "2025-06-15", "", "", "http://x/1"},
	}
	if err := s.AppendRows(ctx, "Automation Queue", rows); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	found, err := s.ColumnContains(ctx, "Automation Queue", "K", "http://x/1")
	if err != nil {
		t.Fatalf("ColumnContains: %v", err)
	}
	if !found {
		t.Error("expected URL in column K after append")
	}

	found, err = s.ColumnContains(ctx, "Automation Queue", "K", "http://x/2")
	if err != nil {
		t.Fatalf("ColumnContains: %v", err)
	}
	if found {
		t.Error("unexpected match for absent URL")
	}

	// Same value in a different column does not match.
	found, err = s.ColumnContains(ctx, "Automation Queue", "A", "http://x/1")
	if err != nil {
		t.Fatalf("ColumnContains: %v", err)
	}
	if found {
		t.Error("column position must be honored")
	}

	// Sheets are isolated.
	found, err = s.ColumnContains(ctx, "Other Sheet", "K", "http://x/1")
	if err != nil {
		t.Fatalf("ColumnContains: %v", err)
	}
	if found {
		t.Error("sheet isolation violated")
	}
}

func TestAppendSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sigscan_test.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.AppendRows(ctx, "Queue", [][]string{{"a", "b"}}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	found, err := s.ColumnContains(ctx, "Queue", "B", "b")
	if err != nil {
		t.Fatalf("ColumnContains: %v", err)
	}
	if !found {
		t.Error("appended row lost across reopen")
	}
}

func TestInvalidColumn(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "sigscan_test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := s.ColumnContains(ctx, "Queue", "ZZ", "v"); err == nil {
		t.Error("expected error for multi-letter column")
	}
}
