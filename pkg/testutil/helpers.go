// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/roi-forecast/internal/roi"
)

// FindYear returns the ledger row for year, or nil if the ledger has none.
func FindYear(ledger []roi.YearRecord, year int) *roi.YearRecord {
	for i := range ledger {
		if ledger[i].Year == year {
			return &ledger[i]
		}
	}
	return nil
}

// WriteFile writes contents to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t testing.TB, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
