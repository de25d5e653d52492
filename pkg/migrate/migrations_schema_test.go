package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kolade-dev/vendorhub-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestInitialSchemaContainsCoreTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_initial_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no initial schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE products",
		"CREATE TABLE price_tiers",
		"CREATE TABLE rooms",
		"CREATE TABLE reservations",
		"CREATE TABLE invoices",
		"CREATE TABLE invoice_line_items",
		"CREATE TABLE ledger_events",
		"CHECK (min_qty >= 1)",
		"CHECK (check_out >= check_in)",
		"DROP TABLE IF EXISTS ledger_events",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOverlapGuardMigrationExcludesCancelled(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_reservation_overlap_guard.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no overlap guard migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "EXCLUDE USING gist") {
		t.Error("missing exclusion constraint")
	}
	if !strings.Contains(content, "status IN ('pending', 'confirmed')") {
		t.Error("constraint should only cover blocking statuses")
	}
}
