package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solbazaar/solbazaar-backend/pkg/migrate"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestDiscountMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_discount_config_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no discount config migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS discount_configs",
		"CREATE TABLE IF NOT EXISTS discount_tiers",
		"warranty_discount_percent NUMERIC(5,2) NOT NULL",
		"range_max NUMERIC(12,2)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_discount_tiers_config_position",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestWorkflowMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_workflow_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no workflow migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS surveys",
		"CREATE TABLE IF NOT EXISTS escalations",
		"CREATE TABLE IF NOT EXISTS installations",
		"status TEXT NOT NULL DEFAULT 'requested'",
		"decision TEXT NOT NULL DEFAULT 'none'",
		"status TEXT NOT NULL DEFAULT 'scheduled'",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
