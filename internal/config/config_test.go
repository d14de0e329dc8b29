package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks the overlay variables so a developer's local PG* settings
// cannot leak into assertions. t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"SQLITE_DB_PATH", "PGHOST", "PGPORT", "PGDATABASE", "PGUSER", "PGPASSWORD", "TABLES_TO_IMPORT", "HEALTHSYNC_LOG_DIR"} {
		t.Setenv(v, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "healthsync.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
version: 1
source:
  path: /data/health.db
destination:
  host: db.example.com
  port: 5433
  database: health
  username: importer
  password: hunter2
tables:
  - steps_record_table
  - weight_record_table
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Source.Path != "/data/health.db" {
		t.Errorf("Source.Path = %s", cfg.Source.Path)
	}
	if cfg.Destination.Port != 5433 {
		t.Errorf("Destination.Port = %d", cfg.Destination.Port)
	}
	if len(cfg.Tables) != 2 {
		t.Errorf("Tables = %v", cfg.Tables)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level default = %s", cfg.Logging.Level)
	}
}

func TestLoadWrongVersion(t *testing.T) {
	path := writeConfig(t, "version: 99\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for wrong config version")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicitly named missing file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
version: 1
destination:
  host: from-file
  port: 5432
`)
	t.Setenv("PGHOST", "from-env")
	t.Setenv("PGPORT", "6000")
	t.Setenv("TABLES_TO_IMPORT", "a_table, b_table")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Destination.Host != "from-env" {
		t.Errorf("Destination.Host = %s, want from-env", cfg.Destination.Host)
	}
	if cfg.Destination.Port != 6000 {
		t.Errorf("Destination.Port = %d, want 6000", cfg.Destination.Port)
	}
	if len(cfg.Tables) != 2 || cfg.Tables[0] != "a_table" || cfg.Tables[1] != "b_table" {
		t.Errorf("Tables = %v", cfg.Tables)
	}
}

func TestResolveSecretFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
version: 1
destination:
  password: ${ENV:HS_TEST_PW}
`)
	t.Setenv("HS_TEST_PW", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Destination.Password != "s3cret" {
		t.Errorf("Password = %s", cfg.Destination.Password)
	}
}

func TestResolveSecretMissingEnv(t *testing.T) {
	path := writeConfig(t, `
version: 1
destination:
  password: ${ENV:HS_TEST_PW_UNSET}
`)
	os.Unsetenv("HS_TEST_PW_UNSET")

	if _, err := Load(path); err == nil {
		t.Error("expected error for unresolvable secret")
	}
}

func TestValidateReportsAllMissing(t *testing.T) {
	cfg := &Config{Version: CurrentVersion}
	cfg.applyDefaults()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"source.path", "destination.host", "destination.database", "destination.username", "destination.password"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestValidateMissingSourceFile(t *testing.T) {
	cfg := &Config{
		Version: CurrentVersion,
		Source:  SourceConfig{Path: filepath.Join(t.TempDir(), "absent.db")},
		Destination: DestinationConfig{
			Host: "h", Port: 5432, Database: "d", Username: "u", Password: "p",
		},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "source database not found") {
		t.Errorf("expected source-not-found error, got %v", err)
	}
}

func TestValidateOK(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "health.db")
	if err := os.WriteFile(dbPath, []byte{}, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := &Config{
		Version: CurrentVersion,
		Source:  SourceConfig{Path: dbPath},
		Destination: DestinationConfig{
			Host: "h", Port: 5432, Database: "d", Username: "u", Password: "p",
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "healthsync.yaml")
	cfg := &Config{
		Version: CurrentVersion,
		Source:  SourceConfig{Path: "/data/health.db"},
		Destination: DestinationConfig{
			Host: "h", Port: 5432, Database: "d", Username: "u", Password: "p",
		},
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Source.Path != cfg.Source.Path || loaded.Destination.Host != cfg.Destination.Host {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
