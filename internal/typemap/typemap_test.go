package typemap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	tm := Default()

	tests := []struct {
		declaredType string
		want         PGType
	}{
		{"INTEGER", PGBigint},
		{"INT", PGBigint},
		{"int", PGBigint},
		{"REAL", PGDouble},
		{"real", PGDouble},
		{"BLOB", PGBytea},
		{"", PGText},
		{"TEXT", PGText},
		{"VARCHAR(20)", PGText},
		{"NUMERIC", PGText},
		{"something weird", PGText},
	}

	for _, tt := range tests {
		name := tt.declaredType
		if name == "" {
			name = "(empty)"
		}
		t.Run(name, func(t *testing.T) {
			got := tm.Resolve(tt.declaredType)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.declaredType, got, tt.want)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	tm := Default()
	for i := 0; i < 3; i++ {
		if got := tm.Resolve("INTEGER"); got != PGBigint {
			t.Fatalf("run %d: Resolve(INTEGER) = %s, want %s", i, got, PGBigint)
		}
	}
}

func TestOverrideTakesPrecedence(t *testing.T) {
	tm := Default()
	tm.Override("NUMERIC", PGDouble)

	if got := tm.Resolve("NUMERIC"); got != PGDouble {
		t.Errorf("expected override to DOUBLE PRECISION, got %s", got)
	}
	if got := tm.Resolve("numeric"); got != PGDouble {
		t.Errorf("expected override to apply case-insensitively, got %s", got)
	}
	// Unrelated types still follow the prefix rules.
	if got := tm.Resolve("INTEGER"); got != PGBigint {
		t.Errorf("expected INTEGER to stay BIGINT, got %s", got)
	}
}

func TestWriteAndLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typemap.yaml")

	tm := Default()
	tm.Override("numeric", PGDouble)

	if err := tm.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}

	loaded, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if got := loaded.Resolve("NUMERIC"); got != PGDouble {
		t.Errorf("expected loaded override to resolve to DOUBLE PRECISION, got %s", got)
	}
}

func TestLoadYAMLMissingFile(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
