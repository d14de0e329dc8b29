package typemap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PGType represents a PostgreSQL column type used in the destination.
type PGType string

const (
	PGText   PGType = "TEXT"
	PGBigint PGType = "BIGINT"
	PGDouble PGType = "DOUBLE PRECISION"
	PGBytea  PGType = "BYTEA"
)

// AllPGTypes lists the destination types the mapper can produce.
var AllPGTypes = []PGType{
	PGText,
	PGBigint,
	PGDouble,
	PGBytea,
}

// prefixRule maps an uppercased declared-type prefix to a destination type.
type prefixRule struct {
	prefix string
	pg     PGType
}

// SQLite declares column types as free-form text (type affinity), so the
// mapping works on prefixes of the uppercased declaration rather than exact
// names. The order matters only in that longer prefixes are checked first.
var prefixRules = []prefixRule{
	{"INT", PGBigint},
	{"REAL", PGDouble},
	{"BLOB", PGBytea},
}

// TypeMap holds the mapping from SQLite declared types to PostgreSQL types.
// Overrides are exact-match (uppercased declared type) and take precedence
// over the prefix rules.
type TypeMap struct {
	Overrides map[string]PGType `yaml:"overrides,omitempty"`
}

// Default returns the standard SQLite-to-PostgreSQL type map with no overrides.
func Default() *TypeMap {
	return &TypeMap{Overrides: make(map[string]PGType)}
}

// Resolve returns the PostgreSQL type for a SQLite declared column type.
// The mapping is deliberately conservative: anything not recognized as an
// integer, real, or blob declaration lands in TEXT, which can hold any value
// SQLite can produce. An empty declaration (untyped column) is TEXT.
func (tm *TypeMap) Resolve(declaredType string) PGType {
	upper := strings.ToUpper(strings.TrimSpace(declaredType))
	if tm.Overrides != nil {
		if pg, ok := tm.Overrides[upper]; ok {
			return pg
		}
	}
	for _, rule := range prefixRules {
		if strings.HasPrefix(upper, rule.prefix) {
			return rule.pg
		}
	}
	return PGText
}

// Override applies a user override for an exact declared type.
func (tm *TypeMap) Override(declaredType string, pg PGType) {
	if tm.Overrides == nil {
		tm.Overrides = make(map[string]PGType)
	}
	tm.Overrides[strings.ToUpper(strings.TrimSpace(declaredType))] = pg
}

// SortedOverrides returns the overridden declared types sorted alphabetically.
func (tm *TypeMap) SortedOverrides() []string {
	types := make([]string, 0, len(tm.Overrides))
	for k := range tm.Overrides {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// WriteYAML writes the type map to a YAML file.
func (tm *TypeMap) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := yaml.Marshal(tm)
	if err != nil {
		return fmt.Errorf("marshaling type map: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadYAML reads a type map from a YAML file.
func LoadYAML(path string) (*TypeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type map file: %w", err)
	}
	tm := &TypeMap{}
	if err := yaml.Unmarshal(data, tm); err != nil {
		return nil, fmt.Errorf("parsing type map: %w", err)
	}
	if tm.Overrides == nil {
		tm.Overrides = make(map[string]PGType)
	}
	// Normalize keys so lookups match Resolve's uppercasing.
	normalized := make(map[string]PGType, len(tm.Overrides))
	for k, v := range tm.Overrides {
		normalized[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	tm.Overrides = normalized
	return tm, nil
}
