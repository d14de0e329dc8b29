package selection

import (
	"sort"
	"strings"
)

// DefaultTables is the built-in inclusion set used when no tables are
// configured: the Health Connect record tables this tool was written for.
var DefaultTables = []string{
	"steps_record_table",
	"body_fat_record_table",
	"weight_record_table",
	"speed_record_table",
	"sleep_session_record_table",
	"distance_record_table",
}

// Set is the set of source table names eligible for synchronization. Tables
// outside the set are still enumerated, but skipped.
type Set map[string]struct{}

// Default returns the built-in inclusion set.
func Default() Set {
	return FromList(DefaultTables)
}

// FromList builds a set from explicit table names.
func FromList(tables []string) Set {
	s := make(Set, len(tables))
	for _, t := range tables {
		t = strings.TrimSpace(t)
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// FromCSV builds a set from a comma-separated list, as passed through the
// TABLES_TO_IMPORT environment variable. An empty or blank input yields an
// empty set.
func FromCSV(csv string) Set {
	return FromList(strings.Split(csv, ","))
}

// Contains reports whether a table is in the inclusion set.
func (s Set) Contains(table string) bool {
	_, ok := s[table]
	return ok
}

// Names returns the set members sorted alphabetically.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for t := range s {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}
