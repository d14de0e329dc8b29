package selection

import (
	"reflect"
	"testing"
)

func TestDefaultContainsSixHealthTables(t *testing.T) {
	s := Default()
	if len(s) != 6 {
		t.Fatalf("default set has %d tables, want 6", len(s))
	}
	for _, table := range DefaultTables {
		if !s.Contains(table) {
			t.Errorf("default set missing %s", table)
		}
	}
	if s.Contains("android_metadata") {
		t.Error("default set should not contain android_metadata")
	}
}

func TestFromCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "a,b", []string{"a", "b"}},
		{"spaces", " a , b ", []string{"a", "b"}},
		{"trailing comma", "a,b,", []string{"a", "b"}},
		{"empty", "", nil},
		{"only commas", ",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromCSV(tt.in).Names()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromCSV(%q).Names() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamesSorted(t *testing.T) {
	s := FromList([]string{"c", "a", "b"})
	if got := s.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Names() = %v", got)
	}
}
