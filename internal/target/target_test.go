package target

import "testing"

func TestInsertSQL(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		cols     []string
		rowCount int
		want     string
	}{
		{
			name:     "single row",
			table:    "steps_record_table",
			cols:     []string{"row_id", "count"},
			rowCount: 1,
			want:     `INSERT INTO "steps_record_table" ("row_id", "count") VALUES ($1, $2)`,
		},
		{
			name:     "multi row",
			table:    "t",
			cols:     []string{"a", "b"},
			rowCount: 3,
			want:     `INSERT INTO "t" ("a", "b") VALUES ($1, $2), ($3, $4), ($5, $6)`,
		},
		{
			name:     "single column",
			table:    "t",
			cols:     []string{"a"},
			rowCount: 2,
			want:     `INSERT INTO "t" ("a") VALUES ($1), ($2)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insertSQL(tt.table, tt.cols, tt.rowCount)
			if got != tt.want {
				t.Errorf("insertSQL = %q, want %q", got, tt.want)
			}
		})
	}
}
