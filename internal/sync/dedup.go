package sync

// dedupPriority is the fixed candidate list for the dedup column: the row
// identifier first, then the local timestamp, then the generic timestamp.
var dedupPriority = []string{"row_id", "local_date_time", "time"}

// SelectDedupKey returns the highest-priority dedup column present among the
// source column names, with its position. A table with none of the candidates
// gets no dedup key, which disables deduplication for that table — a valid
// outcome, not an error.
func SelectDedupKey(columns []string) (name string, index int, ok bool) {
	for _, candidate := range dedupPriority {
		for i, col := range columns {
			if col == candidate {
				return candidate, i, true
			}
		}
	}
	return "", 0, false
}
