// Package report provides pure summary utilities over journal.Scan's
// output: a tabular dump and a per-executor status histogram.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

// Table renders entries as a tab-separated dump: one row per task, columns
// "key", every "<executor>_status" key discovered across all entries
// (sorted for determinism). Fields are joined by a single tab and are not
// padded. Entries are sorted by key for reproducible output.
func Table(entries []journal.StatusData) string {
	sorted := append([]journal.StatusData(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	columns := statusColumns(sorted)

	var b strings.Builder
	writeRow(&b, append([]string{"key"}, columns...))
	for _, status := range sorted {
		row := make([]string, 0, len(columns)+1)
		row = append(row, status.Name())
		for _, col := range columns {
			row = append(row, status.ExecutorStatus(strings.TrimSuffix(col, "_status")))
		}
		writeRow(&b, row)
	}
	return b.String()
}

// statusColumns discovers every "<name>_status" key present in entries, in
// sorted order.
func statusColumns(entries []journal.StatusData) []string {
	seen := make(map[string]struct{})
	for _, status := range entries {
		for k := range status {
			if strings.HasSuffix(k, "_status") {
				seen[k] = struct{}{}
			}
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

func writeRow(b *strings.Builder, fields []string) {
	fmt.Fprintln(b, strings.Join(fields, "\t"))
}

// Histogram counts, across entries, how many tasks landed in each distinct
// "<executor>_status" value. Tasks where executor never ran are excluded
// (ExecutorStatus returns "" and is not counted).
func Histogram(entries []journal.StatusData, executor string) map[string]int {
	counts := make(map[string]int)
	for _, status := range entries {
		v := status.ExecutorStatus(executor)
		if v == "" {
			continue
		}
		counts[v]++
	}
	return counts
}
