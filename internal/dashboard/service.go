package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

// Service handles data fetching for the dashboard. Unlike the teacher's
// SQL-backed Service, there is no live queue to read from: every call
// re-scans the journal directory, which is cheap at the scale this tool
// targets and keeps the dashboard honest about what's actually on disk.
type Service struct {
	dir string
}

// NewService creates a new dashboard service rooted at dir, the same
// journal directory passed to engine.Execute.
func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// Stats holds high-level dashboard statistics, derived from the journal
// rather than from a workers/tasks table.
type Stats struct {
	TotalTasks     int
	SuccessTasks   int
	ErrorTasks     int
	SkippedTasks   int
	CorruptEntries int
}

// GetStats returns dashboard statistics for the "scraper" executor column,
// the one every task admitted through cmd/scrapeflow carries.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	report, err := journal.Scan(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}

	stats := &Stats{
		TotalTasks:     len(report.Entries),
		CorruptEntries: len(report.Corrupt),
	}
	for _, entry := range report.Entries {
		switch entry.ExecutorStatus("scraper") {
		case "SUCCESS":
			stats.SuccessTasks++
		case "SKIPPED":
			stats.SkippedTasks++
		case "":
			// never run
		default:
			stats.ErrorTasks++
		}
	}
	return stats, nil
}

// GetRecentTasks returns up to limit journal entries, sorted by key.
func (s *Service) GetRecentTasks(ctx context.Context, limit int) ([]journal.StatusData, error) {
	report, err := journal.Scan(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}

	entries := report.Entries
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetTask returns the journal entry for key, or an error if it does not
// exist or does not parse.
func (s *Service) GetTask(ctx context.Context, key string) (journal.StatusData, error) {
	status, err := journal.Load(s.dir, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if status == nil {
		return nil, fmt.Errorf("no journal entry for %s", key)
	}
	return status, nil
}
