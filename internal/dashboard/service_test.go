package dashboard

import (
	"context"
	"testing"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

func TestGetStatsCountsByScraperStatus(t *testing.T) {
	dir := t.TempDir()

	succeeded := journal.New("a", map[string]any{"url": "http://x/"})
	succeeded.SetExecutorStatus("scraper", "SUCCESS")
	if err := journal.Save(dir, "a", succeeded); err != nil {
		t.Fatal(err)
	}

	failed := journal.New("b", map[string]any{"url": "http://x/"})
	failed.SetExecutorStatus("scraper", "ERROR RuntimeError::HTTP response 500")
	if err := journal.Save(dir, "b", failed); err != nil {
		t.Fatal(err)
	}

	svc := NewService(dir)
	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalTasks != 2 {
		t.Errorf("TotalTasks = %d, want 2", stats.TotalTasks)
	}
	if stats.SuccessTasks != 1 {
		t.Errorf("SuccessTasks = %d, want 1", stats.SuccessTasks)
	}
	if stats.ErrorTasks != 1 {
		t.Errorf("ErrorTasks = %d, want 1", stats.ErrorTasks)
	}
}

func TestGetTaskMissingReturnsError(t *testing.T) {
	svc := NewService(t.TempDir())
	if _, err := svc.GetTask(context.Background(), "ghost"); err == nil {
		t.Fatal("expected an error for a missing journal entry")
	}
}
