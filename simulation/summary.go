package simulation

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/cachesim/cache"
)

// DefaultResultsFile is where csim leaves its counters for the grading
// scripts.
const DefaultResultsFile = ".csim_results"

// PrintSummary prints the counters to w and, if resultsPath is not empty,
// writes them to resultsPath as "hits misses evictions".
func PrintSummary(w io.Writer, resultsPath string, stats cache.Stats) error {
	if _, err := fmt.Fprintln(w, stats); err != nil {
		return err
	}

	if resultsPath == "" {
		return nil
	}

	content := fmt.Sprintf("%d %d %d\n", stats.Hits, stats.Misses, stats.Evictions)
	if err := os.WriteFile(resultsPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	return nil
}
