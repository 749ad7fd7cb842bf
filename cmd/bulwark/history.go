// History command: list recorded self-test runs.
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hardenlabs/bulwark/internal/journal"
	"github.com/hardenlabs/bulwark/internal/selftest"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded self-test runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	results, err := withJournal(func(j *journal.Journal) ([]selftest.Result, error) {
		return j.List()
	})
	if err != nil {
		return err
	}

	if flagJSON {
		output, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal runs: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}

	for _, result := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %d steps\n",
			result.RunID,
			result.StartedAt.Format(time.RFC3339),
			verdictWord(result.Passed),
			len(result.Steps))
	}
	return nil
}

// withJournal opens the journal at the resolved data directory, applies fn,
// and closes the journal.
func withJournal[T any](fn func(*journal.Journal) (T, error)) (T, error) {
	var zero T

	dataDir, err := resolveDataDir()
	if err != nil {
		return zero, err
	}

	j, err := journal.Open(dataDir)
	if err != nil {
		return zero, err
	}
	defer j.Close()

	return fn(j)
}

func verdictWord(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
