// Show command: print one recorded self-test run with step detail.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hardenlabs/bulwark/internal/journal"
	"github.com/hardenlabs/bulwark/internal/selftest"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run with its step outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	runID := args[0]

	result, err := withJournal(func(j *journal.Journal) (selftest.Result, error) {
		return j.Get(runID)
	})
	if errors.Is(err, journal.ErrRunNotFound) {
		return fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return err
	}

	if flagJSON {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal run: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run:      %s\n", result.RunID)
	fmt.Fprintf(out, "started:  %s\n", result.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "duration: %s\n", result.Duration.Round(time.Microsecond))
	fmt.Fprintf(out, "verdict:  %s\n", verdictWord(result.Passed))
	for _, step := range result.Steps {
		if step.Message != "" {
			fmt.Fprintf(out, "  %-7s %s: %s\n", step.Status, step.Name, step.Message)
			continue
		}
		fmt.Fprintf(out, "  %-7s %s\n", step.Status, step.Name)
	}
	return nil
}
