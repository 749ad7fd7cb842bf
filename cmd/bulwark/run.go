// Run command: execute the regression self-test suite and record the result.
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hardenlabs/bulwark/internal/journal"
	"github.com/hardenlabs/bulwark/internal/selftest"
)

var (
	flagNoRecord  bool
	flagCapacity  int
	flagFailAfter int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the stack regression self-test suite",
	Long: `Run executes the compiled-in regression suite against the defensive
stack: empty-pop behavior, push/pop roundtrip, LIFO ordering, bounded
overflow, allocation-fault handling, and contract-check liveness.

The first failing step stops the run; remaining steps are skipped. Unless
--no-record is given the result is stored in the run journal under the data
directory. The exit code is 0 when every step passes and 2 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "do not record the run in the journal")
	runCmd.Flags().IntVar(&flagCapacity, "capacity", 0, "stack capacity for the overflow step (default: config capacity)")
	runCmd.Flags().IntVar(&flagFailAfter, "fail-after", 1, "allocation budget for the fault-injection step")
}

func runRun(cmd *cobra.Command, args []string) error {
	capacity := flagCapacity
	if capacity <= 0 {
		capacity = configCapacity
	}

	suite := selftest.DefaultSuite(selftest.Config{
		Capacity:  capacity,
		FailAfter: flagFailAfter,
	})
	result := suite.Run()

	if flagJSON {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
	} else {
		printResult(cmd, result)
	}

	if !flagNoRecord {
		if err := recordResult(result); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	return result.Err()
}

// printResult writes one line per step plus a summary line.
func printResult(cmd *cobra.Command, result selftest.Result) {
	out := cmd.OutOrStdout()
	for _, step := range result.Steps {
		switch step.Status {
		case selftest.StatusPassed:
			fmt.Fprintf(out, "PASS %s\n", step.Name)
		case selftest.StatusFailed:
			fmt.Fprintf(out, "FAIL %s: %s\n", step.Name, step.Message)
		case selftest.StatusSkipped:
			fmt.Fprintf(out, "SKIP %s\n", step.Name)
		}
	}

	verdict := "passed"
	if !result.Passed {
		verdict = "FAILED"
	}
	fmt.Fprintf(out, "self-test %s: %d steps in %s (run %s)\n",
		verdict, len(result.Steps), result.Duration.Round(time.Microsecond), result.RunID)
}

func recordResult(result selftest.Result) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	j, err := journal.Open(dataDir)
	if err != nil {
		return err
	}
	defer j.Close()

	return j.Record(result)
}
