// Package main provides the bulwark CLI: a regression self-test runner for
// the defensive stack, with a SQLite-backed history of runs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hardenlabs/bulwark/internal/selftest"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, selftest.ErrSuiteFailed) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}
