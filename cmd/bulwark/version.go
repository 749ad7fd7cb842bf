// Version command for the bulwark CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hardenlabs/bulwark/pkg/bulwark"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bulwark version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "bulwark", bulwark.Version)
	},
}
