// Package main implements portalctl, an operator CLI for the developer
// portal: nullifier derivation, localisation keys and native app registry
// checks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Developer portal operator tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newNullifierCmd(),
		newLokaliseKeysCmd(),
		newNativeAppsCmd(),
	)
	return root
}
