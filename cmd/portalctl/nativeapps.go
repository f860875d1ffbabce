package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devportal/devportal/internal/nativeapp"
)

func newNativeAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "native-apps",
		Short: "Inspect the native app registry",
	}

	var envs []string
	check := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a native apps file and list its aliases per environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, env := range envs {
				registry, err := nativeapp.Load(args[0], env)
				if err != nil {
					return fmt.Errorf("%s: %w", env, err)
				}
				fmt.Fprintf(out, "%s: %d aliases\n", env, registry.Len())
				for _, alias := range registry.Aliases() {
					app, _ := registry.Lookup(alias)
					fmt.Fprintf(out, "  %s -> %s (%s)\n", alias, app.AppID, app.IntegrationURL)
				}
			}
			return nil
		},
	}
	check.Flags().StringSliceVar(&envs, "env", []string{"development", "staging", "production"}, "environments to check")

	cmd.AddCommand(check)
	return cmd
}
