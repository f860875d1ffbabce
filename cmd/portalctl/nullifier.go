package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devportal/devportal/internal/nullifier"
)

func newNullifierCmd() *cobra.Command {
	var action, stored string

	cmd := &cobra.Command{
		Use:   "nullifier <app_id>",
		Short: "Print the external nullifier of an app action",
		Long: `Derives the external nullifier that sign-in validation reports for an
app whose action has none stored. The default action is the empty sign-in
action.

With --check, the given stored nullifier is compared against the derived
one and the command fails on a mismatch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			derived := nullifier.External(args[0], action)
			if stored == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), derived)
				return err
			}

			got, err := nullifier.Decode(stored)
			if err != nil {
				return fmt.Errorf("stored nullifier: %w", err)
			}
			want, err := nullifier.Decode(derived)
			if err != nil {
				return err
			}
			if got.Cmp(want) != 0 {
				return fmt.Errorf("stored nullifier %s does not match derived %s", nullifier.Encode(got), derived)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", derived)
			return err
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "action identifier")
	cmd.Flags().StringVar(&stored, "check", "", "stored nullifier to verify against the derived one")
	return cmd
}
