package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devportal/devportal/internal/localise"
)

func newLokaliseKeysCmd() *cobra.Command {
	var (
		categories []string
		fields     []string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "lokalise-keys <app_id>",
		Short: "List the translation keys the public API serves for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := localise.Fields
			if len(fields) > 0 {
				selected = make([]localise.Field, 0, len(fields))
				for _, name := range fields {
					field := localise.Field(name)
					if !field.IsValid() {
						return fmt.Errorf("unknown field %q", name)
					}
					selected = append(selected, field)
				}
			}

			keys := make(map[string]string, len(selected)+len(categories))
			order := make([]string, 0, len(selected)+len(categories))

			for _, field := range selected {
				name := string(field)
				keys[name] = localise.FieldKey(args[0], field)
				order = append(order, name)
			}
			for _, category := range categories {
				name := "category:" + category
				keys[name] = localise.CategoryKey(category)
				order = append(order, name)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(keys)
			}
			for _, name := range order {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", name, keys[name]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "category names to include (repeatable)")
	cmd.Flags().StringSliceVar(&fields, "field", nil, "fields to include (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print keys as a JSON object")
	return cmd
}
