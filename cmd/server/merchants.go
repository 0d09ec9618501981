package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func merchantsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "List the merchants the service would accept",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(file)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCURRENCY\tMAX AMOUNT")
			for _, id := range registry.IDs() {
				m, _ := registry.ConfigFor(id)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.ID, m.Name, m.Currency, m.MaxAmount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "merchant YAML file (built-in defaults when empty)")

	return cmd
}
