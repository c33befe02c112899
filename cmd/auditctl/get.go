package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lzjever/project-audit/internal/panel"
)

var sortColumn string

var getCmd = &cobra.Command{
	Use:   "get <projectId>",
	Short: "Print the audit users of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetch, closeFn, err := provider()
		if err != nil {
			return err
		}
		defer closeFn()

		raw, err := fetch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		payload, err := decodePayload(raw)
		if err != nil {
			return err
		}

		if output == "json" {
			return printJSON(os.Stdout, payload)
		}
		rows := panel.BuildRows(payload.Users)
		if sortColumn != "" {
			rows = panel.SortRows(rows, panel.Sort{Column: sortColumn, Order: panel.Ascending})
		}
		printRows(os.Stdout, rows)
		return nil
	},
}

func init() {
	getCmd.Flags().StringVar(&sortColumn, "sort", "", "Sort by column (name, email)")
	rootCmd.AddCommand(getCmd)
}
