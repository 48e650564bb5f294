// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/broadsearch/internal/pipeline"
)

var showCmd = &cobra.Command{
	Use:   "show <result-file>",
	Short: "Display a saved run result",
	Long: `Show reads a run result previously saved with search --output and
prints it without re-querying any API.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := pipeline.ReadResultFile(args[0])
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return pipeline.FormatJSON(result, os.Stdout)
		}

		fmt.Printf("Query: %s\n\n", result.Query)
		pipeline.FormatTable(result, os.Stdout)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "output the run result as JSON")

	rootCmd.AddCommand(showCmd)
}
