package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var analyzeCategory string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <domain>",
	Short: "Analyze a single company domain and print the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine()
		if err != nil {
			return err
		}

		report, err := env.Engine.Analyze(cmd.Context(), args[0], analyzeCategory)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return eris.Wrap(err, "analyze: marshal report")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCategory, "category", "", "target service category (default from catalog)")
	rootCmd.AddCommand(analyzeCmd)
}
