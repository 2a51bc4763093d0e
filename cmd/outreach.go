package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	outreachJustification string
	outreachCategory      string
)

var outreachCmd = &cobra.Command{
	Use:   "outreach <company-name> <domain>",
	Short: "Draft a cold outreach email for a qualified lead",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine()
		if err != nil {
			return err
		}

		draft := env.Drafter.Draft(cmd.Context(), args[0], args[1], outreachJustification, outreachCategory)
		fmt.Println(draft)
		return nil
	},
}

func init() {
	outreachCmd.Flags().StringVar(&outreachJustification, "justification", "", "one-line reason this lead qualifies")
	outreachCmd.Flags().StringVar(&outreachCategory, "category", "", "service category to pitch")
	rootCmd.AddCommand(outreachCmd)
}
