package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadforge",
	Short: "Autonomous B2B lead intelligence engine",
	Long:  "Qualifies business leads by scraping a company's website, pulling search-engine signals, and asking a language model to synthesize a sales dossier and outreach pitch.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
