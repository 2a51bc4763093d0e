package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	batchCategory    string
	batchConcurrency int
	batchOutDir      string
)

var batchCmd = &cobra.Command{
	Use:   "batch <domains-file>",
	Short: "Analyze many domains concurrently (one domain per line)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "batch: read domains file")
		}

		var domains []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "#") {
				domains = append(domains, line)
			}
		}
		if len(domains) == 0 {
			return eris.New("batch: no domains in input file")
		}

		if batchOutDir != "" {
			if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
				return eris.Wrap(err, "batch: create output dir")
			}
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		zap.L().Info("batch: starting", zap.Int("domains", len(domains)), zap.Int("concurrency", concurrency))

		g, gctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(concurrency)

		for _, domain := range domains {
			domain := domain
			g.Go(func() error {
				report, err := env.Engine.Analyze(gctx, domain, batchCategory)
				if err != nil {
					zap.L().Error("batch: analysis failed", zap.String("domain", domain), zap.Error(err))
					return nil // keep the batch going
				}

				zap.L().Info("batch: analyzed",
					zap.String("domain", report.CompanyDossier.Domain),
					zap.String("title", report.CompanyDossier.Title),
					zap.Int("score", report.Verdict.Score),
					zap.String("recommendation", report.Verdict.Recommendation),
				)

				if batchOutDir != "" {
					out, err := json.MarshalIndent(report, "", "  ")
					if err != nil {
						return eris.Wrap(err, "batch: marshal report")
					}
					path := filepath.Join(batchOutDir, report.CompanyDossier.Domain+".json")
					if err := os.WriteFile(path, out, 0o644); err != nil {
						return eris.Wrap(err, "batch: write report")
					}
				}
				return nil
			})
		}

		return g.Wait()
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchCategory, "category", "", "target service category for all domains")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent analyses (default from config)")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory to write per-domain JSON reports")
	rootCmd.AddCommand(batchCmd)
}
