package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/clever-parlay/internal/health"
	"github.com/yourusername/clever-parlay/internal/service"
	"github.com/yourusername/clever-parlay/internal/simulation"
)

func newSimulateCmd(a *app) *cobra.Command {
	var picks []string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a single parlay",
		Long: `Builds one combination from the configured matchups, taking the most likely
outcome of each unless --pick names another, and simulates it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := svc.RunSingle(cmd.Context(), a.matchups, picks, a.simCfg)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), simulation.GenerateSingleReport(result, a.simCfg))

			a.finish(cmd.Context(), health.RunStatus{
				RunID:      a.runID,
				Mode:       service.ModeSimulate,
				Status:     "success",
				Best:       result.Combination.Label(),
				BestEV:     result.SimulatedEVPerUnitStake,
				DurationMs: float64(time.Since(start).Milliseconds()),
			})
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&picks, "pick", nil, "Outcome name per matchup, in order (blank keeps the favourite)")
	return cmd
}

func newRankCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Simulate and rank every parlay combination",
		Long: `Enumerates every combination across the configured matchups, simulates each
one and prints them ranked by expected value. When report.format is set the
ranking is also exported to report.output_path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}

			start := time.Now()
			ranking, err := svc.RunRanking(cmd.Context(), a.matchups, a.simCfg)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), simulation.GenerateConsoleReport(ranking, a.simCfg))

			if format := a.cfg.Report.Format; format != "" {
				doc := simulation.NewReportDocument(a.runID, ranking, a.simCfg)
				if err := simulation.Export(doc, format, a.cfg.Report.OutputPath); err != nil {
					return fmt.Errorf("failed to export report: %w", err)
				}
				a.audit.LogReportExported(a.runID, format, a.cfg.Report.OutputPath, len(ranking.Results), doc.GeneratedAt)
			}

			best, _ := ranking.Best()
			a.finish(cmd.Context(), health.RunStatus{
				RunID:      a.runID,
				Mode:       service.ModeRank,
				Status:     "success",
				Best:       best.Combination.Label(),
				BestEV:     ranking.RankBy.EV(best),
				DurationMs: float64(time.Since(start).Milliseconds()),
			})
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "parlay %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}
