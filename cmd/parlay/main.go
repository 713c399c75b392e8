// Package main provides the entry point for the parlay simulator CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourusername/clever-parlay/internal/config"
	"github.com/yourusername/clever-parlay/internal/health"
	"github.com/yourusername/clever-parlay/internal/logger"
	"github.com/yourusername/clever-parlay/internal/metrics"
	"github.com/yourusername/clever-parlay/internal/models"
	"github.com/yourusername/clever-parlay/internal/service"
	"github.com/yourusername/clever-parlay/internal/simulation"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"trials":       "simulation.trial_count",
	"multiplier":   "simulation.multiplier",
	"stake":        "simulation.stake",
	"seed":         "simulation.seed",
	"workers":      "simulation.workers",
	"rank-by":      "simulation.rank_by",
	"metrics-addr": "metrics.address",
}

// app holds the state shared by subcommands after PersistentPreRunE.
type app struct {
	configFile string

	cfg      *config.Config
	simCfg   simulation.SimulationConfig
	matchups []models.Matchup
	logger   *logrus.Logger
	audit    *logger.AuditLogger
	runID    string
	cache    *simulation.TheoryCache
	health   *health.Server
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "parlay",
		Short: "Monte Carlo parlay EV simulator",
		Long: `Simulates multi-leg parlay wagers over independent outcomes and compares the
simulated expected value with the exact theoretical value.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if err := a.loadConfig(cmd); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := a.setupDependencies(cmd.Context()); err != nil {
				return fmt.Errorf("failed to setup dependencies: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	flags.Int("trials", 0, "Number of Monte Carlo trials per combination")
	flags.Float64("multiplier", 0, "Payout multiplier applied to the stake on a win")
	flags.Float64("stake", 0, "Stake per simulated bet")
	flags.Int64("seed", 0, "Random seed (0 seeds from system entropy)")
	flags.Int("workers", 0, "Parallel workers used when ranking")
	flags.String("rank-by", "", "Ranking key: simulated or theoretical")
	flags.String("metrics-addr", "", "Serve /metrics, /health and /ready on this address until interrupted")

	rootCmd.AddCommand(newSimulateCmd(a), newRankCmd(a), newVersionCmd())
	return rootCmd
}

// bindFlags binds every explicitly set flag onto its configuration key.
func bindFlags(cmd *cobra.Command) config.LoadOption {
	return func(v *viper.Viper) error {
		for name, key := range flagKeys {
			flag := cmd.Flags().Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
			if name == "metrics-addr" {
				v.Set("metrics.enabled", true)
			}
		}
		return nil
	}
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadWithDefaults(a.configFile, bindFlags(cmd))
	if err != nil {
		return err
	}
	if err := cfg.ApplyOutcomeDefaults(); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	simCfg, err := simulation.FromConfig(&cfg.Simulation)
	if err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}
	matchups, err := cfg.BuildMatchups()
	if err != nil {
		return fmt.Errorf("invalid matchups: %w", err)
	}

	a.cfg = cfg
	a.simCfg = simCfg
	a.matchups = matchups
	return nil
}

func (a *app) setupDependencies(ctx context.Context) error {
	a.logger = logger.NewLogger(a.cfg.App.LogLevel, a.cfg.App.Environment)
	a.audit = logger.NewAuditLogger(a.logger)
	a.runID = uuid.New().String()

	a.audit.LogRunConfiguration(a.runID, a.configFile, a.cfg.Simulation.Seed, map[string]interface{}{
		"multiplier":  a.simCfg.Multiplier,
		"trial_count": a.simCfg.TrialCount,
		"stake":       a.simCfg.Stake,
		"rank_by":     a.cfg.Simulation.RankBy,
		"workers":     a.cfg.Simulation.Workers,
		"matchups":    len(a.matchups),
	})

	if a.cfg.Cache.Enabled {
		ttl := time.Duration(a.cfg.Cache.TTLSeconds) * time.Second
		a.cache = simulation.NewTheoryCache(ttl, a.cfg.Cache.MaxEntries)
	}

	if a.cfg.Metrics.Enabled {
		metrics.InitRegistry()
		if a.cfg.Metrics.Address != "" {
			a.health = health.NewServer(health.Config{
				ServiceName: "clever-parlay",
				Version:     Version,
				Commit:      GitCommit,
				Addr:        a.cfg.Metrics.Address,
				Metrics:     metrics.Handler(),
				Logger:      a.logger,
			})
			if err := a.health.Start(ctx); err != nil {
				return fmt.Errorf("failed to start metrics server: %w", err)
			}
		}
	}
	return nil
}

func (a *app) newService() (*service.SimulationService, error) {
	rankBy, err := simulation.ParseRankBy(a.cfg.Simulation.RankBy)
	if err != nil {
		return nil, err
	}
	return service.NewSimulationService(a.logger, service.Options{
		RunID:         a.runID,
		Seed:          a.cfg.Simulation.Seed,
		Workers:       a.cfg.Simulation.Workers,
		RankBy:        rankBy,
		Cache:         a.cache,
		RecordMetrics: a.cfg.Metrics.Enabled,
	}), nil
}

// finish publishes the run status and, when serving metrics, blocks until interrupted.
func (a *app) finish(ctx context.Context, status health.RunStatus) {
	if a.health == nil {
		return
	}
	a.health.SetLastRun(status)
	a.logger.WithField("addr", a.health.Addr()).Info("Run complete, serving metrics until interrupted")
	<-ctx.Done()
	_ = a.health.Shutdown()
}
