// Package main provides the entry point for the odds-falcon engine.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/odds-falcon/internal/bankroll"
	"github.com/yourusername/odds-falcon/internal/cache"
	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/database"
	"github.com/yourusername/odds-falcon/internal/engine"
	"github.com/yourusername/odds-falcon/internal/logger"
	"github.com/yourusername/odds-falcon/internal/metrics"
	"github.com/yourusername/odds-falcon/internal/models"
	"github.com/yourusername/odds-falcon/internal/notify"
	"github.com/yourusername/odds-falcon/internal/provider"
	"github.com/yourusername/odds-falcon/internal/report"
	"github.com/yourusername/odds-falcon/internal/repository"
	"github.com/yourusername/odds-falcon/internal/store"
	"github.com/yourusername/odds-falcon/internal/strategy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "falcon",
		Short:         "Betting opportunity detection and staking engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to configuration file")

	root.AddCommand(
		newRunCmd(&configPath),
		newDaemonCmd(&configPath),
		newReportCmd(&configPath),
	)
	return root
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one analysis batch and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(*configPath, nil)
			if err != nil {
				return err
			}
			defer app.close()

			ctx, cancel := signalContext()
			defer cancel()

			_, err = app.orchestrator.Run(ctx)
			return err
		},
	}
}

func newDaemonCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run analysis batches on the configured schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := metrics.New()
			app, err := buildApp(*configPath, m)
			if err != nil {
				return err
			}
			defer app.close()

			ctx, cancel := signalContext()
			defer cancel()

			if app.cfg.Metrics.Enabled {
				go serveMetrics(app, m)
			}

			// a tick that fires while the previous batch is still
			// running is skipped; the stores have a single writer
			scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
			_, err = scheduler.AddFunc(app.cfg.Daemon.Schedule, func() {
				if _, err := app.orchestrator.Run(ctx); err != nil {
					app.logger.WithError(err).Error("Scheduled run failed")
				}
			})
			if err != nil {
				return fmt.Errorf("invalid daemon schedule %q: %w", app.cfg.Daemon.Schedule, err)
			}

			// first batch immediately, scheduler handles the rest
			if _, err := app.orchestrator.Run(ctx); err != nil {
				app.logger.WithError(err).Error("Initial run failed")
			}

			scheduler.Start()
			app.logger.WithField("schedule", app.cfg.Daemon.Schedule).Info("Daemon started")

			<-ctx.Done()
			app.logger.Info("Shutdown signal received")

			stopCtx := scheduler.Stop()
			select {
			case <-stopCtx.Done():
			case <-time.After(30 * time.Second):
				app.logger.Warn("Timed out waiting for running jobs")
			}
			app.logger.Info("Daemon shut down")
			return nil
		},
	}
}

func newReportCmd(configPath *string) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Send a performance summary built from the settled-bet ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(*configPath, nil)
			if err != nil {
				return err
			}
			defer app.close()

			ctx, cancel := signalContext()
			defer cancel()

			ledger := app.bets.LoadLedger()
			now := time.Now()

			var text string
			switch window {
			case "daily":
				text = report.Format("Daily report", report.Daily(ledger, now))
			case "weekly":
				text = report.Format("Weekly report", report.Weekly(ledger, now))
			default:
				return fmt.Errorf("unknown report window %q (want daily or weekly)", window)
			}

			fmt.Println(text)
			return app.notifier.Send(ctx, text)
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "daily", "report window: daily or weekly")
	return cmd
}

// app bundles the wired components of one process
type app struct {
	cfg          *config.Config
	logger       *logrus.Logger
	orchestrator *engine.Orchestrator
	bets         *store.BetStore
	notifier     notify.Notifier
	closers      []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp loads configuration and wires every component of the engine
func buildApp(configPath string, m *metrics.Metrics) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Odds Falcon starting")

	a := &app{cfg: cfg, logger: appLog}

	storePath := func(file string) string { return filepath.Join(cfg.Stores.Dir, file) }
	bankrollDefaults := models.NewBankroll(cfg.Bankroll.InitialCapital, cfg.Bankroll.DefaultStakePct)
	bankrollStore := store.NewBankrollStore(storePath(cfg.Stores.BankrollFile), bankrollDefaults, appLog)
	a.bets = store.NewBetStore(storePath(cfg.Stores.PendingFile), storePath(cfg.Stores.LedgerFile), appLog)
	formCache := store.NewFormCacheStore(storePath(cfg.Stores.FormCacheFile), appLog)
	openingOdds := store.NewOpeningOddsStore(storePath(cfg.Stores.OpeningOddsFile), appLog)

	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, appLog)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
		a.notifier = tg
		appLog.Info("Telegram notifier initialized")
	} else {
		a.notifier = notify.NewLogNotifier(appLog)
		appLog.Info("Telegram disabled, notifications go to the log")
	}

	matches, err := buildMatchSource(cfg, appLog, a)
	if err != nil {
		return nil, err
	}

	oddsFeed := provider.NewOddsFeedClient(cfg.OddsFeed, appLog)
	statsFeed := provider.NewStatsFeedClient(cfg.StatsFeed, appLog)
	a.closers = append(a.closers,
		func() { _ = oddsFeed.Close() },
		func() { _ = statsFeed.Close() },
	)

	registry, err := strategy.NewRegistry(cfg.Strategies, appLog)
	if err != nil {
		return nil, fmt.Errorf("failed to build strategy battery: %w", err)
	}

	tracker := engine.NewTracker(
		a.bets, bankrollStore, statsFeed, a.notifier, m,
		cfg.Bankroll.SettleDelay(), appLog,
	)

	a.orchestrator = engine.NewOrchestrator(engine.Deps{
		Config:      cfg,
		Matches:     matches,
		OddsFeed:    oddsFeed,
		StatsFeed:   statsFeed,
		Registry:    registry,
		Staking:     bankroll.NewStakingEngine(cfg.Bankroll, appLog),
		Tracker:     tracker,
		Bets:        a.bets,
		Bankroll:    bankrollStore,
		FormCache:   formCache,
		OpeningOdds: openingOdds,
		Lookups:     cache.NewLookupCache(time.Hour, appLog),
		Notifier:    a.notifier,
		Metrics:     m,
		Logger:      appLog,
	})
	return a, nil
}

func buildMatchSource(cfg *config.Config, appLog *logrus.Logger, a *app) (repository.MatchSource, error) {
	switch cfg.History.Source {
	case "postgres":
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := database.NewDB(connectCtx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		appLog.Info("Database connection established")
		return repository.NewPostgresMatchRepository(db), nil
	case "csv":
		appLog.WithField("path", cfg.History.CSVPath).Info("Loading match history from CSV")
		return repository.NewCSVMatchSource(cfg.History.CSVPath, appLog), nil
	default:
		return nil, fmt.Errorf("unknown history source %q", cfg.History.Source)
	}
}

func serveMetrics(a *app, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle(a.cfg.Metrics.Path, m.Handler())

	addr := fmt.Sprintf(":%d", a.cfg.Daemon.MetricsPort)
	a.logger.WithFields(logrus.Fields{
		"addr": addr,
		"path": a.cfg.Metrics.Path,
	}).Info("Metrics endpoint listening")

	if err := http.ListenAndServe(addr, mux); err != nil {
		a.logger.WithError(err).Error("Metrics endpoint failed")
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
