package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/chronicler/internal/api"
	"github.com/talgya/chronicler/internal/cache"
	"github.com/talgya/chronicler/internal/chronicle"
	"github.com/talgya/chronicler/internal/observe"
	"github.com/talgya/chronicler/internal/world"
)

func newServeCmd(a *app) *cobra.Command {
	var port string
	var seedIfEmpty bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chronicles over HTTP",
		Long: `Serve compiled chronicles over HTTP, with Prometheus metrics on /metrics.

An empty database is populated with demo civilizations first unless
--seed-if-empty=false is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, seedIfEmpty)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
	cmd.Flags().BoolVar(&seedIfEmpty, "seed-if-empty", true, "generate demo history when the database is empty")
	return cmd
}

func (a *app) serve(ctx context.Context, seedIfEmpty bool) error {
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if seedIfEmpty {
		civs, err := db.Civilizations(ctx)
		if err != nil {
			return fmt.Errorf("list civilizations: %w", err)
		}
		if len(civs) == 0 {
			slog.Info("database is empty, generating demo history", "seed", a.cfg.DemoSeed)
			gen := world.DefaultGenConfig()
			gen.Seed = a.cfg.DemoSeed
			gen.Civilizations = a.cfg.DemoCivilizations
			if _, err := importRecords(ctx, db, world.GenerateHistory(gen)); err != nil {
				return err
			}
		}
	}

	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceVersion: Version})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("metrics shutdown", "error", err)
		}
	}()

	svc := a.newService(db, cache.New(a.cfg.CacheTTL))
	srv := &api.Server{
		Service:    svc,
		Store:      db,
		Port:       a.cfg.Port,
		AdminKey:   a.cfg.AdminKey,
		Metrics:    observe.Handler(),
		Version:    Version,
		TrustProxy: a.cfg.TrustProxy,
	}
	return srv.ListenAndServe(ctx)
}

// newService wires a compile service from the resolved configuration.
// A nil cache disables memoization.
func (a *app) newService(src chronicle.Source, c *cache.Chronicles) *chronicle.Service {
	svc := chronicle.NewService(src)
	svc.Compiler = chronicle.NewCompiler(chronicle.WithMaxYearsApart(a.cfg.MaxYearsApart))
	svc.Workers = a.cfg.Workers
	svc.Metrics = observe.DefaultMetrics()
	if c != nil {
		svc.Cache = c
	}
	return svc
}
