package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/coursegate/internal/audit"
	"github.com/dropDatabas3/coursegate/internal/config"
	"github.com/dropDatabas3/coursegate/internal/http/router"
	"github.com/dropDatabas3/coursegate/internal/idp"
	"github.com/dropDatabas3/coursegate/internal/metrics"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
	"github.com/dropDatabas3/coursegate/internal/session"
	"github.com/dropDatabas3/coursegate/internal/store/core"
	"github.com/dropDatabas3/coursegate/internal/store/memory"
	"github.com/dropDatabas3/coursegate/internal/store/pg"
	migrations "github.com/dropDatabas3/coursegate/migrations/postgres"
)

var version = "dev"

func main() {
	// .env es opcional; en despliegues reales las vars vienen del entorno.
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:   "coursegate",
		Short: "Decision service del segundo factor por curso",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "ruta del config YAML")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.Log.Level,
				ServiceName: "coursegate",
				Version:     version,
			})
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			flags, err := buildFlags(cfg)
			if err != nil {
				return err
			}
			tracker := session.NewTracker(flags, audit.NewLog())

			source, err := buildSource(cfg)
			if err != nil {
				return err
			}

			handler := router.New(router.Deps{
				Cfg:     cfg,
				Store:   store,
				Tracker: tracker,
				Source:  source,
				Metrics: metrics.Register(nil),
			})

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.L().Info("http server listening", logger.String("addr", cfg.Server.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				logger.L().Info("shutting down")
				return srv.Shutdown(shCtx)
			})
			return g.Wait()
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el schema de PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "coursegate-migrate"})
			defer func() { _ = logger.Sync() }()

			if cfg.Storage.Driver != "postgres" {
				return errors.New("migrate: storage.driver must be postgres")
			}

			ctx := cmd.Context()
			store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
				MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
				MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
				ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
			})
			if err != nil {
				return err
			}
			defer store.Close()

			if down {
				return store.MigrateDown(ctx, migrations.SchemaFS, migrations.SchemaDir)
			}
			return store.Migrate(ctx, migrations.SchemaFS, migrations.SchemaDir)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "deshace el schema en orden inverso")
	return cmd
}

// ---- wiring helpers ----

func buildStore(ctx context.Context, cfg *config.Config) (core.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return pg.New(ctx, cfg.Storage.DSN, pg.Config{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		})
	case "memory":
		logger.L().Warn("using in-memory store; data will not survive restarts")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func buildFlags(cfg *config.Config) (session.FlagStore, error) {
	switch cfg.Session.Flags.Kind {
	case "memory":
		return session.NewMemoryFlags(cfg.SessionTTL()), nil
	case "redis":
		r := cfg.Session.Flags.Redis
		return session.NewRedisFlags(r.Addr, r.DB, r.Prefix, cfg.SessionTTL()), nil
	default:
		return nil, fmt.Errorf("unknown session flags kind %q", cfg.Session.Flags.Kind)
	}
}

func buildSource(cfg *config.Config) (idp.Source, error) {
	if cfg.Gate.UserAttributeOverride != "" {
		return idp.HeaderSource{Attribute: cfg.Gate.UserAttributeOverride}, nil
	}
	if cfg.Gate.UserInfoURL != "" {
		return idp.NewUserInfoSource(cfg.Gate.UserInfoURL), nil
	}
	return nil, errors.New("gate: no identity source configured")
}
