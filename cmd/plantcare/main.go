// Command plantcare runs the plant care web app and its maintenance tasks.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/cache"
	"github.com/oykukmnGlad/ROOTEAM/internal/config"
	"github.com/oykukmnGlad/ROOTEAM/internal/database"
	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/observability"
	"github.com/oykukmnGlad/ROOTEAM/internal/seed"
	"github.com/oykukmnGlad/ROOTEAM/internal/server"

	"github.com/spf13/cobra"
)

const (
	Version         = "0.1.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plantcare",
		Short:         "Plant care tracker and species forum",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd.Context())
			},
		},
		seedCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("plantcare version %s\n", Version)
			},
		},
	)

	return cmd
}

func seedCmd() *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo data (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return errors.New("refusing to seed a production database")
			}

			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			redisClient, err := cache.Connect(cmd.Context(), cfg.RedisURL)
			if err != nil {
				middleware.Logger.Warn("Redis unavailable, cached categories left as is", slog.String("error", err.Error()))
			}
			if redisClient != nil {
				defer func() { _ = redisClient.Close() }()
			}

			res, err := seed.Run(cmd.Context(), db, cache.NewStore(redisClient), opts)
			if err != nil {
				return err
			}
			fmt.Printf("seeded %d users, %d plants, %d care logs, %d posts (password %q)\n",
				res.Users, res.Plants, res.CareLogs, res.Posts, seed.DemoPassword)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", opts.Users, "Number of users to create")
	cmd.Flags().IntVar(&opts.PlantsPerUser, "plants", opts.PlantsPerUser, "Plants per user")
	cmd.Flags().IntVar(&opts.LogsPerPlant, "logs", opts.LogsPerPlant, "Care logs per plant")
	cmd.Flags().IntVar(&opts.Posts, "posts", opts.Posts, "Forum posts in total")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (0 picks one)")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	middleware.ConfigureLogger(cfg.Env)
	return cfg, nil
}

func migrate(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	return database.Migrate(ctx, db)
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceVersion: Version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case sig := <-sigCh:
		middleware.Logger.Info("Shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		middleware.Logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(ctx); err != nil {
		middleware.Logger.Error("Tracer shutdown error", slog.String("error", err.Error()))
	}
	return nil
}
