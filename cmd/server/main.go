package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/quizgame-accounts/internal/api"
	"github.com/mcoot/quizgame-accounts/internal/config"
	"github.com/mcoot/quizgame-accounts/internal/factory"
	pgstorage "github.com/mcoot/quizgame-accounts/internal/storage/postgres"
	redisstorage "github.com/mcoot/quizgame-accounts/internal/storage/redis"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, envErr := config.FromEnv()

	rootCmd := &cobra.Command{
		Use:   "quizserver",
		Short: "Quiz accounts server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags have been applied on top of the environment by now
			if envErr != nil {
				return envErr
			}
			return cfg.Validate()
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.HTTPPort, "port", cfg.HTTPPort, "HTTP port (env: "+config.EnvHTTPPort+")")
	flags.StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis, postgres (env: "+config.EnvStorageType+")")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: "+config.EnvRedisURL+")")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL DSN (env: "+config.EnvDatabaseURL+")")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error (env: "+config.EnvLogLevel+")")
	flags.Float64Var(&cfg.LoginRate, "login-rate", cfg.LoginRate, "Login attempts per second per client (env: "+config.EnvLoginRate+")")
	flags.IntVar(&cfg.LoginBurst, "login-burst", cfg.LoginBurst, "Login burst per client (env: "+config.EnvLoginBurst+")")
	flags.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost for new passwords (env: "+config.EnvBcryptCost+")")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseURL == "" {
				return errors.New("--database-url or " + config.EnvDatabaseURL + " is required")
			}
			logger := newLogger(cfg)
			if err := pgstorage.Migrate(cmd.Context(), cfg.DatabaseURL); err != nil {
				logger.Error("migration failed", slog.String("error", err.Error()))
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)
	// Running without a subcommand serves
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

func newLogger(cfg config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func serve(ctx context.Context, cfg config.Config) error {
	// Set up logging with JSON output
	logger := newLogger(cfg)

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		DatabaseURL: cfg.DatabaseURL,
		BcryptCost:  cfg.BcryptCost,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Accounts:   app.Accounts,
		LoginRate:  cfg.LoginRate,
		LoginBurst: cfg.LoginBurst,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.HTTPPort
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
