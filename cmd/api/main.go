package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthsync/healthsync-go/internal/config"
	"github.com/healthsync/healthsync-go/internal/crypto"
	"github.com/healthsync/healthsync-go/internal/handler"
	"github.com/healthsync/healthsync-go/internal/logging"
	"github.com/healthsync/healthsync-go/internal/repository"
	"github.com/healthsync/healthsync-go/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "healthsync",
		Short:         "HealthSync patient health record API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer db.Close()

			dialect := repository.Dialect(cfg.DatabaseDriver)
			if err := repository.Migrate(cmd.Context(), db, dialect); err != nil {
				return err
			}

			version, err := repository.SchemaVersion(cmd.Context(), db, dialect)
			if err != nil {
				return err
			}
			fmt.Printf("Database is at schema version %d.\n", version)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer db.Close()

			version, err := repository.SchemaVersion(cmd.Context(), db, repository.Dialect(cfg.DatabaseDriver))
			if err != nil {
				return err
			}
			fmt.Printf("Driver: %s\nSchema version: %d\n", cfg.DatabaseDriver, version)
			return nil
		},
	})

	return cmd
}

// setup loads configuration, installs the default logger and opens the database.
func setup() (config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stdout, cfg.Env, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	slog.SetDefault(logger)

	dialect, err := repository.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		return config.Config{}, nil, err
	}

	db, err := repository.NewDB(repository.DBConfig{
		Dialect:         dialect,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

func runServer() error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialect := repository.Dialect(cfg.DatabaseDriver)
	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db, dialect); err != nil {
			return err
		}
	}

	tokens, err := crypto.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	services := service.NewServices(db, dialect, tokens, crypto.NewHasher(bcrypt.DefaultCost))
	router := handler.NewRouter(ctx, handler.RouterConfig{
		CORSOrigins:        cfg.Origins(),
		AuthRateLimitRPS:   cfg.AuthRateLimitRPS,
		AuthRateLimitBurst: cfg.AuthRateLimitBurst,
	}, services, repository.NewPatientRepository(db))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
