package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/db"
	"github.com/noble-it/hub/internal/app"
	"github.com/noble-it/hub/internal/auth"
	"github.com/noble-it/hub/internal/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "hub",
		Short:         "Noble IT Hub admin back-office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading the environment (default .env)")

	loadConfig := func() (*config.Config, error) {
		if envFile != "" {
			return config.Load(envFile)
		}
		return config.Load()
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			gdb, err := db.Open(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}

			if err := db.Migrate(gdb); err != nil {
				return err
			}

			slog.Info("database migrated", "driver", cfg.DatabaseDriver)
			return nil
		},
	}

	hashPassword := &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash for ADMIN_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}

			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}

	root.AddCommand(serve, migrate, hashPassword)

	// Running the bare binary starts the server.
	root.RunE = serve.RunE

	return root
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	var gdb *gorm.DB
	if cfg.DatabaseEnabled() {
		var err error
		if gdb, err = db.Open(cfg); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	application, err := app.New(cfg, gdb, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("shutdown cleanup failed", "error", err)
		}
	}()

	application.Scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
