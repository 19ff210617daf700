package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/postgres/migrations"
	"github.com/heartmarshall/voicerec-backend/internal/app"
	"github.com/heartmarshall/voicerec-backend/internal/config"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

var rootCmd = &cobra.Command{
	Use:           "voicerec",
	Short:         "Voice recording API server",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := app.NewLogger(cfg.Log)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.Run(ctx, cfg, logger)
	},
}

// migrate command
var migrateDSN string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := openMigrationDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := migrations.Up(ctx, db)
		if err != nil {
			return err
		}
		fmt.Printf("Applied %d migration(s)\n", n)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := openMigrationDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Down(ctx, db); err != nil {
			return err
		}
		fmt.Println("Rolled back one migration")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := openMigrationDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		statuses, err := migrations.Status(ctx, db)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%-8s %5d  %s\n", state, s.Version, s.Source)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(app.BuildVersion())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: $CONFIG_PATH or ./config.yaml)")
	migrateCmd.PersistentFlags().StringVar(&migrateDSN, "dsn", "", "database DSN; skips config loading when set")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

// openMigrationDB connects with --dsn when given, otherwise with the
// configured database DSN.
func openMigrationDB(ctx context.Context) (*sql.DB, error) {
	dsn := migrateDSN
	if dsn == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		dsn = cfg.Database.DSN
	}
	return migrations.Open(ctx, dsn)
}
