// Package cmd implements the event finance CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatali-fataliyev/event_finance/internal/config"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/fatali-fataliyev/event_finance/internal/storage"
	"github.com/fatali-fataliyev/event_finance/logging"
	"github.com/spf13/cobra"
)

var (
	flagStorage string
	flagLogDir  string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:               "event_finance",
	Short:             "Event budgets, expenditures and fundraising",
	Long:              "Track event budgets, approve expenditures, record donations and report the financial position of each event.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagStorage, "storage", "s", "", "Storage backend: inmemory, mysql, sqlite or mongo (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogDir, "log-dir", "", "Directory for log files (overrides config)")
}

// setup loads the configuration and initializes the logger before every command.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagStorage != "" {
		loaded.Storage.Type = strings.ToLower(flagStorage)
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-dir") {
		loaded.Log.Dir = flagLogDir
	}
	cfg = loaded

	if err := logging.Init(cfg.App.Env, cfg.Log.Level, cfg.Log.Dir); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// openTracker connects the configured storage backend and builds the finance facade on top of it.
// The returned closer releases the backend.
func openTracker(ctx context.Context) (*finance.FinanceTracker, func(), error) {
	var (
		backend finance.Storage
		closer  = func() {}
	)

	switch cfg.Storage.Type {
	case config.StorageMySQL:
		db, err := storage.InitMySQL(ctx, cfg.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlStorage := storage.NewSQLStorage(db, storage.DriverMySQL)
		backend = sqlStorage
		closer = func() { sqlStorage.Close() }
	case config.StorageSQLite:
		db, err := storage.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlStorage := storage.NewSQLStorage(db, storage.DriverSQLite)
		backend = sqlStorage
		closer = func() { sqlStorage.Close() }
	case config.StorageMongo:
		mongoStorage, err := storage.InitMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		backend = mongoStorage
		closer = func() { mongoStorage.Close(context.Background()) }
	default:
		backend = storage.NewInMemoryStorage()
	}

	tracker := finance.NewFinanceTracker(backend, finance.Options{
		DefaultCurrency:           cfg.Finance.DefaultCurrency,
		DefaultContingencyPercent: cfg.Finance.DefaultContingencyPercent,
	})
	logging.Logger.Infof("using %s storage", tracker.StorageType)
	return &tracker, closer, nil
}
