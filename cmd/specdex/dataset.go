package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/specdex/specdex/internal/config"
	dbRedis "github.com/specdex/specdex/internal/db/redis"
	logpkg "github.com/specdex/specdex/internal/logger"
	catalogrepo "github.com/specdex/specdex/internal/repository/catalog"
	datasetuc "github.com/specdex/specdex/internal/usecase/dataset"
)

var exportFormat string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a dataset file (JSON, CSV or XLSX) into the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as JSON or CSV to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or csv")
}

// newDatasetService connects to the database and assembles the dataset
// service for one-shot CLI use. The caller must invoke the returned cleanup.
func newDatasetService() (*datasetuc.Service, func(), error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to create database store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("database not ready: %w", err)
	}

	repo := catalogrepo.New(store, cfg.Storage.KeyPrefix)
	svc := datasetuc.New(repo, nil, logger)

	cleanup := func() {
		store.Close()
		_ = logger.Sync()
	}
	return svc, cleanup, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newDatasetService()
	if err != nil {
		return err
	}
	defer cleanup()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	report, err := svc.Import(context.Background(), f, path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	fmt.Printf("imported %d records (%d skipped) from %s dataset\n",
		report.Imported, report.Skipped, report.Format)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newDatasetService()
	if err != nil {
		return err
	}
	defer cleanup()

	switch exportFormat {
	case "json":
		return svc.ExportJSON(context.Background(), os.Stdout)
	case "csv":
		return svc.ExportCSV(context.Background(), os.Stdout)
	default:
		return fmt.Errorf("unsupported export format %q (want json or csv)", exportFormat)
	}
}
