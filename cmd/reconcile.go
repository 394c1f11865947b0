package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"asset-catalog/core/config"
	"asset-catalog/core/database"
	"asset-catalog/core/logger"
	"asset-catalog/core/storage"
	"asset-catalog/feature/catalog"
	"asset-catalog/feature/catalog/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	snapshotPath string
	fromStorage  bool
	dryRun       bool
	uploadReport bool
)

// reconcileCmd applies a catalog snapshot to the database.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a catalog snapshot into the database",
	Long: `Reconcile reads a snapshot of remote asset records and applies it to the
catalog database: new assets, new revisions for major changes, in-place edits
for minor changes, tags, categories, previews and downloads.

A timestamped text report of every change is written to the report directory.

Examples:
  # Reconcile the configured snapshot file
  reconcile

  # Reconcile another file without touching the database
  reconcile --snapshot ./all_assets_raw.txt --dry-run

  # Read the snapshot from object storage and upload the report
  reconcile --from-storage --upload`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Snapshot file (defaults to catalog.snapshot_path)")
	reconcileCmd.Flags().BoolVar(&fromStorage, "from-storage", false, "Read the snapshot from catalog.snapshot_object in the storage bucket")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Roll back all changes and write no report")
	reconcileCmd.Flags().BoolVar(&uploadReport, "upload", false, "Upload the report to the storage bucket")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	// Storage is only needed for remote snapshots and report uploads
	var client storage.Client
	if fromStorage || uploadReport || cfg.Catalog.UploadReports {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := catalog.NewService(client, cfg.Storage.Bucket, l, db, cfg.Catalog)
	res, err := svc.Run(ctx, catalog.RunOptions{
		SnapshotPath: snapshotPath,
		FromStorage:  fromStorage,
		DryRun:       dryRun,
		Upload:       uploadReport,
	})
	if res != nil && res.Report != nil {
		printReconcileReport(l, res)
	}
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if res.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printReconcileReport prints the per-bucket summary and where the report went.
func printReconcileReport(l *zap.Logger, res *catalog.RunResult) {
	s := res.Report.Summary()

	l.Info("Reconciliation report",
		zap.String("run_id", res.RunID),
		zap.String("source", res.Source),
		zap.Int("records", res.Records),
		zap.Int("new_assets", s.NewAssets),
		zap.Int("updated_assets", s.UpdatedAssets),
		zap.Int("edited_assets", s.EditedAssets),
		zap.Int("changed_category", s.ChangedCategory),
		zap.Int("new_file_versions", s.NewFileVersions),
		zap.Int("new_preview_images", s.NewPreviewImages),
	)

	fmt.Println()
	for _, line := range s.Lines() {
		fmt.Println(line)
	}
	fmt.Println()

	if res.ReportPath != "" {
		l.Info("Report written", zap.String("path", res.ReportPath))
	}
	if res.ReportKey != "" {
		l.Info("Report uploaded", zap.String("key", res.ReportKey))
	}
}
