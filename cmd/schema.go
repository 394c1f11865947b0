package cmd

import (
	"fmt"

	"asset-catalog/core/config"
	"asset-catalog/core/database"
	"asset-catalog/core/logger"
	"asset-catalog/feature/catalog/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// schemaCmd creates the catalog tables and prints their columns.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the catalog schema and list its columns",
	Long:  `Creates or updates every catalog table and logs the resulting column layout.`,
	RunE:  runSchema,
}

func init() {
	RootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	l.Info("Catalog schema ready", zap.String("driver", cfg.Database.Driver))

	for _, table := range store.Tables() {
		columns, err := database.GetTableColumns(db, table)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(columns))
		for _, c := range columns {
			names = append(names, c.Field+" "+c.Type)
		}
		l.Info("Table", zap.String("name", table), zap.Strings("columns", names))
	}
	return nil
}
