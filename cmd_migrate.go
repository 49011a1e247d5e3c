package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pantry-backend/internal/platform/config"
	"pantry-backend/internal/platform/db"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		return migrateUp(cfg, logger)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last N migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		// マイグレーション終了時に接続ごと閉じられるので専用の接続を使う
		conn, err := db.Connect(cfg.DB)
		if err != nil {
			return err
		}
		if err := db.MigrateDown(conn, migrateSteps); err != nil {
			return err
		}
		logger.Info("rolled back", zap.Int("steps", migrateSteps))
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		conn, err := db.Connect(cfg.DB)
		if err != nil {
			return err
		}
		v, dirty, err := db.MigrationVersion(conn)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func migrateUp(cfg *config.Config, logger *zap.Logger) error {
	conn, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}
	if err := db.MigrateUp(conn); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}
