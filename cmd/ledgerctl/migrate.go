package main

import (
	"fmt"

	"github.com/SscSPs/general_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.Up(); err != nil {
			return err
		}
		return printVersion(cmd, m)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateDownSteps < 1 {
			return fmt.Errorf("--steps must be at least 1 (got %d)", migrateDownSteps)
		}
		m, err := database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.Down(migrateDownSteps); err != nil {
			return err
		}
		return printVersion(cmd, m)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		defer m.Close()
		return printVersion(cmd, m)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func printVersion(cmd *cobra.Command, m *database.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		cmd.Println("schema version: none")
		return nil
	}
	if dirty {
		cmd.Printf("schema version: %d (dirty)\n", version)
		return nil
	}
	cmd.Printf("schema version: %d\n", version)
	return nil
}
