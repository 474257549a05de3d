// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the CraftPress operator CLI. It covers the setup tasks
// that don't belong in the server: running migrations, bootstrapping the
// first admin user, and one-shot media reconciliation.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"craftpress/internal/config"
	"craftpress/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "craftpressctl",
	Short: "CraftPress operator CLI",
	Long: `craftpressctl manages a CraftPress installation from the command line.

Commands:
  init-db       - Run database migrations
  create-admin  - Create an admin user
  sync-media    - Reconcile media rows against the storage bucket`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB loads configuration and returns a migrated-or-not database
// connection for subcommands.
func openDB(migrate bool) (*sql.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if migrate {
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	return db, cfg, nil
}
