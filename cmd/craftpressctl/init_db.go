// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"craftpress/internal/database"
)

var seedDev bool

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Run database migrations",
	Long: `Apply all pending database migrations.

Examples:
  craftpressctl init-db          # Migrate to the latest schema
  craftpressctl init-db --seed   # Migrate and insert development seed data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDB(true)
		if err != nil {
			return err
		}
		defer db.Close()

		if seedDev {
			if err := database.Seed(db); err != nil {
				return err
			}
			color.Green("✓ Seed data inserted")
		}

		v, err := database.Version(db)
		if err != nil {
			return err
		}
		color.Green("✓ Database is up to date (schema version %d)", v)
		return nil
	},
}

func init() {
	initDBCmd.Flags().BoolVar(&seedDev, "seed", false, "Insert development seed data after migrating")
	rootCmd.AddCommand(initDBCmd)
}
