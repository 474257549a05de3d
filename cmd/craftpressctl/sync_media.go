// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"craftpress/internal/mediasync"
	"craftpress/internal/storage"
	"craftpress/internal/store"
)

var syncMediaCmd = &cobra.Command{
	Use:   "sync-media",
	Short: "Reconcile media rows against the storage bucket",
	Long: `Run one media reconciliation pass: list the bucket, find database
rows whose backing object is gone, and remove them. Safe to run
repeatedly; a pass with nothing to do reports 0 removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cfg, err := openDB(false)
		if err != nil {
			return err
		}
		defer db.Close()

		storageClient, err := storage.New(
			cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey,
			cfg.S3.Bucket, cfg.S3.PublicURL,
		)
		if err != nil {
			return err
		}
		if storageClient == nil {
			return errors.New("object storage is not configured")
		}

		syncer := mediasync.New(storageClient, store.NewMediaStore(db))
		report := syncer.Run(cmd.Context())

		if report.Errors > 0 {
			color.Yellow("! Sync finished with errors: checked %d, removed %d, errors %d",
				report.Checked, report.Removed, report.Errors)
			return nil
		}
		color.Green("✓ Sync complete: checked %d, removed %d", report.Checked, report.Removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncMediaCmd)
}
