// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mediasync reconciles media database rows against the object
// storage bucket. A row whose backing object no longer exists (deleted
// out-of-band) is an orphan and gets removed. The job is idempotent and
// best-effort: failures are counted and logged, never raised to the
// caller that triggered the sync.
package mediasync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"craftpress/internal/models"
)

// keyPrefix is the bucket prefix under which all media objects live.
const keyPrefix = "media/"

// gracePeriod protects rows created around the bucket listing snapshot.
// An upload finishing while a pass is in flight inserts its row after
// ListKeys returned, so the listing does not contain the new object yet.
// Such a row is not an orphan; it is picked up on the next pass.
const gracePeriod = time.Minute

// ObjectLister enumerates object keys in the storage bucket.
type ObjectLister interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// MediaRows provides the database side of the reconciliation diff.
type MediaRows interface {
	ListAll() ([]models.Media, error)
	Delete(id uuid.UUID) (*models.Media, error)
}

// Report summarizes a reconciliation run.
type Report struct {
	Checked int `json:"checked"`
	Removed int `json:"removed"`
	Errors  int `json:"errors"`
}

// Plan computes which media rows are orphans given a bucket listing.
// It is a pure function: no I/O, no side effects. A row is an orphan when
// its primary object key is absent from the bucket; a missing thumbnail
// alone does not orphan the row.
func Plan(bucketKeys []string, rows []models.Media) []models.Media {
	present := make(map[string]struct{}, len(bucketKeys))
	for _, k := range bucketKeys {
		present[k] = struct{}{}
	}

	var orphans []models.Media
	for _, m := range rows {
		if _, ok := present[m.S3Key]; !ok {
			orphans = append(orphans, m)
		}
	}
	return orphans
}

// Syncer runs the reconciliation against live storage and database.
type Syncer struct {
	lister ObjectLister
	media  MediaRows

	// mu makes concurrent runs coalesce: a run that finds the lock held
	// returns immediately. Duplicate syncs are harmless either way since
	// delete-if-missing is idempotent, but there is no point doing the
	// bucket listing twice at once.
	mu sync.Mutex
}

// New creates a Syncer. Returns nil if lister is nil (storage not
// configured), which disables syncing.
func New(lister ObjectLister, media MediaRows) *Syncer {
	if lister == nil {
		return nil
	}
	return &Syncer{lister: lister, media: media}
}

// Run performs one reconciliation pass and returns its report.
// If another run is already in flight, it returns a zero report without
// doing any work.
func (s *Syncer) Run(ctx context.Context) Report {
	if !s.mu.TryLock() {
		slog.Debug("media sync already running, skipping")
		return Report{}
	}
	defer s.mu.Unlock()

	var rep Report

	cutoff := time.Now().Add(-gracePeriod)
	keys, err := s.lister.ListKeys(ctx, keyPrefix)
	if err != nil {
		slog.Error("media sync: bucket listing failed", "error", err)
		rep.Errors++
		return rep
	}

	rows, err := s.media.ListAll()
	if err != nil {
		slog.Error("media sync: row listing failed", "error", err)
		rep.Errors++
		return rep
	}
	rep.Checked = len(rows)

	for _, orphan := range Plan(keys, rows) {
		// Rows newer than the listing snapshot may simply not be in it.
		if orphan.CreatedAt.After(cutoff) {
			slog.Debug("media sync: skipping recent row",
				"id", orphan.ID, "key", orphan.S3Key)
			continue
		}
		if _, err := s.media.Delete(orphan.ID); err != nil {
			slog.Warn("media sync: orphan delete failed",
				"id", orphan.ID, "key", orphan.S3Key, "error", err)
			rep.Errors++
			continue
		}
		slog.Info("media sync: removed orphaned record",
			"id", orphan.ID, "key", orphan.S3Key)
		rep.Removed++
	}

	return rep
}

// Kick runs a sync in a fire-and-forget goroutine. Used after uploads and
// deletes so a failed sync never blocks the primary action. The sync gets
// its own timeout-bound context because the request context is cancelled
// as soon as the response is written.
func (s *Syncer) Kick() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Run(ctx)
	}()
}

// RunEvery performs a reconciliation pass on every tick until the context
// is cancelled. Intended to run in its own goroutine for the lifetime of
// the server.
func (s *Syncer) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rep := s.Run(ctx)
			if rep.Removed > 0 || rep.Errors > 0 {
				slog.Info("media sync pass finished",
					"checked", rep.Checked, "removed", rep.Removed, "errors", rep.Errors)
			}
		case <-ctx.Done():
			return
		}
	}
}
