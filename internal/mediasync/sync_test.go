// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mediasync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftpress/internal/models"
)

// fakeLister returns a fixed key listing or an error.
type fakeLister struct {
	keys []string
	err  error
}

func (f *fakeLister) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	return f.keys, f.err
}

// fakeMedia is an in-memory MediaRows implementation.
type fakeMedia struct {
	rows      map[uuid.UUID]models.Media
	deleteErr error
}

func newFakeMedia(rows ...models.Media) *fakeMedia {
	m := &fakeMedia{rows: make(map[uuid.UUID]models.Media)}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (f *fakeMedia) ListAll() ([]models.Media, error) {
	out := make([]models.Media, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeMedia) Delete(id uuid.UUID) (*models.Media, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	delete(f.rows, id)
	return &r, nil
}

func mediaRow(key string) models.Media {
	return models.Media{ID: uuid.New(), S3Key: key}
}

func TestPlan(t *testing.T) {
	kept := mediaRow("media/2026/01/kept.jpg")
	orphan := mediaRow("media/2026/01/gone.jpg")

	orphans := Plan([]string{kept.S3Key}, []models.Media{kept, orphan})

	require.Len(t, orphans, 1)
	assert.Equal(t, orphan.ID, orphans[0].ID)
}

func TestPlanMissingThumbDoesNotOrphan(t *testing.T) {
	thumb := "media/2026/01/a_thumb.jpg"
	row := mediaRow("media/2026/01/a.jpg")
	row.ThumbS3Key = &thumb

	// The thumbnail object is gone but the primary object remains.
	orphans := Plan([]string{row.S3Key}, []models.Media{row})
	assert.Empty(t, orphans)
}

func TestPlanIsPure(t *testing.T) {
	rows := []models.Media{mediaRow("media/x"), mediaRow("media/y")}
	keys := []string{"media/x"}

	first := Plan(keys, rows)
	second := Plan(keys, rows)

	assert.Equal(t, first, second)
	assert.Len(t, rows, 2, "input rows must not be mutated")
}

func TestSyncerRunRemovesOrphans(t *testing.T) {
	kept := mediaRow("media/2026/02/kept.png")
	orphan := mediaRow("media/2026/02/gone.png")
	media := newFakeMedia(kept, orphan)

	s := New(&fakeLister{keys: []string{kept.S3Key}}, media)
	rep := s.Run(context.Background())

	assert.Equal(t, Report{Checked: 2, Removed: 1}, rep)

	rows, _ := media.ListAll()
	require.Len(t, rows, 1)
	assert.Equal(t, kept.ID, rows[0].ID)
}

func TestSyncerRunIsIdempotent(t *testing.T) {
	kept := mediaRow("media/2026/03/kept.png")
	orphan := mediaRow("media/2026/03/gone.png")
	media := newFakeMedia(kept, orphan)
	lister := &fakeLister{keys: []string{kept.S3Key}}

	s := New(lister, media)

	first := s.Run(context.Background())
	assert.Equal(t, 1, first.Removed)

	// Nothing changed in the bucket: the second pass finds no orphans.
	second := s.Run(context.Background())
	assert.Equal(t, Report{Checked: 1, Removed: 0}, second)
}

// staleLister simulates an upload finishing while a pass is in flight:
// the row appears in the database after the bucket listing was taken, so
// the listing does not contain its object.
type staleLister struct {
	keys  []string
	media *fakeMedia
	fresh models.Media
}

func (l *staleLister) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	l.media.rows[l.fresh.ID] = l.fresh
	return l.keys, nil
}

func TestSyncerRunKeepsRowsNewerThanListing(t *testing.T) {
	old := mediaRow("media/2026/05/old.png")
	old.CreatedAt = time.Now().Add(-time.Hour)

	fresh := mediaRow("media/2026/05/just-uploaded.png")
	fresh.CreatedAt = time.Now()

	media := newFakeMedia(old)
	s := New(&staleLister{keys: []string{old.S3Key}, media: media, fresh: fresh}, media)

	rep := s.Run(context.Background())

	// The fresh row looks like an orphan against the stale listing but
	// must survive; the next pass will see its object.
	assert.Equal(t, Report{Checked: 2, Removed: 0}, rep)
	rows, _ := media.ListAll()
	assert.Len(t, rows, 2)
}

func TestSyncerRunStillRemovesOldOrphans(t *testing.T) {
	orphan := mediaRow("media/2026/05/long-gone.png")
	orphan.CreatedAt = time.Now().Add(-time.Hour)
	media := newFakeMedia(orphan)

	s := New(&fakeLister{keys: nil}, media)
	rep := s.Run(context.Background())

	assert.Equal(t, Report{Checked: 1, Removed: 1}, rep)
}

func TestSyncerRunCountsErrors(t *testing.T) {
	orphan := mediaRow("media/2026/04/gone.png")
	media := newFakeMedia(orphan)
	media.deleteErr = errors.New("db down")

	s := New(&fakeLister{keys: nil}, media)
	rep := s.Run(context.Background())

	// The failed delete is counted, not raised.
	assert.Equal(t, Report{Checked: 1, Removed: 0, Errors: 1}, rep)
}

func TestSyncerRunListingFailure(t *testing.T) {
	media := newFakeMedia(mediaRow("media/a"))
	s := New(&fakeLister{err: errors.New("bucket unreachable")}, media)

	rep := s.Run(context.Background())
	assert.Equal(t, Report{Errors: 1}, rep)

	// No rows were touched.
	rows, _ := media.ListAll()
	assert.Len(t, rows, 1)
}

func TestNewNilLister(t *testing.T) {
	assert.Nil(t, New(nil, newFakeMedia()))
}
