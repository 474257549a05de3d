// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"craftpress/internal/database"
	"craftpress/internal/middleware"
	"craftpress/internal/store"
	"craftpress/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "craftpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "craftpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// newTestAdmin builds an Admin handler group against the test database.
// Storage, syncer, and page cache are nil: those paths are exercised by
// their own unit tests.
func newTestAdmin(t *testing.T, db *sql.DB) *Admin {
	t.Helper()
	return NewAdmin(
		store.NewPostStore(db),
		store.NewAuthorStore(db),
		store.NewMediaStore(db),
		store.NewReviewStore(db),
		store.NewSubmissionStore(db),
		store.NewSubscriberStore(db),
		store.NewPortfolioStore(db),
		store.NewProductStore(db),
		nil, nil, nil,
	)
}

// testSession creates an authenticated admin session for request contexts.
func testSession() *token.Session {
	return &token.Session{
		UserID:    uuid.New(),
		Username:  "tester",
		Email:     "tester@handler-test.local",
		Role:      "admin",
		TwoFADone: true,
	}
}

// withSession injects a session into a request.
func withSession(r *http.Request, sess *token.Session) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanAuthors removes test authors by slug.
func cleanAuthors(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM authors WHERE slug = $1", s)
	}
}

// cleanPosts removes test posts by slug.
func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM posts WHERE slug = $1", s)
	}
}
