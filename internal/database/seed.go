package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user and a default author. It is a no-op when users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
	`, "admin", "admin@craftpress.local", string(hash), "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Every post needs an author; seed one and mark it default.
	_, err = db.Exec(`
		INSERT INTO authors (name, slug, is_default)
		VALUES ($1, $2, TRUE)
	`, "Studio Team", "studio-team")
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@craftpress.local",
		"password", "admin123",
	)

	return nil
}
