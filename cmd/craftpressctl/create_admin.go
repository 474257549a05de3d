// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"craftpress/internal/models"
	"craftpress/internal/password"
	"craftpress/internal/store"
)

var (
	adminLocal      bool
	adminProduction bool
	adminUsername   string
	adminEmail      string
	adminPassword   string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user",
	Long: `Create an admin panel user. Values not supplied as flags are prompted
for interactively. The password policy depends on the mode: --local
accepts 8+ characters, --production requires 12+ with uppercase,
lowercase, digit, and special characters.

Examples:
  craftpressctl create-admin --local --username admin --email admin@example.com --password secret123
  craftpressctl create-admin --production`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().BoolVar(&adminLocal, "local", false, "Use the relaxed local password policy")
	createAdminCmd.Flags().BoolVar(&adminProduction, "production", false, "Use the strict production password policy")
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Username for the new admin")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email address for the new admin")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password for the new admin (prompted if omitted)")
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	if adminLocal && adminProduction {
		return errors.New("--local and --production are mutually exclusive")
	}

	db, cfg, err := openDB(true)
	if err != nil {
		return err
	}
	defer db.Close()

	// Mode defaults to the environment the config reports; an explicit
	// flag overrides it.
	mode := password.Mode(cfg.PasswordMode())
	if adminLocal {
		mode = password.ModeLocal
	}
	if adminProduction {
		mode = password.ModeProduction
	}

	reader := bufio.NewReader(os.Stdin)

	username := strings.TrimSpace(adminUsername)
	if username == "" {
		username, err = prompt(reader, "Username")
		if err != nil {
			return err
		}
	}
	if username == "" {
		return errors.New("username is required")
	}

	email := strings.TrimSpace(adminEmail)
	if email == "" {
		email, err = prompt(reader, "Email")
		if err != nil {
			return err
		}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}

	pw := adminPassword
	if pw == "" {
		pw, err = prompt(reader, "Password")
		if err != nil {
			return err
		}
	}
	if err := password.Validate(pw, mode); err != nil {
		return fmt.Errorf("password rejected (%s policy): %w", mode, err)
	}

	users := store.NewUserStore(db)
	user, err := users.Create(username, email, pw, models.RoleAdmin)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return fmt.Errorf("a user with this username or email already exists")
		}
		return err
	}

	color.Green("✓ Admin user %q created (%s)", user.Username, user.Email)
	return nil
}

// prompt reads one line of input with a label.
func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}
