package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"folio/internal/auth"
)

// Seed populates the database with initial development data: one admin user
// plus the singleton site-settings, home-layout and writing-page rows the
// SPA expects.
// It is a no-op for any table that already has data.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	if err := seedAdmin(db, adminEmail, adminPassword); err != nil {
		return err
	}
	if err := seedSettings(db); err != nil {
		return err
	}
	if err := seedHomeLayout(db); err != nil {
		return err
	}
	return seedWritingSettings(db)
}

func seedAdmin(db *sql.DB, email, password string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin_users").Scan(&count); err != nil {
		return fmt.Errorf("seed check admin users: %w", err)
	}
	if count > 0 {
		slog.Info("admin users already seeded, skipping")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed hash password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO admin_users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
	`, strings.ToLower(email), hash, "Site Owner")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user", "email", email)
	return nil
}

func seedSettings(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM site_settings").Scan(&count); err != nil {
		return fmt.Errorf("seed check settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO site_settings (site_name, site_description, owner_name, owner_email, owner_title, navigation)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		"Portfolio", "Personal portfolio and resume site",
		"Site Owner", "owner@folio.local", "Engineer",
		`[{"label":"Home","path":"/"},{"label":"Projects","path":"/projects"},{"label":"Writing","path":"/writing"},{"label":"Resume","path":"/resume"},{"label":"Contact","path":"/contact"}]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert settings: %w", err)
	}

	slog.Info("database seeded with default site settings")
	return nil
}

func seedHomeLayout(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM home_layout").Scan(&count); err != nil {
		return fmt.Errorf("seed check home layout: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(`INSERT INTO home_layout (sections) VALUES ($1)`,
		`[{"type":"hero","visible":true},{"type":"featuredProjects","visible":true},{"type":"writing","visible":true},{"type":"experience","visible":true},{"type":"contactCta","visible":true}]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert home layout: %w", err)
	}

	slog.Info("database seeded with default home layout")
	return nil
}

func seedWritingSettings(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM writing_settings").Scan(&count); err != nil {
		return fmt.Errorf("seed check writing settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(`INSERT INTO writing_settings (page_title, page_intro) VALUES ($1, $2)`,
		"Selected Writing", "")
	if err != nil {
		return fmt.Errorf("seed insert writing settings: %w", err)
	}

	slog.Info("database seeded with default writing page settings")
	return nil
}
