package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// SettingsStore handles the single-row site settings and home layout tables.
// Both rows are created by the seed; there is no create path through the API.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore creates a new SettingsStore.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingsColumns = `id, site_name, site_description, owner_name, owner_email,
	owner_title, social_links, theme, navigation, seo_defaults, favicon_url,
	apple_touch_icon_url, resume_pdf_url, resume_data, calendar_url,
	external_links, created_at, updated_at`

func scanSettings(row *sql.Row) (*models.SiteSettings, error) {
	st := &models.SiteSettings{}
	err := row.Scan(
		&st.ID, &st.SiteName, &st.SiteDescription, &st.OwnerName, &st.OwnerEmail,
		&st.OwnerTitle, &st.SocialLinks, &st.Theme, &st.Navigation, &st.SEODefaults,
		&st.FaviconURL, &st.AppleTouchIconURL, &st.ResumePDFURL, &st.ResumeData,
		&st.CalendarURL, &st.ExternalLinks, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// GetSettings returns the site settings row. Returns nil if the seed has
// never run.
func (s *SettingsStore) GetSettings() (*models.SiteSettings, error) {
	row := s.db.QueryRow(`SELECT ` + settingsColumns + ` FROM site_settings LIMIT 1`)
	st, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return st, nil
}

// UpdateSettings replaces the settings row's fields.
func (s *SettingsStore) UpdateSettings(in models.SiteSettingsInput) (*models.SiteSettings, error) {
	row := s.db.QueryRow(`
		UPDATE site_settings SET site_name = $1, site_description = $2,
			owner_name = $3, owner_email = $4, owner_title = $5,
			social_links = $6, theme = $7, navigation = $8, seo_defaults = $9,
			favicon_url = $10, apple_touch_icon_url = $11, resume_pdf_url = $12,
			resume_data = $13, calendar_url = $14, external_links = $15,
			updated_at = NOW()
		WHERE id = (SELECT id FROM site_settings LIMIT 1)
		RETURNING `+settingsColumns,
		in.SiteName, in.SiteDescription, in.OwnerName, in.OwnerEmail, in.OwnerTitle,
		jsonbOrEmpty(in.SocialLinks, "{}"), jsonbOrEmpty(in.Theme, "{}"),
		jsonbOrEmpty(in.Navigation, "[]"), jsonbOrEmpty(in.SEODefaults, "{}"),
		in.FaviconURL, in.AppleTouchIconURL, in.ResumePDFURL,
		jsonbOrEmpty(in.ResumeData, "{}"), in.CalendarURL,
		jsonbOrEmpty(in.ExternalLinks, "[]"),
	)
	st, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return st, nil
}

// GetHomeLayout returns the home layout row. Returns nil if never seeded.
func (s *SettingsStore) GetHomeLayout() (*models.HomeLayout, error) {
	l := &models.HomeLayout{}
	err := s.db.QueryRow(`SELECT id, sections, created_at, updated_at FROM home_layout LIMIT 1`).
		Scan(&l.ID, &l.Sections, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get home layout: %w", err)
	}
	return l, nil
}

// UpdateHomeLayout replaces the homepage section list.
func (s *SettingsStore) UpdateHomeLayout(sections []byte) (*models.HomeLayout, error) {
	l := &models.HomeLayout{}
	err := s.db.QueryRow(`
		UPDATE home_layout SET sections = $1, updated_at = NOW()
		WHERE id = (SELECT id FROM home_layout LIMIT 1)
		RETURNING id, sections, created_at, updated_at`,
		jsonbOrEmpty(sections, "[]"),
	).Scan(&l.ID, &l.Sections, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update home layout: %w", err)
	}
	return l, nil
}
