package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SiteSettings is the single-row site configuration: owner identity, theme,
// navigation, SEO defaults and external resources. Structured blobs are
// JSONB and flow through to the SPA untouched.
type SiteSettings struct {
	ID                uuid.UUID       `json:"id"`
	SiteName          string          `json:"siteName"`
	SiteDescription   string          `json:"siteDescription"`
	OwnerName         string          `json:"ownerName"`
	OwnerEmail        string          `json:"ownerEmail"`
	OwnerTitle        string          `json:"ownerTitle"`
	SocialLinks       json.RawMessage `json:"socialLinks"`
	Theme             json.RawMessage `json:"theme"`
	Navigation        json.RawMessage `json:"navigation"`
	SEODefaults       json.RawMessage `json:"seoDefaults"`
	FaviconURL        *string         `json:"faviconUrl"`
	AppleTouchIconURL *string         `json:"appleTouchIconUrl"`
	ResumePDFURL      *string         `json:"resumePdfUrl"`
	ResumeData        json.RawMessage `json:"resumeData"`
	CalendarURL       *string         `json:"calendarUrl"`
	ExternalLinks     json.RawMessage `json:"externalLinks"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// SiteSettingsInput is the payload accepted by the settings update endpoint.
type SiteSettingsInput struct {
	SiteName          string          `json:"siteName"`
	SiteDescription   string          `json:"siteDescription"`
	OwnerName         string          `json:"ownerName"`
	OwnerEmail        string          `json:"ownerEmail"`
	OwnerTitle        string          `json:"ownerTitle"`
	SocialLinks       json.RawMessage `json:"socialLinks"`
	Theme             json.RawMessage `json:"theme"`
	Navigation        json.RawMessage `json:"navigation"`
	SEODefaults       json.RawMessage `json:"seoDefaults"`
	FaviconURL        *string         `json:"faviconUrl"`
	AppleTouchIconURL *string         `json:"appleTouchIconUrl"`
	ResumePDFURL      *string         `json:"resumePdfUrl"`
	ResumeData        json.RawMessage `json:"resumeData"`
	CalendarURL       *string         `json:"calendarUrl"`
	ExternalLinks     json.RawMessage `json:"externalLinks"`
}

// HomeLayout is the single-row ordered list of homepage sections.
type HomeLayout struct {
	ID        uuid.UUID       `json:"id"`
	Sections  json.RawMessage `json:"sections"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
