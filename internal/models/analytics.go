package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent is one tracked client event (pageview, outbound click,
// resume download). Ingestion is fire-and-forget; no personal data beyond
// the referrer is stored.
type AnalyticsEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnalyticsSummary is the aggregate view served to the admin dashboard.
type AnalyticsSummary struct {
	TotalEvents    int              `json:"totalEvents"`
	TotalPageviews int              `json:"totalPageviews"`
	DailyPageviews []DailyPageviews `json:"dailyPageviews"`
	TopPaths       []PathCount      `json:"topPaths"`
}

// DailyPageviews is a pageview count for one calendar day.
type DailyPageviews struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// PathCount is an event count for one page path.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}
