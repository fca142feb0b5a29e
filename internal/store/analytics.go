package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// AnalyticsStore handles event ingestion and the admin summary queries.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// Record inserts one event. Ingestion failures are the caller's problem to
// log, not surface; the endpoint is fire-and-forget.
func (s *AnalyticsStore) Record(eventType, path, referrer string) error {
	_, err := s.db.Exec(
		`INSERT INTO analytics_events (type, path, referrer) VALUES ($1, $2, $3)`,
		eventType, path, referrer,
	)
	if err != nil {
		return fmt.Errorf("record analytics event: %w", err)
	}
	return nil
}

// Summary aggregates events over the last `days` days: totals, a per-day
// pageview series, and the most-viewed paths.
func (s *AnalyticsStore) Summary(days int) (*models.AnalyticsSummary, error) {
	summary := &models.AnalyticsSummary{}

	err := s.db.QueryRow(`
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE type = 'pageview')
		FROM analytics_events
		WHERE created_at > NOW() - make_interval(days => $1)`,
		days,
	).Scan(&summary.TotalEvents, &summary.TotalPageviews)
	if err != nil {
		return nil, fmt.Errorf("analytics totals: %w", err)
	}

	daily, err := s.dailyPageviews(days)
	if err != nil {
		return nil, err
	}
	summary.DailyPageviews = daily

	top, err := s.topPaths(days, 10)
	if err != nil {
		return nil, err
	}
	summary.TopPaths = top

	return summary, nil
}

func (s *AnalyticsStore) dailyPageviews(days int) ([]models.DailyPageviews, error) {
	rows, err := s.db.Query(`
		SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day, COUNT(*)
		FROM analytics_events
		WHERE type = 'pageview' AND created_at > NOW() - make_interval(days => $1)
		GROUP BY day ORDER BY day ASC`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("daily pageviews: %w", err)
	}
	defer rows.Close()

	var daily []models.DailyPageviews
	for rows.Next() {
		var d models.DailyPageviews
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily pageviews: %w", err)
		}
		daily = append(daily, d)
	}
	return daily, rows.Err()
}

func (s *AnalyticsStore) topPaths(days, limit int) ([]models.PathCount, error) {
	rows, err := s.db.Query(`
		SELECT path, COUNT(*)
		FROM analytics_events
		WHERE type = 'pageview' AND created_at > NOW() - make_interval(days => $1)
		GROUP BY path ORDER BY COUNT(*) DESC, path ASC LIMIT $2`,
		days, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	defer rows.Close()

	var top []models.PathCount
	for rows.Next() {
		var p models.PathCount
		if err := rows.Scan(&p.Path, &p.Count); err != nil {
			return nil, fmt.Errorf("scan top paths: %w", err)
		}
		top = append(top, p)
	}
	return top, rows.Err()
}
