package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/models"
)

// WritingStore handles the writing page: the single-row page header plus
// categories and their items.
type WritingStore struct {
	db *sql.DB
}

// NewWritingStore creates a new WritingStore.
func NewWritingStore(db *sql.DB) *WritingStore {
	return &WritingStore{db: db}
}

const categoryColumns = `id, title, ord, created_at, updated_at`
const itemColumns = `id, category_id, title, url, platform, description, published_at, featured, ord, hidden, created_at, updated_at`

// GetPageSettings returns the writing page header row. Returns nil if the
// seed has never run; callers fall back to defaults.
func (s *WritingStore) GetPageSettings() (*models.WritingSettings, error) {
	ws := &models.WritingSettings{}
	err := s.db.QueryRow(`SELECT id, page_title, page_intro, created_at, updated_at FROM writing_settings LIMIT 1`).
		Scan(&ws.ID, &ws.PageTitle, &ws.PageIntro, &ws.CreatedAt, &ws.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get writing settings: %w", err)
	}
	return ws, nil
}

// UpdatePageSettings replaces the writing page header.
func (s *WritingStore) UpdatePageSettings(in models.WritingSettingsInput) (*models.WritingSettings, error) {
	ws := &models.WritingSettings{}
	err := s.db.QueryRow(`
		UPDATE writing_settings SET page_title = $1, page_intro = $2, updated_at = NOW()
		WHERE id = (SELECT id FROM writing_settings LIMIT 1)
		RETURNING id, page_title, page_intro, created_at, updated_at`,
		in.PageTitle, in.PageIntro,
	).Scan(&ws.ID, &ws.PageTitle, &ws.PageIntro, &ws.CreatedAt, &ws.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update writing settings: %w", err)
	}
	return ws, nil
}

// ListCategories returns all categories with their items, both ordered by
// display order. When visibleOnly is true, hidden items are excluded (the
// public writing page).
func (s *WritingStore) ListCategories(visibleOnly bool) ([]models.WritingCategory, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM writing_categories ORDER BY ord ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list writing categories: %w", err)
	}
	defer rows.Close()

	var categories []models.WritingCategory
	for rows.Next() {
		var c models.WritingCategory
		if err := rows.Scan(&c.ID, &c.Title, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan writing category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list writing categories: %w", err)
	}

	for i := range categories {
		items, err := s.itemsFor(categories[i].ID, visibleOnly)
		if err != nil {
			return nil, err
		}
		categories[i].Items = items
	}
	return categories, nil
}

// CreateCategory inserts a new writing category.
func (s *WritingStore) CreateCategory(in models.WritingCategoryInput) (*models.WritingCategory, error) {
	c := &models.WritingCategory{}
	err := s.db.QueryRow(`
		INSERT INTO writing_categories (title, ord) VALUES ($1, $2)
		RETURNING `+categoryColumns,
		in.Title, in.Order,
	).Scan(&c.ID, &c.Title, &c.Order, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create writing category: %w", mapError(err))
	}
	return c, nil
}

// UpdateCategory replaces a category's fields.
func (s *WritingStore) UpdateCategory(id uuid.UUID, in models.WritingCategoryInput) (*models.WritingCategory, error) {
	c := &models.WritingCategory{}
	err := s.db.QueryRow(`
		UPDATE writing_categories SET title = $1, ord = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+categoryColumns,
		in.Title, in.Order, id,
	).Scan(&c.ID, &c.Title, &c.Order, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update writing category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category and (via FK cascade) its items.
func (s *WritingStore) DeleteCategory(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM writing_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete writing category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateItem inserts an item into a category. Returns ErrNotFound if the
// category does not exist (FK violation is reported by the driver).
func (s *WritingStore) CreateItem(categoryID uuid.UUID, in models.WritingItemInput) (*models.WritingItem, error) {
	item := &models.WritingItem{}
	err := s.db.QueryRow(`
		INSERT INTO writing_items (category_id, title, url, platform, description, published_at, featured, ord, hidden)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+itemColumns,
		categoryID, in.Title, in.URL, in.Platform, in.Description, in.PublishedAt, in.Featured, in.Order, in.Hidden,
	).Scan(
		&item.ID, &item.CategoryID, &item.Title, &item.URL, &item.Platform, &item.Description,
		&item.PublishedAt, &item.Featured, &item.Order, &item.Hidden, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create writing item: %w", mapError(err))
	}
	return item, nil
}

// UpdateItem replaces an item's fields.
func (s *WritingStore) UpdateItem(id uuid.UUID, in models.WritingItemInput) (*models.WritingItem, error) {
	item := &models.WritingItem{}
	err := s.db.QueryRow(`
		UPDATE writing_items SET title = $1, url = $2, platform = $3, description = $4,
			published_at = $5, featured = $6, ord = $7, hidden = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+itemColumns,
		in.Title, in.URL, in.Platform, in.Description, in.PublishedAt, in.Featured, in.Order, in.Hidden, id,
	).Scan(
		&item.ID, &item.CategoryID, &item.Title, &item.URL, &item.Platform, &item.Description,
		&item.PublishedAt, &item.Featured, &item.Order, &item.Hidden, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update writing item: %w", err)
	}
	return item, nil
}

// DeleteItem removes a single writing item.
func (s *WritingStore) DeleteItem(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM writing_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete writing item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *WritingStore) itemsFor(categoryID uuid.UUID, visibleOnly bool) ([]models.WritingItem, error) {
	query := `SELECT ` + itemColumns + ` FROM writing_items WHERE category_id = $1`
	if visibleOnly {
		query += ` AND hidden = FALSE`
	}
	query += ` ORDER BY ord ASC, created_at ASC`

	rows, err := s.db.Query(query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list writing items: %w", err)
	}
	defer rows.Close()

	var items []models.WritingItem
	for rows.Next() {
		var item models.WritingItem
		if err := rows.Scan(
			&item.ID, &item.CategoryID, &item.Title, &item.URL, &item.Platform, &item.Description,
			&item.PublishedAt, &item.Featured, &item.Order, &item.Hidden, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan writing item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
