package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/models"
)

// ProjectStore handles project and project-content database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, slug, title, status, featured, tags, thumbnail_url,
	start_date, end_date, external_url, ord, related_project_slugs, created_at, updated_at`

const contentColumns = `id, project_id, detail_level, headline, summary, body,
	sections, decisions, metrics, media, created_at, updated_at`

func scanProject(sc interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{}
	err := sc.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Status, &p.Featured, &p.Tags, &p.ThumbnailURL,
		&p.StartDate, &p.EndDate, &p.ExternalURL, &p.Order, &p.RelatedProjectSlugs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanContent(sc interface{ Scan(...any) error }) (*models.ProjectContent, error) {
	c := &models.ProjectContent{}
	err := sc.Scan(
		&c.ID, &c.ProjectID, &c.DetailLevel, &c.Headline, &c.Summary, &c.Body,
		&c.Sections, &c.Decisions, &c.Metrics, &c.Media, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns projects ordered by their display order, with content
// attached. When publishedOnly is true, drafts and archived projects are
// excluded (the public site view).
func (s *ProjectStore) List(publishedOnly bool) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if publishedOnly {
		query += ` WHERE status = 'published'`
	}
	query += ` ORDER BY ord ASC, created_at ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	for i := range projects {
		content, err := s.contentFor(projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Content = content
	}
	return projects, nil
}

// FindByID retrieves a project with its content. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	if p.Content, err = s.contentFor(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlug retrieves a project by slug. Returns nil if not found.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	if p.Content, err = s.contentFor(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new project. Returns ErrConflict on a duplicate slug.
func (s *ProjectStore) Create(in models.ProjectInput) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO projects (slug, title, status, featured, tags, thumbnail_url,
			start_date, end_date, external_url, ord, related_project_slugs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+projectColumns,
		in.Slug, in.Title, in.Status, in.Featured, jsonbOrEmpty(in.Tags, "[]"),
		in.ThumbnailURL, in.StartDate, in.EndDate, in.ExternalURL, in.Order,
		jsonbOrEmpty(in.RelatedProjectSlugs, "[]"),
	)
	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", mapError(err))
	}
	return p, nil
}

// Update replaces a project's fields. Returns ErrNotFound if the id does not
// exist and ErrConflict on a duplicate slug.
func (s *ProjectStore) Update(id uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	row := s.db.QueryRow(`
		UPDATE projects SET slug = $1, title = $2, status = $3, featured = $4,
			tags = $5, thumbnail_url = $6, start_date = $7, end_date = $8,
			external_url = $9, ord = $10, related_project_slugs = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING `+projectColumns,
		in.Slug, in.Title, in.Status, in.Featured, jsonbOrEmpty(in.Tags, "[]"),
		in.ThumbnailURL, in.StartDate, in.EndDate, in.ExternalURL, in.Order,
		jsonbOrEmpty(in.RelatedProjectSlugs, "[]"), id,
	)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", mapError(err))
	}
	if p.Content, err = s.contentFor(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project and (via FK cascade) its content rows.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateContent adds a write-up at one detail level. Returns ErrConflict if
// that level already exists for the project.
func (s *ProjectStore) CreateContent(projectID uuid.UUID, in models.ProjectContentInput) (*models.ProjectContent, error) {
	row := s.db.QueryRow(`
		INSERT INTO project_content (project_id, detail_level, headline, summary, body,
			sections, decisions, metrics, media)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+contentColumns,
		projectID, in.DetailLevel, in.Headline, in.Summary, in.Body,
		jsonbOrEmpty(in.Sections, "{}"), jsonbOrEmpty(in.Decisions, "[]"),
		jsonbOrEmpty(in.Metrics, "[]"), jsonbOrEmpty(in.Media, "[]"),
	)
	c, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("create project content: %w", mapError(err))
	}
	return c, nil
}

// UpdateContent replaces a content row belonging to the given project.
func (s *ProjectStore) UpdateContent(projectID, contentID uuid.UUID, in models.ProjectContentInput) (*models.ProjectContent, error) {
	row := s.db.QueryRow(`
		UPDATE project_content SET detail_level = $1, headline = $2, summary = $3,
			body = $4, sections = $5, decisions = $6, metrics = $7, media = $8,
			updated_at = NOW()
		WHERE id = $9 AND project_id = $10
		RETURNING `+contentColumns,
		in.DetailLevel, in.Headline, in.Summary, in.Body,
		jsonbOrEmpty(in.Sections, "{}"), jsonbOrEmpty(in.Decisions, "[]"),
		jsonbOrEmpty(in.Metrics, "[]"), jsonbOrEmpty(in.Media, "[]"),
		contentID, projectID,
	)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update project content: %w", mapError(err))
	}
	return c, nil
}

// DeleteContent removes one content row belonging to the given project.
func (s *ProjectStore) DeleteContent(projectID, contentID uuid.UUID) error {
	res, err := s.db.Exec(
		`DELETE FROM project_content WHERE id = $1 AND project_id = $2`,
		contentID, projectID,
	)
	if err != nil {
		return fmt.Errorf("delete project content: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProjectStore) contentFor(projectID uuid.UUID) ([]models.ProjectContent, error) {
	rows, err := s.db.Query(
		`SELECT `+contentColumns+` FROM project_content WHERE project_id = $1 ORDER BY detail_level ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list project content: %w", err)
	}
	defer rows.Close()

	var content []models.ProjectContent
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project content: %w", err)
		}
		content = append(content, *c)
	}
	return content, rows.Err()
}
