package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"folio/internal/models"
)

func testProjectInput(slug string, status models.ProjectStatus) models.ProjectInput {
	return models.ProjectInput{
		Slug:   slug,
		Title:  "Test Project",
		Status: status,
	}
}

func TestProjectStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "store-test-create"
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(testProjectInput(slug, models.ProjectDraft))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if string(created.Tags) != "[]" {
		t.Errorf("tags default: got %s, want []", created.Tags)
	}

	found, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("found: %+v", found)
	}
}

func TestProjectStoreSlugConflict(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "store-test-conflict"
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	if _, err := s.Create(testProjectInput(slug, models.ProjectDraft)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := s.Create(testProjectInput(slug, models.ProjectDraft))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate slug: got %v, want ErrConflict", err)
	}
}

func TestProjectStorePublishedFilter(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	draftSlug := "store-test-filter-draft"
	publishedSlug := "store-test-filter-published"
	t.Cleanup(func() { cleanProjects(t, db, draftSlug, publishedSlug) })

	if _, err := s.Create(testProjectInput(draftSlug, models.ProjectDraft)); err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if _, err := s.Create(testProjectInput(publishedSlug, models.ProjectPublished)); err != nil {
		t.Fatalf("Create published: %v", err)
	}

	published, err := s.List(true)
	if err != nil {
		t.Fatalf("List(published): %v", err)
	}
	for _, p := range published {
		if p.Slug == draftSlug {
			t.Error("draft project leaked into published list")
		}
	}

	all, err := s.List(false)
	if err != nil {
		t.Fatalf("List(all): %v", err)
	}
	var sawDraft bool
	for _, p := range all {
		if p.Slug == draftSlug {
			sawDraft = true
		}
	}
	if !sawDraft {
		t.Error("draft project missing from the full list")
	}
}

func TestProjectStoreContentDetailLevels(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "store-test-content"
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	project, err := s.Create(testProjectInput(slug, models.ProjectDraft))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	content, err := s.CreateContent(project.ID, models.ProjectContentInput{
		DetailLevel: models.DetailBrief,
		Headline:    "Short version",
	})
	if err != nil {
		t.Fatalf("CreateContent: %v", err)
	}

	// A second row at the same detail level violates the unique constraint.
	_, err = s.CreateContent(project.ID, models.ProjectContentInput{
		DetailLevel: models.DetailBrief,
		Headline:    "Another short version",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate detail level: got %v, want ErrConflict", err)
	}

	// A different level is fine, and both come back attached to the project.
	if _, err := s.CreateContent(project.ID, models.ProjectContentInput{
		DetailLevel: models.DetailDeep,
		Headline:    "Long version",
	}); err != nil {
		t.Fatalf("CreateContent deep: %v", err)
	}

	found, err := s.FindByID(project.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.Content) != 2 {
		t.Fatalf("content rows: got %d, want 2", len(found.Content))
	}

	// Update scoped to the project; a random project id must not match.
	if _, err := s.UpdateContent(uuid.New(), content.ID, models.ProjectContentInput{
		DetailLevel: models.DetailBrief,
		Headline:    "Hijacked",
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-project update: got %v, want ErrNotFound", err)
	}

	if err := s.DeleteContent(project.ID, content.ID); err != nil {
		t.Fatalf("DeleteContent: %v", err)
	}
}

func TestProjectStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "store-test-delete"
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	project, err := s.Create(testProjectInput(slug, models.ProjectDraft))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(project.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(project.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}
