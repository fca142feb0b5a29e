package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"folio/internal/models"
)

func testItemInput(title string) models.WritingItemInput {
	return models.WritingItemInput{
		Title:    title,
		URL:      "https://example.com/essays/" + title,
		Platform: "Medium",
		Featured: true,
	}
}

func TestWritingStoreCategoryAndItemLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewWritingStore(db)

	categoryTitle := "store-test-writing-lifecycle"
	t.Cleanup(func() { cleanWriting(t, db, categoryTitle) })

	category, err := s.CreateCategory(models.WritingCategoryInput{Title: categoryTitle})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if category.ID == uuid.Nil {
		t.Error("expected non-nil category UUID")
	}

	item, err := s.CreateItem(category.ID, testItemInput("first-essay"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Platform != "Medium" {
		t.Errorf("platform: got %q, want Medium", item.Platform)
	}
	if !item.Featured {
		t.Error("featured flag not persisted")
	}

	in := testItemInput("first-essay")
	in.Platform = "Substack"
	in.Featured = false
	in.Hidden = true
	updated, err := s.UpdateItem(item.ID, in)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Platform != "Substack" || updated.Featured || !updated.Hidden {
		t.Errorf("updated item: %+v", updated)
	}

	// Hidden items are excluded from the public listing only.
	visible, err := s.ListCategories(true)
	if err != nil {
		t.Fatalf("ListCategories(visible): %v", err)
	}
	for _, c := range visible {
		if c.ID == category.ID && len(c.Items) != 0 {
			t.Errorf("hidden item leaked into visible listing: %+v", c.Items)
		}
	}

	all, err := s.ListCategories(false)
	if err != nil {
		t.Fatalf("ListCategories(all): %v", err)
	}
	found := false
	for _, c := range all {
		if c.ID == category.ID && len(c.Items) == 1 {
			found = true
		}
	}
	if !found {
		t.Error("hidden item missing from admin listing")
	}
}

func TestWritingStoreCreateItemMissingCategory(t *testing.T) {
	db := testDB(t)
	s := NewWritingStore(db)

	_, err := s.CreateItem(uuid.New(), testItemInput("orphan"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing category: got %v, want ErrNotFound", err)
	}
}

func TestWritingStoreDeleteItemNotFound(t *testing.T) {
	db := testDB(t)
	s := NewWritingStore(db)

	if err := s.DeleteItem(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete unknown item: got %v, want ErrNotFound", err)
	}
}

func TestWritingStorePageSettings(t *testing.T) {
	db := testDB(t)
	s := NewWritingStore(db)

	// The header is a seed-created singleton; make sure one exists.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM writing_settings").Scan(&count); err != nil {
		t.Fatalf("count writing settings: %v", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO writing_settings (page_title) VALUES ('Selected Writing')`); err != nil {
			t.Fatalf("insert writing settings: %v", err)
		}
	}

	updated, err := s.UpdatePageSettings(models.WritingSettingsInput{
		PageTitle: "Talks & Essays",
		PageIntro: "Long-form things I have published elsewhere.",
	})
	if err != nil {
		t.Fatalf("UpdatePageSettings: %v", err)
	}
	if updated.PageTitle != "Talks & Essays" {
		t.Errorf("page title: got %q", updated.PageTitle)
	}

	got, err := s.GetPageSettings()
	if err != nil {
		t.Fatalf("GetPageSettings: %v", err)
	}
	if got == nil || got.PageIntro != "Long-form things I have published elsewhere." {
		t.Errorf("page settings after update: %+v", got)
	}
}
