package models

import (
	"time"

	"github.com/google/uuid"
)

// WritingSettings is the single-row header of the writing page: the title
// and intro shown above the category list.
type WritingSettings struct {
	ID        uuid.UUID `json:"id"`
	PageTitle string    `json:"pageTitle"`
	PageIntro string    `json:"pageIntro"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WritingSettingsInput is the payload for the writing page header update.
type WritingSettingsInput struct {
	PageTitle string `json:"pageTitle"`
	PageIntro string `json:"pageIntro"`
}

// WritingCategory groups external writing (essays, talks, papers) on the
// writing page.
type WritingCategory struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Order     int           `json:"order"`
	Items     []WritingItem `json:"items"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// WritingItem is a single linked piece of writing within a category.
// Platform names where it was published; featured items get highlighted on
// the homepage writing section.
type WritingItem struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Platform    string    `json:"platform"`
	Description string    `json:"description"`
	PublishedAt *string   `json:"publishedAt"`
	Featured    bool      `json:"featured"`
	Order       int       `json:"order"`
	Hidden      bool      `json:"hidden"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WritingCategoryInput is the payload for category create/update.
type WritingCategoryInput struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

// WritingItemInput is the payload for item create/update.
type WritingItemInput struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Platform    string  `json:"platform"`
	Description string  `json:"description"`
	PublishedAt *string `json:"publishedAt"`
	Featured    bool    `json:"featured"`
	Order       int     `json:"order"`
	Hidden      bool    `json:"hidden"`
}
