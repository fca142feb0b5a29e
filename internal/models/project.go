package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the publication state of a project.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectPublished ProjectStatus = "published"
	ProjectArchived  ProjectStatus = "archived"
)

// DetailLevel selects how much of a project's write-up is shown.
type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailStandard DetailLevel = "standard"
	DetailDeep     DetailLevel = "deep"
)

// Project is a portfolio case study. Structured sub-documents (tags,
// related slugs) are stored as JSONB and passed through to the SPA as-is.
type Project struct {
	ID                  uuid.UUID        `json:"id"`
	Slug                string           `json:"slug"`
	Title               string           `json:"title"`
	Status              ProjectStatus    `json:"status"`
	Featured            bool             `json:"featured"`
	Tags                json.RawMessage  `json:"tags"`
	ThumbnailURL        *string          `json:"thumbnailUrl"`
	StartDate           *string          `json:"startDate"`
	EndDate             *string          `json:"endDate"`
	ExternalURL         *string          `json:"externalUrl"`
	Order               int              `json:"order"`
	RelatedProjectSlugs json.RawMessage  `json:"relatedProjectSlugs"`
	Content             []ProjectContent `json:"content"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// ProjectContent is one write-up of a project at a given detail level.
// A project carries at most one content row per level.
type ProjectContent struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"projectId"`
	DetailLevel DetailLevel     `json:"detailLevel"`
	Headline    string          `json:"headline"`
	Summary     string          `json:"summary"`
	Body        string          `json:"body"`
	Sections    json.RawMessage `json:"sections"`
	Decisions   json.RawMessage `json:"decisions"`
	Metrics     json.RawMessage `json:"metrics"`
	Media       json.RawMessage `json:"media"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProjectInput is the payload accepted by project create/update.
type ProjectInput struct {
	Slug                string          `json:"slug"`
	Title               string          `json:"title"`
	Status              ProjectStatus   `json:"status"`
	Featured            bool            `json:"featured"`
	Tags                json.RawMessage `json:"tags"`
	ThumbnailURL        *string         `json:"thumbnailUrl"`
	StartDate           *string         `json:"startDate"`
	EndDate             *string         `json:"endDate"`
	ExternalURL         *string         `json:"externalUrl"`
	Order               int             `json:"order"`
	RelatedProjectSlugs json.RawMessage `json:"relatedProjectSlugs"`
}

// ProjectContentInput is the payload accepted by content create/update.
type ProjectContentInput struct {
	DetailLevel DetailLevel     `json:"detailLevel"`
	Headline    string          `json:"headline"`
	Summary     string          `json:"summary"`
	Body        string          `json:"body"`
	Sections    json.RawMessage `json:"sections"`
	Decisions   json.RawMessage `json:"decisions"`
	Metrics     json.RawMessage `json:"metrics"`
	Media       json.RawMessage `json:"media"`
}
