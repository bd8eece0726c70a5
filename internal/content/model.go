package content

import (
	"encoding/json"
	"time"
)

// Known section keys. Unknown keys are stored as-is so the storefront can
// add sections without a schema change.
const (
	SectionHero        = "hero"
	SectionAbout       = "about"
	SectionSEO         = "seo"
	SectionSocialMedia = "social_media"
	SectionContact     = "contact"
	SectionHours       = "hours"
	SectionShipping    = "shipping"
	SectionGallery     = "gallery"
)

// SiteContent is one logical row per section; writes replace by key.
type SiteContent struct {
	Section   string          `json:"section"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Story is a curated testimonial card shown on the storefront.
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     *string   `json:"image,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
