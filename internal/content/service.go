package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"floramia-be/internal/shipping"
)

type Service interface {
	GetSection(ctx context.Context, section string) (*SiteContent, error)
	ListSections(ctx context.Context) ([]*SiteContent, error)
	UpsertSection(ctx context.Context, section string, payload json.RawMessage) (*SiteContent, error)
	ShippingConfig(ctx context.Context) (shipping.Config, error)

	ListStories(ctx context.Context, publishedOnly bool) ([]*Story, error)
	CreateStory(ctx context.Context, st *Story) error
	UpdateStory(ctx context.Context, st *Story) error
	SetStoryPublished(ctx context.Context, id string, published bool) error
	DeleteStory(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetSection(ctx context.Context, section string) (*SiteContent, error) {
	return s.repo.GetSection(ctx, strings.ToLower(strings.TrimSpace(section)))
}

func (s *service) ListSections(ctx context.Context) ([]*SiteContent, error) {
	return s.repo.ListSections(ctx)
}

// UpsertSection replaces a section's payload wholesale. The shipping section
// is validated against its expected shape so checkout can't be broken by a
// malformed save; other sections only need to be valid JSON.
func (s *service) UpsertSection(ctx context.Context, section string, payload json.RawMessage) (*SiteContent, error) {
	section = strings.ToLower(strings.TrimSpace(section))
	if section == "" {
		return nil, fmt.Errorf("%w: section name is required", ErrInvalidPayload)
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: payload must be valid JSON", ErrInvalidPayload)
	}

	if section == SectionShipping {
		var cfg shipping.Config
		if err := json.Unmarshal(payload, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		if cfg.DefaultFee < 0 {
			return nil, fmt.Errorf("%w: default fee must not be negative", ErrInvalidPayload)
		}
	}

	if err := s.repo.UpsertSection(ctx, section, payload); err != nil {
		return nil, err
	}
	return s.repo.GetSection(ctx, section)
}

// ShippingConfig loads the shipping section for checkout. A missing section
// means free default shipping rather than a broken checkout.
func (s *service) ShippingConfig(ctx context.Context) (shipping.Config, error) {
	c, err := s.repo.GetSection(ctx, SectionShipping)
	if errors.Is(err, ErrSectionNotFound) {
		return shipping.Config{}, nil
	}
	if err != nil {
		return shipping.Config{}, err
	}

	var cfg shipping.Config
	if err := json.Unmarshal(c.Payload, &cfg); err != nil {
		return shipping.Config{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return cfg, nil
}

func (s *service) ListStories(ctx context.Context, publishedOnly bool) ([]*Story, error) {
	return s.repo.ListStories(ctx, publishedOnly)
}

func (s *service) CreateStory(ctx context.Context, st *Story) error {
	st.Title = strings.TrimSpace(st.Title)
	if st.Title == "" || strings.TrimSpace(st.Content) == "" {
		return fmt.Errorf("%w: title and content are required", ErrInvalidStory)
	}
	return s.repo.CreateStory(ctx, st)
}

func (s *service) UpdateStory(ctx context.Context, st *Story) error {
	st.Title = strings.TrimSpace(st.Title)
	if st.Title == "" || strings.TrimSpace(st.Content) == "" {
		return fmt.Errorf("%w: title and content are required", ErrInvalidStory)
	}
	return s.repo.UpdateStory(ctx, st)
}

func (s *service) SetStoryPublished(ctx context.Context, id string, published bool) error {
	return s.repo.SetStoryPublished(ctx, id, published)
}

func (s *service) DeleteStory(ctx context.Context, id string) error {
	return s.repo.DeleteStory(ctx, id)
}
