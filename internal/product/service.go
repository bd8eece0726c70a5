package product

import (
	"context"
	"strings"

	"floramia-be/internal/logger"
	"floramia-be/internal/storage"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	UploadImage(ctx context.Context, id, filename, contentType string, data []byte) (string, error)
	Reorder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	uploader storage.Uploader
}

func NewService(repo Repository, uploader storage.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) validate(p *Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrInvalidInput
	}
	if p.Price < 0 || p.Quantity < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *service) Create(ctx context.Context, p *Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, p *Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// UploadImage pushes the file to object storage and records the public URL.
func (s *service) UploadImage(ctx context.Context, id, filename, contentType string, data []byte) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UploadImage"),
		zap.String("product_id", id),
	)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	url, err := s.uploader.Upload(ctx, "products", filename, contentType, data)
	if err != nil {
		log.Error("image upload failed", zap.Error(err))
		return "", err
	}

	if err := s.repo.SetImage(ctx, id, url); err != nil {
		return "", err
	}

	log.Info("product image updated", zap.String("url", url))
	return url, nil
}

func (s *service) Reorder(ctx context.Context, id string, order int) error {
	return s.repo.SetSortOrder(ctx, id, order)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
