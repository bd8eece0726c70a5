package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"floramia-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// Resolve validates a code against the current time and returns the
	// discount amount for the given subtotal.
	Resolve(ctx context.Context, code string, subtotal float64) (float64, *Promo, error)

	List(ctx context.Context) ([]*Promo, error)
	Create(ctx context.Context, p *Promo) error
	Update(ctx context.Context, p *Promo) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Resolve(ctx context.Context, code string, subtotal float64) (float64, *Promo, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Resolve"),
	)

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, nil, ErrPromoNotFound
	}

	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrPromoNotFound) {
			log.Error("failed to look up promo", zap.Error(err))
		}
		return 0, nil, err
	}

	// An inactive promo is indistinguishable from a missing one.
	if !p.Active {
		return 0, nil, ErrPromoNotFound
	}

	if p.StartDate != nil && p.EndDate != nil {
		now := s.now()
		if now.Before(*p.StartDate) || now.After(*p.EndDate) {
			return 0, nil, ErrPromoExpired
		}
	}

	var discount float64
	switch {
	case p.DiscountPercentage != nil:
		discount = subtotal * *p.DiscountPercentage / 100
	case p.DiscountAmount != nil:
		discount = *p.DiscountAmount
	}

	log.Info("promo resolved",
		zap.String("code", code),
		zap.Float64("subtotal", subtotal),
		zap.Float64("discount", discount),
	)

	return discount, p, nil
}

func (s *service) List(ctx context.Context) ([]*Promo, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, p *Promo) error {
	if strings.TrimSpace(p.Code) == "" || strings.TrimSpace(p.Title) == "" {
		return ErrInvalidInput
	}
	if p.DiscountPercentage != nil && (*p.DiscountPercentage < 0 || *p.DiscountPercentage > 100) {
		return ErrInvalidInput
	}
	if p.DiscountAmount != nil && *p.DiscountAmount < 0 {
		return ErrInvalidInput
	}
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, p *Promo) error {
	if strings.TrimSpace(p.Code) == "" {
		return ErrInvalidInput
	}
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	return s.repo.Update(ctx, p)
}

func (s *service) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
