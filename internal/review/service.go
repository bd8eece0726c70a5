package review

import (
	"context"
	"fmt"
	"strings"
)

type Service interface {
	Submit(ctx context.Context, rv *Review) error
	ListApproved(ctx context.Context) ([]*Review, error)
	ListAll(ctx context.Context) ([]*Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Submit stores a customer review; it stays hidden until an operator
// approves it.
func (s *service) Submit(ctx context.Context, rv *Review) error {
	rv.Name = strings.TrimSpace(rv.Name)
	rv.Comment = strings.TrimSpace(rv.Comment)

	if rv.Name == "" || rv.Comment == "" {
		return fmt.Errorf("%w: name and comment are required", ErrInvalidReview)
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidReview)
	}

	rv.Approved = false
	return s.repo.Create(ctx, rv)
}

func (s *service) ListApproved(ctx context.Context) ([]*Review, error) {
	return s.repo.List(ctx, true)
}

func (s *service) ListAll(ctx context.Context) ([]*Review, error) {
	return s.repo.List(ctx, false)
}

func (s *service) SetApproved(ctx context.Context, id string, approved bool) error {
	return s.repo.SetApproved(ctx, id, approved)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
