package contact

import (
	"context"
	"fmt"
	"strings"
)

type Service interface {
	SubmitInquiry(ctx context.Context, in *Inquiry) error
	ListInquiries(ctx context.Context) ([]*Inquiry, error)
	SetInquiryStatus(ctx context.Context, id string, status InquiryStatus) error
	DeleteInquiry(ctx context.Context, id string) error

	Subscribe(ctx context.Context, email string) (*Subscriber, error)
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)
	DeleteSubscriber(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SubmitInquiry(ctx context.Context, in *Inquiry) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if in.Name == "" || in.Message == "" {
		return fmt.Errorf("%w: name and message are required", ErrInvalidInquiry)
	}
	if !strings.Contains(in.Email, "@") {
		return ErrInvalidEmail
	}

	in.Status = InquiryNew
	return s.repo.CreateInquiry(ctx, in)
}

func (s *service) ListInquiries(ctx context.Context) ([]*Inquiry, error) {
	return s.repo.ListInquiries(ctx)
}

func (s *service) SetInquiryStatus(ctx context.Context, id string, status InquiryStatus) error {
	if status != InquiryNew && status != InquiryResponded {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInquiry, status)
	}
	return s.repo.SetInquiryStatus(ctx, id, status)
}

func (s *service) DeleteInquiry(ctx context.Context, id string) error {
	return s.repo.DeleteInquiry(ctx, id)
}

// Subscribe stores emails lowercased so the unique index catches
// case-variant duplicates.
func (s *service) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	sub := &Subscriber{Email: email}
	if err := s.repo.CreateSubscriber(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) ListSubscribers(ctx context.Context) ([]*Subscriber, error) {
	return s.repo.ListSubscribers(ctx)
}

func (s *service) DeleteSubscriber(ctx context.Context, id string) error {
	return s.repo.DeleteSubscriber(ctx, id)
}
