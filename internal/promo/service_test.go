package promo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Promo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Promo), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*Promo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Promo), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Promo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Promo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func newFixedService(repo Repository, now time.Time) *service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Percentage discount", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "TAKE10").Return(&Promo{
			Code:               "TAKE10",
			Active:             true,
			DiscountPercentage: floatPtr(20),
		}, nil)

		discount, p, err := svc.Resolve(ctx, "take10", 1000)

		assert.NoError(t, err)
		assert.Equal(t, float64(200), discount)
		assert.Equal(t, "TAKE10", p.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fixed amount discount", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "LESS50").Return(&Promo{
			Code:           "LESS50",
			Active:         true,
			DiscountAmount: floatPtr(50),
		}, nil)

		discount, _, err := svc.Resolve(ctx, "LESS50", 1000)

		assert.NoError(t, err)
		assert.Equal(t, float64(50), discount)
	})

	t.Run("Neither field set means zero discount", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "FREEBIE").Return(&Promo{
			Code:   "FREEBIE",
			Active: true,
		}, nil)

		discount, _, err := svc.Resolve(ctx, "FREEBIE", 1000)

		assert.NoError(t, err)
		assert.Equal(t, float64(0), discount)
	})

	t.Run("Inactive promo is NotFound regardless of window", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "SPRING2024").Return(&Promo{
			Code:               "SPRING2024",
			Active:             false,
			DiscountPercentage: floatPtr(20),
			StartDate:          timePtr(now.AddDate(0, -1, 0)),
			EndDate:            timePtr(now.AddDate(0, 1, 0)),
		}, nil)

		_, _, err := svc.Resolve(ctx, "SPRING2024", 1000)

		assert.ErrorIs(t, err, ErrPromoNotFound)
	})

	t.Run("Outside date window is Expired", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "XMAS2023").Return(&Promo{
			Code:               "XMAS2023",
			Active:             true,
			DiscountPercentage: floatPtr(15),
			StartDate:          timePtr(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:            timePtr(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
		}, nil)

		_, _, err := svc.Resolve(ctx, "XMAS2023", 1000)

		assert.ErrorIs(t, err, ErrPromoExpired)
	})

	t.Run("Missing one bound skips window check", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "OPENEND").Return(&Promo{
			Code:               "OPENEND",
			Active:             true,
			DiscountPercentage: floatPtr(10),
			StartDate:          timePtr(now.AddDate(1, 0, 0)), // future start, no end
		}, nil)

		discount, _, err := svc.Resolve(ctx, "OPENEND", 500)

		assert.NoError(t, err)
		assert.Equal(t, float64(50), discount)
	})

	t.Run("Unknown code", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "NOPE").Return(nil, ErrPromoNotFound)

		_, _, err := svc.Resolve(ctx, "nope", 1000)

		assert.ErrorIs(t, err, ErrPromoNotFound)
	})

	t.Run("Empty code", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		_, _, err := svc.Resolve(ctx, "  ", 1000)

		assert.ErrorIs(t, err, ErrPromoNotFound)
		mockRepo.AssertNotCalled(t, "GetByCode")
	})

	t.Run("Store error propagates", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newFixedService(mockRepo, now)

		mockRepo.On("GetByCode", ctx, "ANY").Return(nil, errors.New("db down"))

		_, _, err := svc.Resolve(ctx, "ANY", 1000)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrPromoNotFound)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Uppercases code", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Promo) bool {
			return p.Code == "WELCOME10"
		})).Return(nil)

		err := svc.Create(ctx, &Promo{Title: "Welcome", Code: "welcome10"})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rejects percentage out of range", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		err := svc.Create(ctx, &Promo{
			Title:              "Bad",
			Code:               "BAD",
			DiscountPercentage: floatPtr(120),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Rejects missing code", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		err := svc.Create(ctx, &Promo{Title: "NoCode"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
