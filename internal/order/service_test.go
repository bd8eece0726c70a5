package order

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"floramia-be/internal/cart"
	"floramia-be/internal/payment"
	"floramia-be/internal/promo"
	"floramia-be/internal/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByEmailAndPrefix(ctx context.Context, email, prefix string) (*Order, error) {
	args := m.Called(ctx, email, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) SetPaymentIntent(ctx context.Context, id, intentID, amountType string) error {
	args := m.Called(ctx, id, intentID, amountType)
	return args.Error(0)
}

func (m *MockRepository) SetPaymentMethod(ctx context.Context, id, method string) error {
	args := m.Called(ctx, id, method)
	return args.Error(0)
}

func (m *MockRepository) MarkPaid(ctx context.Context, id, gatewayPaymentID, methodHint string) error {
	args := m.Called(ctx, id, gatewayPaymentID, methodHint)
	return args.Error(0)
}

func (m *MockRepository) MarkFailed(ctx context.Context, id, gatewayPaymentID string) error {
	args := m.Called(ctx, id, gatewayPaymentID)
	return args.Error(0)
}

type MockPromoService struct {
	mock.Mock
}

func (m *MockPromoService) Resolve(ctx context.Context, code string, subtotal float64) (float64, *promo.Promo, error) {
	args := m.Called(ctx, code, subtotal)
	if args.Get(1) == nil {
		return 0, nil, args.Error(2)
	}
	return args.Get(0).(float64), args.Get(1).(*promo.Promo), args.Error(2)
}

func (m *MockPromoService) List(ctx context.Context) ([]*promo.Promo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*promo.Promo), args.Error(1)
}

func (m *MockPromoService) Create(ctx context.Context, p *promo.Promo) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromoService) Update(ctx context.Context, p *promo.Promo) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromoService) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockPromoService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func (m *MockGateway) VerifySignature(r *http.Request) error {
	return m.Called(r).Error(0)
}

type fixedShipping struct {
	cfg shipping.Config
	err error
}

func (f fixedShipping) ShippingConfig(context.Context) (shipping.Config, error) {
	return f.cfg, f.err
}

func seedCart(t *testing.T, carts cart.Service, token string, items ...cart.Item) {
	t.Helper()
	for _, it := range items {
		_, err := carts.Add(context.Background(), token, it)
		require.NoError(t, err)
	}
}

func validInput(token string) CreateInput {
	return CreateInput{
		SessionToken:    token,
		CustomerName:    "Maria Santos",
		CustomerEmail:   "maria@example.com",
		CustomerPhone:   "09171234567",
		DeliveryAddress: "12 Mabini St, Quezon City",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Totals combine subtotal, discount and shipping fee", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockPromos := new(MockPromoService)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, mockPromos,
			fixedShipping{cfg: shipping.Config{DefaultFee: 100}}, nil)

		seedCart(t, carts, "tok-1",
			cart.Item{ProductID: "p1", Title: "Rose Bouquet", Price: 800, Quantity: 1},
			cart.Item{ProductID: "p2", Title: "Vase", Price: 100, Quantity: 2},
		)

		mockPromos.On("Resolve", ctx, "TAKE20", float64(1000)).
			Return(float64(200), &promo.Promo{Code: "TAKE20"}, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		in := validInput("tok-1")
		in.PromoCode = "TAKE20"

		o, err := svc.Create(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, float64(1000), o.Subtotal)
		assert.Equal(t, float64(200), o.Discount)
		assert.Equal(t, float64(100), o.ShippingFee)
		assert.Equal(t, float64(900), o.Total)
		assert.Equal(t, "TAKE20", *o.PromoCode)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, PaymentPending, o.PaymentStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Free shipping location zeroes the fee", func(t *testing.T) {
		mockRepo := new(MockRepository)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, new(MockPromoService),
			fixedShipping{cfg: shipping.Config{
				DefaultFee:    150,
				FreeLocations: []string{"Quezon City"},
			}}, nil)

		seedCart(t, carts, "tok-2",
			cart.Item{ProductID: "p1", Title: "Tulips", Price: 500, Quantity: 2})

		mockRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		o, err := svc.Create(ctx, validInput("tok-2"))

		require.NoError(t, err)
		assert.Equal(t, float64(0), o.ShippingFee)
		assert.Equal(t, float64(1000), o.Total)
	})

	t.Run("Item snapshots are decoupled from cart lines", func(t *testing.T) {
		mockRepo := new(MockRepository)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, new(MockPromoService),
			fixedShipping{}, nil)

		seedCart(t, carts, "tok-3",
			cart.Item{ProductID: "p1", Title: "Sunflowers", Price: 350, Quantity: 3})

		var persisted *Order
		mockRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*Order)
			}).Return(nil)

		_, err := svc.Create(ctx, validInput("tok-3"))

		require.NoError(t, err)
		require.Len(t, persisted.Items, 1)
		assert.Equal(t, "Sunflowers", persisted.Items[0].ProductTitle)
		assert.Equal(t, float64(350), persisted.Items[0].ProductPrice)
		assert.Equal(t, 3, persisted.Items[0].Quantity)
		assert.Equal(t, float64(1050), persisted.Items[0].Subtotal)
	})

	t.Run("Cart is cleared after checkout", func(t *testing.T) {
		mockRepo := new(MockRepository)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, new(MockPromoService),
			fixedShipping{}, nil)

		seedCart(t, carts, "tok-4",
			cart.Item{ProductID: "p1", Title: "Orchids", Price: 1200, Quantity: 1})
		mockRepo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, validInput("tok-4"))
		require.NoError(t, err)

		c, err := carts.Get(ctx, "tok-4")
		require.NoError(t, err)
		assert.Empty(t, c.Items)
	})

	t.Run("Buy-now checkout uses the staged item and leaves the cart alone", func(t *testing.T) {
		mockRepo := new(MockRepository)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, new(MockPromoService),
			fixedShipping{}, nil)

		seedCart(t, carts, "tok-5",
			cart.Item{ProductID: "p1", Title: "In Cart", Price: 100, Quantity: 1})
		require.NoError(t, carts.StageBuyNow(ctx, "tok-5",
			cart.Item{ProductID: "p2", Title: "Buy Now Bouquet", Price: 2000, Quantity: 1}))

		mockRepo.On("Create", ctx, mock.Anything).Return(nil)

		in := validInput("tok-5")
		in.BuyNow = true

		o, err := svc.Create(ctx, in)

		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "Buy Now Bouquet", o.Items[0].ProductTitle)

		c, err := carts.Get(ctx, "tok-5")
		require.NoError(t, err)
		assert.Len(t, c.Items, 1, "regular cart should survive a buy-now checkout")

		// the staged item is consumed
		_, err = svc.Create(ctx, in)
		assert.ErrorIs(t, err, cart.ErrBuyNowEmpty)
	})

	t.Run("Failed buy-now checkout keeps the staged item for a retry", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockPromos := new(MockPromoService)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, mockPromos, fixedShipping{}, nil)

		require.NoError(t, carts.StageBuyNow(ctx, "tok-7",
			cart.Item{ProductID: "p2", Title: "Buy Now Bouquet", Price: 2000, Quantity: 1}))

		mockPromos.On("Resolve", ctx, "BADCODE", float64(2000)).
			Return(float64(0), nil, promo.ErrPromoNotFound)
		mockRepo.On("Create", ctx, mock.Anything).Return(nil)

		in := validInput("tok-7")
		in.BuyNow = true
		in.PromoCode = "BADCODE"

		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, promo.ErrPromoNotFound)
		mockRepo.AssertNotCalled(t, "Create")

		// retrying without the bad code checks out the same staged item
		in.PromoCode = ""
		o, err := svc.Create(ctx, in)

		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "Buy Now Bouquet", o.Items[0].ProductTitle)
	})

	t.Run("Empty cart is rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, new(MockPromoService),
			fixedShipping{}, nil)

		_, err := svc.Create(ctx, validInput("tok-empty"))

		assert.ErrorIs(t, err, ErrEmptyCart)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Missing contact details are rejected", func(t *testing.T) {
		svc := NewService(new(MockRepository), cart.NewService(cart.NewMemoryStore()),
			new(MockPromoService), fixedShipping{}, nil)

		in := validInput("tok-x")
		in.CustomerPhone = "   "

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Missing delivery address is rejected", func(t *testing.T) {
		svc := NewService(new(MockRepository), cart.NewService(cart.NewMemoryStore()),
			new(MockPromoService), fixedShipping{}, nil)

		in := validInput("tok-x")
		in.DeliveryAddress = ""

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Invalid promo code aborts checkout", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockPromos := new(MockPromoService)
		carts := cart.NewService(cart.NewMemoryStore())
		svc := NewService(mockRepo, carts, mockPromos, fixedShipping{}, nil)

		seedCart(t, carts, "tok-6",
			cart.Item{ProductID: "p1", Title: "Lilies", Price: 600, Quantity: 1})
		mockPromos.On("Resolve", ctx, "NOPE", float64(600)).
			Return(float64(0), nil, promo.ErrPromoNotFound)

		in := validInput("tok-6")
		in.PromoCode = "NOPE"

		_, err := svc.Create(ctx, in)

		assert.ErrorIs(t, err, promo.ErrPromoNotFound)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Missing session token", func(t *testing.T) {
		svc := NewService(new(MockRepository), cart.NewService(cart.NewMemoryStore()),
			new(MockPromoService), fixedShipping{}, nil)

		_, err := svc.Create(ctx, validInput(""))
		assert.ErrorIs(t, err, cart.ErrSessionRequired)
	})
}

func TestService_SelectPaymentMode(t *testing.T) {
	ctx := context.Background()

	existing := &Order{
		ID:            "9f8e7d6c-0000-0000-0000-000000000000",
		CustomerName:  "Maria Santos",
		CustomerEmail: "maria@example.com",
		Total:         1800,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}

	t.Run("Manual mode records the method and returns no redirect", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil, nil, nil)

		mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
		mockRepo.On("SetPaymentMethod", ctx, existing.ID, "manual").Return(nil)

		sel, err := svc.SelectPaymentMode(ctx, existing.ID, PaymentModeManual, "")

		require.NoError(t, err)
		assert.Equal(t, PaymentModeManual, sel.Mode)
		assert.Empty(t, sel.RedirectURL)
		assert.Equal(t, float64(1800), sel.Amount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Online full amount creates an intent for the total", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, nil, nil, nil, mockGw)

		mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
		mockGw.On("CreateIntent", ctx, mock.MatchedBy(func(req payment.IntentRequest) bool {
			return req.Amount == 1800 && req.OrderID == existing.ID &&
				req.Description == "Order "+existing.Reference()
		})).Return(&payment.Intent{IntentID: "pi_123", RedirectURL: "https://pay.example/pi_123"}, nil)
		mockRepo.On("SetPaymentIntent", ctx, existing.ID, "pi_123", AmountTypeFull).Return(nil)
		mockRepo.On("SetPaymentMethod", ctx, existing.ID, "online").Return(nil)

		sel, err := svc.SelectPaymentMode(ctx, existing.ID, PaymentModeOnline, "")

		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/pi_123", sel.RedirectURL)
		assert.Equal(t, float64(1800), sel.Amount)
		mockRepo.AssertExpectations(t)
		mockGw.AssertExpectations(t)
	})

	t.Run("Half amount charges fifty percent of the total", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, nil, nil, nil, mockGw)

		mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
		mockGw.On("CreateIntent", ctx, mock.MatchedBy(func(req payment.IntentRequest) bool {
			return req.Amount == 900
		})).Return(&payment.Intent{IntentID: "pi_half", RedirectURL: "https://pay.example/pi_half"}, nil)
		mockRepo.On("SetPaymentIntent", ctx, existing.ID, "pi_half", AmountTypeHalf).Return(nil)
		mockRepo.On("SetPaymentMethod", ctx, existing.ID, "online").Return(nil)

		sel, err := svc.SelectPaymentMode(ctx, existing.ID, PaymentModeOnline, AmountTypeHalf)

		require.NoError(t, err)
		assert.Equal(t, float64(900), sel.Amount)
	})

	t.Run("Gateway failure surfaces", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, nil, nil, nil, mockGw)

		mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
		mockGw.On("CreateIntent", ctx, mock.Anything).Return(nil, payment.ErrGateway)

		_, err := svc.SelectPaymentMode(ctx, existing.ID, PaymentModeOnline, AmountTypeFull)

		assert.ErrorIs(t, err, payment.ErrGateway)
		mockRepo.AssertNotCalled(t, "SetPaymentIntent")
	})

	t.Run("Unknown mode", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil, nil, nil)

		mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)

		_, err := svc.SelectPaymentMode(ctx, existing.ID, "crypto", "")
		assert.ErrorIs(t, err, ErrInvalidMode)
	})

	t.Run("Unknown order", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil, nil, nil)

		mockRepo.On("GetByID", ctx, "missing").Return(nil, ErrOrderNotFound)

		_, err := svc.SelectPaymentMode(ctx, "missing", PaymentModeManual, "")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_Track(t *testing.T) {
	ctx := context.Background()

	t.Run("Looks up by email and reference prefix", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil, nil, nil)

		want := &Order{ID: "abcd1234-0000-0000-0000-000000000000"}
		mockRepo.On("GetByEmailAndPrefix", ctx, "maria@example.com", "abcd1234").
			Return(want, nil)

		o, err := svc.Track(ctx, " maria@example.com ", " abcd1234 ")

		require.NoError(t, err)
		assert.Equal(t, want.ID, o.ID)
	})

	t.Run("Missing fields are a validation error", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil, nil, nil, nil)

		_, err := svc.Track(ctx, "maria@example.com", "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid status passes through", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil, nil, nil)

		mockRepo.On("UpdateStatus", ctx, "o1", StatusProcessing).Return(nil)

		err := svc.UpdateStatus(ctx, "o1", StatusProcessing)
		assert.NoError(t, err)
	})

	t.Run("Unknown status is rejected before the store", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil, nil, nil)

		err := svc.UpdateStatus(ctx, "o1", "shipped")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestService_MarkPaid(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, nil, nil, nil, nil)

	mockRepo.On("MarkPaid", ctx, "o1", "pay_001", "gcash").Return(nil).Twice()

	require.NoError(t, svc.MarkPaid(ctx, "o1", "pay_001", "gcash"))
	// replayed webhook lands on the same repo call and stays a no-op there
	require.NoError(t, svc.MarkPaid(ctx, "o1", "pay_001", "gcash"))
	mockRepo.AssertExpectations(t)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
}

func TestWriteCSV(t *testing.T) {
	code := "TAKE20"
	method := "online"
	orders := []*Order{{
		ID:              "abcd1234-0000-0000-0000-000000000000",
		CustomerName:    "Maria Santos",
		CustomerEmail:   "maria@example.com",
		CustomerPhone:   "09171234567",
		DeliveryAddress: "12 Mabini St, Quezon City",
		Subtotal:        1000,
		Discount:        200,
		ShippingFee:     100,
		Total:           900,
		PromoCode:       &code,
		Status:          StatusConfirmed,
		PaymentStatus:   PaymentPaid,
		PaymentMethod:   &method,
	}}

	var buf bytes.Buffer
	err := WriteCSV(&buf, orders)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "reference,customer_name")
	assert.Contains(t, out, "abcd1234,Maria Santos,maria@example.com")
	assert.Contains(t, out, "1000.00,200.00,100.00,900.00,TAKE20,confirmed,paid,online")
}
