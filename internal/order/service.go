package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"floramia-be/internal/cart"
	"floramia-be/internal/logger"
	"floramia-be/internal/metrics"
	"floramia-be/internal/payment"
	"floramia-be/internal/promo"
	"floramia-be/internal/shipping"

	"go.uber.org/zap"
)

// ShippingConfigSource supplies the current delivery fee rules. The site
// content service implements this.
type ShippingConfigSource interface {
	ShippingConfig(ctx context.Context) (shipping.Config, error)
}

type CreateInput struct {
	SessionToken    string     `json:"-"`
	BuyNow          bool       `json:"buy_now"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   string     `json:"customer_email"`
	CustomerPhone   string     `json:"customer_phone"`
	DeliveryAddress string     `json:"delivery_address"`
	Notes           string     `json:"notes"`
	PromoCode       string     `json:"promo_code"`
	RentalStartDate *time.Time `json:"rental_start_date"`
	RentalEndDate   *time.Time `json:"rental_end_date"`
}

// PaymentSelection is the outcome of choosing how to pay for an order.
// RedirectURL is set only for online payment.
type PaymentSelection struct {
	Mode        PaymentMode `json:"mode"`
	Amount      float64     `json:"amount"`
	RedirectURL string      `json:"redirect_url,omitempty"`
	Order       *Order      `json:"order"`
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*Order, error)
	SelectPaymentMode(ctx context.Context, orderID string, mode PaymentMode, amountType string) (*PaymentSelection, error)
	Get(ctx context.Context, id string) (*Order, error)
	Track(ctx context.Context, email, reference string) (*Order, error)
	List(ctx context.Context, filter Filter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	MarkPaid(ctx context.Context, id, gatewayPaymentID, methodHint string) error
	MarkFailed(ctx context.Context, id, gatewayPaymentID string) error
}

type service struct {
	repo    Repository
	carts   cart.Service
	promos  promo.Service
	shipCfg ShippingConfigSource
	gateway payment.Gateway
}

func NewService(repo Repository, carts cart.Service, promos promo.Service,
	shipCfg ShippingConfigSource, gateway payment.Gateway) Service {
	return &service{
		repo:    repo,
		carts:   carts,
		promos:  promos,
		shipCfg: shipCfg,
		gateway: gateway,
	}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)

	if in.CustomerName == "" || in.CustomerEmail == "" || in.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: name, email and phone are required", ErrValidation)
	}
	if in.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrValidation)
	}

	items, err := s.checkoutItems(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var subtotal float64
	orderItems := make([]OrderItem, 0, len(items))
	for _, it := range items {
		lineTotal := it.Price * float64(it.Quantity)
		subtotal += lineTotal
		orderItems = append(orderItems, OrderItem{
			ProductTitle: it.Title,
			ProductPrice: it.Price,
			Quantity:     it.Quantity,
			Subtotal:     lineTotal,
		})
	}

	var discount float64
	var promoCode *string
	if code := strings.TrimSpace(in.PromoCode); code != "" {
		d, p, err := s.promos.Resolve(ctx, code, subtotal)
		if err != nil {
			return nil, err
		}
		discount = d
		promoCode = &p.Code
	}

	cfg, err := s.shipCfg.ShippingConfig(ctx)
	if err != nil {
		return nil, err
	}
	fee := shipping.Fee(in.DeliveryAddress, cfg)

	o := &Order{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		DeliveryAddress: in.DeliveryAddress,
		Notes:           in.Notes,
		Subtotal:        subtotal,
		Discount:        discount,
		ShippingFee:     fee,
		Total:           subtotal - discount + fee,
		PromoCode:       promoCode,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		RentalStartDate: in.RentalStartDate,
		RentalEndDate:   in.RentalEndDate,
		Items:           orderItems,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	if in.BuyNow {
		if _, err := s.carts.TakeBuyNow(ctx, in.SessionToken); err != nil {
			logger.FromCtx(ctx).Warn("failed to consume buy-now item after checkout",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	} else {
		if err := s.carts.Clear(ctx, in.SessionToken); err != nil {
			logger.FromCtx(ctx).Warn("failed to clear cart after checkout",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	}

	metrics.OrdersCreated.Inc()
	logger.FromCtx(ctx).Info("order created",
		zap.String("order_id", o.ID),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)),
	)
	return o, nil
}

// checkoutItems picks the checkout source: the staged buy-now item or the
// session cart. Neither is consumed here; the slot and the cart are cleared
// only after the order has been persisted, so a failed checkout leaves the
// session untouched.
func (s *service) checkoutItems(ctx context.Context, in CreateInput) ([]cart.Item, error) {
	if in.BuyNow {
		item, err := s.carts.PeekBuyNow(ctx, in.SessionToken)
		if err != nil {
			return nil, err
		}
		return []cart.Item{*item}, nil
	}

	c, err := s.carts.Get(ctx, in.SessionToken)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

func (s *service) SelectPaymentMode(ctx context.Context, orderID string, mode PaymentMode, amountType string) (*PaymentSelection, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch mode {
	case PaymentModeManual:
		if err := s.repo.SetPaymentMethod(ctx, o.ID, string(PaymentModeManual)); err != nil {
			return nil, err
		}
		method := string(PaymentModeManual)
		o.PaymentMethod = &method
		return &PaymentSelection{Mode: mode, Amount: o.Total, Order: o}, nil

	case PaymentModeOnline:
		if amountType != AmountTypeHalf {
			amountType = AmountTypeFull
		}
		amount := o.Total
		if amountType == AmountTypeHalf {
			amount = o.Total / 2
		}

		intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
			OrderID:       o.ID,
			Amount:        amount,
			Description:   "Order " + o.Reference(),
			CustomerEmail: o.CustomerEmail,
			CustomerName:  o.CustomerName,
		})
		if err != nil {
			return nil, err
		}

		if err := s.repo.SetPaymentIntent(ctx, o.ID, intent.IntentID, amountType); err != nil {
			return nil, err
		}
		if err := s.repo.SetPaymentMethod(ctx, o.ID, string(PaymentModeOnline)); err != nil {
			return nil, err
		}

		logger.FromCtx(ctx).Info("payment intent created",
			zap.String("order_id", o.ID),
			zap.String("intent_id", intent.IntentID),
			zap.Float64("amount", amount),
		)
		return &PaymentSelection{Mode: mode, Amount: amount, RedirectURL: intent.RedirectURL, Order: o}, nil

	default:
		return nil, ErrInvalidMode
	}
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Track resolves an order from the email and short reference the customer
// holds. Any mismatch surfaces as not found.
func (s *service) Track(ctx context.Context, email, reference string) (*Order, error) {
	email = strings.TrimSpace(email)
	reference = strings.TrimSpace(reference)
	if email == "" || reference == "" {
		return nil, fmt.Errorf("%w: email and order id are required", ErrValidation)
	}
	return s.repo.GetByEmailAndPrefix(ctx, email, reference)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatuses[status] {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) MarkPaid(ctx context.Context, id, gatewayPaymentID, methodHint string) error {
	if err := s.repo.MarkPaid(ctx, id, gatewayPaymentID, methodHint); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("order marked paid",
		zap.String("order_id", id), zap.String("payment_id", gatewayPaymentID))
	return nil
}

func (s *service) MarkFailed(ctx context.Context, id, gatewayPaymentID string) error {
	if err := s.repo.MarkFailed(ctx, id, gatewayPaymentID); err != nil {
		return err
	}
	logger.FromCtx(ctx).Warn("order payment failed",
		zap.String("order_id", id), zap.String("payment_id", gatewayPaymentID))
	return nil
}
