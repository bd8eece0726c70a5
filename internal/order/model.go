package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsTerminal reports whether the fulfillment status is final. The webhook
// reconciler will not move an order out of a terminal status; operators can.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ValidStatuses is the full set an operator may assign.
var ValidStatuses = map[Status]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusProcessing: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentMode string

const (
	PaymentModeManual PaymentMode = "manual"
	PaymentModeOnline PaymentMode = "online"
)

// Amount types for online payment: half now or the full total.
const (
	AmountTypeHalf = "50%"
	AmountTypeFull = "full"
)

type Order struct {
	ID              string  `json:"id"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	DeliveryAddress string  `json:"delivery_address"`
	Notes           string  `json:"notes,omitempty"`
	Subtotal        float64 `json:"subtotal"`
	Discount        float64 `json:"discount"`
	ShippingFee     float64 `json:"shipping_fee"`
	Total           float64 `json:"total"`
	PromoCode       *string `json:"promo_code,omitempty"`

	Status            Status        `json:"status"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	PaymentMethod     *string       `json:"payment_method,omitempty"`
	PaymentIntentID   *string       `json:"payment_intent_id,omitempty"`
	GatewayPaymentID  *string       `json:"gateway_payment_id,omitempty"`
	PaymentAmountType *string       `json:"payment_amount_type,omitempty"`

	RentalStartDate *time.Time `json:"rental_start_date,omitempty"`
	RentalEndDate   *time.Time `json:"rental_end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// Reference is the human-facing short id printed on confirmations.
func (o *Order) Reference() string {
	if len(o.ID) < 8 {
		return o.ID
	}
	return o.ID[:8]
}

// OrderItem snapshots a product line at order time. ProductPrice is
// decoupled from the live product and never mutated afterwards.
type OrderItem struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"order_id"`
	ProductTitle string  `json:"product_title"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// Filter narrows the admin order listing.
type Filter struct {
	Status *Status
	Limit  int
	Page   int
}
