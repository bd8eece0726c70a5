package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByEmailAndPrefix(ctx context.Context, email, prefix string) (*Order, error)
	List(ctx context.Context, filter Filter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	SetPaymentIntent(ctx context.Context, id, intentID, amountType string) error
	SetPaymentMethod(ctx context.Context, id, method string) error
	MarkPaid(ctx context.Context, id, gatewayPaymentID, methodHint string) error
	MarkFailed(ctx context.Context, id, gatewayPaymentID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, customer_name, customer_email, customer_phone, delivery_address, notes,
	subtotal, discount, shipping_fee, total, promo_code,
	status, payment_status, payment_method, payment_intent_id,
	gateway_payment_id, payment_amount_type,
	rental_start_date, rental_end_date, created_at, updated_at
`

func scanOrder(row interface {
	Scan(dest ...any) error
}) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.DeliveryAddress, &o.Notes,
		&o.Subtotal, &o.Discount, &o.ShippingFee, &o.Total, &o.PromoCode,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.PaymentIntentID,
		&o.GatewayPaymentID, &o.PaymentAmountType,
		&o.RentalStartDate, &o.RentalEndDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the order and its item snapshots in one transaction.
func (r *repository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, customer_name, customer_email, customer_phone, delivery_address, notes,
			subtotal, discount, shipping_fee, total, promo_code,
			status, payment_status, rental_start_date, rental_end_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,NOW(),NOW())
	`,
		o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.DeliveryAddress, o.Notes,
		o.Subtotal, o.Discount, o.ShippingFee, o.Total, o.PromoCode,
		o.Status, o.PaymentStatus, o.RentalStartDate, o.RentalEndDate,
	)
	if err != nil {
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OrderID = o.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_title, product_price, quantity, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, item.ID, item.OrderID, item.ProductTitle, item.ProductPrice, item.Quantity, item.Subtotal)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByEmailAndPrefix resolves a tracking lookup: the customer's email plus
// the short reference they were shown. The prefix is compared literally, so
// pattern characters in the reference never match. The newest match wins.
func (r *repository) GetByEmailAndPrefix(ctx context.Context, email, prefix string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE lower(customer_email) = lower($1) AND left(id, char_length($2)) = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, email, prefix)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_title, product_price, quantity, subtotal
		FROM order_items WHERE order_id = $1
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductTitle,
			&item.ProductPrice, &item.Quantity, &item.Subtotal); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *repository) List(ctx context.Context, filter Filter) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Status != nil && *filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++

		if filter.Page > 1 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, (filter.Page-1)*filter.Limit)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) SetPaymentIntent(ctx context.Context, id, intentID, amountType string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_intent_id = $1, payment_amount_type = $2, updated_at = NOW()
		WHERE id = $3
	`, intentID, amountType, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) SetPaymentMethod(ctx context.Context, id, method string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_method = $1, updated_at = NOW() WHERE id = $2`, method, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkPaid flips payment_status to paid and confirms the order unless an
// operator already completed or cancelled it. Safe to call more than once
// for the same payment.
func (r *repository) MarkPaid(ctx context.Context, id, gatewayPaymentID, methodHint string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'paid',
		    status = CASE WHEN status IN ('completed','cancelled') THEN status ELSE 'confirmed' END,
		    gateway_payment_id = $1,
		    payment_method = COALESCE(NULLIF($2, ''), payment_method),
		    updated_at = NOW()
		WHERE id = $3
	`, gatewayPaymentID, methodHint, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkFailed records a failed charge. Fulfillment status is left alone so
// the customer can retry payment against the same order.
func (r *repository) MarkFailed(ctx context.Context, id, gatewayPaymentID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'failed', gateway_payment_id = $1, updated_at = NOW()
		WHERE id = $2
	`, gatewayPaymentID, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
