package order

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var csvHeader = []string{
	"reference", "customer_name", "customer_email", "customer_phone",
	"delivery_address", "subtotal", "discount", "shipping_fee", "total",
	"promo_code", "status", "payment_status", "payment_method", "created_at",
}

// WriteCSV streams the order list as a flat CSV for the admin export.
func WriteCSV(w io.Writer, orders []*Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, o := range orders {
		promoCode := ""
		if o.PromoCode != nil {
			promoCode = *o.PromoCode
		}
		method := ""
		if o.PaymentMethod != nil {
			method = *o.PaymentMethod
		}

		record := []string{
			o.Reference(),
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			o.DeliveryAddress,
			formatAmount(o.Subtotal),
			formatAmount(o.Discount),
			formatAmount(o.ShippingFee),
			formatAmount(o.Total),
			promoCode,
			string(o.Status),
			string(o.PaymentStatus),
			method,
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
