// Package payment talks to the hosted payment gateway.
package payment

import (
	"context"
	"net/http"
)

// IntentRequest describes a charge to collect. Amount is in pesos and is
// converted to integer centavos at the wire boundary.
type IntentRequest struct {
	OrderID       string
	Amount        float64
	Description   string
	CustomerEmail string
	CustomerName  string
}

// Intent is the gateway-side handle for a payment attempt.
type Intent struct {
	IntentID    string
	RedirectURL string
}

type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	VerifySignature(r *http.Request) error
}
