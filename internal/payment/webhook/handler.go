// Package webhook receives asynchronous payment events from the gateway and
// reconciles them onto orders. The gateway retries on non-2xx responses, so
// anything a retry cannot fix is acknowledged instead of failed.
package webhook

import (
	"encoding/json"
	"errors"
	"net/http"

	"floramia-be/internal/logger"
	"floramia-be/internal/metrics"
	"floramia-be/internal/order"
	"floramia-be/internal/payment"

	"go.uber.org/zap"
)

const (
	EventPaymentPaid   = "payment.paid"
	EventPaymentFailed = "payment.failed"
)

type Event struct {
	EventType  string `json:"event_type"`
	PaymentID  string `json:"payment_id"`
	SourceType string `json:"source_type"`
	Metadata   struct {
		OrderID string `json:"order_id"`
	} `json:"metadata"`
}

type Handler struct {
	orders  order.Service
	gateway payment.Gateway
}

func NewHandler(orders order.Service, gateway payment.Gateway) *Handler {
	return &Handler{orders: orders, gateway: gateway}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.gateway.VerifySignature(r); err != nil {
		metrics.WebhookEvents.WithLabelValues("error").Inc()
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		metrics.WebhookEvents.WithLabelValues("error").Inc()
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	log := logger.FromCtx(r.Context()).With(
		zap.String("event_type", ev.EventType),
		zap.String("payment_id", ev.PaymentID),
		zap.String("order_id", ev.Metadata.OrderID),
	)

	switch ev.EventType {
	case EventPaymentPaid:
		err := h.orders.MarkPaid(r.Context(), ev.Metadata.OrderID, ev.PaymentID, ev.SourceType)
		if errors.Is(err, order.ErrOrderNotFound) {
			// a retry cannot conjure the order; acknowledge and move on
			log.Warn("webhook for unknown order")
			metrics.WebhookEvents.WithLabelValues("unmatched").Inc()
			ack(w)
			return
		}
		if err != nil {
			log.Error("failed to apply paid event", zap.Error(err))
			metrics.WebhookEvents.WithLabelValues("error").Inc()
			http.Error(w, "store error", http.StatusInternalServerError)
			return
		}
		metrics.WebhookEvents.WithLabelValues("paid").Inc()

	case EventPaymentFailed:
		err := h.orders.MarkFailed(r.Context(), ev.Metadata.OrderID, ev.PaymentID)
		if errors.Is(err, order.ErrOrderNotFound) {
			log.Warn("webhook for unknown order")
			metrics.WebhookEvents.WithLabelValues("unmatched").Inc()
			ack(w)
			return
		}
		if err != nil {
			log.Error("failed to apply failed event", zap.Error(err))
			metrics.WebhookEvents.WithLabelValues("error").Inc()
			http.Error(w, "store error", http.StatusInternalServerError)
			return
		}
		metrics.WebhookEvents.WithLabelValues("failed").Inc()

	default:
		log.Debug("ignoring unhandled webhook event")
		metrics.WebhookEvents.WithLabelValues("ignored").Inc()
	}

	ack(w)
}

func ack(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
