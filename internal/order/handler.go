package order

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"floramia-be/internal/cart"
	"floramia-be/internal/httpx"
	"floramia-be/internal/payment"
	"floramia-be/internal/promo"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}
	in.SessionToken = r.Header.Get(cart.SessionHeader)

	o, err := h.svc.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrSessionRequired):
			httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "session token is required")
		case errors.Is(err, ErrValidation):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		case errors.Is(err, ErrEmptyCart), errors.Is(err, cart.ErrBuyNowEmpty):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, "nothing to check out")
		case errors.Is(err, promo.ErrPromoNotFound):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, "invalid promo code")
		case errors.Is(err, promo.ErrPromoExpired):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeExpired, "promo code expired")
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to create order")
		}
		return
	}

	httpx.Respond(w, http.StatusCreated, o)
}

type selectPaymentRequest struct {
	Mode       PaymentMode `json:"mode"`
	AmountType string      `json:"amount_type"`
}

func (h *Handler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	var req selectPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	id := chi.URLParam(r, "id")
	sel, err := h.svc.SelectPaymentMode(r.Context(), id, req.Mode, req.AmountType)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "order not found")
		case errors.Is(err, ErrInvalidMode):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, "payment mode must be manual or online")
		case errors.Is(err, payment.ErrGateway):
			httpx.Error(w, http.StatusBadGateway, httpx.CodeGateway, "payment gateway unavailable")
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to set up payment")
		}
		return
	}

	httpx.Respond(w, http.StatusOK, sel)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "order not found")
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to load order")
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

// Track is the public lookup: email plus the short reference from the
// confirmation page.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	reference := r.URL.Query().Get("id")

	o, err := h.svc.Track(r.Context(), email, reference)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		case errors.Is(err, ErrOrderNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "order not found")
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to look up order")
		}
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := listFilter(r)
	orders, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list orders")
		return
	}
	httpx.Respond(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, "unknown order status")
		case errors.Is(err, ErrOrderNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "order not found")
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to update order")
		}
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context(), listFilter(r))
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to export orders")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		`attachment; filename="orders-`+time.Now().Format("2006-01-02")+`.csv"`)
	w.WriteHeader(http.StatusOK)

	// Headers are already flushed; a mid-stream write error can only be logged
	// by the HTTP server, not reported to the client.
	_ = WriteCSV(w, orders)
}

func listFilter(r *http.Request) Filter {
	var filter Filter
	if s := r.URL.Query().Get("status"); s != "" {
		status := Status(s)
		filter.Status = &status
	}
	if lim, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && lim > 0 {
		filter.Limit = lim
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	return filter
}
