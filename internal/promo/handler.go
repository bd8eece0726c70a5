package promo

import (
	"errors"
	"net/http"

	"floramia-be/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type applyRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

type applyResponse struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
}

// Apply is the public checkout endpoint that validates a code.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	discount, p, err := h.svc.Resolve(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, ErrPromoNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "invalid promo code")
		case errors.Is(err, ErrPromoExpired):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeExpired, "promo code expired")
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to apply promo")
		}
		return
	}

	httpx.Respond(w, http.StatusOK, applyResponse{
		Code:           p.Code,
		DiscountAmount: discount,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	promos, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list promos")
		return
	}
	httpx.Respond(w, http.StatusOK, promos)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p Promo
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	if err := h.svc.Create(r.Context(), &p); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to create promo")
		return
	}
	httpx.Respond(w, http.StatusCreated, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p Promo
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}
	p.ID = chi.URLParam(r, "id")

	if err := h.svc.Update(r.Context(), &p); err != nil {
		switch {
		case errors.Is(err, ErrPromoNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
		case errors.Is(err, ErrInvalidInput):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to update promo")
		}
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, ErrPromoNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to toggle promo")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPromoNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to delete promo")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"deleted": true})
}
