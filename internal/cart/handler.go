package cart

import (
	"errors"
	"net/http"

	"floramia-be/internal/httpx"

	"github.com/go-chi/chi/v5"
)

// SessionHeader carries the client-generated cart session token.
const SessionHeader = "X-Session-Token"

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func token(r *http.Request) string {
	return r.Header.Get(SessionHeader)
}

func (h *Handler) respondCartErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionRequired):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
	case errors.Is(err, ErrCartItemNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
	case errors.Is(err, ErrInvalidQuantity):
		httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "cart operation failed")
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), token(r))
	if err != nil {
		h.respondCartErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := httpx.DecodeJSON(r, &item); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	c, err := h.svc.Add(r.Context(), token(r), item)
	if err != nil {
		h.respondCartErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	productID := chi.URLParam(r, "productID")
	c, err := h.svc.UpdateQuantity(r.Context(), token(r), productID, req.Quantity)
	if err != nil {
		h.respondCartErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	c, err := h.svc.Remove(r.Context(), token(r), productID)
	if err != nil {
		h.respondCartErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context(), token(r)); err != nil {
		h.respondCartErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (h *Handler) StageBuyNow(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := httpx.DecodeJSON(r, &item); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	if err := h.svc.StageBuyNow(r.Context(), token(r), item); err != nil {
		h.respondCartErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"staged": true})
}
