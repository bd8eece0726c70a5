package review

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

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var rv Review
	if err := httpx.DecodeJSON(r, &rv); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	if err := h.svc.Submit(r.Context(), &rv); err != nil {
		if errors.Is(err, ErrInvalidReview) {
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to submit review")
		return
	}
	httpx.Respond(w, http.StatusCreated, rv)
}

// List is public and only shows approved reviews.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListApproved(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list reviews")
		return
	}
	httpx.Respond(w, http.StatusOK, reviews)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list reviews")
		return
	}
	httpx.Respond(w, http.StatusOK, reviews)
}

func (h *Handler) SetApproved(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approved bool `json:"approved"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.SetApproved(r.Context(), id, req.Approved); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to update review")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to delete review")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"deleted": true})
}
