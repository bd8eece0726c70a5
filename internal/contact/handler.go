package contact

import (
	"errors"
	"net/http"
	"time"

	"floramia-be/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var in Inquiry
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	if err := h.svc.SubmitInquiry(r.Context(), &in); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInquiry), errors.Is(err, ErrInvalidEmail):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to submit inquiry")
		}
		return
	}
	httpx.Respond(w, http.StatusCreated, in)
}

func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.svc.ListInquiries(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list inquiries")
		return
	}
	httpx.Respond(w, http.StatusOK, inquiries)
}

func (h *Handler) SetInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status InquiryStatus `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.SetInquiryStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInquiryNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
		case errors.Is(err, ErrInvalidInquiry):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to update inquiry")
		}
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *Handler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteInquiry(r.Context(), id); err != nil {
		if errors.Is(err, ErrInquiryNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to delete inquiry")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ExportInquiriesCSV(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.svc.ListInquiries(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to export inquiries")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		`attachment; filename="inquiries-`+time.Now().Format("2006-01-02")+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_ = WriteInquiriesCSV(w, inquiries)
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		case errors.Is(err, ErrAlreadySubscribed):
			httpx.Error(w, http.StatusConflict, httpx.CodeValidation, err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to subscribe")
		}
		return
	}
	httpx.Respond(w, http.StatusCreated, sub)
}

func (h *Handler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.ListSubscribers(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list subscribers")
		return
	}
	httpx.Respond(w, http.StatusOK, subs)
}

func (h *Handler) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteSubscriber(r.Context(), id); err != nil {
		if errors.Is(err, ErrSubscriberNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to delete subscriber")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ExportSubscribersCSV(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.ListSubscribers(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to export subscribers")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		`attachment; filename="subscribers-`+time.Now().Format("2006-01-02")+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_ = WriteSubscribersCSV(w, subs)
}
