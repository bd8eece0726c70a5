package product

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"floramia-be/internal/httpx"

	"github.com/go-chi/chi/v5"
)

const maxImageBytes = 5 << 20 // 5 MiB

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func parseFilter(r *http.Request) Filter {
	var f Filter
	q := r.URL.Query()

	if v := q.Get("category"); v != "" {
		f.Category = &v
	}
	if v := q.Get("featured"); v != "" {
		b := v == "true"
		f.Featured = &b
	}
	if v := q.Get("in_stock"); v != "" {
		b := v == "true"
		f.InStock = &b
	}
	return f
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context(), parseFilter(r))
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list products")
		return
	}
	if products == nil {
		products = []*Product{}
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to load product")
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p Product
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	if err := h.svc.Create(r.Context(), &p); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to create product")
		return
	}
	httpx.Respond(w, http.StatusCreated, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p Product
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}
	p.ID = chi.URLParam(r, "id")

	if err := h.svc.Update(r.Context(), &p); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
		case errors.Is(err, ErrInvalidInput):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to update product")
		}
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "failed to read image")
		return
	}

	url, err := h.svc.UploadImage(
		r.Context(),
		chi.URLParam(r, "id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "image upload failed")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"image": url})
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Order int `json:"order"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		// also accept ?order= for convenience
		v, convErr := strconv.Atoi(r.URL.Query().Get("order"))
		if convErr != nil {
			httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid order value")
			return
		}
		req.Order = v
	}

	if err := h.svc.Reorder(r.Context(), chi.URLParam(r, "id"), req.Order); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to reorder product")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]int{"order": req.Order})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to delete product")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"deleted": true})
}
