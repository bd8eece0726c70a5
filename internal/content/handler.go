package content

import (
	"encoding/json"
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

func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	c, err := h.svc.GetSection(r.Context(), section)
	if err != nil {
		if errors.Is(err, ErrSectionNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "section not found")
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to load content")
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.svc.ListSections(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list content")
		return
	}
	httpx.Respond(w, http.StatusOK, sections)
}

func (h *Handler) UpsertSection(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	section := chi.URLParam(r, "section")
	c, err := h.svc.UpsertSection(r.Context(), section, payload)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to save content")
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

// ListStories serves the public storefront; only published cards are shown.
func (h *Handler) ListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.svc.ListStories(r.Context(), true)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list stories")
		return
	}
	httpx.Respond(w, http.StatusOK, stories)
}

func (h *Handler) AdminListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.svc.ListStories(r.Context(), false)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to list stories")
		return
	}
	httpx.Respond(w, http.StatusOK, stories)
}

func (h *Handler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var st Story
	if err := httpx.DecodeJSON(r, &st); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	if err := h.svc.CreateStory(r.Context(), &st); err != nil {
		if errors.Is(err, ErrInvalidStory) {
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to create story")
		return
	}
	httpx.Respond(w, http.StatusCreated, st)
}

func (h *Handler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	var st Story
	if err := httpx.DecodeJSON(r, &st); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}
	st.ID = chi.URLParam(r, "id")

	if err := h.svc.UpdateStory(r.Context(), &st); err != nil {
		switch {
		case errors.Is(err, ErrStoryNotFound):
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
		case errors.Is(err, ErrInvalidStory):
			httpx.Error(w, http.StatusUnprocessableEntity, httpx.CodeValidation, err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to update story")
		}
		return
	}
	httpx.Respond(w, http.StatusOK, st)
}

func (h *Handler) SetStoryPublished(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Published bool `json:"published"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.SetStoryPublished(r.Context(), id, req.Published); err != nil {
		if errors.Is(err, ErrStoryNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to toggle story")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"published": req.Published})
}

func (h *Handler) DeleteStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteStory(r.Context(), id); err != nil {
		if errors.Is(err, ErrStoryNotFound) {
			httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to delete story")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"deleted": true})
}
