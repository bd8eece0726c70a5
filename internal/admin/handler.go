package admin

import (
	"errors"
	"net/http"

	"floramia-be/internal/httpx"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
		return
	}

	token, op, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Error(w, http.StatusUnauthorized, httpx.CodeForbidden, ErrInvalidCredentials.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "login failed")
		return
	}

	httpx.Respond(w, http.StatusOK, loginResponse{
		Token: token,
		Email: op.Email,
		Name:  op.Name,
	})
}
