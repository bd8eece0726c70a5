// Package httpx holds the JSON response envelope shared by every handler.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes surfaced to clients. The UI distinguishes "expired" from
// "not_found" so an expired promo is not reported as an invalid one.
const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeExpired    = "expired"
	CodeGateway    = "gateway_error"
	CodeStore      = "store_error"
	CodeBadRequest = "bad_request"
	CodeForbidden  = "forbidden"
)

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Respond sends a JSON body with the given status.
func Respond(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, envelope{Data: data})
}

// Error sends a categorized JSON error.
func Error(w http.ResponseWriter, status int, code, message string) {
	write(w, status, envelope{Error: &apiError{Code: code, Message: message}})
}

// DecodeJSON reads the request body into dst, rejecting empty bodies.
func DecodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}
