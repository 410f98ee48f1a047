// Package render writes JSON responses and maps domain errors to HTTP
// status codes.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/rkap/internal/attachment"
	"github.com/MrJamesThe3rd/rkap/internal/balancesheet"
	"github.com/MrJamesThe3rd/rkap/internal/category"
	"github.com/MrJamesThe3rd/rkap/internal/transaction"
	"github.com/MrJamesThe3rd/rkap/internal/user"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Message: msg})
}

// Decode reads a JSON request body into v, writing a 400 response on
// failure. It reports whether decoding succeeded.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Message(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

var notFound = []error{
	transaction.ErrNotFound,
	transaction.ErrBalanceSheetNotFound,
	transaction.ErrItemNotFound,
	transaction.ErrCategoryNotFound,
	balancesheet.ErrNotFound,
	category.ErrNotFound,
	category.ErrItemNotFound,
	user.ErrNotFound,
	attachment.ErrNotFound,
}

// Error writes err with the status implied by its kind. Unknown errors are
// logged and reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		JSON(w, http.StatusBadRequest, errorResponse{Message: "validation failed", Fields: verr.Fields})
		return
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			Message(w, http.StatusNotFound, target.Error())
			return
		}
	}

	switch {
	case errors.Is(err, attachment.ErrInvalidName):
		Message(w, http.StatusBadRequest, attachment.ErrInvalidName.Error())
		return
	case errors.Is(err, user.ErrDuplicateEmail):
		Message(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, user.ErrInvalidCredentials):
		Message(w, http.StatusUnauthorized, err.Error())
		return
	}

	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method, "path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()), "error", err)

	Message(w, http.StatusInternalServerError, "internal error")
}
