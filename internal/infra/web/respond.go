package web

import (
	"encoding/json"
	"net/http"

	"article-hub/internal/domain"
	"article-hub/internal/domain/validate"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeFieldErrors renders per-field validation failures in the shape the
// wizard and profile forms consume.
func writeFieldErrors(w http.ResponseWriter, errs validate.ErrorMap) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]validate.ErrorMap{"errors": errs})
}

// writeDomainError maps sentinel errors to HTTP statuses. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrNotFound, domain.ErrDraftNotFound:
		writeMessage(w, http.StatusNotFound, "not found")
	case domain.ErrAlreadyExists:
		writeMessage(w, http.StatusConflict, "already exists")
	case domain.ErrInvalidArgument:
		writeMessage(w, http.StatusBadRequest, "invalid request")
	case domain.ErrInvalidCredentials:
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
	case domain.ErrNotOwner:
		writeMessage(w, http.StatusForbidden, "not the owner")
	case domain.ErrCodeMismatch:
		writeMessage(w, http.StatusBadRequest, "incorrect verification code")
	case domain.ErrCodeExpired:
		writeMessage(w, http.StatusGone, "verification code expired")
	case domain.ErrStepOrder:
		writeMessage(w, http.StatusConflict, "step out of order")
	case domain.ErrRateLimited:
		writeMessage(w, http.StatusTooManyRequests, "too many requests")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
