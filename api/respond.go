package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// failureStatus maps business failure reasons to HTTP status codes.
var failureStatus = map[string]int{
	"PREDICTIONS_LOCKED":   http.StatusLocked,
	"ROSTER_LOCKED":        http.StatusLocked,
	"ROLL_BUDGET_EXCEEDED": http.StatusTooManyRequests,
	"UNKNOWN_MATCH":        http.StatusNotFound,
	"UNKNOWN_PLAYER":       http.StatusNotFound,
	"NOT_FOUND":            http.StatusNotFound,
	"INVALID_WINNER":       http.StatusBadRequest,
	"INVALID_ROLE":         http.StatusBadRequest,
	"WRONG_ROLE":           http.StatusBadRequest,
}

type failureBody struct {
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondFailure(w http.ResponseWriter, reason, message string) {
	status, ok := failureStatus[reason]
	if !ok {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, failureBody{Reason: reason, Message: message})
}

func respondError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "request failed",
		attr.ExtractCorrelationID(r.Context()),
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	respondJSON(w, http.StatusInternalServerError, failureBody{Reason: "INTERNAL"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		respondJSON(w, http.StatusBadRequest, failureBody{Reason: "MALFORMED_BODY", Message: err.Error()})
		return false
	}
	return true
}
