package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

func (h *Handlers) RollTitle(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	var body struct {
		Role string `json:"role"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	role, ok := parseRole(body.Role)
	if !ok {
		respondFailure(w, "INVALID_ROLE", "unknown role: "+body.Role)
		return
	}

	result, err := h.rolls.RollTitle(r.Context(), userID, role)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if result.Failure != nil {
		respondFailure(w, result.Failure.Reason, result.Failure.Message)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) RollBanner(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	var body struct {
		Role string `json:"role"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	role, ok := parseRole(body.Role)
	if !ok {
		respondFailure(w, "INVALID_ROLE", "unknown role: "+body.Role)
		return
	}

	result, err := h.rolls.RollBanner(r.Context(), userID, role)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if result.Failure != nil {
		respondFailure(w, result.Failure.Reason, result.Failure.Message)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) GetAssignments(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	result, err := h.rolls.GetAssignments(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if result.Failure != nil {
		respondFailure(w, result.Failure.Reason, result.Failure.Message)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) GetRemainingRolls(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	result, err := h.rolls.RemainingRolls(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if result.Failure != nil {
		respondFailure(w, result.Failure.Reason, result.Failure.Message)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) GetTitles(w http.ResponseWriter, r *http.Request) {
	result, err := h.rolls.GetTitles(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if result.Failure != nil {
		respondFailure(w, result.Failure.Reason, result.Failure.Message)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) GetBanners(w http.ResponseWriter, r *http.Request) {
	result, err := h.rolls.GetBanners(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if result.Failure != nil {
		respondFailure(w, result.Failure.Reason, result.Failure.Message)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}
