package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	bracketservice "github.com/aegis-league/aegis-fantasy/app/modules/bracket/application"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// GetOfficialBracket renders the bracket with official results only.
func (h *Handlers) GetOfficialBracket(w http.ResponseWriter, r *http.Request) {
	h.resolveBracket(w, r, "")
}

// GetUserBracket renders the bracket as one user sees it, their predictions
// filling matches without an official winner.
func (h *Handlers) GetUserBracket(w http.ResponseWriter, r *http.Request) {
	h.resolveBracket(w, r, sharedtypes.UserID(chi.URLParam(r, "userID")))
}

func (h *Handlers) resolveBracket(w http.ResponseWriter, r *http.Request, userID sharedtypes.UserID) {
	result, err := h.bracket.ResolveBracket(r.Context(), userID)
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

func (h *Handlers) SavePredictions(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	var body struct {
		Picks []bracketservice.PredictionInput `json:"picks"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.bracket.SavePredictions(r.Context(), userID, body.Picks)
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

func (h *Handlers) GetFinalsPrediction(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	result, err := h.bracket.GetFinalsPrediction(r.Context(), userID)
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

func (h *Handlers) RecordMatchWinner(w http.ResponseWriter, r *http.Request) {
	matchID := sharedtypes.MatchID(chi.URLParam(r, "matchID"))

	var body struct {
		WinnerID sharedtypes.TeamID `json:"winner_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.bracket.RecordMatchWinner(r.Context(), matchID, body.WinnerID)
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

func (h *Handlers) GetPredictionLeaderboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.bracket.GradePredictions(r.Context())
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

func (h *Handlers) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.bracket.GetTeams(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}
