package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// roleNames maps the wire spelling of each role to its enum value.
var roleNames = map[string]sharedtypes.Role{
	"carry":        sharedtypes.RoleCarry,
	"mid":          sharedtypes.RoleMid,
	"offlane":      sharedtypes.RoleOfflane,
	"soft_support": sharedtypes.RoleSoftSupport,
	"hard_support": sharedtypes.RoleHardSupport,
}

func parseRole(name string) (sharedtypes.Role, bool) {
	role, ok := roleNames[name]
	return role, ok
}

func (h *Handlers) GetRoster(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	result, err := h.fantasy.GetRoster(r.Context(), userID)
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

func (h *Handlers) SaveRosterSlot(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	var body struct {
		Role     string               `json:"role"`
		PlayerID sharedtypes.PlayerID `json:"player_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	role, ok := parseRole(body.Role)
	if !ok {
		respondFailure(w, "INVALID_ROLE", "unknown role: "+body.Role)
		return
	}

	result, err := h.fantasy.SaveRosterSlot(r.Context(), userID, role, body.PlayerID)
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

func (h *Handlers) GetRecentCompletions(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondJSON(w, http.StatusBadRequest, failureBody{Reason: "INVALID_LIMIT", Message: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	result, err := h.fantasy.GetRecentCompletions(r.Context(), limit)
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

func (h *Handlers) GetRosterLeaderboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.fantasy.GetRosterScoreLeaderboard(r.Context())
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

// RequestScoreSync enqueues a manual roster score sweep.
func (h *Handlers) RequestScoreSync(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.EnqueueScoreSync(r.Context(), "manual"); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handlers) IngestSeries(w http.ResponseWriter, r *http.Request) {
	matchID := sharedtypes.MatchID(chi.URLParam(r, "matchID"))

	var body struct {
		Games []fantasyservice.GameIngest `json:"games"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.fantasy.IngestSeries(r.Context(), matchID, body.Games)
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

func (h *Handlers) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.fantasy.GetPlayers(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondJSON(w, http.StatusOK, players)
}
