// Package api exposes the bracket, fantasy, and roll services over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	bracketservice "github.com/aegis-league/aegis-fantasy/app/modules/bracket/application"
	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
	fantasyqueue "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/queue"
	rollservice "github.com/aegis-league/aegis-fantasy/app/modules/roll/application"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

const correlationHeader = "X-Correlation-ID"

// Handlers carries every service the HTTP surface fronts.
type Handlers struct {
	bracket bracketservice.Service
	fantasy fantasyservice.Service
	queue   fantasyqueue.QueueService
	rolls   rollservice.Service
	limiter *userLimiter
	logger  *slog.Logger
}

func NewHandlers(
	bracket bracketservice.Service,
	fantasy fantasyservice.Service,
	queue fantasyqueue.QueueService,
	rolls rollservice.Service,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		bracket: bracket,
		fantasy: fantasy,
		queue:   queue,
		rolls:   rolls,
		limiter: newUserLimiter(rollRateLimit, rollRateBurst),
		logger:  logger,
	}
}

// NewRouter builds the chi router for every API route.
func NewRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationID)

	r.Get("/healthz", h.Healthz)

	r.Get("/teams", h.GetTeams)
	r.Get("/players", h.GetPlayers)
	r.Get("/titles", h.GetTitles)
	r.Get("/banners", h.GetBanners)

	r.Route("/bracket", func(r chi.Router) {
		r.Get("/", h.GetOfficialBracket)
		r.Get("/{userID}", h.GetUserBracket)
		r.Post("/{userID}/predictions", h.SavePredictions)
		r.Get("/{userID}/finals", h.GetFinalsPrediction)
		r.Post("/matches/{matchID}/winner", h.RecordMatchWinner)
	})

	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/predictions", h.GetPredictionLeaderboard)
		r.Get("/rosters", h.GetRosterLeaderboard)
		r.Get("/rosters/chart.png", h.GetRosterLeaderboardChart)
		r.Get("/rosters/export.xlsx", h.ExportRosterLeaderboard)
	})

	r.Route("/rosters", func(r chi.Router) {
		r.Get("/recent", h.GetRecentCompletions)
		r.Post("/sync", h.RequestScoreSync)
		r.Get("/{userID}", h.GetRoster)
		r.Put("/{userID}/slots", h.SaveRosterSlot)
	})

	r.Post("/series/{matchID}", h.IngestSeries)

	// The userID segment is matched here so the rate-limit middleware can
	// read it.
	r.Route("/rolls/{userID}", func(r chi.Router) {
		r.Get("/", h.GetAssignments)
		r.Get("/remaining", h.GetRemainingRolls)
		r.Group(func(r chi.Router) {
			r.Use(h.rollRateLimit)
			r.Post("/title", h.RollTitle)
			r.Post("/banner", h.RollBanner)
		})
	})

	return r
}

// correlationID threads the caller's correlation ID, or a fresh one, through
// the request context and echoes it on the response.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlationHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(correlationHeader, id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.queue.HealthCheck(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]string{"status": status})
}
