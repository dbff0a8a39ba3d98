package fantasyservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// RosterView is one user's roster as returned to callers.
type RosterView struct {
	UserID    sharedtypes.UserID                        `json:"user_id"`
	Players   map[sharedtypes.Role]sharedtypes.PlayerID `json:"players"`
	Complete  bool                                      `json:"complete"`
	UpdatedAt time.Time                                 `json:"updated_at"`
}

func rosterView(roster *fantasydb.Roster) RosterView {
	view := RosterView{
		UserID:    roster.UserID,
		Players:   make(map[sharedtypes.Role]sharedtypes.PlayerID, len(sharedtypes.Roles)),
		Complete:  true,
		UpdatedAt: roster.UpdatedAt,
	}
	for _, role := range sharedtypes.Roles {
		playerID := roster.PlayerForRole(role)
		if playerID == "" {
			view.Complete = false
			continue
		}
		view.Players[role] = playerID
	}
	return view
}

// SaveRosterSlot sets one role slot on a user's roster, gated by the
// roster-open flag. Filling a role for the first time seeds that role's
// initial title and banner assignment; the seed roll does not count against
// the roll budget.
func (s *FantasyService) SaveRosterSlot(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role, playerID sharedtypes.PlayerID) (results.OperationResult[RosterView, Failure], error) {
	s.logger.InfoContext(ctx, "saving roster slot",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", userID),
		attr.Role("role", role),
		attr.PlayerID("player_id", playerID),
	)

	return serviceWrapper(ctx, s, "SaveRosterSlot", func(ctx context.Context) (results.OperationResult[RosterView, Failure], error) {
		if !role.Valid() {
			return results.FailureResult[RosterView](Failure{
				Reason:  ReasonInvalidRole,
				Message: fmt.Sprintf("role %d is not a valid position", role),
			}), nil
		}

		open, err := s.flags.RosterOpen(ctx)
		if err != nil {
			return results.OperationResult[RosterView, Failure]{}, fmt.Errorf("failed to read roster gate: %w", err)
		}
		if !open {
			return results.FailureResult[RosterView](Failure{
				Reason:  ReasonRosterLocked,
				Message: "roster changes are no longer accepted",
			}), nil
		}

		var firstFill bool
		result, err := runInTx(ctx, s, func(ctx context.Context, db bun.IDB) (results.OperationResult[RosterView, Failure], error) {
			player, err := s.repo.GetPlayer(ctx, db, playerID)
			if err != nil {
				if errors.Is(err, fantasydb.ErrNotFound) {
					return results.FailureResult[RosterView](Failure{
						Reason:  ReasonUnknownPlayer,
						Message: fmt.Sprintf("player %s does not exist", playerID),
					}), nil
				}
				return results.OperationResult[RosterView, Failure]{}, err
			}
			if player.Position != role {
				return results.FailureResult[RosterView](Failure{
					Reason:  ReasonWrongRole,
					Message: fmt.Sprintf("player %s plays position %d", playerID, player.Position),
				}), nil
			}

			roster, err := s.repo.GetRoster(ctx, db, userID)
			if err != nil {
				if !errors.Is(err, fantasydb.ErrNotFound) {
					return results.OperationResult[RosterView, Failure]{}, err
				}
				roster = &fantasydb.Roster{UserID: userID}
			}

			firstFill = roster.PlayerForRole(role) == ""
			roster.SetPlayerForRole(role, playerID)

			if err := s.repo.UpsertRoster(ctx, db, roster); err != nil {
				return results.OperationResult[RosterView, Failure]{}, err
			}
			return results.SuccessResult[RosterView, Failure](rosterView(roster)), nil
		})
		if err != nil || result.IsFailure() {
			return result, err
		}

		if firstFill && s.roller != nil {
			if seedErr := s.roller.SeedInitialAssignments(ctx, userID, role); seedErr != nil {
				return results.OperationResult[RosterView, Failure]{}, fmt.Errorf("failed to seed initial assignments: %w", seedErr)
			}
		}
		return result, nil
	})
}

// GetRoster returns one user's roster. A user who never saved a pick gets an
// empty, incomplete view.
func (s *FantasyService) GetRoster(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[RosterView, Failure], error) {
	return serviceWrapper(ctx, s, "GetRoster", func(ctx context.Context) (results.OperationResult[RosterView, Failure], error) {
		roster, err := s.repo.GetRoster(ctx, nil, userID)
		if err != nil {
			if errors.Is(err, fantasydb.ErrNotFound) {
				return results.SuccessResult[RosterView, Failure](rosterView(&fantasydb.Roster{UserID: userID})), nil
			}
			return results.OperationResult[RosterView, Failure]{}, err
		}
		return results.SuccessResult[RosterView, Failure](rosterView(roster)), nil
	})
}

// GetRecentCompletions returns the latest fully filled rosters.
func (s *FantasyService) GetRecentCompletions(ctx context.Context, limit int) (results.OperationResult[[]RosterView, Failure], error) {
	return serviceWrapper(ctx, s, "GetRecentCompletions", func(ctx context.Context) (results.OperationResult[[]RosterView, Failure], error) {
		if limit <= 0 {
			limit = 10
		}
		rosters, err := s.repo.GetRecentCompletedRosters(ctx, nil, limit)
		if err != nil {
			return results.OperationResult[[]RosterView, Failure]{}, err
		}
		views := make([]RosterView, 0, len(rosters))
		for i := range rosters {
			views = append(views, rosterView(&rosters[i]))
		}
		return results.SuccessResult[[]RosterView, Failure](views), nil
	})
}

// GetPlayers returns the draftable player pool.
func (s *FantasyService) GetPlayers(ctx context.Context) ([]fantasydb.Player, error) {
	return s.repo.GetPlayers(ctx, nil)
}
