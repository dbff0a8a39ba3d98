package bracketdomain

import (
	"fmt"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Slot is one side of a resolved match. Known is false while the ancestor
// chain has not produced a team yet; that is a legitimate state, not an
// error, and renders as a placeholder.
type Slot struct {
	Team  sharedtypes.TeamID
	Known bool
}

func knownSlot(team sharedtypes.TeamID) Slot {
	return Slot{Team: team, Known: true}
}

// SeedTeams carries the fixed team pair of a bracket leaf, taken from the
// match record. Only leaves appear in the seed map.
type SeedTeams struct {
	Left  sharedtypes.TeamID
	Right sharedtypes.TeamID
}

// Resolver materializes match slots by walking the topology against a set of
// known winners. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	topo  Topology
	seeds map[MatchKey]SeedTeams
}

func NewResolver(topo Topology, seeds map[MatchKey]SeedTeams) *Resolver {
	return &Resolver{topo: topo, seeds: seeds}
}

// MergeWinners combines official results with a user's predictions. Official
// winners always take precedence; predictions only fill matches that have no
// recorded result, so a finished match can never be overridden by a guess.
func MergeWinners(official, predicted map[MatchKey]sharedtypes.TeamID) map[MatchKey]sharedtypes.TeamID {
	merged := make(map[MatchKey]sharedtypes.TeamID, len(official)+len(predicted))
	for key, team := range predicted {
		merged[key] = team
	}
	for key, team := range official {
		merged[key] = team
	}
	return merged
}

// Resolve returns the two slots of a match given the known winners of its
// ancestors. Unresolvable sides come back with Known=false; the only errors
// are configuration defects in the topology table.
func (r *Resolver) Resolve(key MatchKey, winners map[MatchKey]sharedtypes.TeamID) (left, right Slot, err error) {
	left, err = r.resolveSide(key, SideLeft, winners, len(r.topo))
	if err != nil {
		return Slot{}, Slot{}, err
	}
	right, err = r.resolveSide(key, SideRight, winners, len(r.topo))
	if err != nil {
		return Slot{}, Slot{}, err
	}
	return left, right, nil
}

func (r *Resolver) resolveSide(key MatchKey, side MatchSide, winners map[MatchKey]sharedtypes.TeamID, budget int) (Slot, error) {
	if budget < 0 {
		return Slot{}, fmt.Errorf("%w: resolution exceeded topology size at %s", ErrTopologyCycle, key)
	}

	src, err := r.topo.SourceOf(key, side)
	if err != nil {
		return Slot{}, err
	}

	if src.Kind == SourceSeed {
		seeds, ok := r.seeds[key]
		if !ok {
			// The leaf's match record has not been seeded yet.
			return Slot{}, nil
		}
		if side == SideLeft {
			return knownSlot(seeds.Left), nil
		}
		return knownSlot(seeds.Right), nil
	}

	winner, ok := winners[src.Ref]
	if !ok {
		// A winner is never synthesized; the hole propagates upward.
		return Slot{}, nil
	}

	if src.Take == SelectWinner {
		return knownSlot(winner), nil
	}

	// The loser is whichever resolved team of the ancestor is not its winner.
	refLeft, err := r.resolveSide(src.Ref, SideLeft, winners, budget-1)
	if err != nil {
		return Slot{}, err
	}
	refRight, err := r.resolveSide(src.Ref, SideRight, winners, budget-1)
	if err != nil {
		return Slot{}, err
	}
	if !refLeft.Known || !refRight.Known {
		return Slot{}, nil
	}
	if refLeft.Team == winner {
		return refRight, nil
	}
	return refLeft, nil
}
