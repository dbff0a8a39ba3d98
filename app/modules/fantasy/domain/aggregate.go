package fantasydomain

import (
	"sort"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// GameScore is one scored game for a player, tagged with the playoff match
// (series) it belongs to. Games outside the playoffs carry an empty MatchID
// and never count toward a series.
type GameScore struct {
	GameID  sharedtypes.GameID
	MatchID sharedtypes.MatchID
	Score   float64
}

// BestSeriesScore reduces a player's scored games to their single best
// series: within each series the top two game scores are summed (a longer
// series contributes nothing past its two best games, a single-game series
// counts as that one game), and the best series sum wins. A player with no
// series play scores 0.
func BestSeriesScore(games []GameScore) float64 {
	bySeries := make(map[sharedtypes.MatchID][]float64)
	for _, g := range games {
		if g.MatchID == "" {
			continue
		}
		bySeries[g.MatchID] = append(bySeries[g.MatchID], g.Score)
	}

	var best float64
	for _, scores := range bySeries {
		sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
		sum := scores[0]
		if len(scores) > 1 {
			sum += scores[1]
		}
		if sum > best {
			best = sum
		}
	}
	return best
}

// RosterScore is the derived score row for one user's roster.
type RosterScore struct {
	UserID           sharedtypes.UserID
	CarryScore       float64
	MidScore         float64
	OfflaneScore     float64
	SoftSupportScore float64
	HardSupportScore float64
	TotalScore       float64
}

// RoleScores maps each of the five roles to its series contribution.
// Unfilled roles are simply absent and contribute 0.
type RoleScores map[sharedtypes.Role]float64

// RosterTotal folds the five role contributions into a RosterScore.
func RosterTotal(userID sharedtypes.UserID, roles RoleScores) RosterScore {
	score := RosterScore{
		UserID:           userID,
		CarryScore:       roles[sharedtypes.RoleCarry],
		MidScore:         roles[sharedtypes.RoleMid],
		OfflaneScore:     roles[sharedtypes.RoleOfflane],
		SoftSupportScore: roles[sharedtypes.RoleSoftSupport],
		HardSupportScore: roles[sharedtypes.RoleHardSupport],
	}
	score.TotalScore = score.CarryScore + score.MidScore + score.OfflaneScore +
		score.SoftSupportScore + score.HardSupportScore
	return score
}
