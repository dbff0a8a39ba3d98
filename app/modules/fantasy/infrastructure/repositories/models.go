package fantasydb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Player is immutable reference data for one pro player. Position is the
// fixed fantasy role the player is drafted into.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:pl"`

	ID       sharedtypes.PlayerID `bun:"id,pk"`
	Name     string               `bun:"name,notnull"`
	SteamID  string               `bun:"steam_id,notnull"`
	TeamID   sharedtypes.TeamID   `bun:"team_id,notnull"`
	Position sharedtypes.Role     `bun:"position,notnull"`
	ImageURL string               `bun:"image_url"`
}

// Game is one ingested map. Games played inside the playoffs carry the
// playoff match they belong to; match_id stays empty for everything else
// (group stage, tiebreakers) and those games never count toward a series.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID         sharedtypes.GameID  `bun:"id,pk"`
	ExternalID string              `bun:"external_id,notnull,unique"`
	MatchID    sharedtypes.MatchID `bun:"match_id,type:uuid,nullzero"`
}

// PerformanceRecord is one player's stat line for one game, immutable once
// ingested. Eligibility tags drive title modifier matching.
type PerformanceRecord struct {
	bun.BaseModel `bun:"table:performance_records,alias:pr"`

	ID       int64                `bun:"id,pk,autoincrement"`
	GameID   sharedtypes.GameID   `bun:"game_id,notnull"`
	PlayerID sharedtypes.PlayerID `bun:"player_id,notnull"`

	Kills                  int     `bun:"kills,notnull"`
	Deaths                 int     `bun:"deaths,notnull"`
	LastHits               int     `bun:"last_hits,notnull"`
	GPM                    int     `bun:"gpm,notnull"`
	MadstoneCount          int     `bun:"madstone_count,notnull"`
	TowerKills             int     `bun:"tower_kills,notnull"`
	WardsPlaced            int     `bun:"wards_placed,notnull"`
	CampsStacked           int     `bun:"camps_stacked,notnull"`
	RunesGrabbed           int     `bun:"runes_grabbed,notnull"`
	WatchersTaken          int     `bun:"watchers_taken,notnull"`
	SmokesUsed             int     `bun:"smokes_used,notnull"`
	RoshanKills            int     `bun:"roshan_kills,notnull"`
	TeamfightParticipation float64 `bun:"teamfight_participation,notnull"`
	StunTime               float64 `bun:"stun_time,notnull"`
	TormentorKills         int     `bun:"tormentor_kills,notnull"`
	CourierKills           int     `bun:"courier_kills,notnull"`
	FirstbloodClaimed      bool    `bun:"firstblood_claimed,notnull"`

	EligibilityTags []sharedtypes.TitleTag `bun:"eligibility_tags,type:jsonb"`
}

// Line converts the stored record to the shape the scoring engine consumes.
func (p *PerformanceRecord) Line() sharedtypes.PerformanceLine {
	return sharedtypes.PerformanceLine{
		GameID:                 p.GameID,
		PlayerID:               p.PlayerID,
		Kills:                  p.Kills,
		Deaths:                 p.Deaths,
		LastHits:               p.LastHits,
		GPM:                    p.GPM,
		MadstoneCount:          p.MadstoneCount,
		TowerKills:             p.TowerKills,
		WardsPlaced:            p.WardsPlaced,
		CampsStacked:           p.CampsStacked,
		RunesGrabbed:           p.RunesGrabbed,
		WatchersTaken:          p.WatchersTaken,
		SmokesUsed:             p.SmokesUsed,
		RoshanKills:            p.RoshanKills,
		TeamfightParticipation: p.TeamfightParticipation,
		StunTime:               p.StunTime,
		TormentorKills:         p.TormentorKills,
		CourierKills:           p.CourierKills,
		FirstbloodClaimed:      p.FirstbloodClaimed,
		Titles:                 p.EligibilityTags,
	}
}

// Roster is one user's five picks, one player per role. Empty columns are
// unfilled slots.
type Roster struct {
	bun.BaseModel `bun:"table:fantasy_rosters,alias:fr"`

	UserID        sharedtypes.UserID   `bun:"user_id,pk"`
	CarryID       sharedtypes.PlayerID `bun:"carry_id,nullzero"`
	MidID         sharedtypes.PlayerID `bun:"mid_id,nullzero"`
	OfflaneID     sharedtypes.PlayerID `bun:"offlane_id,nullzero"`
	SoftSupportID sharedtypes.PlayerID `bun:"soft_support_id,nullzero"`
	HardSupportID sharedtypes.PlayerID `bun:"hard_support_id,nullzero"`
	UpdatedAt     time.Time            `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// PlayerForRole returns the pick for one role, empty if unfilled.
func (r *Roster) PlayerForRole(role sharedtypes.Role) sharedtypes.PlayerID {
	switch role {
	case sharedtypes.RoleCarry:
		return r.CarryID
	case sharedtypes.RoleMid:
		return r.MidID
	case sharedtypes.RoleOfflane:
		return r.OfflaneID
	case sharedtypes.RoleSoftSupport:
		return r.SoftSupportID
	case sharedtypes.RoleHardSupport:
		return r.HardSupportID
	default:
		return ""
	}
}

// SetPlayerForRole sets the pick for one role.
func (r *Roster) SetPlayerForRole(role sharedtypes.Role, playerID sharedtypes.PlayerID) {
	switch role {
	case sharedtypes.RoleCarry:
		r.CarryID = playerID
	case sharedtypes.RoleMid:
		r.MidID = playerID
	case sharedtypes.RoleOfflane:
		r.OfflaneID = playerID
	case sharedtypes.RoleSoftSupport:
		r.SoftSupportID = playerID
	case sharedtypes.RoleHardSupport:
		r.HardSupportID = playerID
	}
}

// RosterScore is the cached score row for one user, recomputed by the batch
// sync rather than on read.
type RosterScore struct {
	bun.BaseModel `bun:"table:roster_scores,alias:rs"`

	UserID           sharedtypes.UserID `bun:"user_id,pk"`
	CarryScore       float64            `bun:"carry_score,notnull"`
	MidScore         float64            `bun:"mid_score,notnull"`
	OfflaneScore     float64            `bun:"offlane_score,notnull"`
	SoftSupportScore float64            `bun:"soft_support_score,notnull"`
	HardSupportScore float64            `bun:"hard_support_score,notnull"`
	TotalScore       float64            `bun:"total_score,notnull"`
	UpdatedAt        time.Time          `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
