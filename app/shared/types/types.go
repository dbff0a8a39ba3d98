package sharedtypes

// IDs are stored as their string form. Entity IDs are UUIDs minted by the
// repositories; user IDs come from the identity provider and are opaque.
type (
	UserID   string
	TeamID   string
	PlayerID string
	MatchID  string
	GameID   string
	TitleID  string
	BannerID string
)

// Role is one of the five fixed fantasy positions.
type Role int

const (
	RoleCarry Role = iota + 1
	RoleMid
	RoleOfflane
	RoleSoftSupport
	RoleHardSupport
)

// Roles lists all five roles in slot order.
var Roles = []Role{RoleCarry, RoleMid, RoleOfflane, RoleSoftSupport, RoleHardSupport}

func (r Role) Valid() bool {
	return r >= RoleCarry && r <= RoleHardSupport
}

func (r Role) String() string {
	switch r {
	case RoleCarry:
		return "carry"
	case RoleMid:
		return "mid"
	case RoleOfflane:
		return "offlane"
	case RoleSoftSupport:
		return "soft_support"
	case RoleHardSupport:
		return "hard_support"
	default:
		return "unknown"
	}
}

// BracketSide distinguishes the two halves of a double-elimination bracket.
type BracketSide string

const (
	BracketUpper BracketSide = "UPPER"
	BracketLower BracketSide = "LOWER"
)

// BannerColor groups banner stat channels into the three roll pools.
type BannerColor string

const (
	BannerRed   BannerColor = "RED"
	BannerBlue  BannerColor = "BLUE"
	BannerGreen BannerColor = "GREEN"
)

// StatChannel names one of the seventeen scored stat fields. The values
// double as the banner type enum: a banner is bound to exactly one channel.
type StatChannel string

const (
	StatKills                  StatChannel = "KILLS"
	StatDeaths                 StatChannel = "DEATHS"
	StatLastHits               StatChannel = "LAST_HITS"
	StatGPM                    StatChannel = "GPM"
	StatMadstoneCount          StatChannel = "MADSTONE_COUNT"
	StatTowerKills             StatChannel = "TOWER_KILLS"
	StatWardsPlaced            StatChannel = "WARDS_PLACED"
	StatCampsStacked           StatChannel = "CAMPS_STACKED"
	StatRunesGrabbed           StatChannel = "RUNES_GRABBED"
	StatWatchersTaken          StatChannel = "WATCHERS_TAKEN"
	StatSmokesUsed             StatChannel = "SMOKES_USE"
	StatRoshanKills            StatChannel = "ROSHAN_KILLS"
	StatTeamfightParticipation StatChannel = "TEAMFIGHT_PARTICIPATION"
	StatStunTime               StatChannel = "STUN_TIME"
	StatTormentorKills         StatChannel = "TORMENTOR_KILLS"
	StatCourierKills           StatChannel = "COURIER_KILLS"
	StatFirstbloodClaimed      StatChannel = "FIRSTBLOOD_CLAIMED"
)

// TitleTag is an eligibility tag attached to a performance record. How tags
// are derived from raw vendor data is the ingestion layer's problem; scoring
// only ever checks set membership.
type TitleTag string

// PerformanceLine is one player's raw stats for one game.
type PerformanceLine struct {
	GameID                 GameID     `json:"gameId"`
	PlayerID               PlayerID   `json:"playerId"`
	Kills                  int        `json:"kills"`
	Deaths                 int        `json:"deaths"`
	LastHits               int        `json:"lastHits"`
	GPM                    int        `json:"gpm"`
	MadstoneCount          int        `json:"madstoneCount"`
	TowerKills             int        `json:"towerKills"`
	WardsPlaced            int        `json:"wardsPlaced"`
	CampsStacked           int        `json:"campsStacked"`
	RunesGrabbed           int        `json:"runesGrabbed"`
	WatchersTaken          int        `json:"watchersTaken"`
	SmokesUsed             int        `json:"smokesUsed"`
	RoshanKills            int        `json:"roshanKills"`
	TeamfightParticipation float64    `json:"teamfightParticipation"`
	StunTime               float64    `json:"stunTime"`
	TormentorKills         int        `json:"tormentorKills"`
	CourierKills           int        `json:"courierKills"`
	FirstbloodClaimed      bool       `json:"firstbloodClaimed"`
	Titles                 []TitleTag `json:"titles,omitempty"`
}

// HasTitle reports whether the performance carries the given eligibility tag.
func (p PerformanceLine) HasTitle(tag TitleTag) bool {
	for _, t := range p.Titles {
		if t == tag {
			return true
		}
	}
	return false
}
