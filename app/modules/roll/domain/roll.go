package rolldomain

import (
	"errors"
	"fmt"
	"math/rand/v2"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

var (
	ErrEmptyPool   = errors.New("roll pool is empty")
	ErrInvalidRole = errors.New("invalid role")
)

// Rand is the randomness seam. Production uses SystemRand; tests inject
// scripted sequences to pin down tier and retry behavior.
type Rand interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// SystemRand draws from math/rand/v2's global generator.
type SystemRand struct{}

func (SystemRand) IntN(n int) int   { return rand.IntN(n) }
func (SystemRand) Float64() float64 { return rand.Float64() }

// Rarity tiers for banner multipliers, drawn by cumulative probability.
var (
	tierMultipliers = []float64{1.10, 1.30, 1.60, 2.00, 2.50}
	tierOdds        = []float64{0.45, 0.70, 0.85, 0.95, 1.00}
)

// maxTierAttempts bounds the all-tier-1 retry: a banner roll is redrawn as a
// whole until at least one slot beats the lowest tier, but never more than
// this many times. The final attempt stands even if it fails the guarantee.
const maxTierAttempts = 10

// TitlePools holds the two disjoint title pools. The current season ships 14
// primary and 13 secondary titles, but the engine only assumes non-empty.
type TitlePools struct {
	Primary   []sharedtypes.TitleID
	Secondary []sharedtypes.TitleID
}

// TitleRoll is one drawn title pair.
type TitleRoll struct {
	PrimaryID   sharedtypes.TitleID
	SecondaryID sharedtypes.TitleID
}

// RollTitle draws one primary and one secondary title, each uniformly and
// independently from its pool.
func RollTitle(r Rand, pools TitlePools) (TitleRoll, error) {
	if len(pools.Primary) == 0 || len(pools.Secondary) == 0 {
		return TitleRoll{}, fmt.Errorf("%w: titles", ErrEmptyPool)
	}
	return TitleRoll{
		PrimaryID:   pools.Primary[r.IntN(len(pools.Primary))],
		SecondaryID: pools.Secondary[r.IntN(len(pools.Secondary))],
	}, nil
}

// BannerPools holds the banner IDs of each color pool.
type BannerPools struct {
	Red   []sharedtypes.BannerID
	Blue  []sharedtypes.BannerID
	Green []sharedtypes.BannerID
}

// BannerSlot is one of the three drawn banner slots.
type BannerSlot struct {
	BannerID   sharedtypes.BannerID
	Tier       int
	Multiplier float64
}

// BannerRoll is one drawn banner triple in slot order (top, middle, bottom).
type BannerRoll struct {
	Top    BannerSlot
	Middle BannerSlot
	Bottom BannerSlot
}

// Slots returns the three slots in order.
func (b BannerRoll) Slots() [3]BannerSlot {
	return [3]BannerSlot{b.Top, b.Middle, b.Bottom}
}

// RollBanner draws the banner triple for a role. Cores (roles 1 and 3) get
// two distinct reds around a green, supports (roles 4 and 5) two distinct
// blues around a green, and the mid (role 2) one of each color. Multipliers
// are drawn per slot by rarity tier, with the whole triple redrawn (up to
// maxTierAttempts) while all three land the lowest tier.
func RollBanner(r Rand, role sharedtypes.Role, pools BannerPools) (BannerRoll, error) {
	if !role.Valid() {
		return BannerRoll{}, fmt.Errorf("%w: %d", ErrInvalidRole, role)
	}

	ids, err := drawBannerIDs(r, role, pools)
	if err != nil {
		return BannerRoll{}, err
	}

	tiers := drawTiers(r)

	return BannerRoll{
		Top:    BannerSlot{BannerID: ids[0], Tier: tiers[0].tier, Multiplier: tiers[0].multiplier},
		Middle: BannerSlot{BannerID: ids[1], Tier: tiers[1].tier, Multiplier: tiers[1].multiplier},
		Bottom: BannerSlot{BannerID: ids[2], Tier: tiers[2].tier, Multiplier: tiers[2].multiplier},
	}, nil
}

func drawBannerIDs(r Rand, role sharedtypes.Role, pools BannerPools) ([3]sharedtypes.BannerID, error) {
	var ids [3]sharedtypes.BannerID

	switch role {
	case sharedtypes.RoleCarry, sharedtypes.RoleOfflane:
		first, rest, err := drawDistinctPair(r, pools.Red)
		if err != nil {
			return ids, fmt.Errorf("%w: red banners", ErrEmptyPool)
		}
		green, err := drawOne(r, pools.Green)
		if err != nil {
			return ids, fmt.Errorf("%w: green banners", ErrEmptyPool)
		}
		ids = [3]sharedtypes.BannerID{first, green, rest}
	case sharedtypes.RoleSoftSupport, sharedtypes.RoleHardSupport:
		first, rest, err := drawDistinctPair(r, pools.Blue)
		if err != nil {
			return ids, fmt.Errorf("%w: blue banners", ErrEmptyPool)
		}
		green, err := drawOne(r, pools.Green)
		if err != nil {
			return ids, fmt.Errorf("%w: green banners", ErrEmptyPool)
		}
		ids = [3]sharedtypes.BannerID{first, green, rest}
	case sharedtypes.RoleMid:
		red, err := drawOne(r, pools.Red)
		if err != nil {
			return ids, fmt.Errorf("%w: red banners", ErrEmptyPool)
		}
		blue, err := drawOne(r, pools.Blue)
		if err != nil {
			return ids, fmt.Errorf("%w: blue banners", ErrEmptyPool)
		}
		green, err := drawOne(r, pools.Green)
		if err != nil {
			return ids, fmt.Errorf("%w: green banners", ErrEmptyPool)
		}
		ids = [3]sharedtypes.BannerID{red, blue, green}
	}

	return ids, nil
}

func drawOne(r Rand, pool []sharedtypes.BannerID) (sharedtypes.BannerID, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	return pool[r.IntN(len(pool))], nil
}

// drawDistinctPair draws two different IDs from the same pool.
func drawDistinctPair(r Rand, pool []sharedtypes.BannerID) (sharedtypes.BannerID, sharedtypes.BannerID, error) {
	if len(pool) < 2 {
		return "", "", ErrEmptyPool
	}
	firstIdx := r.IntN(len(pool))
	first := pool[firstIdx]

	remaining := make([]sharedtypes.BannerID, 0, len(pool)-1)
	remaining = append(remaining, pool[:firstIdx]...)
	remaining = append(remaining, pool[firstIdx+1:]...)

	second := remaining[r.IntN(len(remaining))]
	return first, second, nil
}

type tierDraw struct {
	tier       int
	multiplier float64
}

func drawTier(r Rand) tierDraw {
	v := r.Float64()
	for i, odds := range tierOdds {
		if v <= odds {
			return tierDraw{tier: i + 1, multiplier: tierMultipliers[i]}
		}
	}
	// Float64 < 1.0 <= tierOdds[4], so this is unreachable.
	return tierDraw{tier: 1, multiplier: tierMultipliers[0]}
}

func drawTiers(r Rand) [3]tierDraw {
	var draws [3]tierDraw
	for attempt := 0; attempt < maxTierAttempts; attempt++ {
		draws = [3]tierDraw{drawTier(r), drawTier(r), drawTier(r)}
		for _, d := range draws {
			if d.tier > 1 {
				return draws
			}
		}
	}
	return draws
}
