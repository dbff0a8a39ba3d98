package rolldomain

import (
	"errors"
	"math/rand/v2"
	"testing"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// scriptedRand replays fixed draw sequences so tests can pin down exactly
// which pool entries and tiers come out.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func testTitlePools() TitlePools {
	return TitlePools{
		Primary:   []sharedtypes.TitleID{"t1", "t2", "t3", "t4"},
		Secondary: []sharedtypes.TitleID{"s1", "s2", "s3"},
	}
}

func testBannerPools() BannerPools {
	return BannerPools{
		Red:   []sharedtypes.BannerID{"r1", "r2", "r3"},
		Blue:  []sharedtypes.BannerID{"b1", "b2", "b3"},
		Green: []sharedtypes.BannerID{"g1", "g2"},
	}
}

func TestRollTitle(t *testing.T) {
	r := &scriptedRand{ints: []int{2, 1}}

	roll, err := RollTitle(r, testTitlePools())
	if err != nil {
		t.Fatalf("RollTitle: %v", err)
	}
	if roll.PrimaryID != "t3" {
		t.Errorf("PrimaryID = %q, want t3", roll.PrimaryID)
	}
	if roll.SecondaryID != "s2" {
		t.Errorf("SecondaryID = %q, want s2", roll.SecondaryID)
	}
}

func TestRollTitleEmptyPool(t *testing.T) {
	_, err := RollTitle(&scriptedRand{}, TitlePools{Primary: []sharedtypes.TitleID{"t1"}})
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestRollBannerCarryColors(t *testing.T) {
	// Red pool index 0 first, then remaining index 0 (r2), green index 1.
	// One float per slot, no retry needed.
	r := &scriptedRand{
		ints:   []int{0, 0, 1},
		floats: []float64{0.5, 0.2, 0.9},
	}

	roll, err := RollBanner(r, sharedtypes.RoleCarry, testBannerPools())
	if err != nil {
		t.Fatalf("RollBanner: %v", err)
	}

	if roll.Top.BannerID != "r1" || roll.Bottom.BannerID != "r2" {
		t.Errorf("red slots = %q/%q, want r1/r2", roll.Top.BannerID, roll.Bottom.BannerID)
	}
	if roll.Middle.BannerID != "g2" {
		t.Errorf("green slot = %q, want g2", roll.Middle.BannerID)
	}
	if roll.Top.Tier != 2 || roll.Top.Multiplier != 1.30 {
		t.Errorf("top tier = %d/%v, want 2/1.30", roll.Top.Tier, roll.Top.Multiplier)
	}
	if roll.Middle.Tier != 1 || roll.Bottom.Tier != 4 {
		t.Errorf("middle/bottom tiers = %d/%d, want 1/4", roll.Middle.Tier, roll.Bottom.Tier)
	}
}

func TestRollBannerSupportColors(t *testing.T) {
	r := &scriptedRand{
		ints:   []int{1, 0, 0},
		floats: []float64{0.99, 0.1, 0.1},
	}

	roll, err := RollBanner(r, sharedtypes.RoleHardSupport, testBannerPools())
	if err != nil {
		t.Fatalf("RollBanner: %v", err)
	}

	if roll.Top.BannerID != "b2" || roll.Bottom.BannerID != "b1" {
		t.Errorf("blue slots = %q/%q, want b2/b1", roll.Top.BannerID, roll.Bottom.BannerID)
	}
	if roll.Middle.BannerID != "g1" {
		t.Errorf("green slot = %q, want g1", roll.Middle.BannerID)
	}
	if roll.Top.Tier != 5 || roll.Top.Multiplier != 2.50 {
		t.Errorf("top tier = %d/%v, want 5/2.50", roll.Top.Tier, roll.Top.Multiplier)
	}
}

func TestRollBannerMidColors(t *testing.T) {
	r := &scriptedRand{
		ints:   []int{2, 2, 0},
		floats: []float64{0.6, 0.6, 0.6},
	}

	roll, err := RollBanner(r, sharedtypes.RoleMid, testBannerPools())
	if err != nil {
		t.Fatalf("RollBanner: %v", err)
	}

	if roll.Top.BannerID != "r3" || roll.Middle.BannerID != "b3" || roll.Bottom.BannerID != "g1" {
		t.Errorf("slots = %q/%q/%q, want r3/b3/g1",
			roll.Top.BannerID, roll.Middle.BannerID, roll.Bottom.BannerID)
	}
}

func TestRollBannerInvalidRole(t *testing.T) {
	_, err := RollBanner(&scriptedRand{}, sharedtypes.Role(0), testBannerPools())
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRollBannerEmptyPool(t *testing.T) {
	pools := testBannerPools()
	pools.Green = nil

	_, err := RollBanner(&scriptedRand{ints: []int{0, 0}}, sharedtypes.RoleCarry, pools)
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestRollBannerRetriesAllLowestTier(t *testing.T) {
	// First triple lands all tier 1, second triple carries a tier 2.
	r := &scriptedRand{
		ints:   []int{0, 0, 0},
		floats: []float64{0.1, 0.2, 0.3, 0.1, 0.1, 0.6},
	}

	roll, err := RollBanner(r, sharedtypes.RoleCarry, testBannerPools())
	if err != nil {
		t.Fatalf("RollBanner: %v", err)
	}

	if roll.Top.Tier != 1 || roll.Middle.Tier != 1 || roll.Bottom.Tier != 2 {
		t.Errorf("tiers = %d/%d/%d, want 1/1/2",
			roll.Top.Tier, roll.Middle.Tier, roll.Bottom.Tier)
	}
	if len(r.floats) != 0 {
		t.Errorf("expected all scripted floats consumed, %d left", len(r.floats))
	}
}

func TestRollBannerRetryGivesUpAfterTenAttempts(t *testing.T) {
	floats := make([]float64, 3*maxTierAttempts+3)
	for i := range floats {
		floats[i] = 0.01
	}
	r := &scriptedRand{ints: []int{0, 0, 0}, floats: floats}

	roll, err := RollBanner(r, sharedtypes.RoleCarry, testBannerPools())
	if err != nil {
		t.Fatalf("RollBanner: %v", err)
	}

	for i, slot := range roll.Slots() {
		if slot.Tier != 1 {
			t.Errorf("slot %d tier = %d, want 1", i, slot.Tier)
		}
	}
	if got := len(floats) - len(r.floats); got != 3*maxTierAttempts {
		t.Errorf("consumed %d floats, want %d", got, 3*maxTierAttempts)
	}
}

func TestDrawTierBoundaries(t *testing.T) {
	tests := []struct {
		v    float64
		tier int
		mult float64
	}{
		{0.0, 1, 1.10},
		{0.45, 1, 1.10},
		{0.46, 2, 1.30},
		{0.70, 2, 1.30},
		{0.84, 3, 1.60},
		{0.94, 4, 2.00},
		{0.999, 5, 2.50},
	}

	for _, tt := range tests {
		d := drawTier(&scriptedRand{floats: []float64{tt.v}})
		if d.tier != tt.tier || d.multiplier != tt.mult {
			t.Errorf("drawTier(%v) = %d/%v, want %d/%v", tt.v, d.tier, d.multiplier, tt.tier, tt.mult)
		}
	}
}

func TestRollBannerProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	pools := testBannerPools()

	for i := 0; i < 500; i++ {
		for _, role := range sharedtypes.Roles {
			roll, err := RollBanner(r, role, pools)
			if err != nil {
				t.Fatalf("RollBanner(%v): %v", role, err)
			}

			switch role {
			case sharedtypes.RoleCarry, sharedtypes.RoleOfflane:
				if roll.Top.BannerID == roll.Bottom.BannerID {
					t.Fatalf("role %v drew duplicate red %q", role, roll.Top.BannerID)
				}
			case sharedtypes.RoleSoftSupport, sharedtypes.RoleHardSupport:
				if roll.Top.BannerID == roll.Bottom.BannerID {
					t.Fatalf("role %v drew duplicate blue %q", role, roll.Top.BannerID)
				}
			}

			if roll.Top.Tier == 1 && roll.Middle.Tier == 1 && roll.Bottom.Tier == 1 {
				t.Fatalf("all three slots landed the lowest tier on iteration %d", i)
			}
		}
	}
}
