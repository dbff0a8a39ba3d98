package bracketdomain

import (
	"errors"
	"testing"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

func TestResolveSeededMatchIgnoresWinners(t *testing.T) {
	topo := DoubleElim16()
	seeds := map[MatchKey]SeedTeams{
		upper(2, 1): {Left: "T1", Right: "T2"},
	}
	resolver := NewResolver(topo, seeds)

	winners := map[MatchKey]sharedtypes.TeamID{
		upper(2, 1): "T2",
		upper(2, 2): "T9",
	}

	left, right, err := resolver.Resolve(upper(2, 1), winners)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !left.Known || left.Team != "T1" {
		t.Errorf("left = %+v, want known T1", left)
	}
	if !right.Known || right.Team != "T2" {
		t.Errorf("right = %+v, want known T2", right)
	}
}

func TestResolveWinnerReference(t *testing.T) {
	// A child match referencing {T1 vs T2, WINNER} resolves to the winner.
	topo := DoubleElim16()
	seeds := map[MatchKey]SeedTeams{
		upper(2, 1): {Left: "T1", Right: "T2"},
	}
	resolver := NewResolver(topo, seeds)

	winners := map[MatchKey]sharedtypes.TeamID{upper(2, 1): "T1"}

	left, _, err := resolver.Resolve(upper(4, 1), winners)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !left.Known || left.Team != "T1" {
		t.Errorf("left = %+v, want known T1", left)
	}
}

func TestResolveLoserReference(t *testing.T) {
	topo := DoubleElim16()
	seeds := map[MatchKey]SeedTeams{
		upper(2, 1): {Left: "T1", Right: "T2"},
		lower(1, 1): {Left: "T3", Right: "T4"},
		lower(1, 2): {Left: "T5", Right: "T6"},
	}
	resolver := NewResolver(topo, seeds)

	winners := map[MatchKey]sharedtypes.TeamID{
		upper(2, 1): "T1", // T2 drops to lower round 3
		lower(1, 1): "T3",
		lower(1, 2): "T6",
		lower(2, 1): "T3",
	}

	left, right, err := resolver.Resolve(lower(3, 1), winners)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !left.Known || left.Team != "T2" {
		t.Errorf("left = %+v, want the upper loser T2", left)
	}
	if !right.Known || right.Team != "T3" {
		t.Errorf("right = %+v, want the lower winner T3", right)
	}
}

func TestResolveUnknownAncestorPropagates(t *testing.T) {
	topo := DoubleElim16()
	resolver := NewResolver(topo, map[MatchKey]SeedTeams{})

	// No seeds, no winners anywhere: every match must resolve without error
	// and with both sides unknown.
	for key := range topo {
		left, right, err := resolver.Resolve(key, nil)
		if err != nil {
			t.Fatalf("resolve %s: unexpected error %v", key, err)
		}
		if left.Known || right.Known {
			t.Errorf("resolve %s: expected unknown slots, got %+v / %+v", key, left, right)
		}
	}
}

func TestResolveLoserUnknownWhenWinnerUnknown(t *testing.T) {
	topo := DoubleElim16()
	seeds := map[MatchKey]SeedTeams{
		upper(2, 1): {Left: "T1", Right: "T2"},
	}
	resolver := NewResolver(topo, seeds)

	// The upper match is seeded but has no winner, so its loser is unknown.
	left, _, err := resolver.Resolve(lower(3, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.Known {
		t.Errorf("left = %+v, want unknown", left)
	}
}

func TestResolveOfficialBeatsPrediction(t *testing.T) {
	topo := DoubleElim16()
	seeds := map[MatchKey]SeedTeams{
		upper(2, 1): {Left: "T1", Right: "T2"},
	}
	resolver := NewResolver(topo, seeds)

	official := map[MatchKey]sharedtypes.TeamID{upper(2, 1): "T1"}
	predicted := map[MatchKey]sharedtypes.TeamID{
		upper(2, 1): "T2", // conflicting guess must lose
		upper(4, 1): "T2",
	}
	merged := MergeWinners(official, predicted)

	left, _, err := resolver.Resolve(upper(4, 1), merged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !left.Known || left.Team != "T1" {
		t.Errorf("left = %+v, want the official winner T1", left)
	}

	// The prediction still fills matches without an official result.
	left, _, err = resolver.Resolve(upper(6, 1), merged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !left.Known || left.Team != "T2" {
		t.Errorf("left = %+v, want the predicted winner T2", left)
	}
}

func TestResolveUnknownMatchKeyFails(t *testing.T) {
	resolver := NewResolver(DoubleElim16(), nil)

	_, _, err := resolver.Resolve(upper(3, 1), nil)
	if !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("expected ErrUnknownMatch, got %v", err)
	}
}

func TestResolveMisauthoredCycleFailsFast(t *testing.T) {
	topo := Topology{
		lower(1, 1): {LoserOf(lower(2, 1)), Seed()},
		lower(2, 1): {LoserOf(lower(1, 1)), Seed()},
	}
	resolver := NewResolver(topo, nil)

	winners := map[MatchKey]sharedtypes.TeamID{
		lower(1, 1): "T1",
		lower(2, 1): "T2",
	}

	_, _, err := resolver.Resolve(lower(2, 1), winners)
	if !errors.Is(err, ErrTopologyCycle) {
		t.Errorf("expected ErrTopologyCycle, got %v", err)
	}
}
