package fantasyservice

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

func carryPlayer() *fantasydb.Player {
	return &fantasydb.Player{ID: "p1", Name: "Ame", TeamID: "T1", Position: sharedtypes.RoleCarry}
}

func TestSaveRosterSlotFirstFillSeedsAssignments(t *testing.T) {
	repo := NewFakeFantasyRepository()
	repo.GetPlayerFunc = func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*fantasydb.Player, error) {
		return carryPlayer(), nil
	}
	roller := &FakeInitialRoller{}
	s := newTestService(repo, &FakeEventBus{}, flags.Static{Roster: true}, nil, roller)

	res, err := s.SaveRosterSlot(context.Background(), "alice", sharedtypes.RoleCarry, "p1")
	if err != nil {
		t.Fatalf("SaveRosterSlot: %v", err)
	}
	if res.Success == nil {
		t.Fatalf("expected success, got %+v", res.Failure)
	}
	if res.Success.Players[sharedtypes.RoleCarry] != "p1" {
		t.Errorf("carry slot = %q, want p1", res.Success.Players[sharedtypes.RoleCarry])
	}
	if res.Success.Complete {
		t.Error("one filled role should not mark the roster complete")
	}

	if len(roller.Seeded) != 1 || roller.Seeded[0] != (SeededRole{UserID: "alice", Role: sharedtypes.RoleCarry}) {
		t.Errorf("expected one seed for alice/carry, got %+v", roller.Seeded)
	}
}

func TestSaveRosterSlotRefillDoesNotSeed(t *testing.T) {
	repo := NewFakeFantasyRepository()
	repo.GetPlayerFunc = func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*fantasydb.Player, error) {
		return &fantasydb.Player{ID: playerID, Position: sharedtypes.RoleCarry}, nil
	}
	repo.GetRosterFunc = func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*fantasydb.Roster, error) {
		return &fantasydb.Roster{UserID: userID, CarryID: "p1"}, nil
	}
	roller := &FakeInitialRoller{}
	s := newTestService(repo, &FakeEventBus{}, flags.Static{Roster: true}, nil, roller)

	res, err := s.SaveRosterSlot(context.Background(), "alice", sharedtypes.RoleCarry, "p9")
	if err != nil {
		t.Fatalf("SaveRosterSlot: %v", err)
	}
	if res.Success == nil {
		t.Fatalf("expected success, got %+v", res.Failure)
	}
	if len(roller.Seeded) != 0 {
		t.Errorf("swapping an already filled role must not seed, got %+v", roller.Seeded)
	}
	if repo.LastUpsertedRoster.CarryID != "p9" {
		t.Errorf("carry = %q, want p9", repo.LastUpsertedRoster.CarryID)
	}
}

func TestSaveRosterSlotLocked(t *testing.T) {
	repo := NewFakeFantasyRepository()
	s := newTestService(repo, &FakeEventBus{}, flags.Static{Roster: false}, nil, &FakeInitialRoller{})

	res, err := s.SaveRosterSlot(context.Background(), "alice", sharedtypes.RoleCarry, "p1")
	if err != nil {
		t.Fatalf("SaveRosterSlot: %v", err)
	}
	if res.Failure == nil || res.Failure.Reason != ReasonRosterLocked {
		t.Fatalf("expected %s failure, got %+v", ReasonRosterLocked, res)
	}
	if len(repo.Trace()) > 0 {
		t.Errorf("repo should not be touched while locked, trace %v", repo.Trace())
	}
}

func TestSaveRosterSlotWrongRole(t *testing.T) {
	repo := NewFakeFantasyRepository()
	repo.GetPlayerFunc = func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*fantasydb.Player, error) {
		return &fantasydb.Player{ID: playerID, Position: sharedtypes.RoleMid}, nil
	}
	roller := &FakeInitialRoller{}
	s := newTestService(repo, &FakeEventBus{}, flags.Static{Roster: true}, nil, roller)

	res, err := s.SaveRosterSlot(context.Background(), "alice", sharedtypes.RoleCarry, "p2")
	if err != nil {
		t.Fatalf("SaveRosterSlot: %v", err)
	}
	if res.Failure == nil || res.Failure.Reason != ReasonWrongRole {
		t.Fatalf("expected %s failure, got %+v", ReasonWrongRole, res)
	}
	if repo.LastUpsertedRoster != nil {
		t.Error("roster must not be written on role mismatch")
	}
	if len(roller.Seeded) != 0 {
		t.Error("no seed on failure")
	}
}

func TestSaveRosterSlotUnknownPlayer(t *testing.T) {
	repo := NewFakeFantasyRepository()
	s := newTestService(repo, &FakeEventBus{}, flags.Static{Roster: true}, nil, &FakeInitialRoller{})

	res, err := s.SaveRosterSlot(context.Background(), "alice", sharedtypes.RoleCarry, "ghost")
	if err != nil {
		t.Fatalf("SaveRosterSlot: %v", err)
	}
	if res.Failure == nil || res.Failure.Reason != ReasonUnknownPlayer {
		t.Fatalf("expected %s failure, got %+v", ReasonUnknownPlayer, res)
	}
}

func TestGetRosterNeverSaved(t *testing.T) {
	repo := NewFakeFantasyRepository()
	s := newTestService(repo, &FakeEventBus{}, flags.Static{}, nil, nil)

	res, err := s.GetRoster(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetRoster: %v", err)
	}
	if res.Success == nil {
		t.Fatalf("expected empty roster success, got %+v", res.Failure)
	}
	if len(res.Success.Players) != 0 || res.Success.Complete {
		t.Errorf("expected empty incomplete roster, got %+v", res.Success)
	}
}
