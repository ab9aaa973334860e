package sim

import (
	"testing"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
)

func newTestState(t *testing.T, players *core.PlayerManager) *State {
	t.Helper()
	rules := ruleset.NewDefaultRuleset()
	return NewState(rules, players, Config{
		MapWidth: 2048, MapHeight: 2048, ExpectedEntities: 64,
		PathCacheTTLTicks: rules.Tune.PathCacheTTLTicks,
	})
}

// S6, selling a player's last building with no MCV standing by ends the
// match in the other player's favor.
func TestStepSellLastBuildingEndsGame(t *testing.T) {
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 0, false)
	p1 := core.NewPlayer(1, 0, false)
	players.AddPlayer(p0)
	players.AddPlayer(p1)

	state := newTestState(t, players)
	conyard := spawnBuilding(state.World, 0, "construction_yard", 1000)
	state.World.Get(conyard, core.CompBuildingState).(*core.BuildingState).PlacedTick = 0
	survivor := spawnUnit(state.World, 0, "rifle_infantry", 125)
	spawnBuilding(state.World, 1, "construction_yard", 1000)

	Step(state, SellBuilding{PlayerID: 0, BuildingID: conyard})
	Step(state, Tick{})

	if !state.GameOver {
		t.Fatalf("expected game over after last building sold with no MCV")
	}
	if state.WinnerTeam != p1.TeamID {
		t.Fatalf("winner team = %d, want %d", state.WinnerTeam, p1.TeamID)
	}
	if !p0.Eliminated {
		t.Fatalf("player who sold their last building should be eliminated")
	}
	// S6: all of Player 0's remaining units become dead.
	hdr := state.World.Get(survivor, core.CompHeader).(*core.Header)
	if !hdr.Dead() {
		t.Fatalf("player 0's remaining unit should be dead after elimination")
	}
}

func TestStepSellBuildingIgnoresWrongOwner(t *testing.T) {
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 0, false)
	players.AddPlayer(p0)

	state := newTestState(t, players)
	conyard := spawnBuilding(state.World, 0, "construction_yard", 1000)

	// player 1 doesn't own this building: sell must be a silent no-op
	Step(state, SellBuilding{PlayerID: 1, BuildingID: conyard})

	hdr := state.World.Get(conyard, core.CompHeader).(*core.Header)
	if hdr.Dead() {
		t.Fatalf("building should survive a sell command from a non-owner")
	}
}

func TestStepStartBuildThenCancelRefundsCredits(t *testing.T) {
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 1000, false)
	players.AddPlayer(p0)
	state := newTestState(t, players)

	Step(state, StartBuild{PlayerID: 0, Category: core.CatInfantry, Key: "rifle_infantry"})
	if p0.Queue(core.CatInfantry).Current != "rifle_infantry" {
		t.Fatalf("expected rifle_infantry queued as current")
	}

	p0.Queue(core.CatInfantry).Invested = 80
	p0.Credits = 920

	Step(state, CancelBuild{PlayerID: 0, Category: core.CatInfantry})
	if p0.Credits != 1000 {
		t.Fatalf("credits after cancel = %d, want 1000 (full refund)", p0.Credits)
	}
	if p0.Queue(core.CatInfantry).Current != "" {
		t.Fatalf("queue should be empty after cancel with nothing backed up")
	}
}
