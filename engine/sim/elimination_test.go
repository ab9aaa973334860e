package sim

import (
	"testing"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
)

func spawnBuilding(w *core.World, owner int, key string, hp int) core.EntityID {
	id := w.Spawn(core.KindBuilding)
	w.Attach(id, &core.Header{OwnerPlayerID: owner, RuleKey: key, HP: hp, MaxHP: hp})
	w.Attach(id, &core.BuildingState{})
	return id
}

func spawnUnit(w *core.World, owner int, key string, hp int) core.EntityID {
	id := w.Spawn(core.KindUnit)
	w.Attach(id, &core.Header{OwnerPlayerID: owner, RuleKey: key, HP: hp, MaxHP: hp})
	return id
}

// S6, a player with no building and no MCV, only a combat unit, is
// eliminated by enforceElimination and loses that unit.
func TestEnforceEliminationNoBaseNoMCV(t *testing.T) {
	rules := ruleset.NewDefaultRuleset()
	w := core.NewWorld()
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 1000, false)
	players.AddPlayer(p0)

	// no buildings, no MCV at all for player 0
	unit := spawnUnit(w, 0, "rifle_infantry", 125)

	enforceElimination(w, rules, players)

	if !p0.Eliminated {
		t.Fatalf("player with no conyard and no MCV should be eliminated")
	}
	// S6: all of the eliminated player's remaining units become dead.
	hdr := w.Get(unit, core.CompHeader).(*core.Header)
	if !hdr.Dead() {
		t.Fatalf("eliminated player's surviving unit should be dead")
	}
}

func TestEnforceEliminationSurvivesWithConYard(t *testing.T) {
	rules := ruleset.NewDefaultRuleset()
	w := core.NewWorld()
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 1000, false)
	players.AddPlayer(p0)

	spawnBuilding(w, 0, "construction_yard", 1000)

	enforceElimination(w, rules, players)

	if p0.Eliminated {
		t.Fatalf("player with a live construction yard should not be eliminated")
	}
}

func TestEnforceEliminationSurvivesWithMCV(t *testing.T) {
	rules := ruleset.NewDefaultRuleset()
	w := core.NewWorld()
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 1000, false)
	players.AddPlayer(p0)

	spawnUnit(w, 0, "mcv", 1000)

	enforceElimination(w, rules, players)

	if p0.Eliminated {
		t.Fatalf("player with a recoverable MCV should not be eliminated")
	}
}

func TestEnforceEliminationRefundsInvestedCredits(t *testing.T) {
	rules := ruleset.NewDefaultRuleset()
	w := core.NewWorld()
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 100, false)
	players.AddPlayer(p0)
	p0.Queue(core.CatInfantry).Current = "rifle_infantry"
	p0.Queue(core.CatInfantry).Invested = 50

	enforceElimination(w, rules, players)

	if !p0.Eliminated {
		t.Fatalf("expected elimination")
	}
	if p0.Credits != 150 {
		t.Fatalf("credits after elimination refund = %d, want 150", p0.Credits)
	}
	if p0.Queue(core.CatInfantry).Current != "" {
		t.Fatalf("queue should be cleared on elimination")
	}
}
