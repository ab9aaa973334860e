package ai

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// baseThreatRadius is how far from an owned building/harvester an enemy
// presence counts toward threatLevel (spec §4.9 "counts enemies near base").
const baseThreatRadius = 500.0

// threatPerEnemy is how many threatLevel points one nearby enemy combatant
// contributes before clamping to [0,100].
const threatPerEnemy = 12.0

// assessThreat implements spec §4.9's threat assessment submodule: it
// scans around every owned building and harvester for enemy combat units,
// standing in for a dedicated attacker-id history with a live positional
// scan (cheaper, and re-derivable every think-tick like the rest of the
// per-tick spatial state).
func assessThreat(w *core.World, scratch *spatial.Scratch, players *core.PlayerManager, rules *ruleset.Ruleset, playerID int) float64 {
	ownerOf := func(id core.EntityID) int {
		if hdr, ok := w.Get(id, core.CompHeader).(*core.Header); ok {
			return hdr.OwnerPlayerID
		}
		return core.NeutralPlayer
	}

	seen := make(map[core.EntityID]bool)
	total := 0.0
	score := func(pos core.Vec2) {
		for _, eid := range scratch.Hash.QueryEnemiesInRadius(pos.X, pos.Y, baseThreatRadius, playerID, ownerOf, players.AreAllies) {
			if seen[eid] || w.Kind(eid) != core.KindUnit {
				continue
			}
			if _, ok := w.Get(eid, core.CompCombat).(*core.Combat); !ok {
				continue
			}
			seen[eid] = true
			total += threatPerEnemy
		}
	}

	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID {
			continue
		}
		score(hdr.Pos)
	}
	for _, id := range w.Query(core.CompHeader, core.CompHarvester) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID {
			continue
		}
		score(hdr.Pos)
	}

	if total > 100 {
		total = 100
	}
	return total
}
