package sim

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/systems"
)

// enforceElimination implements spec §2 stage 1: a player with no
// production base and no recoverable MCV is doomed, cancel its queues
// (refunding invested credits), destroy every remaining unit/building it
// owns (spec §8 S6: "all of Player 0's remaining units become dead"), and
// mark it eliminated so later stages skip it (production, AI) and
// win-condition checks can fire.
func enforceElimination(w *core.World, rules *ruleset.Ruleset, players *core.PlayerManager) {
	for _, player := range players.Players {
		if player.Eliminated {
			continue
		}
		if hasProductionBase(w, rules, player.ID) || hasRecoverableMCV(w, rules, player.ID) {
			continue
		}
		for cat := core.ProductionCategory(0); cat < 4; cat++ {
			systems.CancelBuild(player, cat)
		}
		destroyAllOwned(w, player.ID)
		player.Eliminated = true
	}
}

// destroyAllOwned marks every live entity a player owns for removal. Used
// only at elimination: a doomed player's remaining units don't linger on
// the map after its last base is gone.
func destroyAllOwned(w *core.World, playerID int) {
	for _, id := range w.Query(core.CompHeader) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || w.Pending(id) || hdr.OwnerPlayerID != playerID {
			continue
		}
		hdr.HP = 0
		w.Destroy(id)
	}
}

func hasProductionBase(w *core.World, rules *ruleset.Ruleset, playerID int) bool {
	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID || w.Pending(id) {
			continue
		}
		if def := rules.Building(hdr.RuleKey); def != nil && def.IsConYard {
			return true
		}
	}
	return false
}

func hasRecoverableMCV(w *core.World, rules *ruleset.Ruleset, playerID int) bool {
	for _, id := range w.Query(core.CompHeader) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID || w.Pending(id) {
			continue
		}
		if def := rules.Unit(hdr.RuleKey); def != nil && def.IsMCV {
			return true
		}
	}
	return false
}
