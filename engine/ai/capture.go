package ai

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
	"github.com/egeozcan/unnamed-rts-sub001/engine/systems"
)

// maxCaptureEngineers bounds how many engineers an AI keeps around purely
// for opportunistic capture (spec §4.9: "train up to 2 engineers").
const maxCaptureEngineers = 2

// captureDefenseRadius is how close an enemy combat unit or defense
// building must be to a target to count as "defended".
const captureDefenseRadius = 300.0

// evaluateCaptures implements spec §4.9's capture-opportunity submodule:
// if a valuable enemy building is undefended, queue an engineer to go take
// it (actually dispatching the engineer is a player/AI movement command
// issued once it's produced, outside this economy-only pass).
func evaluateCaptures(w *core.World, scratch *spatial.Scratch, rules *ruleset.Ruleset, players *core.PlayerManager, player *core.Player, ctrl *Controller) {
	if !hasCaptureOpportunity(w, scratch, rules, players, player.ID) {
		return
	}

	owned := 0
	for _, id := range w.Query(core.CompHeader, core.CompEngineer) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if !hdr.Dead() && hdr.OwnerPlayerID == player.ID {
			owned++
		}
	}
	if owned >= maxCaptureEngineers {
		return
	}
	if q := player.Queue(core.CatInfantry); q.Current == "engineer" {
		return
	}

	def := rules.Unit("engineer")
	if def == nil || player.Credits < def.Cost {
		return
	}
	systems.StartBuild(player, core.CatInfantry, "engineer")
}

// hasCaptureOpportunity reports whether any live enemy building sits with
// no enemy combatant or defense structure within captureDefenseRadius.
func hasCaptureOpportunity(w *core.World, scratch *spatial.Scratch, rules *ruleset.Ruleset, players *core.PlayerManager, playerID int) bool {
	ownerOf := func(id core.EntityID) int {
		if hdr, ok := w.Get(id, core.CompHeader).(*core.Header); ok {
			return hdr.OwnerPlayerID
		}
		return core.NeutralPlayer
	}

	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID == playerID || hdr.OwnerPlayerID == core.NeutralPlayer {
			continue
		}
		if players.AreAllies(hdr.OwnerPlayerID, playerID) {
			continue
		}
		def := rules.Building(hdr.RuleKey)
		if def == nil || def.IsDefense {
			continue
		}
		defended := false
		for _, eid := range scratch.Hash.QueryCircle(hdr.Pos.X, hdr.Pos.Y, captureDefenseRadius) {
			owner := ownerOf(eid)
			if owner != core.NeutralPlayer && !players.AreAllies(owner, hdr.OwnerPlayerID) {
				continue // not a friend of the target building, irrelevant
			}
			if owner != core.NeutralPlayer {
				eHdr, ok := w.Get(eid, core.CompHeader).(*core.Header)
				if !ok || eHdr.Dead() || eHdr.Pos.DistanceTo(hdr.Pos) > captureDefenseRadius {
					continue
				}
				if _, ok := w.Get(eid, core.CompCombat).(*core.Combat); ok {
					defended = true
					break
				}
			}
		}
		if !defended {
			return true
		}
	}
	return false
}
