package ai

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/systems"
)

const (
	emergencyCooldown = 120
	lastResortCooldown = 30
	allInCooldown       = 60

	emergencyCreditFloor  = 150
	lastResortCreditFloor = 0
)

// runEmergency implements spec §4.9's phased divestiture: normal
// emergency, last-resort, and all-in sell modules each gated by their own
// cooldown so selling never oscillates tick to tick.
func runEmergency(w *core.World, rules *ruleset.Ruleset, players *core.PlayerManager, player *core.Player, ctrl *Controller, tick uint64, bus *core.EventBus) {
	switch {
	case ctrl.Strategy == StrategyAllIn:
		if tick < ctrl.LastAllInTick+allInCooldown {
			return
		}
		if sellOneSurplus(w, rules, players, player, tick, bus) {
			ctrl.LastAllInTick = tick
		}
	case player.Credits <= lastResortCreditFloor && ctrl.ThreatLevel >= panicThreatLevel:
		if tick < ctrl.LastResortTick+lastResortCooldown {
			return
		}
		if sellOneSurplus(w, rules, players, player, tick, bus) {
			ctrl.LastResortTick = tick
		}
	case player.Credits < emergencyCreditFloor:
		if tick < ctrl.LastEmergencyTick+emergencyCooldown {
			return
		}
		if sellOneSurplus(w, rules, players, player, tick, bus) {
			ctrl.LastEmergencyTick = tick
		}
	}
}

// sellOneSurplus sells the cheapest sellable, non-conyard building the
// player owns past its grace period, conyards are never auto-sold, since
// losing one forfeits all further construction.
func sellOneSurplus(w *core.World, rules *ruleset.Ruleset, players *core.PlayerManager, player *core.Player, tick uint64, bus *core.EventBus) bool {
	best := core.ZeroID
	bestCost := -1
	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != player.ID || w.Pending(id) {
			continue
		}
		def := rules.Building(hdr.RuleKey)
		if def == nil || !def.Sellable || def.IsConYard {
			continue
		}
		bs := w.Get(id, core.CompBuildingState).(*core.BuildingState)
		if !bs.Mature(tick, rules.Tune.BuildingGracePeriod) {
			continue
		}
		if bestCost < 0 || def.Cost < bestCost {
			bestCost = def.Cost
			best = id
		}
	}
	if best.IsZero() {
		return false
	}
	systems.SellBuilding(w, rules, players, best, tick, bus)
	return true
}
