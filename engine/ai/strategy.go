package ai

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
)

// panicThreatLevel bypasses the normal strategy-change cooldown, a base
// under heavy attack switches to defend immediately (spec §4.9: "≥300
// ticks between switches except when panic overrides").
const panicThreatLevel = 70.0

// updateInvestment picks one of {economy, defense, balanced, warfare}
// from credits, refinery count, harvester ratio, and threatLevel (spec
// §4.9). No cooldown applies to investment, only to strategy.
func updateInvestment(ctrl *Controller, player *core.Player, personality *ruleset.AIPersonality) {
	switch {
	case ctrl.ThreatLevel >= panicThreatLevel:
		ctrl.Investment = InvestDefense
	case player.Credits < personality.CreditBuffer:
		ctrl.Investment = InvestEconomy
	case ctrl.ThreatLevel >= 35:
		ctrl.Investment = InvestBalanced
	default:
		ctrl.Investment = InvestWarfare
	}
}

// updateStrategy picks one of {expand, defend, attack, all_in} subject to
// a 300-tick cooldown, bypassed when threatLevel panics (spec §4.9).
func updateStrategy(ctrl *Controller, player *core.Player, tick uint64) {
	panic := ctrl.ThreatLevel >= panicThreatLevel
	if !panic && tick < ctrl.LastStrategyChange+strategyChangeCooldown {
		return
	}

	var next Strategy
	switch {
	case player.Credits <= 0 && ctrl.ThreatLevel >= panicThreatLevel:
		next = StrategyAllIn
	case panic:
		next = StrategyDefend
	case ctrl.Investment == InvestWarfare:
		next = StrategyAttack
	default:
		next = StrategyExpand
	}

	if next != ctrl.Strategy {
		ctrl.Strategy = next
		ctrl.LastStrategyChange = tick
	}
}
