package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
)

// RepairSystem drains credits and heals buildings under active repair
// (spec §4.7's START_REPAIR tick behavior, §2 stage 7).
type RepairSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
}

func (s *RepairSystem) Update(w *core.World) {
	ids := w.Query(core.CompHeader, core.CompBuildingState)
	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		bs := w.Get(id, core.CompBuildingState).(*core.BuildingState)
		if hdr.Dead() || !bs.IsRepairing {
			continue
		}
		if hdr.HP >= hdr.MaxHP {
			bs.IsRepairing = false
			continue
		}
		def := s.Rules.Building(hdr.RuleKey)
		player := s.Players.GetPlayer(hdr.OwnerPlayerID)
		if def == nil || player == nil || def.RepairDurationTicks <= 0 {
			bs.IsRepairing = false
			continue
		}

		tickCost := int(def.RepairCostFraction * float64(def.Cost) / float64(def.RepairDurationTicks))
		if tickCost < 1 {
			tickCost = 1
		}
		if player.Credits < tickCost {
			bs.IsRepairing = false
			continue
		}

		heal := hdr.MaxHP / def.RepairDurationTicks
		if heal < 1 {
			heal = 1
		}
		hdr.HP += heal
		if hdr.HP > hdr.MaxHP {
			hdr.HP = hdr.MaxHP
		}
		player.Credits -= tickCost
	}
}
