package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// rigWellSearchRadius bounds how far a deployed induction rig reaches to
// find the well it is anchored to.
const rigWellSearchRadius = 250.0

// rigBaseRate is the credits per tick a rig draws from its well at full
// efficiency, before InductionEfficiency is applied (spec §4.8).
const rigBaseRate = 2.0

// InductionSystem pays out passive income for deployed induction rigs,
// the no-harvester-traffic alternative income source (spec §4.8).
type InductionSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Bus     *core.EventBus
}

func (s *InductionSystem) Update(w *core.World, scratch *spatial.Scratch, tick uint64) {
	for _, id := range w.Query(core.CompHeader, core.CompInductionRig) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		rig := w.Get(id, core.CompInductionRig).(*core.InductionRig)
		if hdr.Dead() || rig.WellID.IsZero() {
			continue
		}

		if !s.wellStillLive(w, rig.WellID) {
			well, ok := s.nearestWell(w, scratch, hdr.Pos)
			if !ok {
				continue
			}
			rig.WellID = well
		}

		player := s.Players.GetPlayer(hdr.OwnerPlayerID)
		if player == nil {
			continue
		}

		rig.AccumulatedFractional += rigBaseRate * s.Rules.Tune.InductionEfficiency
		whole := int(rig.AccumulatedFractional)
		if whole > 0 {
			player.Credits += whole
			rig.AccumulatedFractional -= float64(whole)
			s.Bus.Emit(core.Event{Type: core.EvtResourceHarvested, Tick: tick, Payload: whole})
		}
	}
}

func (s *InductionSystem) wellStillLive(w *core.World, id core.EntityID) bool {
	if id.IsZero() {
		return false
	}
	_, ok := w.Get(id, core.CompWell).(*core.Well)
	return ok && !w.Pending(id)
}

func (s *InductionSystem) nearestWell(w *core.World, scratch *spatial.Scratch, pos core.Vec2) (core.EntityID, bool) {
	return scratch.Hash.FindNearest(pos.X, pos.Y, rigWellSearchRadius, func(id core.EntityID) bool {
		return w.Kind(id) == core.KindWell && !w.Pending(id)
	})
}
