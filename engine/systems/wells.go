package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// orePerPile is how much ore a single spawned resource entity carries
// (Header.HP doubles as remaining ore, the same way a unit's Header.HP
// doubles as remaining hit points).
const orePerPile = 400

// oreClusterRadius bounds how far an existing ore pile near a well counts
// toward its currentOreCount.
const oreClusterRadius = 3

// WellSystem spawns ore adjacent to wells at a fixed interval (spec §4.8).
type WellSystem struct {
	Rules *ruleset.Ruleset
	Bus   *core.EventBus
}

func (s *WellSystem) Update(w *core.World, scratch *spatial.Scratch, tick uint64) {
	tune := s.Rules.Tune
	for _, id := range w.Query(core.CompHeader, core.CompWell) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		well := w.Get(id, core.CompWell).(*core.Well)
		if hdr.Dead() || tick < well.NextSpawnTick {
			continue
		}
		well.NextSpawnTick = tick + uint64(tune.WellSpawnPeriodTicks)

		well.CurrentOreCount = s.countNearbyOre(w, scratch, hdr.Pos)
		if well.CurrentOreCount >= tune.WellMaxOre {
			well.IsBlocked = false
			continue
		}

		spot, ok := s.freeNeighborTile(w, scratch, hdr.Pos, tune.TileSize)
		if !ok {
			well.IsBlocked = true
			continue
		}

		well.IsBlocked = false
		well.TotalSpawned++
		oreID := w.Spawn(core.KindResource)
		w.Attach(oreID, &core.Header{
			OwnerPlayerID: core.NeutralPlayer, RuleKey: "ore", Pos: spot,
			HP: orePerPile, MaxHP: orePerPile, CollisionR: tune.TileSize / 3,
		})
		s.Bus.Emit(core.Event{Type: core.EvtDecision, Tick: tick, Payload: oreID})
	}
}

func (s *WellSystem) countNearbyOre(w *core.World, scratch *spatial.Scratch, center core.Vec2) int {
	radius := oreClusterRadius * s.Rules.Tune.TileSize
	count := 0
	for _, id := range scratch.Hash.QueryCircle(center.X, center.Y, radius) {
		if w.Kind(id) != core.KindResource || w.Pending(id) {
			continue
		}
		if hdr, ok := w.Get(id, core.CompHeader).(*core.Header); ok && hdr.Pos.DistanceTo(center) <= radius {
			count++
		}
	}
	return count
}

// freeNeighborTile checks the 8 tiles surrounding the well for one clear of
// both collision and live units (spec §4.8).
func (s *WellSystem) freeNeighborTile(w *core.World, scratch *spatial.Scratch, center core.Vec2, tile float64) (core.Vec2, bool) {
	cx, cy := scratch.Collision.WorldToTile(center.X, center.Y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			tx, ty := cx+dx, cy+dy
			if scratch.Collision.Blocked(tx, ty) {
				continue
			}
			wx, wy := scratch.Collision.TileCenter(tx, ty)
			if _, occupied := scratch.Hash.FindNearest(wx, wy, tile/2, func(id core.EntityID) bool {
				return w.Kind(id) == core.KindUnit && !w.Pending(id)
			}); occupied {
				continue
			}
			return core.Vec2{X: wx, Y: wy}, true
		}
	}
	return core.Vec2{}, false
}
