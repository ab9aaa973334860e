package systems

import (
	"math"
	"sort"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// oreSearchRadius bounds the idle-state ore search (spec §4.5: "acquire
// nearest reachable ore within a bounded search radius"). It isn't one of
// the named tunables, so it lives here rather than in ruleset.Tunables.
const oreSearchRadius = 700.0

// threatSearchRadius is how far a harvester looks for enemies before
// deciding it is under threat (spec §4.5's flee override).
const threatSearchRadius = 180.0

// HarvesterSystem drives the gather/dock FSM (spec §4.5): idle, seeking,
// harvesting, returning, docked, plus the cross-cutting flee override.
type HarvesterSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Bus     *core.EventBus
}

func (s *HarvesterSystem) Update(w *core.World, scratch *spatial.Scratch, tick uint64) {
	ids := w.Query(core.CompHeader, core.CompMovement, core.CompHarvester)

	claims := s.resolveOreClaims(w, scratch, ids)
	queues := s.rankDockQueues(w, ids)

	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		mov := w.Get(id, core.CompMovement).(*core.Movement)
		harv := w.Get(id, core.CompHarvester).(*core.Harvester)
		if hdr.Dead() || harv.ManualMode {
			continue
		}

		switch harv.State {
		case core.HarvIdle:
			if target, ok := claims[id]; ok {
				harv.ResourceTarget = target
				harv.BestDistToOre = math.MaxFloat64
				harv.GiveUpCounter = 0
				harv.HarvestAttempts = 0
				harv.State = core.HarvSeeking
			}

		case core.HarvSeeking:
			s.updateSeeking(w, hdr, mov, harv)

		case core.HarvHarvesting:
			s.updateHarvesting(w, hdr, harv)

		case core.HarvReturning:
			s.updateReturning(w, id, hdr, mov, harv, queues)

		case core.HarvDocked:
			if player := s.Players.GetPlayer(hdr.OwnerPlayerID); player != nil {
				player.Credits += harv.Cargo
				s.Bus.Emit(core.Event{Type: core.EvtResourceHarvested, Tick: tick, Payload: harv.Cargo})
			}
			harv.Cargo = 0
			harv.ResourceTarget = core.ZeroID
			harv.BaseTarget = core.ZeroID
			mov.MoveTarget = nil
			harv.State = core.HarvIdle
		}

		s.applyFleeOverride(w, scratch, hdr, mov, harv, tick)
	}
}

// resolveOreClaims implements the idle-state acquisition plus open question
// 3's tie-break: when two idle harvesters would claim the same ore this
// tick, only the lexicographically smallest id wins it. The loser simply
// proposes again next tick, by when the winner has left idle.
func (s *HarvesterSystem) resolveOreClaims(w *core.World, scratch *spatial.Scratch, ids []core.EntityID) map[core.EntityID]core.EntityID {
	winnerOf := make(map[core.EntityID]core.EntityID)
	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		harv := w.Get(id, core.CompHarvester).(*core.Harvester)
		if hdr.Dead() || harv.ManualMode || harv.State != core.HarvIdle {
			continue
		}
		ore, ok := s.nearestOre(w, scratch, hdr, harv)
		if !ok {
			continue
		}
		if cur, exists := winnerOf[ore]; !exists || id.Less(cur) {
			winnerOf[ore] = id
		}
	}

	claims := make(map[core.EntityID]core.EntityID, len(winnerOf))
	for ore, harvester := range winnerOf {
		claims[harvester] = ore
	}
	return claims
}

func (s *HarvesterSystem) nearestOre(w *core.World, scratch *spatial.Scratch, hdr *core.Header, harv *core.Harvester) (core.EntityID, bool) {
	return scratch.Hash.FindNearest(hdr.Pos.X, hdr.Pos.Y, oreSearchRadius, func(cid core.EntityID) bool {
		if cid == harv.BlockedOreID || w.Kind(cid) != core.KindResource || w.Pending(cid) {
			return false
		}
		oreHdr, ok := w.Get(cid, core.CompHeader).(*core.Header)
		return ok && !oreHdr.Dead()
	})
}

func (s *HarvesterSystem) updateSeeking(w *core.World, hdr *core.Header, mov *core.Movement, harv *core.Harvester) {
	oreHdr, ok := w.Get(harv.ResourceTarget, core.CompHeader).(*core.Header)
	if !ok || oreHdr.Dead() || w.Pending(harv.ResourceTarget) {
		harv.BlockedOreID = harv.ResourceTarget
		harv.ResourceTarget = core.ZeroID
		harv.State = core.HarvIdle
		return
	}

	mov.MoveTarget = &oreHdr.Pos
	dist := hdr.Pos.DistanceTo(oreHdr.Pos)
	tune := s.Rules.Tune

	if dist <= tune.HarvestRadius {
		mov.MoveTarget = nil
		harv.State = core.HarvHarvesting
		harv.HarvestAttempts = 0
		return
	}

	if dist < harv.BestDistToOre {
		harv.BestDistToOre = dist
		harv.GiveUpCounter = 0
	} else {
		harv.GiveUpCounter++
	}
	if harv.GiveUpCounter >= tune.GiveUpTicks {
		harv.BlockedOreID = harv.ResourceTarget
		harv.ResourceTarget = core.ZeroID
		harv.State = core.HarvIdle
	}
}

func (s *HarvesterSystem) updateHarvesting(w *core.World, hdr *core.Header, harv *core.Harvester) {
	oreHdr, ok := w.Get(harv.ResourceTarget, core.CompHeader).(*core.Header)
	if !ok || oreHdr.Dead() || w.Pending(harv.ResourceTarget) {
		harv.ResourceTarget = core.ZeroID
		if harv.Cargo > 0 {
			harv.State = core.HarvReturning
			harv.BaseTarget = core.ZeroID
		} else {
			harv.State = core.HarvIdle
		}
		return
	}

	rate := 1
	if unitDef := s.Rules.Unit(hdr.RuleKey); unitDef != nil && unitDef.HarvestRate > 0 {
		rate = unitDef.HarvestRate
	}
	if rate > oreHdr.HP {
		rate = oreHdr.HP
	}
	if remaining := harv.Capacity - harv.Cargo; rate > remaining {
		rate = remaining
	}
	harv.Cargo += rate
	oreHdr.HP -= rate
	harv.HarvestAttempts++

	if oreHdr.HP <= 0 {
		w.Destroy(harv.ResourceTarget)
	}
	if harv.Cargo >= harv.Capacity {
		harv.ResourceTarget = core.ZeroID
		harv.State = core.HarvReturning
		harv.BaseTarget = core.ZeroID
	}
}

func (s *HarvesterSystem) updateReturning(w *core.World, id core.EntityID, hdr *core.Header, mov *core.Movement, harv *core.Harvester, queues map[core.EntityID][]core.EntityID) {
	if harv.BaseTarget.IsZero() || !w.Alive(harv.BaseTarget) || w.Pending(harv.BaseTarget) {
		refinery, ok := s.nearestRefinery(w, hdr)
		if !ok {
			mov.MoveTarget = nil
			return
		}
		harv.BaseTarget = refinery
	}

	refHdr, ok := w.Get(harv.BaseTarget, core.CompHeader).(*core.Header)
	if !ok || refHdr.Dead() {
		harv.BaseTarget = core.ZeroID
		return
	}
	refDef := s.Rules.Building(refHdr.RuleKey)
	dock := refHdr.Pos
	if refDef != nil {
		dock = dock.Add(refDef.DockOffset)
	}
	harv.DockPos = dock

	dest := s.queuePosition(id, refHdr, dock, queues[harv.BaseTarget], s.Rules.Tune.DockStandoffRadius)
	mov.MoveTarget = &dest

	if hdr.Pos.DistanceTo(dock) <= s.Rules.Tune.HarvestRadius {
		harv.State = core.HarvDocked
		mov.MoveTarget = nil
	}
}

// queuePosition implements spec §4.4's "queueing at shared destinations":
// the head of a returning group (nearest the dock) is sent straight to the
// dock; everyone behind it holds along the approach line at multiples of
// the stand-off radius so a unit can never freeze the queue by stopping
// short of it.
func (s *HarvesterSystem) queuePosition(id core.EntityID, refHdr *core.Header, dock core.Vec2, queue []core.EntityID, standoff float64) core.Vec2 {
	rank := 0
	for i, qid := range queue {
		if qid == id {
			rank = i
			break
		}
	}
	if rank == 0 {
		return dock
	}
	approach := dock.Sub(refHdr.Pos).Normalize()
	if approach.LengthSq() < 1e-9 {
		approach = core.Vec2{X: 1, Y: 0}
	}
	return dock.Add(approach.Scale(standoff * float64(rank)))
}

// rankDockQueues groups returning harvesters by target refinery and orders
// each group nearest-dock-first (spec §4.4). Only harvesters this system
// itself is steering toward a dock participate, a harvester under a
// conflicting manual moveTarget never reaches HarvReturning's dock logic
// in the first place, so it can't freeze the line.
func (s *HarvesterSystem) rankDockQueues(w *core.World, ids []core.EntityID) map[core.EntityID][]core.EntityID {
	groups := make(map[core.EntityID][]core.EntityID)
	dist := make(map[core.EntityID]float64)

	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		harv := w.Get(id, core.CompHarvester).(*core.Harvester)
		if hdr.Dead() || harv.ManualMode || harv.State != core.HarvReturning || harv.BaseTarget.IsZero() {
			continue
		}
		groups[harv.BaseTarget] = append(groups[harv.BaseTarget], id)
		dist[id] = hdr.Pos.DistanceTo(harv.DockPos)
	}
	for base, members := range groups {
		sort.Slice(members, func(i, j int) bool { return dist[members[i]] < dist[members[j]] })
		groups[base] = members
	}
	return groups
}

func (s *HarvesterSystem) nearestRefinery(w *core.World, hdr *core.Header) (core.EntityID, bool) {
	best := core.ZeroID
	bestDist := math.MaxFloat64
	found := false
	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		bHdr := w.Get(id, core.CompHeader).(*core.Header)
		if bHdr.Dead() || bHdr.OwnerPlayerID != hdr.OwnerPlayerID || w.Pending(id) {
			continue
		}
		def := s.Rules.Building(bHdr.RuleKey)
		if def == nil || !def.IsRefinery {
			continue
		}
		if d := hdr.Pos.DistanceTo(bHdr.Pos); d < bestDist {
			bestDist = d
			best = id
			found = true
		}
	}
	return best, found
}

// applyFleeOverride is the cross-cutting rule of spec §4.5: under threat,
// override moveTarget with a fallback away from the nearest enemy, unless
// the unit is a full-cargo harvester already returning (those finish
// docking once safe).
func (s *HarvesterSystem) applyFleeOverride(w *core.World, scratch *spatial.Scratch, hdr *core.Header, mov *core.Movement, harv *core.Harvester, tick uint64) {
	if harv.State == core.HarvReturning && harv.Cargo >= harv.Capacity {
		return
	}
	if harv.FleeCooldownTil > tick {
		return
	}

	enemies := scratch.Hash.QueryEnemiesInRadius(hdr.Pos.X, hdr.Pos.Y, threatSearchRadius, hdr.OwnerPlayerID,
		func(eid core.EntityID) int {
			if eHdr, ok := w.Get(eid, core.CompHeader).(*core.Header); ok {
				return eHdr.OwnerPlayerID
			}
			return core.NeutralPlayer
		}, s.Players.AreAllies)
	if len(enemies) == 0 {
		return
	}

	nearest := enemies[0]
	bestDist := math.MaxFloat64
	for _, eid := range enemies {
		eHdr, ok := w.Get(eid, core.CompHeader).(*core.Header)
		if !ok {
			continue
		}
		if d := hdr.Pos.DistanceTo(eHdr.Pos); d < bestDist {
			bestDist = d
			nearest = eid
		}
	}

	away := core.Vec2{X: 1, Y: 0}
	if eHdr, ok := w.Get(nearest, core.CompHeader).(*core.Header); ok {
		away = hdr.Pos.Sub(eHdr.Pos).Normalize()
	}
	if away.LengthSq() < 1e-9 {
		away = core.Vec2{X: 1, Y: 0}
	}
	fallback := hdr.Pos.Add(away.Scale(threatSearchRadius))
	mov.MoveTarget = &fallback
	harv.FleeCooldownTil = tick + uint64(s.Rules.Tune.FleeTimeoutTicks)
}
