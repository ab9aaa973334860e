package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/pathfind"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// ProductionSystem advances each player's four queues (spec §4.7, §2 stage
// 2): progress and credits are debited only while a live producer exists
// and the player can afford this tick's fractional slice.
type ProductionSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Bus     *core.EventBus
}

func (s *ProductionSystem) Update(w *core.World, tick uint64) {
	for _, player := range s.Players.Players {
		if player.Eliminated {
			continue
		}
		for cat := core.ProductionCategory(0); cat < 4; cat++ {
			s.advance(w, player, player.Queue(cat), tick)
		}
	}
}

func (s *ProductionSystem) advance(w *core.World, player *core.Player, q *core.Queue, tick uint64) {
	if q.Current == "" {
		return
	}
	cost, buildTime := s.costAndTime(q.Current)
	if cost <= 0 || buildTime <= 0 {
		s.popQueue(q)
		return
	}
	producer, ok := s.findProducer(w, player.ID, q.Current)
	if !ok {
		return
	}

	progress := q.Progress + player.PowerFactor()/float64(buildTime)
	if progress > 1 {
		progress = 1
	}
	investedTarget := int(progress * float64(cost))
	debit := investedTarget - q.Invested
	if debit > 0 {
		if player.Credits < debit {
			return
		}
		player.Credits -= debit
	}
	q.Invested = investedTarget
	q.Progress = progress

	if q.Progress >= 1 {
		s.complete(w, player, q.Current, producer, tick)
		s.popQueue(q)
	}
}

func (s *ProductionSystem) popQueue(q *core.Queue) {
	q.Progress = 0
	q.Invested = 0
	if len(q.Queued) > 0 {
		q.Current = q.Queued[0]
		q.Queued = q.Queued[1:]
	} else {
		q.Current = ""
	}
}

func (s *ProductionSystem) costAndTime(key string) (int, int) {
	if u := s.Rules.Unit(key); u != nil {
		return u.Cost, u.BuildTimeTicks
	}
	if b := s.Rules.Building(key); b != nil {
		return b.Cost, b.BuildTimeTicks
	}
	return 0, 0
}

// findProducer locates a live, owned building whose CanProduce list names
// key, this doubles as "a live producer of that category" (spec line 57)
// since CanProduce is already partitioned by category in the ruleset.
func (s *ProductionSystem) findProducer(w *core.World, playerID int, key string) (core.EntityID, bool) {
	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID || w.Pending(id) {
			continue
		}
		def := s.Rules.Building(hdr.RuleKey)
		if def == nil {
			continue
		}
		for _, produced := range def.CanProduce {
			if produced == key {
				return id, true
			}
		}
	}
	return core.ZeroID, false
}

func (s *ProductionSystem) complete(w *core.World, player *core.Player, key string, producer core.EntityID, tick uint64) {
	if _, isBuilding := s.Rules.Buildings[key]; isBuilding {
		player.ReadyToPlaceKey = key
		s.Bus.Emit(core.Event{Type: core.EvtDecision, Tick: tick, Payload: key})
		return
	}

	pHdr := w.Get(producer, core.CompHeader).(*core.Header)
	spawnPos := pHdr.Pos.Add(core.Vec2{X: pHdr.BoundW/2 + 40, Y: pHdr.BoundH / 2})
	uid := SpawnUnit(w, s.Rules, key, player.ID, spawnPos)
	if uid.IsZero() {
		return
	}

	if def := s.Rules.Unit(key); def != nil && def.IsAirUnit {
		s.dockAtBase(w, producer, uid, spawnPos)
	} else if bs, ok := w.Get(producer, core.CompBuildingState).(*core.BuildingState); ok && bs.RallyPoint != nil {
		if mov, ok := w.Get(uid, core.CompMovement).(*core.Movement); ok {
			dest := *bs.RallyPoint
			mov.FinalDest = &dest
		}
	}
	s.Bus.Emit(core.Event{Type: core.EvtUnitCreated, Tick: tick, Payload: uid})
}

// dockAtBase assigns a freshly produced harrier to its home base's first
// open slot and parks it there (spec §4.8: six slots indexed 0..5).
func (s *ProductionSystem) dockAtBase(w *core.World, baseID, unitID core.EntityID, pos core.Vec2) {
	base, ok := w.Get(baseID, core.CompAirBase).(*core.AirBase)
	au, aok := w.Get(unitID, core.CompAirUnit).(*core.AirUnit)
	if !ok || !aok {
		return
	}
	for i, occ := range base.Slots {
		if occ.IsZero() {
			base.Slots[i] = unitID
			au.HomeBaseID = baseID
			au.DockedSlot = i
			if hdr, ok := w.Get(unitID, core.CompHeader).(*core.Header); ok {
				hdr.Pos = pos
			}
			return
		}
	}
}

// collisionRadius gives each move class a sensible footprint when the
// ruleset doesn't spell one out per unit (spec leaves exact collision
// radii to implementers, §9 open question 1's "vary across call sites").
func collisionRadius(mc core.MoveClass) float64 {
	switch mc {
	case core.MoveInfantry:
		return 10
	case core.MoveAir:
		return 14
	default:
		return 18
	}
}

// SpawnUnit creates a live unit entity from its ruleset definition,
// attaching only the capability components its UnitDef calls for (spec
// §9's tagged-variant design: a plain rifleman never carries a Harvester).
func SpawnUnit(w *core.World, rules *ruleset.Ruleset, key string, ownerID int, pos core.Vec2) core.EntityID {
	def := rules.Unit(key)
	if def == nil {
		return core.ZeroID
	}
	r := collisionRadius(def.MoveClass)

	id := w.Spawn(core.KindUnit)
	w.Attach(id, &core.Header{
		OwnerPlayerID: ownerID, RuleKey: key, Pos: pos,
		HP: def.HP, MaxHP: def.HP, BoundW: r * 2, BoundH: r * 2, CollisionR: r,
	})
	w.Attach(id, &core.Movement{Speed: def.Speed, Accel: def.Accel, MoveType: def.MoveClass})

	if def.WeaponKey != "" {
		w.Attach(id, &core.Combat{WeaponKey: def.WeaponKey, Stance: core.StanceDefensive, StanceHome: pos})
	}
	if def.IsHarvester {
		w.Attach(id, &core.Harvester{Capacity: def.HarvesterCapacity})
	}
	if def.IsEngineer {
		w.Attach(id, &core.Engineer{})
	}
	if def.IsAirUnit {
		w.Attach(id, &core.AirUnit{Ammo: def.AirAmmoMax, MaxAmmo: def.AirAmmoMax, FSMState: core.AirDocked, DockedSlot: -1})
	}
	if def.IsDemoTruck {
		w.Attach(id, &core.DemoTruck{})
	}
	if def.IsInductionRig {
		w.Attach(id, &core.InductionRig{})
	}
	return id
}

// CanPlaceBuilding implements spec §4.7's PLACE_BUILDING feasibility check:
// the placer must own a conyard, the footprint must be clear, and the site
// must be within build radius of an owned non-defense building.
func CanPlaceBuilding(w *core.World, rules *ruleset.Ruleset, scratch *spatial.Scratch, playerID int, key string, pos core.Vec2) bool {
	def := rules.Building(key)
	if def == nil {
		return false
	}
	if !hasConYard(w, rules, playerID) {
		return false
	}
	sizeW := float64(def.SizeX) * rules.Tune.TileSize
	sizeH := float64(def.SizeY) * rules.Tune.TileSize
	if scratch.Collision.Overlaps(pos.X, pos.Y, sizeW, sizeH) {
		return false
	}
	return withinBuildRadius(w, rules, playerID, pos, rules.Tune.BuildRadius)
}

func hasConYard(w *core.World, rules *ruleset.Ruleset, playerID int) bool {
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

func withinBuildRadius(w *core.World, rules *ruleset.Ruleset, playerID int, pos core.Vec2, radius float64) bool {
	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID || w.Pending(id) {
			continue
		}
		def := rules.Building(hdr.RuleKey)
		if def == nil || def.IsDefense {
			continue
		}
		if hdr.Pos.DistanceTo(pos) <= radius {
			return true
		}
	}
	return false
}

// PlaceBuilding consumes the player's readyToPlace slot, stamps the
// collision grid, and spawns the building entity (spec §4.7). Callers must
// have already checked CanPlaceBuilding.
func PlaceBuilding(w *core.World, rules *ruleset.Ruleset, scratch *spatial.Scratch, paths *pathfind.Service, player *core.Player, pos core.Vec2, tick uint64, bus *core.EventBus) core.EntityID {
	key := player.ReadyToPlaceKey
	def := rules.Building(key)
	if def == nil {
		return core.ZeroID
	}
	sizeW := float64(def.SizeX) * rules.Tune.TileSize
	sizeH := float64(def.SizeY) * rules.Tune.TileSize

	id := w.Spawn(core.KindBuilding)
	w.Attach(id, &core.Header{
		OwnerPlayerID: player.ID, RuleKey: key, Pos: pos,
		HP: def.HP, MaxHP: def.HP, BoundW: sizeW, BoundH: sizeH, CollisionR: (sizeW + sizeH) / 4,
	})
	w.Attach(id, &core.BuildingState{PlacedTick: tick, ConstructProgress: 1})

	if def.WeaponKey != "" {
		w.Attach(id, &core.Combat{WeaponKey: def.WeaponKey, Stance: core.StanceAggressive, StanceHome: pos})
	}
	if def.IsAirBase {
		w.Attach(id, &core.AirBase{})
	}

	scratch.Collision.StampAABB(pos.X, pos.Y, sizeW, sizeH)
	paths.InvalidateAll()

	player.ReadyToPlaceKey = ""
	bus.Emit(core.Event{Type: core.EvtBuildingPlaced, Tick: tick, Payload: id})
	return id
}

// SellBuilding implements spec §4.7's SELL_BUILDING: refund is proportional
// to current hp, the entity is destroyed, and its footprint is implicitly
// freed the next time the collision grid is rebuilt from the live entity
// set (spec §9: the grid is derived, never persisted).
func SellBuilding(w *core.World, rules *ruleset.Ruleset, players *core.PlayerManager, id core.EntityID, tick uint64, bus *core.EventBus) {
	hdr, ok := w.Get(id, core.CompHeader).(*core.Header)
	if !ok || hdr.Dead() {
		return
	}
	def := rules.Building(hdr.RuleKey)
	player := players.GetPlayer(hdr.OwnerPlayerID)
	if def != nil && player != nil {
		refund := def.SellRefundFraction * float64(def.Cost) * hdr.HPRatio()
		player.Credits += int(refund)
	}
	w.Destroy(id)
	bus.Emit(core.Event{Type: core.EvtBuildingSold, Tick: tick, Payload: id})
}

// StartRepair toggles isRepairing on, rejecting enemy or full-hp buildings
// or a player with zero credits (spec §4.7).
func StartRepair(w *core.World, players *core.PlayerManager, id core.EntityID, requestingPlayer int) bool {
	hdr, ok := w.Get(id, core.CompHeader).(*core.Header)
	if !ok || hdr.Dead() || hdr.OwnerPlayerID != requestingPlayer || hdr.HP >= hdr.MaxHP {
		return false
	}
	player := players.GetPlayer(requestingPlayer)
	if player == nil || player.Credits <= 0 {
		return false
	}
	bs, ok := w.Get(id, core.CompBuildingState).(*core.BuildingState)
	if !ok {
		return false
	}
	bs.IsRepairing = true
	return true
}

func StopRepair(w *core.World, id core.EntityID) {
	if bs, ok := w.Get(id, core.CompBuildingState).(*core.BuildingState); ok {
		bs.IsRepairing = false
	}
}

// StartBuild implements START_BUILD: append to the category's queue, or set
// it as current if idle. No upfront charge, credits are debited
// tick-by-tick by ProductionSystem.advance (spec §4.7).
func StartBuild(player *core.Player, cat core.ProductionCategory, key string) {
	q := player.Queue(cat)
	if q.Current == "" {
		q.Current = key
		return
	}
	q.Queued = append(q.Queued, key)
}

// CancelBuild implements CANCEL_BUILD: refund whatever was invested in the
// in-progress item and drop it, promoting the next queued item if any.
func CancelBuild(player *core.Player, cat core.ProductionCategory) {
	q := player.Queue(cat)
	if q.Current == "" {
		return
	}
	player.Credits += q.Invested
	q.Progress = 0
	q.Invested = 0
	if len(q.Queued) > 0 {
		q.Current = q.Queued[0]
		q.Queued = q.Queued[1:]
	} else {
		q.Current = ""
	}
}

// DeployMCV implements DEPLOY_MCV: an MCV unit becomes a construction yard
// on its current tile, provided the footprint is clear.
func DeployMCV(w *core.World, rules *ruleset.Ruleset, scratch *spatial.Scratch, paths *pathfind.Service, players *core.PlayerManager, id core.EntityID, tick uint64, bus *core.EventBus) core.EntityID {
	hdr, ok := w.Get(id, core.CompHeader).(*core.Header)
	if !ok || hdr.Dead() {
		return core.ZeroID
	}
	def := rules.Unit(hdr.RuleKey)
	if def == nil || !def.IsMCV {
		return core.ZeroID
	}
	player := players.GetPlayer(hdr.OwnerPlayerID)
	if player == nil {
		return core.ZeroID
	}
	bdef := rules.Building("construction_yard")
	if bdef == nil {
		return core.ZeroID
	}
	sizeW := float64(bdef.SizeX) * rules.Tune.TileSize
	sizeH := float64(bdef.SizeY) * rules.Tune.TileSize
	if scratch.Collision.Overlaps(hdr.Pos.X, hdr.Pos.Y, sizeW, sizeH) {
		return core.ZeroID
	}

	pos := hdr.Pos
	w.Destroy(id)
	player.ReadyToPlaceKey = "construction_yard"
	bid := PlaceBuilding(w, rules, scratch, paths, player, pos, tick, bus)
	return bid
}

// DeployInductionRig implements DEPLOY_INDUCTION_RIG: converts a deployed
// rig unit into a stationary income source anchored to the named well
// (spec §4.8).
func DeployInductionRig(w *core.World, rules *ruleset.Ruleset, id, wellID core.EntityID) bool {
	hdr, ok := w.Get(id, core.CompHeader).(*core.Header)
	if !ok || hdr.Dead() {
		return false
	}
	def := rules.Unit(hdr.RuleKey)
	if def == nil || !def.IsInductionRig {
		return false
	}
	rig, ok := w.Get(id, core.CompInductionRig).(*core.InductionRig)
	if !ok {
		return false
	}
	if _, ok := w.Get(wellID, core.CompWell).(*core.Well); !ok {
		return false
	}
	rig.WellID = wellID
	w.Detach(id, core.CompMovement)
	return true
}
