package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// airReloadTicks is how long a docked harrier takes to fully rearm.
const airReloadTicks = 150

// airLaunchGapTicks staggers takeoffs from the same base so slots don't all
// empty on the same tick (spec §4.8).
const airLaunchGapTicks = 20

// airDockRadius is how close a returning harrier must get to its home base
// before it is considered landed.
const airDockRadius = 40.0

// AirSystem drives the harrier lifecycle: docked (reloading) → flying
// (launched toward an attack-move order) → attacking → returning → docked
// (spec §4.8).
type AirSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Bus     *core.EventBus
}

func (s *AirSystem) Update(w *core.World, scratch *spatial.Scratch, tick uint64, proj *[]core.Projectile) {
	cs := &CombatSystem{Rules: s.Rules, Players: s.Players, Bus: s.Bus}

	for _, id := range w.Query(core.CompHeader, core.CompMovement, core.CompAirUnit, core.CompCombat) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		mov := w.Get(id, core.CompMovement).(*core.Movement)
		au := w.Get(id, core.CompAirUnit).(*core.AirUnit)
		combat := w.Get(id, core.CompCombat).(*core.Combat)
		if hdr.Dead() {
			s.vacateSlot(w, au)
			continue
		}

		wep := s.Rules.Weapon(combat.WeaponKey)
		if wep == nil {
			continue
		}

		switch au.FSMState {
		case core.AirDocked:
			s.updateDocked(w, id, hdr, au, combat, tick)
		case core.AirFlying:
			s.updateFlying(hdr, mov, au, combat, wep)
		case core.AirAttacking:
			s.updateAttacking(w, scratch, cs, id, hdr, mov, au, combat, wep, tick, proj)
		case core.AirReturning:
			s.updateReturning(w, id, hdr, mov, au)
		}
	}
}

func (s *AirSystem) vacateSlot(w *core.World, au *core.AirUnit) {
	base, ok := w.Get(au.HomeBaseID, core.CompAirBase).(*core.AirBase)
	if !ok || au.DockedSlot < 0 || au.DockedSlot >= core.AirBaseSlots {
		return
	}
	base.Slots[au.DockedSlot] = core.ZeroID
}

// updateDocked reloads ammo while parked and launches toward an
// attack-move order once ammo is available and the base's stagger window
// has elapsed.
func (s *AirSystem) updateDocked(w *core.World, id core.EntityID, hdr *core.Header, au *core.AirUnit, combat *core.Combat, tick uint64) {
	base, ok := w.Get(au.HomeBaseID, core.CompAirBase).(*core.AirBase)
	if !ok {
		return
	}
	if au.Ammo < au.MaxAmmo && au.DockedSlot >= 0 && au.DockedSlot < core.AirBaseSlots {
		base.ReloadProgress[au.DockedSlot]++
		if base.ReloadProgress[au.DockedSlot] >= airReloadTicks {
			au.Ammo = au.MaxAmmo
			base.ReloadProgress[au.DockedSlot] = 0
		}
	}

	if combat.AttackMoveTgt == nil || au.Ammo <= 0 {
		return
	}
	if tick < base.LastLaunchTick+airLaunchGapTicks {
		return
	}

	if au.DockedSlot >= 0 && au.DockedSlot < core.AirBaseSlots {
		base.Slots[au.DockedSlot] = core.ZeroID
	}
	au.DockedSlot = -1
	au.FSMState = core.AirFlying
	base.LastLaunchTick = tick
	s.Bus.Emit(core.Event{Type: core.EvtDecision, Tick: tick, Payload: id})
}

func (s *AirSystem) updateFlying(hdr *core.Header, mov *core.Movement, au *core.AirUnit, combat *core.Combat, wep *ruleset.WeaponDef) {
	if combat.AttackMoveTgt == nil {
		au.FSMState = core.AirAttacking
		return
	}
	mov.MoveTarget = combat.AttackMoveTgt
	if hdr.Pos.DistanceTo(*combat.AttackMoveTgt) <= wep.Range {
		au.FSMState = core.AirAttacking
	}
}

func (s *AirSystem) updateAttacking(w *core.World, scratch *spatial.Scratch, cs *CombatSystem, id core.EntityID, hdr *core.Header, mov *core.Movement, au *core.AirUnit, combat *core.Combat, wep *ruleset.WeaponDef, tick uint64, proj *[]core.Projectile) {
	mov.MoveTarget = nil

	if !cs.targetValid(w, id, combat.TargetID) {
		combat.TargetID = cs.acquireTarget(w, scratch, id, hdr, combat, wep)
	}
	if combat.Cooldown > 0 {
		combat.Cooldown--
	}

	done := au.Ammo <= 0 || combat.TargetID.IsZero()
	if !done {
		tHdr, ok := w.Get(combat.TargetID, core.CompHeader).(*core.Header)
		if !ok || tHdr.Dead() {
			combat.TargetID = core.ZeroID
			done = true
		} else if hdr.Pos.DistanceTo(tHdr.Pos) <= wep.Range && combat.Cooldown <= 0 {
			cs.fire(w, id, hdr, combat, wep, tHdr, tick, proj)
			au.Ammo--
		}
	}

	if au.Ammo <= 0 || (combat.AttackMoveTgt != nil && hdr.Pos.DistanceTo(*combat.AttackMoveTgt) > wep.Range*3) {
		combat.AttackMoveTgt = nil
		combat.TargetID = core.ZeroID
		au.FSMState = core.AirReturning
	}
}

func (s *AirSystem) updateReturning(w *core.World, id core.EntityID, hdr *core.Header, mov *core.Movement, au *core.AirUnit) {
	base, ok := w.Get(au.HomeBaseID, core.CompAirBase).(*core.AirBase)
	if !ok {
		return
	}
	baseHdr, ok := w.Get(au.HomeBaseID, core.CompHeader).(*core.Header)
	if !ok {
		return
	}
	mov.MoveTarget = &baseHdr.Pos

	if hdr.Pos.DistanceTo(baseHdr.Pos) > airDockRadius {
		return
	}
	slot := s.freeSlot(base)
	if slot < 0 {
		return
	}
	base.Slots[slot] = id
	au.DockedSlot = slot
	au.FSMState = core.AirDocked
	mov.MoveTarget = nil
	mov.Velocity = core.Vec2{}
}

func (s *AirSystem) freeSlot(base *core.AirBase) int {
	for i, occ := range base.Slots {
		if occ.IsZero() {
			return i
		}
	}
	return -1
}
