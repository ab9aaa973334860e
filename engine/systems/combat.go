package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// CombatSystem implements target acquisition and firing (spec §4.6).
type CombatSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Bus     *core.EventBus
}

// Update acquires targets, fires weapons on cooldown, and appends any
// spawned projectiles to proj (owned by the caller across ticks, unlike
// the spatial scratch: in-flight projectiles must survive past this tick).
func (s *CombatSystem) Update(w *core.World, scratch *spatial.Scratch, tick uint64, proj *[]core.Projectile) {
	ids := w.Query(core.CompHeader, core.CompCombat)
	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		combat := w.Get(id, core.CompCombat).(*core.Combat)
		if hdr.Dead() || w.Has(id, core.CompAirUnit) {
			continue // harriers are flown and fired by AirSystem (spec §4.8)
		}
		if combat.Cooldown > 0 {
			combat.Cooldown--
		}

		wep := s.Rules.Weapon(combat.WeaponKey)
		if wep == nil {
			continue
		}

		if !s.targetValid(w, id, combat.TargetID) {
			combat.TargetID = s.acquireTarget(w, scratch, id, hdr, combat, wep)
		}
		if combat.TargetID.IsZero() || combat.Cooldown > 0 {
			continue
		}

		tHdr, ok := w.Get(combat.TargetID, core.CompHeader).(*core.Header)
		if !ok || tHdr.Dead() {
			combat.TargetID = core.ZeroID
			continue
		}
		if hdr.Pos.DistanceTo(tHdr.Pos) > wep.Range {
			continue
		}

		s.fire(w, id, hdr, combat, wep, tHdr, tick, proj)
	}
}

func (s *CombatSystem) targetValid(w *core.World, selfID, targetID core.EntityID) bool {
	if targetID.IsZero() || !w.Alive(targetID) || w.Pending(targetID) {
		return false
	}
	hdr, ok := w.Get(targetID, core.CompHeader).(*core.Header)
	return ok && !hdr.Dead()
}

// acquireTarget implements the per-stance rule of spec §4.6.
func (s *CombatSystem) acquireTarget(w *core.World, scratch *spatial.Scratch, id core.EntityID, hdr *core.Header, combat *core.Combat, wep *ruleset.WeaponDef) core.EntityID {
	searchRadius := wep.Range
	switch combat.Stance {
	case core.StanceAggressive:
		searchRadius = maxF(wep.Range, 220)
	case core.StanceDefensive:
		searchRadius = maxF(wep.Range, 160)
	case core.StanceHoldGround:
		searchRadius = wep.Range
	}

	origin := hdr.Pos
	if combat.Stance == core.StanceHoldGround {
		origin = combat.StanceHome
	}

	candidates := scratch.Hash.QueryEnemiesInRadius(origin.X, origin.Y, searchRadius, hdr.OwnerPlayerID,
		func(eid core.EntityID) int { return s.ownerOf(w, eid) },
		s.Players.AreAllies,
	)

	best := core.ZeroID
	bestDist := searchRadius + 1
	for _, cid := range candidates {
		if cid == id || w.Pending(cid) {
			continue
		}
		cHdr, ok := w.Get(cid, core.CompHeader).(*core.Header)
		if !ok || cHdr.Dead() {
			continue
		}
		d := hdr.Pos.DistanceTo(cHdr.Pos)
		if d <= searchRadius && d < bestDist {
			bestDist = d
			best = cid
		}
	}
	return best
}

func (s *CombatSystem) ownerOf(w *core.World, id core.EntityID) int {
	if hdr, ok := w.Get(id, core.CompHeader).(*core.Header); ok {
		return hdr.OwnerPlayerID
	}
	return core.NeutralPlayer
}

func (s *CombatSystem) fire(w *core.World, id core.EntityID, hdr *core.Header, combat *core.Combat, wep *ruleset.WeaponDef, tHdr *core.Header, tick uint64, proj *[]core.Projectile) {
	combat.Cooldown = wep.ReloadTicks
	combat.LastAttackTick = tick
	combat.TurretAngle = hdr.Pos.AngleTo(tHdr.Pos)

	if wep.Archetype == core.ArchHitscan {
		// ApplyDamage already emits EvtDamageDealt; nothing more to do here.
		ApplyDamage(w, s.Rules, combat.TargetID, wep.BaseDamage, wep.Type, s.Bus, tick)
		return
	}

	p := core.Projectile{
		ID: w.IDGen().Next(), SourceID: id, TargetID: combat.TargetID, OwnerID: hdr.OwnerPlayerID,
		Archetype: wep.Archetype, Pos: hdr.Pos, TargetPos: tHdr.Pos, Speed: wep.ProjSpeed,
		HP: wep.ProjHP, Damage: wep.BaseDamage, WeaponType: string(wep.Type), Splash: wep.SplashRadius,
	}
	*proj = append(*proj, p)
	s.Bus.Emit(core.Event{Type: core.EvtProjectileFired, Tick: tick, Payload: p.ID})
}

// ApplyDamage applies the ruleset's damage matrix (spec §4.6): final damage
// = baseDamage × modifiers[weaponType][armorClass]. It destroys the target
// at hp ≤ 0 and returns the damage actually applied (0 if the target is
// already gone).
func ApplyDamage(w *core.World, rules *ruleset.Ruleset, id core.EntityID, baseDamage int, wt ruleset.WeaponType, bus *core.EventBus, tick uint64) int {
	hdr, ok := w.Get(id, core.CompHeader).(*core.Header)
	if !ok || hdr.Dead() {
		return 0
	}
	armor := armorClassOf(rules, w, id, hdr)
	mult := rules.DamageModifier(wt, armor)
	dmg := int(float64(baseDamage) * mult)
	if dmg < 1 {
		dmg = 1
	}
	if dmg > hdr.HP {
		dmg = hdr.HP
	}
	hdr.HP -= dmg
	bus.Emit(core.Event{Type: core.EvtDamageDealt, Tick: tick, Payload: dmg})
	if hdr.HP <= 0 {
		hdr.HP = 0
		w.Destroy(id)
		bus.Emit(core.Event{Type: core.EvtUnitDestroyed, Tick: tick, Payload: id})
	}
	return dmg
}

func armorClassOf(rules *ruleset.Ruleset, w *core.World, id core.EntityID, hdr *core.Header) ruleset.ArmorClass {
	switch w.Kind(id) {
	case core.KindBuilding:
		return ruleset.ArmorBuilding
	case core.KindUnit:
		if u := rules.Unit(hdr.RuleKey); u != nil {
			return u.Armor
		}
	}
	return ruleset.ArmorLight
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
