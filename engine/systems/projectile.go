package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
)

// ProjectileSystem moves in-flight projectiles, resolves AA interception,
// and applies hit/splash damage (spec §4.6, §2 stage 8).
type ProjectileSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Bus     *core.EventBus
}

const hitRadius = 6.0

// Update mutates proj in place, compacting out dead/resolved entries.
func (s *ProjectileSystem) Update(w *core.World, tick uint64, proj *[]core.Projectile) {
	list := *proj
	aaSources := s.gatherAASources(w)

	for i := range list {
		p := &list[i]
		if p.Dead {
			continue
		}

		if p.Interceptable() {
			s.applyInterception(w, p, aaSources)
			if p.Dead {
				continue
			}
		}

		if p.Archetype == core.ArchRocket || p.Archetype == core.ArchMissile {
			if tHdr, ok := w.Get(p.TargetID, core.CompHeader).(*core.Header); ok && !tHdr.Dead() {
				p.TargetPos = tHdr.Pos
			}
		}

		toTarget := p.TargetPos.Sub(p.Pos)
		dist := toTarget.Length()
		// A full Speed step (260-900/tick for most weapons) routinely
		// overshoots hitRadius in one tick, so arrival is "this step would
		// reach or pass the target", not "already within hitRadius" -
		// otherwise fast projectiles oscillate past their target forever
		// and never resolve a hit.
		if dist <= hitRadius || dist <= p.Speed {
			p.Pos = p.TargetPos
			s.resolveHit(w, p, tick)
			continue
		}
		p.Pos = p.Pos.Add(toTarget.Normalize().Scale(p.Speed))
	}

	compact := list[:0]
	for _, p := range list {
		if !p.Dead {
			compact = append(compact, p)
		}
	}
	*proj = compact
}

type aaSource struct {
	ownerID int
	pos     core.Vec2
	radius  float64
	dps     int
}

func (s *ProjectileSystem) gatherAASources(w *core.World) []aaSource {
	var out []aaSource
	ids := w.Query(core.CompHeader, core.CompCombat)
	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		combat := w.Get(id, core.CompCombat).(*core.Combat)
		if hdr.Dead() {
			continue
		}
		wep := s.Rules.Weapon(combat.WeaponKey)
		if wep == nil || !wep.AAOnly {
			continue
		}
		out = append(out, aaSource{ownerID: hdr.OwnerPlayerID, pos: hdr.Pos, radius: wep.AARadius, dps: wep.AADPS})
	}
	return out
}

// applyInterception implements spec §4.6: every enemy AA source within
// radius deducts its DPS from the projectile's hp each tick; friendly AA
// does nothing to friendly projectiles (Testable Property 4).
func (s *ProjectileSystem) applyInterception(w *core.World, p *core.Projectile, sources []aaSource) {
	for _, src := range sources {
		if s.Players.AreAllies(src.ownerID, p.OwnerID) {
			continue
		}
		if p.Pos.DistanceTo(src.pos) <= src.radius {
			p.HP -= src.dps
		}
	}
	if p.HP <= 0 {
		p.Dead = true
		s.Bus.Emit(core.Event{Type: core.EvtProjectileIntercepted, Tick: w.TickCount, Payload: p.ID})
	}
}

func (s *ProjectileSystem) resolveHit(w *core.World, p *core.Projectile, tick uint64) {
	p.Dead = true
	wt := ruleset.WeaponType(p.WeaponType)

	if !p.TargetID.IsZero() {
		ApplyDamage(w, s.Rules, p.TargetID, p.Damage, wt, s.Bus, tick)
	}

	if p.Splash > 0 {
		ids := w.Query(core.CompHeader)
		for _, id := range ids {
			if id == p.TargetID {
				continue
			}
			hdr := w.Get(id, core.CompHeader).(*core.Header)
			if hdr.Dead() {
				continue
			}
			d := hdr.Pos.DistanceTo(p.Pos)
			if d > p.Splash {
				continue
			}
			falloff := 1.0 - d/p.Splash
			dmg := int(float64(p.Damage) * falloff)
			if dmg < 1 {
				dmg = 1
			}
			ApplyDamage(w, s.Rules, id, dmg, wt, s.Bus, tick)
		}
	}

	s.Bus.Emit(core.Event{Type: core.EvtProjectileHit, Tick: tick, Payload: p.ID})
}
