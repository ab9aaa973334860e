// Package systems implements the per-tick unit/building/projectile update
// stages of the pipeline (spec §2 stages 6-8): movement FSM, harvester FSM,
// combat/target acquisition, projectile motion, building production and
// upkeep, wells, induction rigs, air bases, and fog of war.
package systems

import (
	"math"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/pathfind"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// MovementSystem drives the per-unit movement FSM (spec §4.4).
type MovementSystem struct {
	Rules *ruleset.Ruleset
	Paths *pathfind.Service
	Bus   *core.EventBus
}

// Update advances every mobile unit one tick. Newly-needed path lookups are
// appended to pending so the caller can hand them to the pathfinding
// service at the top of the next tick (spec §5: async cache producer only).
func (s *MovementSystem) Update(w *core.World, scratch *spatial.Scratch, pm *core.PlayerManager, tick uint64, pending *[]pathfind.Request) {
	tune := s.Rules.Tune
	ids := w.Query(core.CompHeader, core.CompMovement)
	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		mov := w.Get(id, core.CompMovement).(*core.Movement)
		if hdr.Dead() {
			continue
		}

		hdr.PrevPos = hdr.Pos
		intended := s.intendedVelocity(w, scratch, id, hdr, mov, tune, tick, pending)

		mov.LastVel = mov.Velocity
		mov.Velocity = clampLen(intended, mov.Speed)
		mov.AvgVel = mov.AvgVel.Scale(0.9).Add(mov.Velocity.Scale(0.1))
		if mov.Velocity.LengthSq() > 1e-9 {
			mov.Rotation = math.Atan2(mov.Velocity.Y, mov.Velocity.X)
		}

		s.updateStuck(hdr, mov, tune)

		hdr.Pos = hdr.Pos.Add(mov.Velocity)
	}

	s.resolveCollisions(w, ids)

	for _, id := range ids {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		hdr.Pos.X, hdr.Pos.Y = scratch.Collision.ClampToBounds(hdr.Pos.X, hdr.Pos.Y, hdr.CollisionR)
	}
}

// intendedVelocity implements the priority order of spec §4.4: unstuck
// override, then path-following, then direct steering toward a bare target.
func (s *MovementSystem) intendedVelocity(w *core.World, scratch *spatial.Scratch, id core.EntityID, hdr *core.Header, mov *core.Movement, tune ruleset.Tunables, tick uint64, pending *[]pathfind.Request) core.Vec2 {
	if mov.UnstuckTimer > 0 {
		mov.UnstuckTimer--
		return mov.UnstuckDir.Scale(mov.Speed)
	}

	if len(mov.Path) > 0 {
		if mov.PathIndex >= len(mov.Path) {
			mov.Path = nil
			mov.PathIndex = 0
		} else {
			wp := mov.Path[mov.PathIndex]
			if hdr.Pos.DistanceTo(wp) <= tune.WaypointRadius {
				mov.PathIndex++
				if mov.PathIndex >= len(mov.Path) {
					mov.Path = nil
					mov.PathIndex = 0
					if mov.FinalDest != nil {
						s.requestPath(w, scratch, id, hdr, mov, tune, tick, pending)
					}
					return core.Vec2{}
				}
				wp = mov.Path[mov.PathIndex]
			}
			return wp.Sub(hdr.Pos).Normalize().Scale(mov.Speed)
		}
	}

	target := mov.MoveTarget
	if target == nil {
		target = mov.FinalDest
	}
	if target == nil {
		return core.Vec2{}
	}
	if !s.lineClear(scratch, hdr.Pos, *target) {
		s.requestPath(w, scratch, id, hdr, mov, tune, tick, pending)
	}
	return target.Sub(hdr.Pos).Normalize().Scale(mov.Speed)
}

func (s *MovementSystem) requestPath(w *core.World, scratch *spatial.Scratch, id core.EntityID, hdr *core.Header, mov *core.Movement, tune ruleset.Tunables, tick uint64, pending *[]pathfind.Request) {
	dest := mov.FinalDest
	if dest == nil {
		dest = mov.MoveTarget
	}
	if dest == nil {
		return
	}
	sx, sy := scratch.Collision.WorldToTile(hdr.Pos.X, hdr.Pos.Y)
	gx, gy := scratch.Collision.WorldToTile(dest.X, dest.Y)
	rc := pathfind.RadiusClassOf(hdr.CollisionR)
	key := pathfind.CacheKey{Start: pathfind.Point{X: sx, Y: sy}, Goal: pathfind.Point{X: gx, Y: gy}, Radius: rc, PlayerID: hdr.OwnerPlayerID}

	if cached, ok := s.Paths.Lookup(key, tick); ok {
		mov.Path = cached
		mov.PathIndex = 0
		mov.RepathRequested = false
		return
	}
	if mov.RepathRequested {
		return
	}
	mov.RepathRequested = true
	danger := scratch.Danger.For(hdr.OwnerPlayerID)
	ng := pathfind.NewNavGrid(scratch.Collision, danger, tune, rc)
	*pending = append(*pending, pathfind.Request{Key: key, Start: pathfind.Point{X: sx, Y: sy}, Goal: pathfind.Point{X: gx, Y: gy}, Grid: ng, Tile: tune.TileSize})
}

// lineClear walks tiles between a and b checking the collision grid.
func (s *MovementSystem) lineClear(scratch *spatial.Scratch, a, b core.Vec2) bool {
	ax, ay := scratch.Collision.WorldToTile(a.X, a.Y)
	bx, by := scratch.Collision.WorldToTile(b.X, b.Y)
	dx := abs(bx - ax)
	dy := abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx - dy
	x, y := ax, ay
	for {
		if scratch.Collision.Blocked(x, y) {
			return false
		}
		if x == bx && y == by {
			return true
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// updateStuck implements the two-channel detector of spec §4.4: a raw
// progress-speed timer, suppressed when lastVel still projects positively
// on the direction to target even though the EWMA points backward (open
// question 4: preserve the EWMA+lastVel combination).
func (s *MovementSystem) updateStuck(hdr *core.Header, mov *core.Movement, tune ruleset.Tunables) {
	hasGoal := mov.MoveTarget != nil || mov.FinalDest != nil || len(mov.Path) > 0
	if !hasGoal {
		mov.StuckTimer = 0
		return
	}

	target := mov.MoveTarget
	if target == nil && len(mov.Path) > mov.PathIndex {
		wp := mov.Path[mov.PathIndex]
		target = &wp
	}
	if target == nil {
		target = mov.FinalDest
	}

	slow := mov.Velocity.Length() < tune.MinProgressSpeed
	suppressed := false
	if target != nil {
		toTarget := target.Sub(hdr.Pos)
		if mov.AvgVel.Dot(toTarget) < 0 && mov.LastVel.Dot(toTarget) > 0 {
			suppressed = true
		}
	}

	if slow && !suppressed {
		mov.StuckTimer++
	} else {
		mov.StuckTimer = 0
	}

	if mov.StuckTimer >= tune.UnstuckTrigger {
		mov.UnstuckDir = s.pickUnstuckDirection(mov)
		mov.UnstuckTimer = tune.UnstuckBurst
		mov.StuckTimer = 0
	}
	if mov.StuckTimer >= tune.RepathThreshold {
		mov.Path = nil
		mov.PathIndex = 0
		mov.RepathRequested = false
	}
}

// pickUnstuckDirection turns a quarter turn (+90°) from the
// recent travel heading, or from the unit's rotation when it has no
// recent velocity, so the burst leads sideways rather than back into the
// blockage.
func (s *MovementSystem) pickUnstuckDirection(mov *core.Movement) core.Vec2 {
	base := mov.Rotation
	if mov.AvgVel.LengthSq() > 1e-9 {
		base = math.Atan2(mov.AvgVel.Y, mov.AvgVel.X)
	}
	a := base + math.Pi/2
	return core.Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

func clampLen(v core.Vec2, maxLen float64) core.Vec2 {
	l := v.Length()
	if l <= maxLen || l == 0 {
		return v
	}
	return v.Scale(maxLen / l)
}

// resolveCollisions applies symmetric positional separation between
// overlapping units, iterated twice (spec §4.4). It works off the unit
// list gathered at the top of Update; per spec §5 this pairwise check
// reads current in-progress positions directly rather than the spatial
// index built at the tick's top (which is not re-queried mid-tick).
func (s *MovementSystem) resolveCollisions(w *core.World, ids []core.EntityID) {
	const softTolerance = 2.0
	const iterations = 2
	for iter := 0; iter < iterations; iter++ {
		for i, aID := range ids {
			aHdr := w.Get(aID, core.CompHeader).(*core.Header)
			if aHdr.Dead() {
				continue
			}
			for j := i + 1; j < len(ids); j++ {
				bID := ids[j]
				bHdr := w.Get(bID, core.CompHeader).(*core.Header)
				if bHdr.Dead() {
					continue
				}
				delta := bHdr.Pos.Sub(aHdr.Pos)
				dist := delta.Length()
				minDist := aHdr.CollisionR + bHdr.CollisionR - softTolerance
				if dist >= minDist || minDist <= 0 {
					continue
				}
				overlap := minDist - dist
				var axis core.Vec2
				if dist > 1e-6 {
					axis = delta.Scale(1.0 / dist)
				} else {
					axis = core.Vec2{X: 1, Y: 0}
				}
				push := axis.Scale(overlap / 2)
				aHdr.Pos = aHdr.Pos.Sub(push)
				bHdr.Pos = bHdr.Pos.Add(push)
			}
		}
	}
}
