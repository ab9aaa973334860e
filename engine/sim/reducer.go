package sim

import (
	"context"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/systems"
)

// Step folds one Action into State (spec §2: `step(state, action) →
// state'`). Invalid commands, unknown id, wrong owner, wrong state, are
// silent no-ops (spec §7): state is left unchanged rather than erroring.
func Step(s *State, a Action) {
	switch act := a.(type) {
	case Tick:
		runTick(s)
	case StartBuild:
		if p := s.Players.GetPlayer(act.PlayerID); p != nil && !p.Eliminated {
			systems.StartBuild(p, act.Category, act.Key)
		}
	case CancelBuild:
		if p := s.Players.GetPlayer(act.PlayerID); p != nil {
			systems.CancelBuild(p, act.Category)
		}
	case PlaceBuilding:
		if p := s.Players.GetPlayer(act.PlayerID); p != nil && p.ReadyToPlaceKey != "" {
			if systems.CanPlaceBuilding(s.World, s.Rules, s.scratch, act.PlayerID, p.ReadyToPlaceKey, act.Pos) {
				systems.PlaceBuilding(s.World, s.Rules, s.scratch, s.paths, p, act.Pos, s.Tick, s.Bus)
			}
		}
	case SellBuilding:
		if ownsBuilding(s.World, act.BuildingID, act.PlayerID) {
			systems.SellBuilding(s.World, s.Rules, s.Players, act.BuildingID, s.Tick, s.Bus)
			enforceElimination(s.World, s.Rules, s.Players)
			if winner, over := checkWin(s.Players); over {
				s.WinnerTeam, s.GameOver = winner, true
			}
		}
	case StartRepair:
		systems.StartRepair(s.World, s.Players, act.BuildingID, act.PlayerID)
	case StopRepair:
		systems.StopRepair(s.World, act.BuildingID)
	case CommandMove:
		for _, id := range act.UnitIDs {
			if mov, ok := s.World.Get(id, core.CompMovement).(*core.Movement); ok {
				dest := act.Dest
				mov.FinalDest = &dest
				mov.MoveTarget = nil
				mov.Path = nil
				mov.PathIndex = 0
			}
		}
	case CommandAttack:
		for _, id := range act.UnitIDs {
			if combat, ok := s.World.Get(id, core.CompCombat).(*core.Combat); ok {
				combat.TargetID = act.TargetID
				combat.AttackMoveTgt = nil
			}
		}
	case CommandAttackMove:
		for _, id := range act.UnitIDs {
			dest := act.Dest
			if mov, ok := s.World.Get(id, core.CompMovement).(*core.Movement); ok {
				mov.FinalDest = &dest
			}
			if combat, ok := s.World.Get(id, core.CompCombat).(*core.Combat); ok {
				combat.AttackMoveTgt = &dest
			}
		}
	case SetStance:
		for _, id := range act.UnitIDs {
			if combat, ok := s.World.Get(id, core.CompCombat).(*core.Combat); ok {
				combat.Stance = act.Stance
				if hdr, ok := s.World.Get(id, core.CompHeader).(*core.Header); ok {
					combat.StanceHome = hdr.Pos
				}
			}
		}
	case DeployMCV:
		systems.DeployMCV(s.World, s.Rules, s.scratch, s.paths, s.Players, act.UnitID, s.Tick, s.Bus)
	case DeployInductionRig:
		systems.DeployInductionRig(s.World, s.Rules, act.UnitID, act.WellID)
	case SetRallyPoint:
		if bs, ok := s.World.Get(act.BuildingID, core.CompBuildingState).(*core.BuildingState); ok {
			dest := act.Dest
			bs.RallyPoint = &dest
		}
	case SetPrimaryBuilding:
		setPrimary(s.World, act.BuildingID)
	}
}

func ownsBuilding(w *core.World, id core.EntityID, playerID int) bool {
	hdr, ok := w.Get(id, core.CompHeader).(*core.Header)
	return ok && !hdr.Dead() && hdr.OwnerPlayerID == playerID
}

// setPrimary marks the target building the sole primary producer for its
// category among the player's buildings of the same rule key, used by the
// UI to decide which factory's rally point governs new units of that kind.
func setPrimary(w *core.World, id core.EntityID) {
	hdr, ok := w.Get(id, core.CompHeader).(*core.Header)
	bs, bok := w.Get(id, core.CompBuildingState).(*core.BuildingState)
	if !ok || !bok {
		return
	}
	for _, other := range w.Query(core.CompHeader, core.CompBuildingState) {
		oHdr := w.Get(other, core.CompHeader).(*core.Header)
		if oHdr.OwnerPlayerID != hdr.OwnerPlayerID || oHdr.RuleKey != hdr.RuleKey {
			continue
		}
		oBs := w.Get(other, core.CompBuildingState).(*core.BuildingState)
		oBs.IsPrimary = other == id
	}
	bs.IsPrimary = true
}

// runTick executes the fixed 9-stage pipeline of spec §2, once per TICK
// action.
func runTick(s *State) {
	enforceElimination(s.World, s.Rules, s.Players)

	s.production.Update(s.World, s.Tick)

	s.ai.Update(s.World, s.scratch, s.Tick)

	rebuildSpatial(s)

	s.paths.Drain(context.Background(), s.pendingReq, s.Tick)
	s.pendingReq = s.pendingReq[:0]

	s.harvester.Update(s.World, s.scratch, s.Tick)
	s.combat.Update(s.World, s.scratch, s.Tick, &s.projectiles)
	s.movement.Update(s.World, s.scratch, s.Players, s.Tick, &s.pendingReq)

	s.repair.Update(s.World)
	s.wells.Update(s.World, s.scratch, s.Tick)
	s.induction.Update(s.World, s.scratch, s.Tick)
	s.air.Update(s.World, s.scratch, s.Tick, &s.projectiles)

	s.projectile.Update(s.World, s.Tick, &s.projectiles)

	s.World.Sweep()
	if winner, over := checkWin(s.Players); over {
		s.WinnerTeam, s.GameOver = winner, true
	}
	s.fog.Update(s.World)
	s.Bus.Dispatch()

	s.Tick++
	s.World.TickCount = s.Tick
}

// rebuildSpatial implements spec §2 stage 4: rewrite the collision grid
// from live building footprints, the per-player danger grids from enemy
// defense ranges, and the spatial hash from every positioned entity.
func rebuildSpatial(s *State) {
	s.scratch.Rebuild(s.cellSize, s.World.EntityCount())

	for _, id := range s.World.Query(core.CompHeader, core.CompBuildingState) {
		hdr := s.World.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || s.World.Pending(id) {
			continue
		}
		s.scratch.Collision.StampAABB(hdr.Pos.X, hdr.Pos.Y, hdr.BoundW, hdr.BoundH)
	}

	for _, id := range s.World.Query(core.CompHeader, core.CompCombat) {
		hdr := s.World.Get(id, core.CompHeader).(*core.Header)
		combat := s.World.Get(id, core.CompCombat).(*core.Combat)
		if hdr.Dead() || s.World.Pending(id) {
			continue
		}
		def := s.Rules.Building(hdr.RuleKey)
		if def == nil || !def.IsDefense || def.DangerRadius <= 0 {
			continue
		}
		_ = combat
		for _, p := range s.Players.Players {
			if p.ID != hdr.OwnerPlayerID && !s.Players.AreAllies(p.ID, hdr.OwnerPlayerID) {
				s.scratch.Danger.For(p.ID).StampTurret(hdr.Pos.X, hdr.Pos.Y, def.DangerRadius, 1)
			}
		}
	}

	for _, id := range s.World.Query(core.CompHeader) {
		hdr := s.World.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || s.World.Pending(id) {
			continue
		}
		s.scratch.Hash.Insert(id, hdr.Pos.X, hdr.Pos.Y, hdr.CollisionR)
	}
}
