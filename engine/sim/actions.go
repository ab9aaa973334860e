package sim

import "github.com/egeozcan/unnamed-rts-sub001/engine/core"

// Action is the sealed command vocabulary of spec §6, every mutation of
// State other than time's own advance arrives as one of these. Step folds
// exactly one Action per call; TICK is the only one that runs the staged
// pipeline.
type Action interface{ isAction() }

type Tick struct{}

func (Tick) isAction() {}

type StartBuild struct {
	PlayerID int
	Category core.ProductionCategory
	Key      string
}

func (StartBuild) isAction() {}

type CancelBuild struct {
	PlayerID int
	Category core.ProductionCategory
}

func (CancelBuild) isAction() {}

type PlaceBuilding struct {
	PlayerID int
	Pos      core.Vec2
}

func (PlaceBuilding) isAction() {}

type SellBuilding struct {
	PlayerID   int
	BuildingID core.EntityID
}

func (SellBuilding) isAction() {}

type StartRepair struct {
	PlayerID   int
	BuildingID core.EntityID
}

func (StartRepair) isAction() {}

type StopRepair struct {
	BuildingID core.EntityID
}

func (StopRepair) isAction() {}

type CommandMove struct {
	UnitIDs []core.EntityID
	Dest    core.Vec2
}

func (CommandMove) isAction() {}

type CommandAttack struct {
	UnitIDs  []core.EntityID
	TargetID core.EntityID
}

func (CommandAttack) isAction() {}

type CommandAttackMove struct {
	UnitIDs []core.EntityID
	Dest    core.Vec2
}

func (CommandAttackMove) isAction() {}

type SetStance struct {
	UnitIDs []core.EntityID
	Stance  core.Stance
}

func (SetStance) isAction() {}

type DeployMCV struct {
	UnitID core.EntityID
}

func (DeployMCV) isAction() {}

type DeployInductionRig struct {
	UnitID core.EntityID
	WellID core.EntityID
}

func (DeployInductionRig) isAction() {}

type SetRallyPoint struct {
	BuildingID core.EntityID
	Dest       core.Vec2
}

func (SetRallyPoint) isAction() {}

type SetPrimaryBuilding struct {
	BuildingID core.EntityID
}

func (SetPrimaryBuilding) isAction() {}
