package core

// ---- Common header (spec §3, design note §9) ----

// Header is the common identity/position/hp/bbox block every entity
// carries regardless of kind, design note §9: "common header holds
// identity, position, hp, bbox." Capability components below are attached
// only to the kinds that need them (a RESOURCE never gets a Combat).
type Header struct {
	OwnerPlayerID int // -1 for neutral (wells, rocks, ore)
	RuleKey       string
	Pos           Vec2
	PrevPos       Vec2
	HP            int
	MaxHP         int
	BoundW        float64
	BoundH        float64
	CollisionR    float64
}

func (h *Header) Type() ComponentType { return CompHeader }

// Dead reports whether hp has reached zero. Spec invariant: dead ⇔ hp = 0.
func (h *Header) Dead() bool { return h.HP <= 0 }

// HPRatio returns current/max hp, 0 if MaxHP is not positive.
func (h *Header) HPRatio() float64 {
	if h.MaxHP <= 0 {
		return 0
	}
	return float64(h.HP) / float64(h.MaxHP)
}

const NeutralPlayer = -1

// ---- Movement (mobile UNIT) ----

type Movement struct {
	Velocity        Vec2
	Rotation        float64 // radians, normalized to [-pi, pi]
	MoveTarget      *Vec2   // player/AI-issued destination, nil if none
	Path            []Vec2
	PathIndex       int
	FinalDest       *Vec2
	Speed           float64 // units per tick
	Accel           float64
	StuckTimer      int
	UnstuckDir      Vec2
	UnstuckTimer    int
	AvgVel          Vec2 // EWMA, retention 0.9
	LastVel         Vec2
	RepathRequested bool
	MoveType        MoveClass
}

func (m *Movement) Type() ComponentType { return CompMovement }

type MoveClass uint8

const (
	MoveInfantry MoveClass = iota
	MoveVehicle
	MoveAir
)

// ---- Combat (UNIT, defense BUILDING) ----

type Stance uint8

const (
	StanceAggressive Stance = iota
	StanceDefensive
	StanceHoldGround
)

type Combat struct {
	TargetID        EntityID
	LastAttackerID  EntityID
	LastAttackTick  uint64
	Cooldown        int // ticks remaining until next shot
	MuzzleFlash     int // ticks remaining to show a muzzle flash (cosmetic)
	TurretAngle     float64
	Stance          Stance
	AttackMoveTgt   *Vec2
	StanceHome      Vec2
	WeaponKey       string
}

func (c *Combat) Type() ComponentType { return CompCombat }

// ---- Harvester (harvester UNIT) ----

type HarvesterFSM uint8

const (
	HarvIdle HarvesterFSM = iota
	HarvSeeking
	HarvHarvesting
	HarvReturning
	HarvDocked
)

type Harvester struct {
	State           HarvesterFSM
	Cargo           int
	Capacity        int
	ResourceTarget  EntityID
	BaseTarget      EntityID
	DockPos         Vec2
	ManualMode      bool
	HarvestAttempts int
	BestDistToOre   float64
	GiveUpCounter   int
	BlockedOreID    EntityID
	FleeCooldownTil uint64
}

func (h *Harvester) Type() ComponentType { return CompHarvester }

// ---- Engineer (engineer UNIT) ----

type Engineer struct {
	CaptureTargetID EntityID
	RepairTargetID  EntityID
}

func (e *Engineer) Type() ComponentType { return CompEngineer }

// ---- Building state (BUILDING) ----

type BuildingState struct {
	IsRepairing       bool
	PlacedTick        uint64
	RallyPoint        *Vec2
	PrimaryForCat     ProductionCategory
	IsPrimary         bool
	ConstructProgress float64 // 0..1, 1 = mature
}

func (b *BuildingState) Type() ComponentType { return CompBuildingState }

// Mature reports whether a building has cleared its grace period, spec
// §4.7: "within this window, a building cannot be auto-sold by AI and is
// not considered mature."
func (b *BuildingState) Mature(tick uint64, gracePeriodTicks int) bool {
	return tick >= b.PlacedTick+uint64(gracePeriodTicks)
}

type ProductionCategory uint8

const (
	CatBuilding ProductionCategory = iota
	CatInfantry
	CatVehicle
	CatAir
	catCount
)

func (c ProductionCategory) String() string {
	switch c {
	case CatBuilding:
		return "building"
	case CatInfantry:
		return "infantry"
	case CatVehicle:
		return "vehicle"
	case CatAir:
		return "air"
	default:
		return "unknown"
	}
}

// ---- Well (WELL) ----

type Well struct {
	NextSpawnTick   uint64
	CurrentOreCount int
	TotalSpawned    int
	IsBlocked       bool
}

func (w *Well) Type() ComponentType { return CompWell }

// ---- Air unit (harrier UNIT) ----

type AirFSM uint8

const (
	AirDocked AirFSM = iota
	AirFlying
	AirAttacking
	AirReturning
)

type AirUnit struct {
	Ammo       int
	MaxAmmo    int
	FSMState   AirFSM
	HomeBaseID EntityID
	DockedSlot int
}

func (a *AirUnit) Type() ComponentType { return CompAirUnit }

// ---- Air base (airforce_command BUILDING) ----

const AirBaseSlots = 6

type AirBase struct {
	Slots          [AirBaseSlots]EntityID // zero id = empty slot
	ReloadProgress [AirBaseSlots]int
	LastLaunchTick uint64
}

func (a *AirBase) Type() ComponentType { return CompAirBase }

// ---- Induction rig (deployed rig UNIT -> building) ----

type InductionRig struct {
	WellID               EntityID
	AccumulatedFractional float64
}

func (r *InductionRig) Type() ComponentType { return CompInductionRig }

// ---- Demo truck ----

type DemoTruck struct {
	DetonationTargetID  EntityID
	DetonationTargetPos *Vec2
	HasDetonated        bool
}

func (d *DemoTruck) Type() ComponentType { return CompDemoTruck }
