// Package ruleset holds the read-only configuration the simulation core is
// injected with (spec §6: "Ruleset (config input, read-only)"). Loading a
// ruleset from disk is explicitly out of scope (spec §1); this package only
// defines the shape and a built-in default, both assembled in Go, and never
// mutates a Ruleset after construction (design note §9: "inject the
// ruleset as an immutable value; forbid writes outside construction").
package ruleset

import "github.com/egeozcan/unnamed-rts-sub001/engine/core"

// ArmorClass is one of the five armor categories damage modifiers key on
// (spec §4.6).
type ArmorClass uint8

const (
	ArmorInfantry ArmorClass = iota
	ArmorLight
	ArmorMedium
	ArmorHeavy
	ArmorBuilding
	armorClassCount
)

// WeaponType is a free-form key into the damage modifier table, e.g.
// "flamer", "bullets", "rockets", "heavy_cannon" (spec §4.6,
// S3 scenario names). Distinct from Archetype, which is the projectile's
// *behavior* family (hitscan/bullet/rocket/missile/artillery); two weapons
// of different WeaponType can share an Archetype.
type WeaponType string

// WeaponDef describes one weapon's firing behavior (spec §4.6).
type WeaponDef struct {
	Name         string
	Type         WeaponType
	BaseDamage   int
	Range        float64
	ReloadTicks  int
	Archetype    core.Archetype
	ProjSpeed    float64
	ProjHP       int // 0 = non-interceptable
	SplashRadius float64
	AAOnly       bool // true for SAM/AA weapons that only ever fire at projectiles/air
	AARadius     float64
	AADPS        int
}

// UnitDef describes a producible unit (spec §4.7, §6 ruleset tables).
type UnitDef struct {
	Name              string
	Category          core.ProductionCategory
	Cost              int
	BuildTimeTicks    int
	HP                int
	Armor             ArmorClass
	Speed             float64
	Accel             float64
	MoveClass         core.MoveClass
	VisionRange       int
	WeaponKey         string // key into Ruleset.Weapons, "" if unarmed
	AcquireRange      float64
	Prereqs           []string
	IsHarvester       bool
	HarvesterCapacity int
	HarvestRate       int // ore units gathered per tick while harvesting
	IsEngineer        bool
	IsMCV             bool
	IsInductionRig    bool
	IsAirUnit         bool
	AirAmmoMax        int
	IsDemoTruck       bool
	DemoTruckDamage   int
	DemoTruckRadius   float64
}

// BuildingDef describes a placeable building (spec §4.7, §6).
type BuildingDef struct {
	Name               string
	Cost               int
	BuildTimeTicks     int
	HP                 int
	SizeX, SizeY       int
	PowerGen           int
	PowerDraw          int
	TechLevel          int
	Prereqs            []string
	CanProduce         []string
	IsConYard          bool
	IsRefinery         bool
	DockOffset         core.Vec2
	IsDefense          bool
	WeaponKey          string
	DangerRadius       float64 // added to danger grid for enemies (pathfinding cost)
	IsAirBase          bool
	Sellable           bool
	SellRefundFraction float64
	RepairDurationTicks int
	RepairCostFraction  float64 // fraction of cost debited over RepairDurationTicks
}

// AIPersonality is the per-difficulty/faction tuning for the AI planner
// (spec §4.9, §6).
type AIPersonality struct {
	Name              string
	HarvesterRatio    float64 // desired harvesters per refinery
	CreditBuffer      int     // credits kept in reserve before spending on army
	DefenseInvestment float64 // fraction of surplus credits spent on turrets
	BuildOrderPriority []string
	UnitPreferences   map[string]float64 // unit key -> relative weight
	ThinkIntervalTicks int
}

// Tunables collects the numeric constants spec §9 open question 1 flags as
// "vary across call sites and tests", resolved here, once, as ordinary
// ruleset data instead of scattered magic numbers. The chosen values are
// set in defaultTunables (default.go).
type Tunables struct {
	TileSize            float64
	GridCellSize        float64 // spatial hash cell size
	WaypointRadius       float64
	MinProgressSpeed     float64
	UnstuckTrigger       int
	UnstuckBurst         int
	RepathThreshold      int
	DangerWeight         float64
	PathCacheTTLTicks    int
	FleeTimeoutTicks     int
	MoveTargetClearRadius float64
	GiveUpTicks          int
	HarvestRadius        float64
	DockStandoffRadius   float64
	BuildRadius          float64
	BuildingGracePeriod  int
	WellSpawnPeriodTicks int
	WellMaxOre           int
	InductionEfficiency  float64
	AIStaggerPeriod      int
}

// Ruleset is the complete injected configuration.
type Ruleset struct {
	Units           map[string]*UnitDef
	Buildings       map[string]*BuildingDef
	Weapons         map[string]*WeaponDef
	DamageModifiers map[WeaponType]map[ArmorClass]float64
	AIPersonalities map[string]*AIPersonality
	Tune            Tunables
}

// DamageModifier returns the multiplier for a weapon type against an armor
// class, defaulting to 1.0 for unconfigured combinations.
func (r *Ruleset) DamageModifier(wt WeaponType, ac ArmorClass) float64 {
	if row, ok := r.DamageModifiers[wt]; ok {
		if m, ok := row[ac]; ok {
			return m
		}
	}
	return 1.0
}

func (r *Ruleset) Weapon(key string) *WeaponDef   { return r.Weapons[key] }
func (r *Ruleset) Unit(key string) *UnitDef       { return r.Units[key] }
func (r *Ruleset) Building(key string) *BuildingDef { return r.Buildings[key] }
