package ruleset

import "github.com/egeozcan/unnamed-rts-sub001/engine/core"

// NewDefaultRuleset builds the built-in RA2-style tech tree (grounded on the
// teacher's systems.NewTechTree/DamageMultiplier, extended with the armor/
// weapon vocabulary and numeric inequalities spec §4.6/§8/S3 call for).
// Ruleset *loading* from disk is out of scope (spec §1); this is the only
// ruleset the simulation ships with.
func NewDefaultRuleset() *Ruleset {
	r := &Ruleset{
		Units:           make(map[string]*UnitDef),
		Buildings:       make(map[string]*BuildingDef),
		Weapons:         make(map[string]*WeaponDef),
		DamageModifiers: make(map[WeaponType]map[ArmorClass]float64),
		AIPersonalities: make(map[string]*AIPersonality),
		Tune:            defaultTunables(),
	}
	addWeapons(r)
	addDamageModifiers(r)
	addUnits(r)
	addBuildings(r)
	addPersonalities(r)
	return r
}

func defaultTunables() Tunables {
	return Tunables{
		TileSize:              40,
		GridCellSize:          200,
		WaypointRadius:        16,
		MinProgressSpeed:      0.05,
		UnstuckTrigger:        20,
		UnstuckBurst:          15,
		RepathThreshold:       30,
		DangerWeight:          6.0,
		PathCacheTTLTicks:     60,
		FleeTimeoutTicks:      90,
		MoveTargetClearRadius: 30,
		GiveUpTicks:           200,
		HarvestRadius:         28,
		DockStandoffRadius:    24,
		BuildRadius:           400,
		BuildingGracePeriod:   300,
		WellSpawnPeriodTicks:  150,
		WellMaxOre:            6,
		InductionEfficiency:   0.8,
		AIStaggerPeriod:       3,
	}
}

func addWeapons(r *Ruleset) {
	r.Weapons["rifle"] = &WeaponDef{
		Name: "Rifle", Type: "bullets", BaseDamage: 6, Range: 140, ReloadTicks: 20,
		Archetype: core.ArchBullet, ProjSpeed: 900,
	}
	r.Weapons["flamer"] = &WeaponDef{
		Name: "Flamethrower", Type: "flamer", BaseDamage: 20, Range: 90, ReloadTicks: 25,
		Archetype: core.ArchBullet, ProjSpeed: 600,
	}
	r.Weapons["rockets"] = &WeaponDef{
		Name: "Rocket Launcher", Type: "rockets", BaseDamage: 40, Range: 180, ReloadTicks: 45,
		Archetype: core.ArchRocket, ProjSpeed: 260, ProjHP: 50, SplashRadius: 30,
	}
	r.Weapons["heavy_cannon"] = &WeaponDef{
		Name: "120mm Cannon", Type: "heavy_cannon", BaseDamage: 120, Range: 200, ReloadTicks: 60,
		Archetype: core.ArchBullet, ProjSpeed: 500, SplashRadius: 40,
	}
	r.Weapons["harrier_rockets"] = &WeaponDef{
		Name: "Air-to-Ground Rockets", Type: "rockets", BaseDamage: 35, Range: 140, ReloadTicks: 40,
		Archetype: core.ArchMissile, ProjSpeed: 320, ProjHP: 30, SplashRadius: 25,
	}
	r.Weapons["demo_charge"] = &WeaponDef{
		Name: "Demolition Charge", Type: "heavy_cannon", BaseDamage: 400, Range: 0, ReloadTicks: 0,
		Archetype: core.ArchArtillery, SplashRadius: 120,
	}
	r.Weapons["sam"] = &WeaponDef{
		Name: "Surface-to-Air Missile", Type: "rockets", BaseDamage: 0, ReloadTicks: 0,
		AAOnly: true, AARadius: 260, AADPS: 35,
	}
}

// addDamageModifiers preserves the published inequalities (spec §4.6, §8
// invariant 5, S3): anti-infantry weapons > 1 vs infantry; bullets ≤ 0.15 vs
// heavy; rockets ≥ 1.0 vs medium/heavy; heavy_cannon ≥ 1.25 vs building.
func addDamageModifiers(r *Ruleset) {
	r.DamageModifiers["bullets"] = map[ArmorClass]float64{
		ArmorInfantry: 1.0, ArmorLight: 0.9, ArmorMedium: 0.5, ArmorHeavy: 0.12, ArmorBuilding: 0.3,
	}
	r.DamageModifiers["flamer"] = map[ArmorClass]float64{
		ArmorInfantry: 1.5, ArmorLight: 1.0, ArmorMedium: 0.6, ArmorHeavy: 0.3, ArmorBuilding: 0.4,
	}
	r.DamageModifiers["rockets"] = map[ArmorClass]float64{
		ArmorInfantry: 0.8, ArmorLight: 1.1, ArmorMedium: 1.2, ArmorHeavy: 1.1, ArmorBuilding: 1.0,
	}
	r.DamageModifiers["heavy_cannon"] = map[ArmorClass]float64{
		ArmorInfantry: 1.0, ArmorLight: 1.0, ArmorMedium: 1.1, ArmorHeavy: 1.0, ArmorBuilding: 1.3,
	}
}

func addUnits(r *Ruleset) {
	r.Units["rifle_infantry"] = &UnitDef{
		Name: "Rifle Infantry", Category: core.CatInfantry, Cost: 200, BuildTimeTicks: 60,
		HP: 125, Armor: ArmorInfantry, Speed: 2.6, Accel: 0.6, MoveClass: core.MoveInfantry,
		VisionRange: 180, WeaponKey: "rifle", AcquireRange: 160,
	}
	r.Units["flame_infantry"] = &UnitDef{
		Name: "Flame Infantry", Category: core.CatInfantry, Cost: 300, BuildTimeTicks: 70,
		HP: 100, Armor: ArmorInfantry, Speed: 2.4, Accel: 0.6, MoveClass: core.MoveInfantry,
		VisionRange: 150, WeaponKey: "flamer", AcquireRange: 110, Prereqs: []string{"barracks"},
	}
	r.Units["rocket_soldier"] = &UnitDef{
		Name: "Rocket Soldier", Category: core.CatInfantry, Cost: 350, BuildTimeTicks: 80,
		HP: 110, Armor: ArmorInfantry, Speed: 2.2, Accel: 0.6, MoveClass: core.MoveInfantry,
		VisionRange: 200, WeaponKey: "rockets", AcquireRange: 200, Prereqs: []string{"barracks"},
	}
	r.Units["engineer"] = &UnitDef{
		Name: "Engineer", Category: core.CatInfantry, Cost: 500, BuildTimeTicks: 60,
		HP: 75, Armor: ArmorInfantry, Speed: 2.4, Accel: 0.6, MoveClass: core.MoveInfantry,
		VisionRange: 140, IsEngineer: true, Prereqs: []string{"barracks"},
	}
	r.Units["harvester"] = &UnitDef{
		Name: "Ore Harvester", Category: core.CatVehicle, Cost: 1400, BuildTimeTicks: 260,
		HP: 600, Armor: ArmorHeavy, Speed: 1.6, Accel: 0.3, MoveClass: core.MoveVehicle,
		VisionRange: 160, IsHarvester: true, HarvesterCapacity: 700, HarvestRate: 14,
		Prereqs: []string{"refinery"},
	}
	r.Units["light_tank"] = &UnitDef{
		Name: "Light Tank", Category: core.CatVehicle, Cost: 700, BuildTimeTicks: 180,
		HP: 400, Armor: ArmorMedium, Speed: 2.2, Accel: 0.4, MoveClass: core.MoveVehicle,
		VisionRange: 200, WeaponKey: "rifle", AcquireRange: 220, Prereqs: []string{"war_factory"},
	}
	r.Units["heavy_tank"] = &UnitDef{
		Name: "Heavy Tank", Category: core.CatVehicle, Cost: 900, BuildTimeTicks: 220,
		HP: 700, Armor: ArmorHeavy, Speed: 1.8, Accel: 0.3, MoveClass: core.MoveVehicle,
		VisionRange: 220, WeaponKey: "heavy_cannon", AcquireRange: 220, Prereqs: []string{"war_factory"},
	}
	r.Units["mammoth_tank"] = &UnitDef{
		Name: "Mammoth Tank", Category: core.CatVehicle, Cost: 1700, BuildTimeTicks: 340,
		HP: 1000, Armor: ArmorHeavy, Speed: 1.2, Accel: 0.2, MoveClass: core.MoveVehicle,
		VisionRange: 220, WeaponKey: "heavy_cannon", AcquireRange: 240, Prereqs: []string{"war_factory", "battle_lab"},
	}
	r.Units["mcv"] = &UnitDef{
		Name: "Mobile Construction Vehicle", Category: core.CatVehicle, Cost: 3000, BuildTimeTicks: 400,
		HP: 1000, Armor: ArmorHeavy, Speed: 1.0, Accel: 0.2, MoveClass: core.MoveVehicle,
		VisionRange: 180, IsMCV: true, Prereqs: []string{"war_factory"},
	}
	r.Units["induction_rig"] = &UnitDef{
		Name: "Induction Rig", Category: core.CatVehicle, Cost: 1200, BuildTimeTicks: 240,
		HP: 450, Armor: ArmorMedium, Speed: 1.4, Accel: 0.3, MoveClass: core.MoveVehicle,
		VisionRange: 160, IsInductionRig: true, Prereqs: []string{"war_factory"},
	}
	r.Units["demo_truck"] = &UnitDef{
		Name: "Demolition Truck", Category: core.CatVehicle, Cost: 1500, BuildTimeTicks: 260,
		HP: 200, Armor: ArmorLight, Speed: 2.0, Accel: 0.4, MoveClass: core.MoveVehicle,
		VisionRange: 160, IsDemoTruck: true, DemoTruckDamage: 400, DemoTruckRadius: 120,
		WeaponKey: "demo_charge", Prereqs: []string{"war_factory"},
	}
	r.Units["harrier"] = &UnitDef{
		Name: "Harrier", Category: core.CatAir, Cost: 1200, BuildTimeTicks: 200,
		HP: 200, Armor: ArmorLight, Speed: 6.0, Accel: 1.0, MoveClass: core.MoveAir,
		VisionRange: 260, WeaponKey: "harrier_rockets", AcquireRange: 260,
		IsAirUnit: true, AirAmmoMax: 2, Prereqs: []string{"airforce_command"},
	}
}

func addBuildings(r *Ruleset) {
	r.Buildings["construction_yard"] = &BuildingDef{
		Name: "Construction Yard", Cost: 0, BuildTimeTicks: 0, HP: 1000, SizeX: 3, SizeY: 3,
		PowerGen: 0, PowerDraw: 0, TechLevel: 0, IsConYard: true,
		CanProduce: []string{"power_plant", "barracks", "refinery", "war_factory", "airforce_command", "sam_site", "battle_lab"},
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 120, RepairCostFraction: 0.3,
	}
	r.Buildings["power_plant"] = &BuildingDef{
		Name: "Power Plant", Cost: 800, BuildTimeTicks: 200, HP: 750, SizeX: 2, SizeY: 2,
		PowerGen: 100, PowerDraw: 0, TechLevel: 0, Prereqs: []string{"construction_yard"},
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 100, RepairCostFraction: 0.3,
	}
	r.Buildings["barracks"] = &BuildingDef{
		Name: "Barracks", Cost: 500, BuildTimeTicks: 160, HP: 500, SizeX: 2, SizeY: 2,
		PowerDraw: 20, TechLevel: 0, Prereqs: []string{"power_plant"},
		CanProduce: []string{"rifle_infantry", "flame_infantry", "rocket_soldier", "engineer"},
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 100, RepairCostFraction: 0.3,
	}
	r.Buildings["refinery"] = &BuildingDef{
		Name: "Ore Refinery", Cost: 2000, BuildTimeTicks: 300, HP: 900, SizeX: 3, SizeY: 3,
		PowerDraw: 30, TechLevel: 0, Prereqs: []string{"power_plant"}, IsRefinery: true,
		DockOffset: core.Vec2{X: 0, Y: 60},
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 140, RepairCostFraction: 0.3,
	}
	r.Buildings["war_factory"] = &BuildingDef{
		Name: "War Factory", Cost: 2000, BuildTimeTicks: 300, HP: 1000, SizeX: 3, SizeY: 3,
		PowerDraw: 50, TechLevel: 1, Prereqs: []string{"refinery"},
		CanProduce: []string{"harvester", "light_tank", "heavy_tank", "mammoth_tank", "mcv", "induction_rig", "demo_truck"},
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 150, RepairCostFraction: 0.3,
	}
	r.Buildings["airforce_command"] = &BuildingDef{
		Name: "Airforce Command HQ", Cost: 1500, BuildTimeTicks: 260, HP: 600, SizeX: 2, SizeY: 2,
		PowerDraw: 40, TechLevel: 1, Prereqs: []string{"war_factory"}, IsAirBase: true,
		CanProduce: []string{"harrier"},
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 120, RepairCostFraction: 0.3,
	}
	r.Buildings["battle_lab"] = &BuildingDef{
		Name: "Battle Lab", Cost: 2500, BuildTimeTicks: 320, HP: 600, SizeX: 2, SizeY: 2,
		PowerDraw: 60, TechLevel: 2, Prereqs: []string{"war_factory", "airforce_command"},
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 160, RepairCostFraction: 0.3,
	}
	r.Buildings["sam_site"] = &BuildingDef{
		Name: "SAM Site", Cost: 600, BuildTimeTicks: 160, HP: 400, SizeX: 1, SizeY: 1,
		PowerDraw: 30, TechLevel: 0, Prereqs: []string{"power_plant"}, IsDefense: true,
		WeaponKey: "sam", DangerRadius: 260,
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 90, RepairCostFraction: 0.3,
	}
	r.Buildings["turret"] = &BuildingDef{
		Name: "Gun Turret", Cost: 600, BuildTimeTicks: 160, HP: 400, SizeX: 1, SizeY: 1,
		PowerDraw: 20, TechLevel: 0, Prereqs: []string{"power_plant"}, IsDefense: true,
		WeaponKey: "heavy_cannon", DangerRadius: 200,
		Sellable: true, SellRefundFraction: 0.5, RepairDurationTicks: 90, RepairCostFraction: 0.3,
	}
}

func addPersonalities(r *Ruleset) {
	r.AIPersonalities["balanced"] = &AIPersonality{
		Name: "balanced", HarvesterRatio: 2.0, CreditBuffer: 800, DefenseInvestment: 0.25,
		BuildOrderPriority: []string{"power_plant", "barracks", "refinery", "war_factory", "airforce_command"},
		UnitPreferences:    map[string]float64{"rifle_infantry": 1.0, "light_tank": 1.2, "heavy_tank": 1.4, "rocket_soldier": 1.1},
		ThinkIntervalTicks: 3,
	}
	r.AIPersonalities["aggressive"] = &AIPersonality{
		Name: "aggressive", HarvesterRatio: 1.5, CreditBuffer: 400, DefenseInvestment: 0.15,
		BuildOrderPriority: []string{"power_plant", "barracks", "refinery", "war_factory"},
		UnitPreferences:    map[string]float64{"heavy_tank": 1.5, "mammoth_tank": 1.3, "rocket_soldier": 1.2},
		ThinkIntervalTicks: 3,
	}
	r.AIPersonalities["turtle"] = &AIPersonality{
		Name: "turtle", HarvesterRatio: 2.5, CreditBuffer: 1500, DefenseInvestment: 0.45,
		BuildOrderPriority: []string{"power_plant", "refinery", "barracks", "war_factory", "airforce_command"},
		UnitPreferences:    map[string]float64{"sam_site": 1.5, "turret": 1.5, "heavy_tank": 1.1},
		ThinkIntervalTicks: 3,
	}
}
