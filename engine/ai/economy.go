package ai

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
	"github.com/egeozcan/unnamed-rts-sub001/engine/systems"
)

// maxRefineries caps expansion so an AI doesn't sink its whole economy into
// ore processing (spec §4.9).
const maxRefineries = 4

// placementOffsets are tile-sized rings around a conyard tried in order
// until one clears CanPlaceBuilding, grounded on the teacher's
// ownproduction.go placement-offset search, generalized to our tile size.
var placementOffsets = []core.Vec2{
	{X: -120, Y: 0}, {X: 160, Y: 0}, {X: 0, Y: -120}, {X: 0, Y: 160},
	{X: -120, Y: -120}, {X: 160, Y: 160}, {X: -120, Y: 160}, {X: 160, Y: -120},
	{X: -240, Y: 0}, {X: 280, Y: 0}, {X: 0, Y: -240}, {X: 0, Y: 280},
}

type buildingCounts struct {
	byKey     map[string]int
	refiners  int
	harvesters int
}

func countOwned(w *core.World, rules *ruleset.Ruleset, playerID int) buildingCounts {
	c := buildingCounts{byKey: make(map[string]int)}
	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID || w.Pending(id) {
			continue
		}
		c.byKey[hdr.RuleKey]++
		if def := rules.Building(hdr.RuleKey); def != nil && def.IsRefinery {
			c.refiners++
		}
	}
	for _, id := range w.Query(core.CompHeader, core.CompHarvester) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if !hdr.Dead() && hdr.OwnerPlayerID == playerID {
			c.harvesters++
		}
	}
	return c
}

// runEconomy implements spec §4.9's economy module: build order, refinery
// cap, harvester ratio, surplus defense and surplus production, at most one
// START_BUILD per category plus one unit per producing building per tick.
func runEconomy(w *core.World, rules *ruleset.Ruleset, players *core.PlayerManager, player *core.Player, ctrl *Controller, personality *ruleset.AIPersonality) {
	counts := countOwned(w, rules, player.ID)
	if counts.byKey["construction_yard"] == 0 {
		return
	}

	buildingQ := player.Queue(core.CatBuilding)
	if buildingQ.Current == "" {
		if key, ok := nextBuildOrderItem(rules, personality, counts, player); ok {
			systems.StartBuild(player, core.CatBuilding, key)
			return
		}
		if key, ok := surplusBuilding(rules, ctrl, counts, player); ok {
			systems.StartBuild(player, core.CatBuilding, key)
			return
		}
	}

	desiredHarvesters := int(float64(counts.refiners) * personality.HarvesterRatio)
	if counts.harvesters < desiredHarvesters {
		queueOneUnit(player, rules, core.CatVehicle, "harvester")
	}

	if ctrl.Investment == InvestWarfare || ctrl.Strategy == StrategyAttack {
		queuePreferredUnit(player, rules, personality, core.CatVehicle)
		queuePreferredUnit(player, rules, personality, core.CatInfantry)
	}
}

// nextBuildOrderItem walks the personality's BuildOrderPriority list and
// returns the first prerequisite-satisfied, not-yet-built entry (spec
// §4.9: "builds barracks before factory").
func nextBuildOrderItem(rules *ruleset.Ruleset, personality *ruleset.AIPersonality, counts buildingCounts, player *core.Player) (string, bool) {
	for _, key := range personality.BuildOrderPriority {
		if counts.byKey[key] > 0 {
			continue
		}
		def := rules.Building(key)
		if def == nil || player.Credits < def.Cost {
			continue
		}
		if !hasPrereqs(counts, def.Prereqs) {
			continue
		}
		if def.IsRefinery && counts.refiners >= maxRefineries {
			continue
		}
		return key, true
	}
	return "", false
}

// surplusBuilding handles the post-build-order phase: defense investment
// then extra production structures (factory, barracks, airforce_command),
// in that order (spec §4.9).
func surplusBuilding(rules *ruleset.Ruleset, ctrl *Controller, counts buildingCounts, player *core.Player) (string, bool) {
	if ctrl.Investment == InvestDefense || ctrl.ThreatLevel >= 35 {
		for _, key := range []string{"turret", "sam_site"} {
			def := rules.Building(key)
			if def == nil || player.Credits < def.Cost || !hasPrereqs(counts, def.Prereqs) {
				continue
			}
			return key, true
		}
	}
	for _, key := range []string{"war_factory", "barracks", "airforce_command"} {
		def := rules.Building(key)
		if def == nil || player.Credits < def.Cost || !hasPrereqs(counts, def.Prereqs) {
			continue
		}
		if counts.byKey[key] >= 2 {
			continue
		}
		return key, true
	}
	return "", false
}

func hasPrereqs(counts buildingCounts, prereqs []string) bool {
	for _, p := range prereqs {
		if counts.byKey[p] == 0 {
			return false
		}
	}
	return true
}

func queueOneUnit(player *core.Player, rules *ruleset.Ruleset, cat core.ProductionCategory, key string) {
	def := rules.Unit(key)
	if def == nil || player.Credits < def.Cost {
		return
	}
	q := player.Queue(cat)
	if q.Current == "" {
		systems.StartBuild(player, cat, key)
	}
}

// queuePreferredUnit picks the highest-weighted affordable unit in the
// personality's UnitPreferences table for the category (spec §6's
// unit_preferences).
func queuePreferredUnit(player *core.Player, rules *ruleset.Ruleset, personality *ruleset.AIPersonality, cat core.ProductionCategory) {
	q := player.Queue(cat)
	if q.Current != "" {
		return
	}
	best := ""
	bestWeight := -1.0
	for key, weight := range personality.UnitPreferences {
		def := rules.Unit(key)
		if def == nil || def.Category != cat || player.Credits < def.Cost {
			continue
		}
		if weight > bestWeight {
			bestWeight = weight
			best = key
		}
	}
	if best != "" {
		systems.StartBuild(player, cat, best)
	}
}

func findConYard(w *core.World, rules *ruleset.Ruleset, playerID int) (core.Vec2, bool) {
	for _, id := range w.Query(core.CompHeader, core.CompBuildingState) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != playerID || w.Pending(id) {
			continue
		}
		if def := rules.Building(hdr.RuleKey); def != nil && def.IsConYard {
			return hdr.Pos, true
		}
	}
	return core.Vec2{}, false
}

// findPlacementSite tries successive rings around origin until
// CanPlaceBuilding accepts one (spec §4.7 feasibility rules).
func findPlacementSite(w *core.World, rules *ruleset.Ruleset, scratch *spatial.Scratch, playerID int, key string, origin core.Vec2) (core.Vec2, bool) {
	for _, off := range placementOffsets {
		pos := origin.Add(off)
		if systems.CanPlaceBuilding(w, rules, scratch, playerID, key, pos) {
			return pos, true
		}
	}
	return core.Vec2{}, false
}
