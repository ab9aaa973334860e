// Package sim owns the top-level state tree and the command reducer that
// together implement spec §2's pure `step(state, action) → state'`
// transition: State bundles the world, players, injected ruleset,
// per-tick scratch indices, and the cross-tick carries (in-flight
// projectiles, queued path requests) that the individual systems need but
// must not own themselves (spec §9: "bundle shared mutable state into a
// per-world scratch owned by the scheduler").
package sim

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/ai"
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/pathfind"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
	"github.com/egeozcan/unnamed-rts-sub001/engine/systems"
)

// NeutralTeam is the TeamID value meaning "no team" (only relevant before
// checkWin has run; live players always have their own id as TeamID unless
// explicitly grouped).
const NeutralTeam = core.NeutralPlayer

// State is the complete simulation tree plus the scheduler's private
// carries. Everything except the carries is what a caller would persist.
type State struct {
	World   *core.World
	Players *core.PlayerManager
	Rules   *ruleset.Ruleset
	Bus     *core.EventBus

	Tick        uint64
	WinnerTeam  int
	GameOver    bool

	scratch     *spatial.Scratch
	paths       *pathfind.Service
	ai          *ai.Manager
	projectiles []core.Projectile
	pendingReq  []pathfind.Request

	mapW, mapH, tile, cellSize float64

	movement   *systems.MovementSystem
	harvester  *systems.HarvesterSystem
	combat     *systems.CombatSystem
	projectile *systems.ProjectileSystem
	production *systems.ProductionSystem
	repair     *systems.RepairSystem
	wells      *systems.WellSystem
	induction  *systems.InductionSystem
	air        *systems.AirSystem
	fog        *systems.FogSystem
}

// Config bundles the map geometry needed to size the spatial scratch and
// fog grids (spec §4.2/§4.7, neither is part of the injected Ruleset).
type Config struct {
	MapWidth, MapHeight float64
	ExpectedEntities    int
	PathCacheTTLTicks   int
}

// NewState wires every system against one shared World/Players/Bus,
// mirroring the teacher's single composition root (spec §9: inject the
// ruleset once, forbid writes outside construction).
func NewState(rules *ruleset.Ruleset, players *core.PlayerManager, cfg Config) *State {
	bus := core.NewEventBus()
	w := core.NewWorld()
	tile := rules.Tune.TileSize
	cellSize := rules.Tune.GridCellSize
	scratch := spatial.NewScratch(cfg.MapWidth, cfg.MapHeight, tile, cellSize, cfg.ExpectedEntities)
	paths := pathfind.NewService(rules.Tune.PathCacheTTLTicks)

	s := &State{
		World: w, Players: players, Rules: rules, Bus: bus,
		WinnerTeam: -1,
		scratch:    scratch,
		paths:      paths,
		ai:         ai.NewManager(rules, players, paths, bus),
		mapW:       cfg.MapWidth, mapH: cfg.MapHeight, tile: tile, cellSize: cellSize,

		movement:   &systems.MovementSystem{Rules: rules, Paths: paths, Bus: bus},
		harvester:  &systems.HarvesterSystem{Rules: rules, Players: players, Bus: bus},
		combat:     &systems.CombatSystem{Rules: rules, Players: players, Bus: bus},
		projectile: &systems.ProjectileSystem{Rules: rules, Players: players, Bus: bus},
		production: &systems.ProductionSystem{Rules: rules, Players: players, Bus: bus},
		repair:     &systems.RepairSystem{Rules: rules, Players: players},
		wells:      &systems.WellSystem{Rules: rules, Bus: bus},
		induction:  &systems.InductionSystem{Rules: rules, Players: players, Bus: bus},
		air:        &systems.AirSystem{Rules: rules, Players: players, Bus: bus},
		fog:        systems.NewFogSystem(cfg.MapWidth, cfg.MapHeight, tile, players),
	}
	s.fog.Rules = rules
	return s
}

func (s *State) Scratch() *spatial.Scratch { return s.scratch }
func (s *State) Paths() *pathfind.Service  { return s.paths }
func (s *State) Fog() *systems.FogSystem   { return s.fog }
