// Package ai implements the AI planner (spec §4.9): threat assessment,
// investment/strategy selection, economy build-order, emergency
// divestiture, and capture opportunism, run for each AI player once every
// N ticks, staggered by playerId mod N so AI players never all think on
// the same tick.
package ai

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/pathfind"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
	"github.com/egeozcan/unnamed-rts-sub001/engine/systems"
)

// defaultThinkInterval is N from spec §4.9 when a personality doesn't
// override ThinkIntervalTicks.
const defaultThinkInterval = 3

type Strategy uint8

const (
	StrategyExpand Strategy = iota
	StrategyDefend
	StrategyAttack
	StrategyAllIn
)

type Investment uint8

const (
	InvestEconomy Investment = iota
	InvestDefense
	InvestBalanced
	InvestWarfare
)

// strategyChangeCooldown is the minimum ticks between ordinary strategy
// switches (spec §4.9), bypassed only by a panic override.
const strategyChangeCooldown = 300

// Controller holds one AI player's persistent planning state across
// think-ticks (spec §9: AI state lives alongside, not inside, the world).
type Controller struct {
	PlayerID           int
	Strategy           Strategy
	Investment         Investment
	ThreatLevel        float64
	LastStrategyChange uint64
	LastEmergencyTick  uint64
	LastResortTick     uint64
	LastAllInTick      uint64
	EngineersPending   int
}

// Manager runs every AI player's controller (spec §4.9).
type Manager struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Paths   *pathfind.Service
	Bus     *core.EventBus

	controllers map[int]*Controller
}

func NewManager(rules *ruleset.Ruleset, players *core.PlayerManager, paths *pathfind.Service, bus *core.EventBus) *Manager {
	return &Manager{Rules: rules, Players: players, Paths: paths, Bus: bus, controllers: make(map[int]*Controller)}
}

func (m *Manager) controllerFor(playerID int) *Controller {
	c, ok := m.controllers[playerID]
	if !ok {
		c = &Controller{PlayerID: playerID, Investment: InvestEconomy, Strategy: StrategyExpand}
		m.controllers[playerID] = c
	}
	return c
}

func (m *Manager) personality(player *core.Player) *ruleset.AIPersonality {
	key := player.Personality
	if key == "" {
		key = "balanced"
	}
	if p := m.Rules.AIPersonalities[key]; p != nil {
		return p
	}
	for _, p := range m.Rules.AIPersonalities {
		return p
	}
	return &ruleset.AIPersonality{Name: "balanced", HarvesterRatio: 2.0, CreditBuffer: 800, ThinkIntervalTicks: defaultThinkInterval}
}

// Update runs Think for every eligible AI player whose stagger slot lands
// on this tick.
func (m *Manager) Update(w *core.World, scratch *spatial.Scratch, tick uint64) {
	for _, player := range m.Players.Players {
		if !player.IsAI || player.Eliminated {
			continue
		}
		personality := m.personality(player)
		n := uint64(personality.ThinkIntervalTicks)
		if n == 0 {
			n = defaultThinkInterval
		}
		if tick%n != uint64(player.ID)%n {
			continue
		}
		ctrl := m.controllerFor(player.ID)
		m.think(w, scratch, player, ctrl, personality, tick)
	}
}

func (m *Manager) think(w *core.World, scratch *spatial.Scratch, player *core.Player, ctrl *Controller, personality *ruleset.AIPersonality, tick uint64) {
	ctrl.ThreatLevel = assessThreat(w, scratch, m.Players, m.Rules, player.ID)
	updateInvestment(ctrl, player, personality)
	updateStrategy(ctrl, player, tick)

	autoDeployMCVs(w, m.Rules, scratch, m.Paths, m.Players, player, tick, m.Bus)
	placeReadyBuilding(w, m.Rules, scratch, m.Paths, player, tick, m.Bus)
	runEconomy(w, m.Rules, m.Players, player, ctrl, personality)
	runEmergency(w, m.Rules, m.Players, player, ctrl, tick, m.Bus)
	evaluateCaptures(w, scratch, m.Rules, m.Players, player, ctrl)
}

// autoDeployMCVs tries to deploy the first live MCV the player owns,
// wherever it stands, once per think (spec §4.9 "MCV operations");
// DeployMCV refuses when the footprint there is not clear.
func autoDeployMCVs(w *core.World, rules *ruleset.Ruleset, scratch *spatial.Scratch, paths *pathfind.Service, players *core.PlayerManager, player *core.Player, tick uint64, bus *core.EventBus) {
	for _, id := range w.Query(core.CompHeader, core.CompMovement) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID != player.ID {
			continue
		}
		def := rules.Unit(hdr.RuleKey)
		if def == nil || !def.IsMCV {
			continue
		}
		systems.DeployMCV(w, rules, scratch, paths, players, id, tick, bus)
		return
	}
}

// placeReadyBuilding drops a completed building near the player's first
// owned conyard once production has stashed a readyToPlace key (spec §4.7,
// §4.9's economy module driving PLACE_BUILDING).
func placeReadyBuilding(w *core.World, rules *ruleset.Ruleset, scratch *spatial.Scratch, paths *pathfind.Service, player *core.Player, tick uint64, bus *core.EventBus) {
	if player.ReadyToPlaceKey == "" {
		return
	}
	origin, ok := findConYard(w, rules, player.ID)
	if !ok {
		return
	}
	if pos, ok := findPlacementSite(w, rules, scratch, player.ID, player.ReadyToPlaceKey, origin); ok {
		systems.PlaceBuilding(w, rules, scratch, paths, player, pos, tick, bus)
	}
}
