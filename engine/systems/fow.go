package systems

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
)

// buildingVisionTiles is the flat vision radius granted by any owned
// building, the ruleset only tables per-unit vision (spec §4.7's building
// table has no visionRange column), so structures get one fixed value.
const buildingVisionTiles = 6

// FogState is the per-tile, per-player visibility classification.
type FogState uint8

const (
	FogShroud   FogState = iota // never seen
	FogExplored                 // seen before, not now
	FogVisible                  // currently visible
)

// FogOfWar is one player's tile-grid visibility memory.
type FogOfWar struct {
	Width, Height int
	Grid          []FogState
}

func NewFogOfWar(w, h int) *FogOfWar {
	return &FogOfWar{Width: w, Height: h, Grid: make([]FogState, w*h)}
}

func (f *FogOfWar) At(x, y int) FogState {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return FogShroud
	}
	return f.Grid[y*f.Width+x]
}

func (f *FogOfWar) IsVisible(x, y int) bool { return f.At(x, y) == FogVisible }

// FogSystem recomputes every player's fog grid each tick (spec §2 stage 9:
// "housekeeping: ... fog-of-war update").
type FogSystem struct {
	Rules   *ruleset.Ruleset
	Players *core.PlayerManager
	Fogs    map[int]*FogOfWar
	tile    float64
}

func NewFogSystem(mapW, mapH, tile float64, pm *core.PlayerManager) *FogSystem {
	w := int(mapW/tile) + 1
	h := int(mapH/tile) + 1
	fs := &FogSystem{Players: pm, Fogs: make(map[int]*FogOfWar), tile: tile}
	for _, p := range pm.Players {
		fs.Fogs[p.ID] = NewFogOfWar(w, h)
	}
	return fs
}

func (s *FogSystem) Update(w *core.World) {
	for _, fog := range s.Fogs {
		for i := range fog.Grid {
			if fog.Grid[i] == FogVisible {
				fog.Grid[i] = FogExplored
			}
		}
	}

	for _, id := range w.Query(core.CompHeader) {
		hdr := w.Get(id, core.CompHeader).(*core.Header)
		if hdr.Dead() || hdr.OwnerPlayerID == core.NeutralPlayer {
			continue
		}
		r := s.visionTiles(w, id, hdr)
		if r <= 0 {
			continue
		}
		cx, cy := int(hdr.Pos.X / s.tile), int(hdr.Pos.Y / s.tile)

		for _, p := range s.Players.Players {
			if p.ID != hdr.OwnerPlayerID && !s.Players.AreAllies(hdr.OwnerPlayerID, p.ID) {
				continue
			}
			fog := s.Fogs[p.ID]
			if fog == nil {
				continue
			}
			s.reveal(fog, cx, cy, r)
		}
	}
}

func (s *FogSystem) visionTiles(w *core.World, id core.EntityID, hdr *core.Header) int {
	switch w.Kind(id) {
	case core.KindUnit:
		if def := s.Rules.Unit(hdr.RuleKey); def != nil {
			return def.VisionRange
		}
	case core.KindBuilding:
		return buildingVisionTiles
	}
	return 0
}

func (s *FogSystem) reveal(fog *FogOfWar, cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			tx, ty := cx+dx, cy+dy
			if tx >= 0 && ty >= 0 && tx < fog.Width && ty < fog.Height {
				fog.Grid[ty*fog.Width+tx] = FogVisible
			}
		}
	}
}
