package pathfind

import (
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/spatial"
)

// RadiusClass buckets an entity's collision radius into a small number of
// traversability classes so path cache keys (spec §4.3: "keyed by
// (startTile, goalTile, radiusClass, playerId)") stay finite.
type RadiusClass uint8

const (
	RadiusInfantry RadiusClass = iota
	RadiusVehicle
	RadiusHeavy
)

// RadiusClassOf buckets a world-space collision radius.
func RadiusClassOf(r float64) RadiusClass {
	switch {
	case r <= 10:
		return RadiusInfantry
	case r <= 18:
		return RadiusVehicle
	default:
		return RadiusHeavy
	}
}

func (c RadiusClass) tileRadius() int {
	switch c {
	case RadiusInfantry:
		return 0
	case RadiusVehicle:
		return 1
	default:
		return 2
	}
}

// NavGrid is the A*-facing view over a tick's collision and danger grids
// (spec §4.3). It never owns the grids, it is a thin, cheaply-constructed
// adapter rebuilt each time a path request is served.
type NavGrid struct {
	collision   *spatial.CollisionGrid
	danger      *spatial.DangerGrid
	dangerW     float64
	tileRadius  int
}

// NewNavGrid builds a view for a specific requester: dangerGrid is the
// grid the requester's own player must avoid (the danger stamped by
// enemies), radius picks how many neighboring tiles must also be clear.
func NewNavGrid(collision *spatial.CollisionGrid, danger *spatial.DangerGrid, tune ruleset.Tunables, radius RadiusClass) *NavGrid {
	return &NavGrid{
		collision:  collision,
		danger:     danger,
		dangerW:    tune.DangerWeight,
		tileRadius: radius.tileRadius(),
	}
}

func (ng *NavGrid) Width() int  { return ng.collision.Width() }
func (ng *NavGrid) Height() int { return ng.collision.Height() }

// Passable reports whether a cell and the cells within the requester's
// radius are all clear (spec §4.3 traversability rule).
func (ng *NavGrid) Passable(x, y int) bool {
	if ng.collision.Blocked(x, y) {
		return false
	}
	return ng.collision.TraversableWithRadius(x, y, ng.tileRadius)
}

// Cost returns 1 (base tile cost) plus the danger-weighted penalty for the
// cell (spec §4.3: "base 1 per tile; add DANGER_WEIGHT × dangerGrid[cell]").
func (ng *NavGrid) Cost(x, y int) float64 {
	base := 1.0
	if ng.danger != nil {
		base += ng.dangerW * ng.danger.CostAt(x, y)
	}
	return base
}
