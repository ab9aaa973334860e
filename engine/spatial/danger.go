package spatial

import "math"

// DangerGrid tracks, per player, the aggregated enemy defense coverage
// added to pathfinding cost (spec §4.2, §4.3, glossary "danger grid"). It
// shares the tile layout of the CollisionGrid it was built alongside.
type DangerGrid struct {
	tile  float64
	w, h  int
	cells []float64
}

func NewDangerGrid(w, h int, tile float64) *DangerGrid {
	return &DangerGrid{tile: tile, w: w, h: h, cells: make([]float64, w*h)}
}

func (d *DangerGrid) Clear() {
	for i := range d.cells {
		d.cells[i] = 0
	}
}

func (d *DangerGrid) inBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < d.w && ty < d.h
}

// StampTurret adds a coverage penalty to every tile within worldRadius of
// the turret's world-space center (spec §4.2: "sum of penalties per
// covering turret"); penalty falls off linearly with distance so the very
// edge of a turret's range reads as only mildly dangerous.
func (d *DangerGrid) StampTurret(cx, cy, worldRadius, weight float64) {
	if worldRadius <= 0 || weight <= 0 {
		return
	}
	minTX := int((cx - worldRadius) / d.tile)
	minTY := int((cy - worldRadius) / d.tile)
	maxTX := int((cx + worldRadius) / d.tile)
	maxTY := int((cy + worldRadius) / d.tile)
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			if !d.inBounds(tx, ty) {
				continue
			}
			wx := (float64(tx) + 0.5) * d.tile
			wy := (float64(ty) + 0.5) * d.tile
			dist := math.Hypot(wx-cx, wy-cy)
			if dist > worldRadius {
				continue
			}
			falloff := 1.0 - dist/worldRadius
			d.cells[ty*d.w+tx] += weight * falloff
		}
	}
}

// CostAt returns the accumulated danger weight for a tile, 0 outside bounds.
func (d *DangerGrid) CostAt(tx, ty int) float64 {
	if !d.inBounds(tx, ty) {
		return 0
	}
	return d.cells[ty*d.w+tx]
}

// DangerGridSet holds one DangerGrid per player, rebuilt every tick from
// live defense buildings (spec §2 stage 4).
type DangerGridSet struct {
	tile    float64
	w, h    int
	grids   map[int]*DangerGrid
}

func NewDangerGridSet(w, h int, tile float64) *DangerGridSet {
	return &DangerGridSet{tile: tile, w: w, h: h, grids: make(map[int]*DangerGrid)}
}

func (s *DangerGridSet) Reset() {
	for _, g := range s.grids {
		g.Clear()
	}
}

// For returns (creating if necessary) the danger grid playerId must avoid,
// i.e. the grid stamped by the defenses of every player not allied with
// playerId.
func (s *DangerGridSet) For(playerID int) *DangerGrid {
	g, ok := s.grids[playerID]
	if !ok {
		g = NewDangerGrid(s.w, s.h, s.tile)
		s.grids[playerID] = g
	}
	return g
}
