// Package spatial implements the tick's rebuilt-every-tick scratch indices:
// the dense collision grid, per-player danger grids, and the 200-unit
// spatial hash (spec §4.2, §9 "bundle shared mutable state into a per-world
// scratch owned by the scheduler"). None of it survives across a serialize/
// deserialize boundary, it is derived fresh from the entity set at the top
// of every TICK.
package spatial

import "math"

// CollisionGrid is a dense byte grid over the map, TILE units per cell
// (spec §4.2). A nonzero cell is blocked by a live building footprint.
type CollisionGrid struct {
	tile         float64
	w, h         int // tile counts
	mapW, mapH   float64
	cells        []byte
}

func NewCollisionGrid(mapW, mapH, tile float64) *CollisionGrid {
	w := int(math.Ceil(mapW / tile))
	h := int(math.Ceil(mapH / tile))
	return &CollisionGrid{
		tile: tile, w: w, h: h, mapW: mapW, mapH: mapH,
		cells: make([]byte, w*h),
	}
}

func (g *CollisionGrid) Width() int  { return g.w }
func (g *CollisionGrid) Height() int { return g.h }
func (g *CollisionGrid) Tile() float64 { return g.tile }

// Clear zeroes the whole grid; called at the start of the rebuild stage.
func (g *CollisionGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}

func (g *CollisionGrid) inBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < g.w && ty < g.h
}

// Blocked reports whether the given tile is occupied. Out-of-bounds tiles
// are treated as blocked so pathfinding never walks off the map.
func (g *CollisionGrid) Blocked(tx, ty int) bool {
	if !g.inBounds(tx, ty) {
		return true
	}
	return g.cells[ty*g.w+tx] != 0
}

func (g *CollisionGrid) idx(tx, ty int) int { return ty*g.w + tx }

// WorldToTile converts a world-space coordinate to tile indices.
func (g *CollisionGrid) WorldToTile(x, y float64) (int, int) {
	return int(x / g.tile), int(y / g.tile)
}

// TileCenter returns the world-space center of a tile.
func (g *CollisionGrid) TileCenter(tx, ty int) (float64, float64) {
	return (float64(tx) + 0.5) * g.tile, (float64(ty) + 0.5) * g.tile
}

// StampAABB marks every tile overlapped by the axis-aligned box as blocked
// (building footprint stamping, spec §4.2/§4.7).
func (g *CollisionGrid) StampAABB(x, y, w, h float64) {
	minTX, minTY := g.WorldToTile(x-w/2, y-h/2)
	maxTX, maxTY := g.WorldToTile(x+w/2, y+h/2)
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			if g.inBounds(tx, ty) {
				g.cells[g.idx(tx, ty)] = 1
			}
		}
	}
}

// Overlaps reports whether the AABB overlaps any already-blocked tile,
// used by PLACE_BUILDING feasibility checks (spec §4.7) before stamping.
func (g *CollisionGrid) Overlaps(x, y, w, h float64) bool {
	minTX, minTY := g.WorldToTile(x-w/2, y-h/2)
	maxTX, maxTY := g.WorldToTile(x+w/2, y+h/2)
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			if g.Blocked(tx, ty) {
				return true
			}
		}
	}
	return false
}

// TraversableWithRadius reports whether a tile and its surrounding tiles
// within radiusTiles of it are all clear (spec §4.3: "surrounding cells
// within the requested entity radius are clear").
func (g *CollisionGrid) TraversableWithRadius(tx, ty, radiusTiles int) bool {
	for dy := -radiusTiles; dy <= radiusTiles; dy++ {
		for dx := -radiusTiles; dx <= radiusTiles; dx++ {
			if g.Blocked(tx+dx, ty+dy) {
				return false
			}
		}
	}
	return true
}

// ClampToBounds clamps a world position so a circle of the given radius
// stays within the map (spec §8 invariant 6).
func (g *CollisionGrid) ClampToBounds(x, y, radius float64) (float64, float64) {
	if x < radius {
		x = radius
	}
	if y < radius {
		y = radius
	}
	if x > g.mapW-radius {
		x = g.mapW - radius
	}
	if y > g.mapH-radius {
		y = g.mapH - radius
	}
	return x, y
}
