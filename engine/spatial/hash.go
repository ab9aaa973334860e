package spatial

import (
	"encoding/binary"
	"math"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
)

// SpatialHash partitions the world into fixed-size cells and maps each cell
// to the live entities whose bounding circle overlaps it (spec §4.2). It is
// discarded and rebuilt at the top of every tick, never mutated
// incrementally mid-tick (spec §5: "intra-tick position changes do not
// update the grid").
//
// Cell coordinates are packed into a single int64 and hashed with xxhash
// before being used as the intintmap key, which only accepts int64s and
// gives us an allocation-free home for what would otherwise be a
// map[int64][]core.EntityID.
type SpatialHash struct {
	cellSize float64
	index    *intintmap.Map
	buckets  [][]entry
}

type entry struct {
	id   core.EntityID
	x, y float64
	r    float64
}

func NewSpatialHash(cellSize float64, expectedEntities int) *SpatialHash {
	return &SpatialHash{
		cellSize: cellSize,
		index:    intintmap.New(expectedEntities*2+16, 0.6),
		buckets:  make([][]entry, 0, expectedEntities/4+8),
	}
}

func (h *SpatialHash) cellCoord(x, y float64) (int32, int32) {
	return int32(math.Floor(x / h.cellSize)), int32(math.Floor(y / h.cellSize))
}

func (h *SpatialHash) cellKey(cx, cy int32) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(cx))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(cy))
	return int64(xxhash.Sum64(buf[:]))
}

func (h *SpatialHash) bucketFor(cx, cy int32) int {
	key := h.cellKey(cx, cy)
	if idx, ok := h.index.Get(key); ok {
		return int(idx)
	}
	idx := len(h.buckets)
	h.buckets = append(h.buckets, nil)
	h.index.Put(key, int64(idx))
	return idx
}

// Insert registers an entity's bounding circle; Scratch.Rebuild (in
// scratch.go) discards the hash once per tick and sim's rebuildSpatial
// reinserts every live entity.
func (h *SpatialHash) Insert(id core.EntityID, x, y, r float64) {
	minCX, minCY := h.cellCoord(x-r, y-r)
	maxCX, maxCY := h.cellCoord(x+r, y+r)
	e := entry{id: id, x: x, y: y, r: r}
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			b := h.bucketFor(cx, cy)
			h.buckets[b] = append(h.buckets[b], e)
		}
	}
}

// QueryCircle is the broad-phase query of spec §4.2: callers refine by
// exact distance themselves.
func (h *SpatialHash) QueryCircle(x, y, r float64) []core.EntityID {
	minCX, minCY := h.cellCoord(x-r, y-r)
	maxCX, maxCY := h.cellCoord(x+r, y+r)
	seen := make(map[core.EntityID]bool)
	var out []core.EntityID
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			key := h.cellKey(cx, cy)
			idx, ok := h.index.Get(key)
			if !ok {
				continue
			}
			for _, e := range h.buckets[idx] {
				if seen[e.id] {
					continue
				}
				seen[e.id] = true
				out = append(out, e.id)
			}
		}
	}
	return out
}

// FindNearest returns the closest entity within rMax satisfying predicate,
// or the zero value and false if none qualifies.
func (h *SpatialHash) FindNearest(x, y, rMax float64, predicate func(core.EntityID) bool) (core.EntityID, bool) {
	candidates := h.QueryCircle(x, y, rMax)
	best := core.ZeroID
	bestDist := math.MaxFloat64
	found := false
	for _, id := range candidates {
		if !predicate(id) {
			continue
		}
		e := h.entryOf(id, x, y)
		d := math.Hypot(e.x-x, e.y-y)
		if d <= rMax && d < bestDist {
			bestDist = d
			best = id
			found = true
		}
	}
	return best, found
}

// entryOf re-derives an entity's stored position: it scans the 3x3 cells
// around (nearX,nearY) first and then every bucket, since a query wider
// than one cell returns candidates from outside that ring. The query point
// itself comes back only for an id the hash does not hold.
func (h *SpatialHash) entryOf(id core.EntityID, nearX, nearY float64) entry {
	cx, cy := h.cellCoord(nearX, nearY)
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			key := h.cellKey(cx+dx, cy+dy)
			idx, ok := h.index.Get(key)
			if !ok {
				continue
			}
			for _, e := range h.buckets[idx] {
				if e.id == id {
					return e
				}
			}
		}
	}
	for _, b := range h.buckets {
		for _, e := range b {
			if e.id == id {
				return e
			}
		}
	}
	return entry{id: id, x: nearX, y: nearY}
}

// QueryEnemiesInRadius returns live entities within r of (x,y) owned by a
// non-neutral player that allied does not report as an ally of playerId
// (spec §4.2: "neutrals excluded"). ownerOf resolves an entity's owning
// player.
func (h *SpatialHash) QueryEnemiesInRadius(x, y, r float64, playerID int, ownerOf func(core.EntityID) int, allied func(a, b int) bool) []core.EntityID {
	all := h.QueryCircle(x, y, r)
	out := all[:0:0]
	for _, id := range all {
		owner := ownerOf(id)
		if owner == core.NeutralPlayer {
			continue
		}
		if allied(owner, playerID) {
			continue
		}
		e := h.entryOf(id, x, y)
		if math.Hypot(e.x-x, e.y-y) <= r {
			out = append(out, id)
		}
	}
	return out
}
