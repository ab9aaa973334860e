package spatial

// Scratch bundles every per-tick derived index behind one exclusively-owned
// value (spec §9: "bundle shared mutable state into a per-world scratch
// owned by the scheduler, passed by exclusive reference into each stage; do
// not hide it behind process-wide singletons"). Nothing in here is part of
// persisted state, it is fully rederived from the entity set at the top of
// stage 4 every tick.
type Scratch struct {
	Collision *CollisionGrid
	Danger    *DangerGridSet
	Hash      *SpatialHash
}

func NewScratch(mapW, mapH, tile, cellSize float64, expectedEntities int) *Scratch {
	coll := NewCollisionGrid(mapW, mapH, tile)
	return &Scratch{
		Collision: coll,
		Danger:    NewDangerGridSet(coll.Width(), coll.Height(), tile),
		Hash:      NewSpatialHash(cellSize, expectedEntities),
	}
}

// Rebuild discards the spatial hash (cheap: rebuilt wholesale) and clears
// the collision/danger grids ahead of re-stamping for the new tick. The
// caller (sim's rebuildSpatial) re-populates Collision/Danger/Hash
// immediately after.
func (s *Scratch) Rebuild(cellSize float64, expectedEntities int) {
	s.Collision.Clear()
	s.Danger.Reset()
	s.Hash = NewSpatialHash(cellSize, expectedEntities)
}
