package core

import (
	"bytes"
	"encoding/binary"

	"github.com/google/uuid"
)

// EntityID is a stable opaque identifier for an entity, a well, a building,
// a projectile, anything the world tracks. It is a UUID rather than a bare
// integer so that "opaque identifier" (spec data model) is actually true:
// nothing about the id's shape should be load-bearing outside this package.
type EntityID uuid.UUID

// ZeroID is the id returned for "no entity"/"no target", never a live id,
// since live ids are always derived from a nonzero counter.
var ZeroID EntityID

// idNamespace seeds the deterministic id derivation. Any fixed value works;
// it only needs to be stable across runs of this binary.
var idNamespace = uuid.MustParse("8f14e45f-ceea-367a-9d43-6f7e1e4e7a5d")

// IDGenerator produces deterministic, monotonically-derived entity ids.
// Unlike uuid.New() (crypto-random), two worlds fed the same sequence of
// ticks/commands derive the exact same ids in the exact same order, which
// is required for bit-identical replay (spec §6, §8 round-trip property).
type IDGenerator struct {
	counter uint64
}

// Next returns the next id in the sequence.
func (g *IDGenerator) Next() EntityID {
	g.counter++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], g.counter)
	return EntityID(uuid.NewSHA1(idNamespace, buf[:]))
}

// Counter reports how many ids have been minted so far (for persistence).
func (g *IDGenerator) Counter() uint64 { return g.counter }

// Restore resets the generator to resume minting after counter n (used when
// rehydrating a saved state so newly-created entities keep matching ids).
func (g *IDGenerator) Restore(n uint64) { g.counter = n }

func (id EntityID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the sentinel "no entity" value.
func (id EntityID) IsZero() bool { return id == ZeroID }

// Less gives entity ids a total order so tie-breaks between simultaneous
// claims (e.g. two harvesters targeting the same ore the same tick) are
// deterministic rather than dependent on map/slice iteration accidents.
func (id EntityID) Less(other EntityID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}
