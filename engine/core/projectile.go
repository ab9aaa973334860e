package core

// Archetype names a projectile behavior family (spec §4.6 table).
type Archetype uint8

const (
	ArchHitscan Archetype = iota
	ArchBullet
	ArchRocket
	ArchMissile
	ArchArtillery
)

// Projectile is NOT a regular ECS entity, spec §3 files it under
// "per-tick global scratch," not the entity set, since it has no owner
// footprint, fog-of-war vision, or production relevance. It still gets an
// EntityID (from the same deterministic generator) so interception and hit
// resolution can refer to it uniformly with everything else.
type Projectile struct {
	ID         EntityID
	SourceID   EntityID
	TargetID   EntityID
	OwnerID    int
	Archetype  Archetype
	Pos        Vec2
	TargetPos  Vec2 // refreshed from TargetID's position each tick when homing
	Speed      float64
	HP         int // 0 = non-interceptable (hitscan/bullet)
	Damage     int
	WeaponType string
	Splash     float64
	ArcHeight  float64 // artillery only, cosmetic
	Dead       bool
}

func (p *Projectile) Interceptable() bool { return p.HP > 0 }
