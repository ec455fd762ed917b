package engine

import "fmt"

// EntityID identifies an entity inside a World. IDs are assigned by
// World.Register and never change afterwards.
type EntityID int32

// NoEntity is never assigned to a registered entity.
const NoEntity EntityID = 0

// Kind is the closed set of entity variants.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindEnemy
	KindObstacle
	KindHole
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindObstacle:
		return "obstacle"
	case KindHole:
		return "hole"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// EntityType tags an entity. Players carry a slot number, every other kind
// carries the glyph it is drawn with.
type EntityType struct {
	Kind  Kind  `json:"kind"`
	Slot  int32 `json:"slot,omitempty"`
	Glyph rune  `json:"glyph,omitempty"`
}

// PlayerType returns the type of the player controlling the given slot.
func PlayerType(slot int32) EntityType {
	return EntityType{Kind: KindPlayer, Slot: slot}
}

// EnemyType returns an enemy type drawn with glyph.
func EnemyType(glyph rune) EntityType {
	return EntityType{Kind: KindEnemy, Glyph: glyph}
}

// ObstacleType returns an obstacle type drawn with glyph. Obstacles block
// movement and line of sight.
func ObstacleType(glyph rune) EntityType {
	return EntityType{Kind: KindObstacle, Glyph: glyph}
}

// HoleType returns a hole type drawn with glyph. Holes block movement but
// not line of sight.
func HoleType(glyph rune) EntityType {
	return EntityType{Kind: KindHole, Glyph: glyph}
}

// Symbol returns the character that represents the type on a text map.
func (t EntityType) Symbol() rune {
	if t.Kind == KindPlayer {
		return rune('0' + t.Slot)
	}
	return t.Glyph
}

func (t EntityType) String() string {
	if t.Kind == KindPlayer {
		return fmt.Sprintf("player(%d)", t.Slot)
	}
	return fmt.Sprintf("%s(%c)", t.Kind, t.Glyph)
}

// Health is an optional hit point pool. The zero value is invulnerable:
// damage has no effect on it.
type Health struct {
	Points float32 `json:"points"`
	Mortal bool    `json:"mortal"`
}

// HitPoints returns a mortal Health with the given points.
func HitPoints(points float32) Health {
	return Health{Points: points, Mortal: true}
}

// Entity is a uniquely identified world object. Entities have value
// semantics: the With* helpers and TakeDamage return updated copies.
type Entity struct {
	ID     EntityID   `json:"id"`
	Coord  Coordinate `json:"coord"`
	Type   EntityType `json:"type"`
	Health Health     `json:"health"`
}

// NewEntity returns an enemy-typed entity at coord, with no hit points.
func NewEntity(id EntityID, coord Coordinate) Entity {
	return Entity{ID: id, Coord: coord, Type: EnemyType('e')}
}

// WithCoordinate returns a copy placed at coord.
func (e Entity) WithCoordinate(coord Coordinate) Entity {
	e.Coord = coord
	return e
}

// WithID returns a copy carrying id.
func (e Entity) WithID(id EntityID) Entity {
	e.ID = id
	return e
}

// WithHealth returns a copy carrying h.
func (e Entity) WithHealth(h Health) Entity {
	e.Health = h
	return e
}

// TakeDamage returns a copy with amount subtracted from its hit points.
// Entities without hit points are returned unchanged.
func (e Entity) TakeDamage(amount float32) Entity {
	if !e.Health.Mortal {
		return e
	}
	e.Health.Points -= amount
	return e
}

// IsDead reports whether a mortal entity ran out of hit points.
func (e Entity) IsDead() bool {
	return e.Health.Mortal && e.Health.Points <= 0
}

// IsTargetable reports whether a controller ray-cast may pick the entity as
// an attack target.
func (e Entity) IsTargetable() bool {
	return e.Type.Kind == KindPlayer || e.Type.Kind == KindEnemy
}

func (e Entity) String() string {
	return fmt.Sprintf("#%d %s at %s", e.ID, e.Type, e.Coord)
}
