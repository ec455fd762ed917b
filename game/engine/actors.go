package engine

// Default hit points given to actors when a map does not override them.
const (
	DefaultPlayerHitPoints float32 = 3
	DefaultEnemyHitPoints  float32 = 1
)

// Glyphs used by the stock actors.
const (
	BanditGlyph   = 'B'
	MountainGlyph = '#'
	WaterGlyph    = '~'
)

// NewPlayer returns the player for slot at coord.
func NewPlayer(slot int32, coord Coordinate, hp float32) Entity {
	return Entity{Coord: coord, Type: PlayerType(slot), Health: HitPoints(hp)}
}

// NewBandit returns an enemy bandit at coord.
func NewBandit(coord Coordinate, hp float32) Entity {
	return Entity{Coord: coord, Type: EnemyType(BanditGlyph), Health: HitPoints(hp)}
}

// NewMountain returns an impassable obstacle at coord.
func NewMountain(coord Coordinate) Entity {
	return Entity{Coord: coord, Type: ObstacleType(MountainGlyph)}
}

// NewWater returns a water hole at coord.
func NewWater(coord Coordinate) Entity {
	return Entity{Coord: coord, Type: HoleType(WaterGlyph)}
}
