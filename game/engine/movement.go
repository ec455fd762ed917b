package engine

// ProcessMove applies a move against the world. On failure the world is left
// untouched.
func ProcessMove(world *World, action MoveAction) error {
	entity, err := getEntity(world, action.EntityID)
	if err != nil {
		return err
	}

	if action.Direction.IsZero() {
		return nil
	}

	newCoord := entity.Coord.Add(action.Direction)

	if err := checkInsideWorld(world, newCoord); err != nil {
		return err
	}
	if err := checkPositionAvailable(world, newCoord); err != nil {
		return err
	}

	world.UpdateEntity(entity.WithCoordinate(newCoord))
	return nil
}

// CanMove reports whether the entity could step in direction right now. It
// runs the same checks as ProcessMove without changing the world.
func CanMove(world *World, id EntityID, direction Direction) error {
	entity, err := getEntity(world, id)
	if err != nil {
		return err
	}
	if direction.IsZero() {
		return nil
	}
	newCoord := entity.Coord.Add(direction)
	if err := checkInsideWorld(world, newCoord); err != nil {
		return err
	}
	return checkPositionAvailable(world, newCoord)
}

func checkInsideWorld(world *World, coord Coordinate) error {
	if !coord.IsWithin(world.LeftEdge, world.RightEdge) {
		return &OutOfMapCoordinateError{X: coord.X, Y: coord.Y}
	}
	return nil
}

func checkPositionAvailable(world *World, coord Coordinate) error {
	if _, occupied := world.OnCoord(coord); occupied {
		return &PositionOccupiedError{X: coord.X, Y: coord.Y}
	}
	return nil
}

func getEntity(world *World, id EntityID) (Entity, error) {
	if entity, ok := world.GetEntity(id); ok {
		return entity, nil
	}
	return Entity{}, &InvalidEntityIDError{ID: id}
}
