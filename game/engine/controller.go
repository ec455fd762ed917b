package engine

// TargetingRange is how many cells a controller looks ahead for a target.
const TargetingRange = 9

// PlayerInput is one directional key press for a controlled entity.
type PlayerInput struct {
	Direction Direction
}

// NewPlayerInput returns an input pointing in direction.
func NewPlayerInput(direction Direction) PlayerInput {
	return PlayerInput{Direction: direction}
}

// PlayerController turns directional input for one entity into an action.
type PlayerController struct {
	EntityID EntityID
}

// NewPlayerController returns a controller for entityID.
func NewPlayerController(entityID EntityID) PlayerController {
	return PlayerController{EntityID: entityID}
}

// Run resolves input and queues the resulting action on the world.
func (c PlayerController) Run(world *World, input PlayerInput) {
	world.RegisterAction(c.ResolveAction(world, input))
}

// ResolveAction decides between an attack and a move without changing the
// world. It casts a ray from the controlled entity along the input direction:
// the first player or enemy within TargetingRange becomes the attack target.
// An obstacle stops the ray, holes and empty cells do not. Without a target
// the input becomes a plain move.
func (c PlayerController) ResolveAction(world *World, input PlayerInput) Action {
	if target, ok := c.findTarget(world, input); ok {
		return Attack(c.EntityID, target.ID)
	}
	return Move(c.EntityID, input.Direction)
}

func (c PlayerController) findTarget(world *World, input PlayerInput) (Entity, bool) {
	player, ok := world.GetEntity(c.EntityID)
	if !ok || input.Direction.IsZero() {
		return Entity{}, false
	}

	for n := 1; n <= TargetingRange; n++ {
		step := float32(n)
		position := player.Coord.Translate(input.Direction.DX*step, input.Direction.DY*step)

		entity, found := world.OnCoord(position)
		if !found {
			continue
		}
		switch entity.Type.Kind {
		case KindObstacle:
			return Entity{}, false
		case KindEnemy, KindPlayer:
			return entity, true
		}
	}

	return Entity{}, false
}
