package engine

// Run executes one turn.
//
// First every registered controller that received input since the last turn
// resolves it into an action, in controller registration order. Then the
// queued actions are applied in submission order, stopping at the first
// failure. The action queue and the player inputs are cleared after the
// attempt whether it succeeded or not, so one bad action cannot block later
// turns. The first failure is returned as a *TurnError.
func Run(world *World) error {
	resolveInputs(world)

	if !world.HasActions() {
		return nil
	}

	actions := world.GetActions()
	defer world.ClearActions()

	return ProcessActions(world, actions)
}

// HasPendingWork reports whether Run would do anything.
func HasPendingWork(world *World) bool {
	return world.HasActions() || world.HasPlayerInputs()
}

func resolveInputs(world *World) {
	if !world.HasPlayerInputs() {
		return
	}
	defer world.ClearPlayerInputs()

	for _, controller := range world.controllers {
		input, ok := world.PlayerInput(controller.EntityID)
		if !ok {
			continue
		}
		controller.Run(world, input)
	}
}
