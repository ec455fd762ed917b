package engine

// Process dispatches action to the processor for its kind.
func Process(world *World, action Action) error {
	switch a := action.(type) {
	case MoveAction:
		return ProcessMove(world, a)
	case *MoveAction:
		return ProcessMove(world, *a)
	case AttackAction:
		return ProcessAttack(world, a)
	case *AttackAction:
		return ProcessAttack(world, *a)
	default:
		return &UnknownActionError{Action: action}
	}
}

// ProcessActions applies actions in order and stops at the first failure.
// The returned error is a *TurnError naming the failed action.
func ProcessActions(world *World, actions []Action) error {
	for i, action := range actions {
		if err := Process(world, action); err != nil {
			return &TurnError{Index: i, Action: action, Err: err}
		}
	}
	return nil
}
