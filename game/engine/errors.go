package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyTargetEntityID is returned for an attack that carries no target.
var ErrEmptyTargetEntityID = errors.New("attack has no target entity")

// InvalidEntityIDError is returned when an action names an actor that is not
// in the world.
type InvalidEntityIDError struct {
	ID EntityID
}

func (e *InvalidEntityIDError) Error() string {
	return fmt.Sprintf("invalid entity: %d", e.ID)
}

// OutOfMapCoordinateError is returned when a move would leave the map.
type OutOfMapCoordinateError struct {
	X, Y float32
}

func (e *OutOfMapCoordinateError) Error() string {
	return fmt.Sprintf("coordinate is outside world: %g,%g", e.X, e.Y)
}

// PositionOccupiedError is returned when a move targets an occupied cell.
type PositionOccupiedError struct {
	X, Y float32
}

func (e *PositionOccupiedError) Error() string {
	return fmt.Sprintf("coordinate is occupied: %g,%g", e.X, e.Y)
}

// UnknownActionError is returned when no processor handles an action.
type UnknownActionError struct {
	Action Action
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("no processor for action %T", e.Action)
}

// TurnError reports the first action that failed during a turn. Actions
// queued after it were not applied.
type TurnError struct {
	Index  int
	Action Action
	Err    error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn failed at action %d (%s): %v", e.Index, e.Action, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}
