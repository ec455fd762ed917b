package engine

import "fmt"

// ActionKind names the variant of an Action.
type ActionKind uint8

const (
	ActionMove ActionKind = iota + 1
	ActionAttack
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	}
	return fmt.Sprintf("action(%d)", uint8(k))
}

// Action is an intent queued for the next turn. The set of implementations is
// closed: MoveAction and AttackAction.
type Action interface {
	// Actor is the id of the entity performing the action.
	Actor() EntityID
	Kind() ActionKind
	String() string

	isAction()
}

// MoveAction steps the actor one cell in Direction. A zero Direction is a
// legal no-op.
type MoveAction struct {
	EntityID  EntityID
	Direction Direction
}

func (a MoveAction) Actor() EntityID  { return a.EntityID }
func (a MoveAction) Kind() ActionKind { return ActionMove }
func (a MoveAction) isAction()        {}

func (a MoveAction) String() string {
	return fmt.Sprintf("move #%d %s", a.EntityID, a.Direction)
}

// AttackAction deals damage from the actor to Target. A Target of NoEntity
// means the attack was built without a target.
type AttackAction struct {
	EntityID EntityID
	Target   EntityID
}

func (a AttackAction) Actor() EntityID  { return a.EntityID }
func (a AttackAction) Kind() ActionKind { return ActionAttack }
func (a AttackAction) isAction()        {}

func (a AttackAction) String() string {
	return fmt.Sprintf("attack #%d -> #%d", a.EntityID, a.Target)
}

// Move builds a move of entityID in direction.
func Move(entityID EntityID, direction Direction) MoveAction {
	return MoveAction{EntityID: entityID, Direction: direction}
}

// MoveLeft builds a move one cell to the left.
func MoveLeft(entityID EntityID) MoveAction { return Move(entityID, Left) }

// MoveRight builds a move one cell to the right.
func MoveRight(entityID EntityID) MoveAction { return Move(entityID, Right) }

// MoveUp builds a move one cell up.
func MoveUp(entityID EntityID) MoveAction { return Move(entityID, Up) }

// MoveDown builds a move one cell down.
func MoveDown(entityID EntityID) MoveAction { return Move(entityID, Down) }

// Attack builds an attack of entityID against target.
func Attack(entityID, target EntityID) AttackAction {
	return AttackAction{EntityID: entityID, Target: target}
}
