// Package engine provides the turn-resolution core of Wild Wild Trader.
//
// The engine package implements:
//   - Float grid geometry with tolerant comparisons
//   - Entities with value semantics and optional hit points
//   - The World registry, map bounds and pending action queue
//   - Move and attack processors
//   - Player controllers that pick between moving and shooting
//   - The turn runner
//
// Core Types:
//
// World holds every entity keyed by id, the inclusive map bounds, the queue
// of actions submitted for the next turn and the player inputs gathered since
// the last one. Action is a closed sum type with two variants, MoveAction and
// AttackAction. Errors are typed (InvalidEntityIDError, OutOfMapCoordinateError,
// PositionOccupiedError, ErrEmptyTargetEntityID) and the runner reports the
// first failure of a turn as a *TurnError.
//
// Usage:
//
//	world := engine.NewWorld()
//	player := world.Register(engine.NewPlayer(1, engine.NewCoordinate(0, 0), 3))
//	world.RegisterPlayer(engine.NewPlayerController(player.ID))
//
//	world.RegisterPlayerInput(player.ID, engine.NewPlayerInput(engine.Right))
//	if err := engine.Run(world); err != nil {
//		log.Printf("turn failed: %v", err)
//	}
//
// Turn Rules:
//
// A turn resolves inputs into actions, then applies the queued actions in
// submission order. The first failing action stops the turn; the actions
// before it stay applied. The queue and inputs are cleared either way. The
// engine is single-threaded: callers serialize access to a World.
package engine
