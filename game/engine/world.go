package engine

import (
	"fmt"
	"slices"
)

// Default map bounds used by NewWorld.
var (
	DefaultLeftEdge  = Coordinate{X: 0, Y: 0}
	DefaultRightEdge = Coordinate{X: 8, Y: 4}
)

// World is the authoritative game state: the entity registry, the map bounds,
// the pending action queue and the player inputs gathered since the last turn.
//
// World is not safe for concurrent use. A single owner (the turn runner and
// the action processors it calls) mutates it.
type World struct {
	currentID EntityID
	entities  map[EntityID]Entity
	// ids holds every key of entities in ascending order so that scans are
	// deterministic.
	ids []EntityID

	LeftEdge  Coordinate
	RightEdge Coordinate

	actions      []Action
	controllers  []PlayerController
	playerInputs map[EntityID]PlayerInput
}

// NewWorld creates an empty world with the default bounds (0,0)-(8,4).
func NewWorld() *World {
	return CreateWorld(DefaultRightEdge)
}

// CreateWorld creates an empty world spanning (0,0)-rightEdge inclusive.
func CreateWorld(rightEdge Coordinate) *World {
	return &World{
		entities:     make(map[EntityID]Entity),
		LeftEdge:     DefaultLeftEdge,
		RightEdge:    rightEdge,
		playerInputs: make(map[EntityID]PlayerInput),
	}
}

// RestoreWorld rebuilds a saved world. Entities keep their stored ids and
// Register continues from nextID, or from past the highest stored id when
// that is larger. Controllers are registered for the given entity ids in
// order; an id may name an entity that has since been removed.
func RestoreWorld(rightEdge Coordinate, entities []Entity, nextID EntityID, controllers []EntityID) (*World, error) {
	world := CreateWorld(rightEdge)
	for _, e := range entities {
		if e.ID <= NoEntity {
			return nil, &InvalidEntityIDError{ID: e.ID}
		}
		if _, dup := world.entities[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %d: %w", e.ID, &InvalidEntityIDError{ID: e.ID})
		}
		world.put(e)
	}
	if nextID-1 > world.currentID {
		world.currentID = nextID - 1
	}
	for _, id := range controllers {
		world.RegisterPlayer(NewPlayerController(id))
	}
	return world, nil
}

// Register stores a copy of entity under a freshly assigned id and returns
// the stored copy. The id carried by entity is ignored. Register does not
// check occupancy.
func (w *World) Register(entity Entity) Entity {
	w.currentID++
	stored := entity.WithID(w.currentID)
	w.put(stored)
	return stored
}

// NextID returns the id the next Register call will assign.
func (w *World) NextID() EntityID {
	return w.currentID + 1
}

// GetEntity returns a copy of the entity with the given id.
func (w *World) GetEntity(id EntityID) (Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// UpdateEntity stores entity under its id, replacing any previous value. An
// id past the last one handed out moves the Register counter forward.
func (w *World) UpdateEntity(entity Entity) {
	w.put(entity)
}

// RemoveEntity deletes the entity with entity.ID. Removing an absent entity
// is a no-op.
func (w *World) RemoveEntity(entity Entity) {
	if _, ok := w.entities[entity.ID]; !ok {
		return
	}
	delete(w.entities, entity.ID)
	if i, found := slices.BinarySearch(w.ids, entity.ID); found {
		w.ids = slices.Delete(w.ids, i, i+1)
	}
}

// OnCoord returns the entity standing on coord. When several entities share
// the coordinate the one with the lowest id is returned.
func (w *World) OnCoord(coord Coordinate) (Entity, bool) {
	for _, id := range w.ids {
		e := w.entities[id]
		if e.Coord.Equal(coord) {
			return e, true
		}
	}
	return Entity{}, false
}

// Entities returns a copy of every entity in ascending id order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.ids))
	for _, id := range w.ids {
		out = append(out, w.entities[id])
	}
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// PlayerEntity returns the live player entity for slot.
func (w *World) PlayerEntity(slot int32) (Entity, bool) {
	for _, id := range w.ids {
		e := w.entities[id]
		if e.Type.Kind == KindPlayer && e.Type.Slot == slot {
			return e, true
		}
	}
	return Entity{}, false
}

// Bounds returns the inclusive left and right edges of the map.
func (w *World) Bounds() (Coordinate, Coordinate) {
	return w.LeftEdge, w.RightEdge
}

// Width returns the number of columns between the edges.
func (w *World) Width() int {
	l, _ := w.LeftEdge.Cell()
	r, _ := w.RightEdge.Cell()
	return r - l + 1
}

// Height returns the number of rows between the edges.
func (w *World) Height() int {
	_, t := w.LeftEdge.Cell()
	_, b := w.RightEdge.Cell()
	return b - t + 1
}

// RegisterAction appends action to the pending queue. Actions are not
// validated until the turn runs.
func (w *World) RegisterAction(action Action) {
	w.actions = append(w.actions, action)
}

// HasActions reports whether actions are waiting for the next turn.
func (w *World) HasActions() bool {
	return len(w.actions) > 0
}

// GetActions returns the pending actions in submission order. The returned
// slice is a copy.
func (w *World) GetActions() []Action {
	return slices.Clone(w.actions)
}

// ClearActions empties the pending queue.
func (w *World) ClearActions() {
	w.actions = nil
}

// RegisterPlayer adds a controller. Controllers are consulted in the order
// they were registered.
func (w *World) RegisterPlayer(controller PlayerController) {
	w.controllers = append(w.controllers, controller)
}

// Controllers returns the registered controllers in registration order.
func (w *World) Controllers() []PlayerController {
	return slices.Clone(w.controllers)
}

// RegisterPlayerInput records input for the entity id. A later input for the
// same id within one turn replaces the earlier one.
func (w *World) RegisterPlayerInput(id EntityID, input PlayerInput) {
	w.playerInputs[id] = input
}

// PlayerInput returns the input recorded for id during the current turn.
func (w *World) PlayerInput(id EntityID) (PlayerInput, bool) {
	in, ok := w.playerInputs[id]
	return in, ok
}

// HasPlayerInputs reports whether any input is waiting to be resolved.
func (w *World) HasPlayerInputs() bool {
	return len(w.playerInputs) > 0
}

// ClearPlayerInputs drops every recorded input.
func (w *World) ClearPlayerInputs() {
	clear(w.playerInputs)
}

func (w *World) put(entity Entity) {
	if _, exists := w.entities[entity.ID]; !exists {
		i, _ := slices.BinarySearch(w.ids, entity.ID)
		w.ids = slices.Insert(w.ids, i, entity.ID)
	}
	w.entities[entity.ID] = entity
	if entity.ID > w.currentID {
		w.currentID = entity.ID
	}
}
