package engine

import (
	"errors"
	"testing"
)

func TestWorld_Defaults(t *testing.T) {
	world := NewWorld()
	left, right := world.Bounds()

	if !left.Equal(NewCoordinate(0, 0)) {
		t.Errorf("Expected left edge (0,0), got %s", left)
	}
	if !right.Equal(NewCoordinate(8, 4)) {
		t.Errorf("Expected right edge (8,4), got %s", right)
	}
	if world.Width() != 9 || world.Height() != 5 {
		t.Errorf("Expected 9x5 world, got %dx%d", world.Width(), world.Height())
	}
	if world.HasActions() || world.HasPlayerInputs() || world.Len() != 0 {
		t.Error("Expected a fresh world to be empty")
	}
}

func TestWorld_CreateCustomBounds(t *testing.T) {
	world := CreateWorld(NewCoordinate(14, 9))
	left, right := world.Bounds()
	if !left.Equal(NewCoordinate(0, 0)) || !right.Equal(NewCoordinate(14, 9)) {
		t.Errorf("Unexpected bounds %s-%s", left, right)
	}
}

func TestWorld_RegisterAssignsIncreasingIDs(t *testing.T) {
	world := NewWorld()

	supplied := []EntityID{0, 42, 1, -5, 2}
	var last EntityID
	for i, id := range supplied {
		entity := world.Register(NewEntity(id, NewCoordinate(float32(i), 0)))
		if entity.ID != EntityID(i+1) {
			t.Errorf("Register #%d: expected id %d, got %d", i, i+1, entity.ID)
		}
		if entity.ID <= last {
			t.Errorf("Register #%d: id %d is not greater than %d", i, entity.ID, last)
		}
		last = entity.ID

		stored, ok := world.GetEntity(entity.ID)
		if !ok || stored != entity {
			t.Errorf("Register #%d: stored entity %+v differs from returned %+v", i, stored, entity)
		}
	}
}

func TestWorld_GetEntityAbsent(t *testing.T) {
	world := NewWorld()
	if _, ok := world.GetEntity(99); ok {
		t.Error("Expected no entity for unknown id")
	}
}

func TestWorld_GetEntityReturnsCopy(t *testing.T) {
	world := NewWorld()
	entity := world.Register(NewBandit(NewCoordinate(1, 1), 1))

	copyOf, _ := world.GetEntity(entity.ID)
	copyOf.Coord = NewCoordinate(5, 5)

	stored, _ := world.GetEntity(entity.ID)
	if !stored.Coord.Equal(NewCoordinate(1, 1)) {
		t.Errorf("Mutating a returned entity changed the world: %s", stored.Coord)
	}
}

func TestWorld_UpdateAndRemove(t *testing.T) {
	world := NewWorld()
	entity := world.Register(NewBandit(NewCoordinate(1, 1), 1))

	world.UpdateEntity(entity.WithCoordinate(NewCoordinate(2, 2)))
	updated, ok := world.GetEntity(entity.ID)
	if !ok || !updated.Coord.Equal(NewCoordinate(2, 2)) {
		t.Fatalf("Expected entity at (2,2), got %+v (found=%v)", updated, ok)
	}

	world.RemoveEntity(entity)
	if _, ok := world.GetEntity(entity.ID); ok {
		t.Error("Expected entity removed")
	}

	// Idempotent
	world.RemoveEntity(entity)
	if world.Len() != 0 {
		t.Errorf("Expected empty world, got %d entities", world.Len())
	}
}

func TestWorld_OnCoord(t *testing.T) {
	world := NewWorld()
	a := world.Register(NewBandit(NewCoordinate(1, 1), 1))
	world.Register(NewMountain(NewCoordinate(3, 2)))

	found, ok := world.OnCoord(NewCoordinate(1, 1))
	if !ok || found.ID != a.ID {
		t.Errorf("Expected entity %d on (1,1), got %+v (found=%v)", a.ID, found, ok)
	}

	if _, ok := world.OnCoord(NewCoordinate(0, 0)); ok {
		t.Error("Expected (0,0) to be empty")
	}

	// Tolerant comparison
	if _, ok := world.OnCoord(NewCoordinate(3+CoordinateEpsilon/2, 2)); !ok {
		t.Error("Expected tolerant match on (3,2)")
	}
}

func TestWorld_OnCoordTieBreakLowestID(t *testing.T) {
	world := NewWorld()
	first := world.Register(NewBandit(NewCoordinate(2, 2), 1))
	second := world.Register(NewBandit(NewCoordinate(2, 2), 1))

	for i := 0; i < 20; i++ {
		found, ok := world.OnCoord(NewCoordinate(2, 2))
		if !ok || found.ID != first.ID {
			t.Fatalf("Expected lowest id %d, got %d", first.ID, found.ID)
		}
	}

	world.RemoveEntity(first)
	found, ok := world.OnCoord(NewCoordinate(2, 2))
	if !ok || found.ID != second.ID {
		t.Errorf("Expected %d after removing the first, got %d", second.ID, found.ID)
	}
}

func TestWorld_EntitiesOrdered(t *testing.T) {
	world := NewWorld()
	for i := 0; i < 5; i++ {
		world.Register(NewBandit(NewCoordinate(float32(i), 0), 1))
	}
	third, _ := world.GetEntity(3)
	world.RemoveEntity(third)
	world.UpdateEntity(NewBandit(NewCoordinate(0, 3), 1).WithID(3))

	entities := world.Entities()
	if len(entities) != 5 {
		t.Fatalf("Expected 5 entities, got %d", len(entities))
	}
	for i, e := range entities {
		if e.ID != EntityID(i+1) {
			t.Errorf("Position %d: expected id %d, got %d", i, i+1, e.ID)
		}
	}
}

func TestWorld_PlayerEntity(t *testing.T) {
	world := NewWorld()
	world.Register(NewBandit(NewCoordinate(0, 0), 1))
	p2 := world.Register(NewPlayer(2, NewCoordinate(1, 0), 3))

	found, ok := world.PlayerEntity(2)
	if !ok || found.ID != p2.ID {
		t.Errorf("Expected player 2 to be entity %d, got %+v", p2.ID, found)
	}
	if _, ok := world.PlayerEntity(1); ok {
		t.Error("Expected no player 1")
	}
}

func TestWorld_Actions(t *testing.T) {
	world := NewWorld()
	if world.HasActions() {
		t.Fatal("Expected no actions")
	}

	world.RegisterAction(MoveDown(123))
	world.RegisterAction(Attack(123, 7))
	if !world.HasActions() {
		t.Fatal("Expected actions after register")
	}

	actions := world.GetActions()
	if len(actions) != 2 {
		t.Fatalf("Expected 2 actions, got %d", len(actions))
	}
	if actions[0].Kind() != ActionMove || actions[1].Kind() != ActionAttack {
		t.Errorf("Unexpected action order: %v", actions)
	}

	actions[0] = nil
	if world.GetActions()[0] == nil {
		t.Error("GetActions must return a copy")
	}

	world.ClearActions()
	if world.HasActions() {
		t.Error("Expected no actions after clear")
	}
}

func TestWorld_PlayerInputs(t *testing.T) {
	world := NewWorld()
	world.RegisterPlayer(NewPlayerController(1))
	world.RegisterPlayerInput(1, NewPlayerInput(Left))
	world.RegisterPlayerInput(1, NewPlayerInput(Right))

	in, ok := world.PlayerInput(1)
	if !ok || !in.Direction.Equal(Right) {
		t.Errorf("Expected latest input right, got %+v", in)
	}
	if len(world.Controllers()) != 1 {
		t.Errorf("Expected 1 controller, got %d", len(world.Controllers()))
	}

	world.ClearPlayerInputs()
	if world.HasPlayerInputs() {
		t.Error("Expected inputs cleared")
	}
}

func TestWorld_UpdateUnknownIDAdvancesCounter(t *testing.T) {
	world := NewWorld()
	world.UpdateEntity(NewEntity(1, NewCoordinate(0, 0)))

	registered := world.Register(NewEntity(0, NewCoordinate(1, 0)))
	if registered.ID != 2 {
		t.Errorf("Expected id 2 after UpdateEntity with id 1, got %d", registered.ID)
	}
	if world.Len() != 2 {
		t.Errorf("Expected 2 entities, got %d", world.Len())
	}
	if world.NextID() != 3 {
		t.Errorf("Expected next id 3, got %d", world.NextID())
	}
}

func TestRestoreWorld(t *testing.T) {
	player := NewPlayer(1, NewCoordinate(0, 0), 3).WithID(1)
	bandit := NewBandit(NewCoordinate(3, 0), 1).WithID(3)

	tests := []struct {
		name     string
		entities []Entity
		nextID   EntityID
		wantNext EntityID
		wantErr  bool
	}{
		{"keeps stored ids", []Entity{player, bandit}, 4, 4, false},
		{"next id never reuses a stored id", []Entity{player, bandit}, 2, 4, false},
		{"empty world", nil, 7, 7, false},
		{"zero id", []Entity{player.WithID(NoEntity)}, 2, 0, true},
		{"duplicate id", []Entity{player, bandit.WithID(1)}, 4, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world, err := RestoreWorld(NewCoordinate(3, 0), tt.entities, tt.nextID, []EntityID{1})
			if tt.wantErr {
				var invalid *InvalidEntityIDError
				if !errors.As(err, &invalid) {
					t.Fatalf("Expected InvalidEntityIDError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RestoreWorld failed: %v", err)
			}
			if world.Width() != 4 || world.Height() != 1 {
				t.Errorf("Expected 4x1 world, got %dx%d", world.Width(), world.Height())
			}
			for _, want := range tt.entities {
				got, ok := world.GetEntity(want.ID)
				if !ok || got != want {
					t.Errorf("Expected %+v under id %d, got %+v (found=%v)", want, want.ID, got, ok)
				}
			}
			if world.NextID() != tt.wantNext {
				t.Errorf("Expected next id %d, got %d", tt.wantNext, world.NextID())
			}
			if next := world.Register(NewEntity(0, NewCoordinate(2, 0))); next.ID != tt.wantNext {
				t.Errorf("Expected Register to assign %d, got %d", tt.wantNext, next.ID)
			}
			controllers := world.Controllers()
			if len(controllers) != 1 || controllers[0].EntityID != 1 {
				t.Errorf("Expected one controller for entity 1, got %+v", controllers)
			}
		})
	}
}
