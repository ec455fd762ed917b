package engine

import (
	"errors"
	"testing"
)

func TestProcessMove_InvalidEntity(t *testing.T) {
	world := NewWorld()
	err := ProcessMove(world, MoveLeft(1234))

	var invalid *InvalidEntityIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidEntityIDError, got %v", err)
	}
	if invalid.ID != 1234 {
		t.Errorf("Expected id 1234, got %d", invalid.ID)
	}
}

func TestProcessMove_Directions(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float32
		build  func(EntityID) MoveAction
		ex, ey float32
	}{
		{"left from (1,0)", 1, 0, MoveLeft, 0, 0},
		{"left from (1,1)", 1, 1, MoveLeft, 0, 1},
		{"right from (0,0)", 0, 0, MoveRight, 1, 0},
		{"right from (1,1)", 1, 1, MoveRight, 2, 1},
		{"down from (0,0)", 0, 0, MoveDown, 0, 1},
		{"down from (1,1)", 1, 1, MoveDown, 1, 2},
		{"up from (0,1)", 0, 1, MoveUp, 0, 0},
		{"up from (1,1)", 1, 1, MoveUp, 1, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			world := NewWorld()
			entity := world.Register(NewEntity(0, NewCoordinate(test.x, test.y)))

			if err := ProcessMove(world, test.build(entity.ID)); err != nil {
				t.Fatalf("Expected move to succeed, got %v", err)
			}

			moved, ok := world.GetEntity(entity.ID)
			if !ok {
				t.Fatal("Entity disappeared after move")
			}
			if !moved.Coord.IsAtX(test.ex) || !moved.Coord.IsAtY(test.ey) {
				t.Errorf("Expected (%g,%g), got %s", test.ex, test.ey, moved.Coord)
			}
			if moved.ID != entity.ID || moved.Type != entity.Type {
				t.Errorf("Move changed identity: %+v -> %+v", entity, moved)
			}
		})
	}
}

func TestProcessMove_OccupiedPosition(t *testing.T) {
	world := NewWorld()
	entity1 := world.Register(NewEntity(0, NewCoordinate(1, 1)))
	entity2 := world.Register(NewEntity(1, NewCoordinate(1, 2)))

	err := ProcessMove(world, MoveDown(entity1.ID))

	var occupied *PositionOccupiedError
	if !errors.As(err, &occupied) {
		t.Fatalf("Expected PositionOccupiedError, got %v", err)
	}
	if occupied.X != 1 || occupied.Y != 2 {
		t.Errorf("Expected PositionOccupied(1,2), got (%g,%g)", occupied.X, occupied.Y)
	}

	after1, _ := world.GetEntity(entity1.ID)
	if !after1.Coord.IsAtX(1) || !after1.Coord.IsAtY(1) {
		t.Errorf("Entity 1 moved to %s", after1.Coord)
	}
	after2, _ := world.GetEntity(entity2.ID)
	if !after2.Coord.IsAtX(1) || !after2.Coord.IsAtY(2) {
		t.Errorf("Entity 2 moved to %s", after2.Coord)
	}
}

func TestProcessMove_WorldEdges(t *testing.T) {
	edge := NewCoordinate(8, 8)

	tests := []struct {
		name   string
		start  Coordinate
		build  func(EntityID) MoveAction
		ex, ey float32
	}{
		{"up from origin", NewCoordinate(0, 0), MoveUp, 0, -1},
		{"left from origin", NewCoordinate(0, 0), MoveLeft, -1, 0},
		{"right from edge", edge, MoveRight, 9, 8},
		{"down from edge", edge, MoveDown, 8, 9},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			world := CreateWorld(edge)
			entity := world.Register(NewEntity(0, test.start))

			err := ProcessMove(world, test.build(entity.ID))

			var outside *OutOfMapCoordinateError
			if !errors.As(err, &outside) {
				t.Fatalf("Expected OutOfMapCoordinateError, got %v", err)
			}
			if outside.X != test.ex || outside.Y != test.ey {
				t.Errorf("Expected OutOfMapCoordinate(%g,%g), got (%g,%g)", test.ex, test.ey, outside.X, outside.Y)
			}

			after, _ := world.GetEntity(entity.ID)
			if !after.Coord.Equal(test.start) {
				t.Errorf("Expected position unchanged at %s, got %s", test.start, after.Coord)
			}
		})
	}
}

func TestProcessMove_ZeroDirectionIsNoOp(t *testing.T) {
	world := NewWorld()
	entity := world.Register(NewEntity(0, NewCoordinate(2, 2)))

	if err := ProcessMove(world, Move(entity.ID, Direction{})); err != nil {
		t.Fatalf("Expected zero move to succeed, got %v", err)
	}
	after, _ := world.GetEntity(entity.ID)
	if !after.Coord.Equal(NewCoordinate(2, 2)) {
		t.Errorf("Expected no movement, got %s", after.Coord)
	}
}

func TestProcessMove_BlockedByTerrain(t *testing.T) {
	world := NewWorld()
	player := world.Register(NewPlayer(1, NewCoordinate(0, 0), 3))
	world.Register(NewWater(NewCoordinate(1, 0)))
	world.Register(NewMountain(NewCoordinate(0, 1)))

	for _, d := range []Direction{Right, Down} {
		var occupied *PositionOccupiedError
		if err := ProcessMove(world, Move(player.ID, d)); !errors.As(err, &occupied) {
			t.Errorf("Moving %s: expected PositionOccupiedError, got %v", d, err)
		}
	}
}

func TestMoveLegality(t *testing.T) {
	// A move succeeds iff the destination is inside the bounds and free.
	world := CreateWorld(NewCoordinate(3, 3))
	blocker := world.Register(NewMountain(NewCoordinate(1, 1)))
	_ = blocker

	for x := float32(0); x <= 3; x++ {
		for y := float32(0); y <= 3; y++ {
			start := NewCoordinate(x, y)
			if _, taken := world.OnCoord(start); taken {
				continue
			}
			for _, d := range Directions {
				entity := world.Register(NewEntity(0, start))
				target := start.Add(d)
				_, occupied := world.OnCoord(target)
				legal := target.IsWithin(world.LeftEdge, world.RightEdge) && !occupied

				err := ProcessMove(world, Move(entity.ID, d))
				after, _ := world.GetEntity(entity.ID)

				if legal {
					if err != nil || !after.Coord.Equal(target) {
						t.Errorf("Move %s from %s: expected success to %s, got %v at %s", d, start, target, err, after.Coord)
					}
				} else {
					if err == nil || !after.Coord.Equal(start) {
						t.Errorf("Move %s from %s: expected failure, got %v at %s", d, start, err, after.Coord)
					}
				}
				world.RemoveEntity(after)
			}
		}
	}
}

func TestCanMove(t *testing.T) {
	world := CreateWorld(NewCoordinate(2, 2))
	entity := world.Register(NewEntity(0, NewCoordinate(0, 0)))
	world.Register(NewMountain(NewCoordinate(1, 0)))

	if err := CanMove(world, entity.ID, Down); err != nil {
		t.Errorf("Expected down to be possible, got %v", err)
	}
	if err := CanMove(world, entity.ID, Right); err == nil {
		t.Error("Expected right to be blocked")
	}
	if err := CanMove(world, entity.ID, Up); err == nil {
		t.Error("Expected up to be out of map")
	}

	after, _ := world.GetEntity(entity.ID)
	if !after.Coord.Equal(NewCoordinate(0, 0)) {
		t.Errorf("CanMove must not move the entity, got %s", after.Coord)
	}
}
