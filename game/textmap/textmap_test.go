package textmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/wild-wild-trader/game/engine"
)

var demo = []string{
	"               ",
	" 1           2 ",
	"      B        ",
	"      ~~~~##   ",
	"       ~~~~~#  ",
	"   B        B  ",
	"   #           ",
	"  ###          ",
	"   #     B     ",
	"   B           ",
}

func TestLoad_Bounds(t *testing.T) {
	world, err := Load(strings.Join(demo, "\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if world.Width() != 15 || world.Height() != 10 {
		t.Errorf("Expected 15x10, got %dx%d", world.Width(), world.Height())
	}
	_, right := world.Bounds()
	if !right.Equal(engine.NewCoordinate(14, 9)) {
		t.Errorf("Expected right edge (14,9), got %s", right)
	}
}

func TestLoad_Entities(t *testing.T) {
	world, err := Load(strings.Join([]string{
		"1 B",
		"#~2",
	}, "\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []struct {
		id   engine.EntityID
		x, y float32
		kind engine.Kind
	}{
		{1, 0, 0, engine.KindPlayer},
		{2, 2, 0, engine.KindEnemy},
		{3, 0, 1, engine.KindObstacle},
		{4, 1, 1, engine.KindHole},
		{5, 2, 1, engine.KindPlayer},
	}

	entities := world.Entities()
	if len(entities) != len(expected) {
		t.Fatalf("Expected %d entities, got %d", len(expected), len(entities))
	}
	for i, want := range expected {
		got := entities[i]
		if got.ID != want.id || got.Type.Kind != want.kind || !got.Coord.Equal(engine.NewCoordinate(want.x, want.y)) {
			t.Errorf("Entity %d: expected #%d %s at (%g,%g), got %s", i, want.id, want.kind, want.x, want.y, got)
		}
	}

	p1, _ := world.PlayerEntity(1)
	if p1.Health != engine.HitPoints(engine.DefaultPlayerHitPoints) {
		t.Errorf("Expected default player hit points, got %+v", p1.Health)
	}
	bandit, _ := world.GetEntity(2)
	if bandit.Health != engine.HitPoints(engine.DefaultEnemyHitPoints) {
		t.Errorf("Expected default bandit hit points, got %+v", bandit.Health)
	}
	mountain, _ := world.GetEntity(3)
	if mountain.Health.Mortal {
		t.Error("Expected terrain to be invulnerable")
	}
}

func TestLoad_ControllersBySlot(t *testing.T) {
	world, err := Load("2 1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	controllers := world.Controllers()
	if len(controllers) != 2 {
		t.Fatalf("Expected 2 controllers, got %d", len(controllers))
	}
	p1, _ := world.PlayerEntity(1)
	p2, _ := world.PlayerEntity(2)
	if controllers[0].EntityID != p1.ID || controllers[1].EntityID != p2.ID {
		t.Errorf("Expected slot order [%d %d], got [%d %d]", p1.ID, p2.ID, controllers[0].EntityID, controllers[1].EntityID)
	}
}

func TestLoadWith_HitPoints(t *testing.T) {
	world, err := LoadWith("1B", Options{PlayerHitPoints: 5, EnemyHitPoints: 2})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p1, _ := world.PlayerEntity(1)
	if p1.Health.Points != 5 {
		t.Errorf("Expected 5 player hit points, got %g", p1.Health.Points)
	}
	bandit, _ := world.GetEntity(2)
	if bandit.Health.Points != 2 {
		t.Errorf("Expected 2 bandit hit points, got %g", bandit.Health.Points)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown glyph", func(t *testing.T) {
		_, err := Load("  \n x")
		var unknown *UnknownGlyphError
		if !errors.As(err, &unknown) {
			t.Fatalf("Expected UnknownGlyphError, got %v", err)
		}
		if unknown.Glyph != 'x' || unknown.Row != 1 || unknown.Col != 1 {
			t.Errorf("Unexpected error details: %+v", unknown)
		}
	})

	t.Run("ragged rows", func(t *testing.T) {
		_, err := Load("   \n  ")
		if !errors.Is(err, ErrRaggedGrid) {
			t.Errorf("Expected ErrRaggedGrid, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := Load(""); !errors.Is(err, ErrEmptyGrid) {
			t.Errorf("Expected ErrEmptyGrid, got %v", err)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"demo", demo},
		{"single cell", []string{"1"}},
		{"blank", []string{"    ", "    "}},
		{"every glyph", []string{"12B#~ "}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text := strings.Join(test.rows, "\n")
			world, err := Load(text)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got := Print(world); got != text {
				t.Errorf("Round trip mismatch:\nwant %q\ngot  %q", text, got)
			}
		})
	}
}

func TestPrint_AfterTurn(t *testing.T) {
	world, err := Load(strings.Join([]string{
		"1   ",
		"    ",
		"B   ",
	}, "\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p1, _ := world.PlayerEntity(1)
	world.RegisterPlayerInput(p1.ID, engine.NewPlayerInput(engine.Down))
	if err := engine.Run(world); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := strings.Join([]string{
		"1   ",
		"    ",
		"    ",
	}, "\n")
	if got := Print(world); got != want {
		t.Errorf("Expected bandit shot:\nwant %q\ngot  %q", want, got)
	}
}

func TestIsGlyph(t *testing.T) {
	for _, r := range " 12B#~" {
		if !IsGlyph(r) {
			t.Errorf("Expected %q to be a glyph", r)
		}
	}
	for _, r := range "xe0." {
		if IsGlyph(r) {
			t.Errorf("Expected %q to be rejected", r)
		}
	}
}
