// Command analyze prints quick, human-readable heuristics about the map
// configurations in the project's configs directory. It summarizes bounds,
// actor counts and, for every player, what each direction key would do on
// the first turn.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/engine"
)

// KindCounts tallies the entities of a world by kind.
type KindCounts struct {
	Players   int
	Bandits   int
	Obstacles int
	Holes     int
}

// DirectionPreview is what one key press would resolve to.
type DirectionPreview struct {
	Direction engine.Direction
	Action    engine.Action
	// Err is the move error the action would fail with, if any.
	Err error
}

// PlayerPreview lists the previews for one player slot.
type PlayerPreview struct {
	Slot       int32
	Coord      engine.Coordinate
	Directions []DirectionPreview
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		fmt.Printf("Error opening configs: %v\n", err)
		os.Exit(1)
	}
	infos, err := manager.ListConfigs()
	if err != nil {
		fmt.Printf("Error listing configs: %v\n", err)
		os.Exit(1)
	}

	for _, info := range infos {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			continue
		}
		analyzeConfig(os.Stdout, cfg)
	}
}

func analyzeConfig(w io.Writer, cfg *config.MapConfig) {
	world, err := cfg.NewWorld()
	if err != nil {
		fmt.Fprintf(w, "Error building world: %v\n", err)
		return
	}

	left, right := world.Bounds()
	opts := cfg.Options()
	counts := countKinds(world)

	fmt.Fprintf(w, "Name: %s\n", cfg.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d (bounds %s..%s)\n", world.Width(), world.Height(), left, right)
	fmt.Fprintf(w, "Players: %d (%g hp)\n", counts.Players, opts.PlayerHitPoints)
	fmt.Fprintf(w, "Bandits: %d (%g hp)\n", counts.Bandits, opts.EnemyHitPoints)
	fmt.Fprintf(w, "Mountains: %d, Water: %d\n", counts.Obstacles, counts.Holes)

	for _, p := range previewPlayers(world) {
		fmt.Fprintf(w, "Player %d at %s:\n", p.Slot, p.Coord)
		for _, d := range p.Directions {
			fmt.Fprintf(w, "   %-5s -> %s\n", d.Direction, describe(world, d))
		}
	}
}

func countKinds(world *engine.World) KindCounts {
	var c KindCounts
	for _, e := range world.Entities() {
		switch e.Type.Kind {
		case engine.KindPlayer:
			c.Players++
		case engine.KindEnemy:
			c.Bandits++
		case engine.KindObstacle:
			c.Obstacles++
		case engine.KindHole:
			c.Holes++
		}
	}
	return c
}

// previewPlayers resolves every direction for every registered controller
// without touching the world. Players are listed by slot.
func previewPlayers(world *engine.World) []PlayerPreview {
	var previews []PlayerPreview
	for _, ctrl := range world.Controllers() {
		player, ok := world.GetEntity(ctrl.EntityID)
		if !ok {
			continue
		}
		p := PlayerPreview{Slot: player.Type.Slot, Coord: player.Coord}
		for _, dir := range engine.Directions {
			action := ctrl.ResolveAction(world, engine.NewPlayerInput(dir))
			preview := DirectionPreview{Direction: dir, Action: action}
			if move, ok := action.(engine.MoveAction); ok {
				preview.Err = engine.CanMove(world, move.EntityID, move.Direction)
			}
			p.Directions = append(p.Directions, preview)
		}
		previews = append(previews, p)
	}
	sort.Slice(previews, func(i, j int) bool { return previews[i].Slot < previews[j].Slot })
	return previews
}

func describe(world *engine.World, d DirectionPreview) string {
	switch a := d.Action.(type) {
	case engine.AttackAction:
		if target, ok := world.GetEntity(a.Target); ok {
			return fmt.Sprintf("shoot %s", target)
		}
		return "shoot"
	case engine.MoveAction:
		if d.Err != nil {
			return fmt.Sprintf("⚠️  blocked: %v", d.Err)
		}
		return "move"
	}
	return d.Action.String()
}
