// Command validate checks the map configuration JSON files in a directory
// (../configs by default, or the first argument). It checks:
//   - JSON structure and required fields
//   - Grid consistency and allowed glyphs (digits, B, #, ~, space)
//   - Unique player slots and sane hit points
//   - Reachability: every bandit can be shot from a cell some player can walk to
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single map configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var cfg config.MapConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := config.ValidateMapConfig(&cfg); err != nil {
		result.fail("%v", err)
		return result
	}

	world, err := cfg.NewWorld()
	if err != nil {
		result.fail("Failed to build world: %v", err)
		return result
	}

	reach := validateReachability(world)
	result.Valid = reach.Valid
	result.Errors = append(result.Errors, reach.Errors...)

	if result.Valid {
		info := cfg.Info(strings.TrimSuffix(result.File, filepath.Ext(result.File)))
		opts := cfg.Options()
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Name: %s", cfg.Name),
			fmt.Sprintf("✓ Grid: %dx%d", info.Width, info.Height),
			fmt.Sprintf("✓ Players: %d (%g hp)", info.Players, opts.PlayerHitPoints),
			fmt.Sprintf("✓ Bandits: %d (%g hp)", info.Enemies, opts.EnemyHitPoints),
		)
	}
	return result
}

type cell struct{ x, y int }

// validateReachability flood-fills the cells players can walk to, counting
// actor cells as walkable because actors can be shot out of the way. It checks
// that every bandit has a clear line of fire, within targeting range, from
// at least one of them.
func validateReachability(world *engine.World) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	walkable := func(c cell) bool {
		if c.x < 0 || c.y < 0 || c.x >= world.Width() || c.y >= world.Height() {
			return false
		}
		e, occupied := world.OnCoord(engine.NewCoordinate(float32(c.x), float32(c.y)))
		return !occupied || e.IsTargetable()
	}

	reachable := map[cell]bool{}
	var queue []cell
	var bandits []engine.Entity
	for _, e := range world.Entities() {
		x, y := e.Coord.Cell()
		switch e.Type.Kind {
		case engine.KindPlayer:
			queue = append(queue, cell{x, y})
		case engine.KindEnemy:
			bandits = append(bandits, e)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reachable[current] {
			continue
		}
		reachable[current] = true
		for _, d := range engine.Directions {
			next := cell{current.x + int(d.DX), current.y + int(d.DY)}
			if !reachable[next] && walkable(next) {
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	for _, bandit := range bandits {
		if !canBeShot(world, bandit, reachable) {
			x, y := bandit.Coord.Cell()
			unreachable = append(unreachable, fmt.Sprintf("Bandit at (%d,%d)", x, y))
		}
	}

	if len(unreachable) > 0 {
		result.fail("Reachability failure: %d/%d bandits cannot be shot from any reachable cell", len(unreachable), len(bandits))
		for _, b := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", b))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachability: all %d bandits can be shot", len(bandits)))
	}
	return result
}

// canBeShot walks outward from the bandit the way a player's ray would walk
// toward it: obstacles and other actors block, water does not.
func canBeShot(world *engine.World, bandit engine.Entity, reachable map[cell]bool) bool {
	bx, by := bandit.Coord.Cell()
	for _, d := range engine.Directions {
		for n := 1; n <= engine.TargetingRange; n++ {
			c := cell{bx + n*int(d.DX), by + n*int(d.DY)}
			e, occupied := world.OnCoord(engine.NewCoordinate(float32(c.x), float32(c.y)))
			if occupied && e.Type.Kind == engine.KindHole {
				continue
			}
			if reachable[c] {
				return true
			}
			if occupied {
				break
			}
		}
	}
	return false
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
