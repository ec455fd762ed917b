package config

import (
	"fmt"
	"strings"

	"github.com/wricardo/wild-wild-trader/game/engine"
	"github.com/wricardo/wild-wild-trader/game/textmap"
)

// Layout limits.
const (
	MinGridSize  = 1
	MaxGridSize  = 64
	MaxHitPoints = 99
)

// DefaultConfigID is the identifier of the built-in map.
const DefaultConfigID = "wild-wild-trader"

// MapConfig describes a playable map.
type MapConfig struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Layout          []string `json:"layout"`
	PlayerHitPoints float32  `json:"player_hit_points,omitempty"`
	EnemyHitPoints  float32  `json:"enemy_hit_points,omitempty"`
}

// ConfigInfo summarizes a map config for listings.
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Players     int    `json:"players"`
	Enemies     int    `json:"enemies"`
}

// Text returns the layout joined into the text map form.
func (c *MapConfig) Text() string {
	return strings.Join(c.Layout, "\n")
}

// Options returns the textmap options for the config's hit points. Unset
// values fall back to the engine defaults.
func (c *MapConfig) Options() textmap.Options {
	opts := textmap.DefaultOptions()
	if c.PlayerHitPoints > 0 {
		opts.PlayerHitPoints = c.PlayerHitPoints
	}
	if c.EnemyHitPoints > 0 {
		opts.EnemyHitPoints = c.EnemyHitPoints
	}
	return opts
}

// NewWorld builds a fresh world from the layout.
func (c *MapConfig) NewWorld() (*engine.World, error) {
	return textmap.LoadWith(c.Text(), c.Options())
}

// Size returns the width and height of the layout.
func (c *MapConfig) Size() (int, int) {
	if len(c.Layout) == 0 {
		return 0, 0
	}
	return len([]rune(c.Layout[0])), len(c.Layout)
}

// Info summarizes the config under the given id.
func (c *MapConfig) Info(id string) *ConfigInfo {
	w, h := c.Size()
	info := &ConfigInfo{
		Filename:    id + ".json",
		ConfigID:    id,
		Name:        c.Name,
		Description: c.Description,
		Width:       w,
		Height:      h,
	}
	for _, row := range c.Layout {
		for _, r := range row {
			switch {
			case r >= '1' && r <= '9':
				info.Players++
			case r == textmap.BanditGlyph:
				info.Enemies++
			}
		}
	}
	return info
}

// ValidateMapConfig checks that config describes a loadable, playable map.
func ValidateMapConfig(config *MapConfig) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(config.Description) == "" {
		return fmt.Errorf("description is required")
	}

	if len(config.Layout) == 0 {
		return fmt.Errorf("layout is empty")
	}
	width, height := config.Size()
	if width < MinGridSize || width > MaxGridSize {
		return fmt.Errorf("layout width %d is outside %d..%d", width, MinGridSize, MaxGridSize)
	}
	if height < MinGridSize || height > MaxGridSize {
		return fmt.Errorf("layout height %d is outside %d..%d", height, MinGridSize, MaxGridSize)
	}

	slots := make(map[rune]bool)
	for y, row := range config.Layout {
		cells := []rune(row)
		if len(cells) != width {
			return fmt.Errorf("layout row %d has width %d, expected %d", y, len(cells), width)
		}
		for x, r := range cells {
			if !textmap.IsGlyph(r) {
				return fmt.Errorf("invalid cell %q at row %d, column %d", r, y, x)
			}
			if r >= '1' && r <= '9' {
				if slots[r] {
					return fmt.Errorf("player %c appears more than once", r)
				}
				slots[r] = true
			}
		}
	}
	if len(slots) == 0 {
		return fmt.Errorf("layout must contain at least one player")
	}

	if err := checkHitPoints("player", config.PlayerHitPoints); err != nil {
		return err
	}
	return checkHitPoints("enemy", config.EnemyHitPoints)
}

func checkHitPoints(who string, hp float32) error {
	// Zero means "use the default".
	if hp == 0 {
		return nil
	}
	if hp < 1 || hp > MaxHitPoints {
		return fmt.Errorf("%s hit points %g are outside 1..%d", who, hp, MaxHitPoints)
	}
	return nil
}

// DefaultMapConfig returns the built-in map.
func DefaultMapConfig() *MapConfig {
	return &MapConfig{
		Name:        "Wild Wild Trader",
		Description: "Two gunslingers, a river and a handful of bandits",
		Layout: []string{
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
		},
		PlayerHitPoints: engine.DefaultPlayerHitPoints,
		EnemyHitPoints:  engine.DefaultEnemyHitPoints,
	}
}
