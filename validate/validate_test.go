package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/wild-wild-trader/game/config"
)

// writeConfig writes content to a temp JSON file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func containsMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Test Config",
		"description": "Test configuration",
		"layout": [
			"1   B",
			"  #  ",
			"2 ~~ "
		],
		"player_hit_points": 2
	}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "test_config.json" {
		t.Errorf("Expected file name test_config.json, got %s", result.File)
	}
	for _, want := range []string{"✓ Name: Test Config", "✓ Grid: 5x3", "✓ Players: 2 (2 hp)", "✓ Bandits: 1 (1 hp)", "✓ Reachability"} {
		if !containsMessage(result.Errors, want) {
			t.Errorf("Expected info %q in %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid JSON", `{"name": "test", invalid json}`, "Invalid JSON"},
		{"missing name", `{"description": "d", "layout": ["1"]}`, "name"},
		{"empty layout", `{"name": "n", "description": "d", "layout": []}`, "layout"},
		{"no players", `{"name": "n", "description": "d", "layout": ["  B"]}`, "player"},
		{"ragged rows", `{"name": "n", "description": "d", "layout": ["1  ", "B"]}`, "row"},
		{"unknown glyph", `{"name": "n", "description": "d", "layout": ["1 x"]}`, "x"},
		{"duplicate slot", `{"name": "n", "description": "d", "layout": ["1 1"]}`, "1"},
		{"hit points too high", `{"name": "n", "description": "d", "layout": ["1"], "player_hit_points": 500}`, "hit points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateConfig(writeConfig(t, tt.content))
			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if len(result.Errors) == 0 || !containsMessage(result.Errors, tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !containsMessage(result.Errors, "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateReachability(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		valid  bool
	}{
		{"open field", []string{"1    ", "     ", "   B "}, true},
		{"no bandits", []string{"1   2"}, true},
		{"bandit behind bandit", []string{"1 BB "}, true},
		{"bandit walled in", []string{"1#  ", "##  ", "  B "}, false},
		{"mountain blocks the only line", []string{"1#B"}, false},
		{"shoot across water", []string{"1~~B"}, true},
		{"water at the edge of range", []string{"1~~~~~~~~B"}, true},
		{"water beyond range", []string{"1~~~~~~~~~B"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.MapConfig{Name: "t", Description: "t", Layout: tt.layout}
			world, err := cfg.NewWorld()
			if err != nil {
				t.Fatalf("NewWorld failed: %v", err)
			}

			result := validateReachability(world)
			if result.Valid != tt.valid {
				t.Errorf("Expected valid=%v, got %v (%v)", tt.valid, result.Valid, result.Errors)
			}
			if !tt.valid && !containsMessage(result.Errors, "Unreachable: Bandit at") {
				t.Errorf("Expected unreachable bandit listed, got %v", result.Errors)
			}
		})
	}
}

func TestShippedConfigsAreValid(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "configs", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("Skipping test - configs directory not found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			if result := validateConfig(file); !result.Valid {
				t.Errorf("Expected %s to be valid, got %v", file, result.Errors)
			}
		})
	}
}
