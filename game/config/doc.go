// Package config provides map configuration management for Wild Wild Trader.
//
// The config package handles:
//   - Loading map configurations from JSON files
//   - Map validation
//   - Default map selection
//   - Map discovery and listing
//
// Configuration Format:
//
// Maps are stored as JSON files in the configs directory. The file name
// without ".json" is the config id used to create sessions.
//
//	{
//	  "name": "Duel",
//	  "description": "Two players, one canyon",
//	  "layout": ["1  #  2"],
//	  "player_hit_points": 3,
//	  "enemy_hit_points": 1
//	}
//
// Layout rows use the text map glyphs: ' ' empty, '1'-'9' players,
// 'B' bandit, '#' mountain, '~' water.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mapConfig, err := manager.LoadConfig("duel")
//	world, err := mapConfig.NewWorld()
//
// Validation:
//
// All configurations are validated for:
//   - Name and description
//   - Rectangular layout within MinGridSize..MaxGridSize
//   - Known glyphs and at least one uniquely numbered player
//   - Hit points within 1..MaxHitPoints (zero selects the default)
package config
