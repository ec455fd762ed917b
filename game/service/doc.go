// Package service provides the business logic layer for Wild Wild Trader.
//
// The service package implements:
//   - Multi-session game management
//   - Player input collection and turn stepping
//   - Map configuration access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages map configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the front-ends (terminal, CLI) and the turn
// engine. The engine is single-threaded; the service serializes every call
// with one mutex so each world has a single owner while a turn runs.
//
// Turns:
//
// SubmitInput records a direction for a player slot. Step runs one turn when
// anything is pending: the engine resolves inputs into moves or attacks and
// applies them in order, stopping at the first failure. A failed turn is not
// fatal; it is logged and returned in TurnResult.Error, and the next Step
// starts from a clean queue. TurnResult.Events lists moved, damaged and
// killed entities.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "duel", "")
//	err = gameService.SubmitInput(ctx, info.ID, 1, "right")
//	result, err := gameService.Step(ctx, info.ID)
package service
