package service

import (
	"context"
	"errors"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/session"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configID, sessionID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	SubmitInput(ctx context.Context, sessionID string, slot int32, direction string) error
	Step(ctx context.Context, sessionID string) (*TurnResult, error)
	Reset(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Game State
	Board(ctx context.Context, sessionID string) (*BoardView, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*config.ConfigInfo, error)
	LoadConfig(ctx context.Context, configID string) (*config.MapConfig, error)
	SaveConfig(ctx context.Context, configID string, cfg *config.MapConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, cfg *config.MapConfig) (*session.Session, error)
	Get(id string) (*session.Session, error)
	List() []*session.Session
	Delete(id string) error
	// UpdateLastAccessed stamps the access time and persists the session.
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles map configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*config.MapConfig, error)
	ListConfigs() ([]*config.ConfigInfo, error)
	GetDefault() *config.MapConfig
	SaveConfig(name string, cfg *config.MapConfig) error
}
