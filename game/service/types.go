package service

import (
	"time"

	"github.com/wricardo/wild-wild-trader/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string     `json:"id"`
	ConfigID       string     `json:"config_id"`
	MapName        string     `json:"map_name"`
	Turn           int        `json:"turn"`
	LastError      string     `json:"last_error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	Board          *BoardView `json:"board"`
}

// BoardView is a rendered snapshot of a session's world
type BoardView struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Rows        []string       `json:"rows"`
	Players     []PlayerStatus `json:"players"`
	EnemiesLeft int            `json:"enemies_left"`
	Pending     bool           `json:"pending"`
}

// PlayerStatus describes one player slot of the map
type PlayerStatus struct {
	Slot      int32           `json:"slot"`
	EntityID  engine.EntityID `json:"entity_id,omitempty"`
	Alive     bool            `json:"alive"`
	HitPoints float32         `json:"hit_points"`
	X         int             `json:"x"`
	Y         int             `json:"y"`
}

// TurnResult contains the result of one Step
type TurnResult struct {
	SessionID string      `json:"session_id"`
	Turn      int         `json:"turn"`
	Executed  bool        `json:"executed"`
	Error     string      `json:"error,omitempty"`
	Events    []TurnEvent `json:"events,omitempty"`
	Board     *BoardView  `json:"board"`
}

// EventType classifies a TurnEvent
type EventType string

const (
	EventMoved   EventType = "moved"
	EventDamaged EventType = "damaged"
	EventKilled  EventType = "killed"
)

// TurnEvent represents a change to one entity during a turn
type TurnEvent struct {
	Type      EventType          `json:"type"`
	EntityID  engine.EntityID    `json:"entity_id"`
	Entity    string             `json:"entity"`
	From      *engine.Coordinate `json:"from,omitempty"`
	To        *engine.Coordinate `json:"to,omitempty"`
	HitPoints float32            `json:"hit_points,omitempty"`
	Message   string             `json:"message"`
}
