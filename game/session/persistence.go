package session

import (
	"time"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/engine"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. Entities holds every
// live entity with its id, and NextID the id the world hands out next, so ids
// survive a reload. Board is the rendered map; with Health it is also the
// fallback for sessions saved before entities were stored.
type PersistedSessionData struct {
	ID             string            `json:"id"`
	ConfigID       string            `json:"config_id"`
	Config         *config.MapConfig `json:"config"`
	Board          []string          `json:"board"`
	Entities       []engine.Entity   `json:"entities,omitempty"`
	NextID         engine.EntityID   `json:"next_id,omitempty"`
	Controllers    []engine.EntityID `json:"controllers,omitempty"`
	Health         []CellHealth      `json:"health,omitempty"`
	Turn           int               `json:"turn"`
	LastError      string            `json:"last_error,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
}

// CellHealth records the hit points of the actor standing on a board cell.
type CellHealth struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Points float32 `json:"points"`
}
