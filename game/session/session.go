package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/engine"
	"github.com/wricardo/wild-wild-trader/game/textmap"
)

// Session is one running game: a world built from a map config plus the
// bookkeeping needed to persist and resume it.
//
// A Session is not safe for concurrent use; the game service serializes
// access to it.
type Session struct {
	ID             string
	ConfigID       string
	Config         *config.MapConfig
	World          *engine.World
	Turn           int
	LastError      string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// New builds a session with a fresh world for cfg.
func New(id, configID string, cfg *config.MapConfig) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("map config is required")
	}
	world, err := cfg.NewWorld()
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}
	now := time.Now()
	return &Session{
		ID:             id,
		ConfigID:       configID,
		Config:         cfg,
		World:          world,
		CreatedAt:      now,
		LastAccessedAt: now,
	}, nil
}

// Reset replaces the world with a fresh copy of the map.
func (s *Session) Reset() error {
	world, err := s.Config.NewWorld()
	if err != nil {
		return fmt.Errorf("failed to build world: %w", err)
	}
	s.World = world
	s.Turn = 0
	s.LastError = ""
	return nil
}

// Board returns the world as text rows.
func (s *Session) Board() []string {
	return textmap.PrintRows(s.World)
}

// Snapshot converts the session into its persisted form.
func (s *Session) Snapshot() PersistedSessionData {
	controllers := s.World.Controllers()
	ids := make([]engine.EntityID, 0, len(controllers))
	for _, c := range controllers {
		ids = append(ids, c.EntityID)
	}
	return PersistedSessionData{
		ID:             s.ID,
		ConfigID:       s.ConfigID,
		Config:         s.Config,
		Board:          s.Board(),
		Entities:       s.World.Entities(),
		NextID:         s.World.NextID(),
		Controllers:    ids,
		Turn:           s.Turn,
		LastError:      s.LastError,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccessedAt,
	}
}

// Restore rebuilds a session from its persisted form.
func Restore(data PersistedSessionData) (*Session, error) {
	cfg := data.Config
	if cfg == nil {
		cfg = config.DefaultMapConfig()
	}
	var (
		world *engine.World
		err   error
	)
	if data.NextID > engine.NoEntity {
		world, err = restoreEntities(data)
	} else {
		world, err = restoreBoard(data, cfg)
	}
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:             data.ID,
		ConfigID:       data.ConfigID,
		Config:         cfg,
		World:          world,
		Turn:           data.Turn,
		LastError:      data.LastError,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// restoreEntities rebuilds the world from the stored entities. The board rows
// only give the map size.
func restoreEntities(data PersistedSessionData) (*engine.World, error) {
	if len(data.Board) == 0 || len(data.Board[0]) == 0 {
		return nil, fmt.Errorf("failed to restore world: %w", textmap.ErrEmptyGrid)
	}
	width := len([]rune(data.Board[0]))
	right := engine.NewCoordinate(float32(width-1), float32(len(data.Board)-1))
	world, err := engine.RestoreWorld(right, data.Entities, data.NextID, data.Controllers)
	if err != nil {
		return nil, fmt.Errorf("failed to restore world: %w", err)
	}
	return world, nil
}

// restoreBoard rebuilds the world by reloading the board text. Ids follow
// reading order; actors without a health record keep the map's hit points.
func restoreBoard(data PersistedSessionData, cfg *config.MapConfig) (*engine.World, error) {
	world, err := textmap.LoadWith(strings.Join(data.Board, "\n"), cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}
	for _, h := range data.Health {
		e, ok := world.OnCoord(engine.NewCoordinate(float32(h.X), float32(h.Y)))
		if !ok || !e.Health.Mortal {
			return nil, fmt.Errorf("failed to restore health: no actor at (%d,%d)", h.X, h.Y)
		}
		world.UpdateEntity(e.WithHealth(engine.HitPoints(h.Points)))
	}
	return world, nil
}
