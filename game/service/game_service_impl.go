package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/engine"
	"github.com/wricardo/wild-wild-trader/game/session"
	"github.com/wricardo/wild-wild-trader/game/textmap"
	"github.com/wricardo/wild-wild-trader/pkg/logger"
)

// gameServiceImpl implements the GameService interface. One mutex serializes
// every operation so a world is only ever touched by one turn at a time.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session. An empty configID selects the
// default map, an empty sessionID gets a generated id.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configID, sessionID string) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.resolveConfig(configID)
	if err != nil {
		return nil, err
	}
	if configID == "" {
		configID = config.DefaultConfigID
	}

	sess, err := s.sessions.Create(sessionID, configID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log(sess.ID).WithField("config_id", configID).Info("Session created.")
	return sessionInfo(sess), nil
}

// GetSession returns a session summary
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateLastAccessed(sess.ID); err != nil {
		s.log(sess.ID).WithError(err).Warn("Failed to update session access time.")
	}
	return sessionInfo(sess), nil
}

// ListSessions returns every known session sorted by id
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	infos := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sessionInfo(sess))
	}
	return infos, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.log(sessionID).Info("Session deleted.")
	return nil
}

// SubmitInput records a direction for the player in slot. The input is
// resolved on the next Step; a second input for the same player before then
// replaces the first.
func (s *gameServiceImpl) SubmitInput(ctx context.Context, sessionID string, slot int32, direction string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	player, ok := sess.World.PlayerEntity(slot)
	if !ok {
		return fmt.Errorf("%w: slot %d", ErrPlayerNotFound, slot)
	}

	sess.World.RegisterPlayerInput(player.ID, engine.NewPlayerInput(dir))
	s.log(sess.ID).WithFields(logrus.Fields{
		"slot":      slot,
		"direction": dir.String(),
	}).Debug("Input registered.")
	return nil
}

// Step runs one turn when inputs or actions are pending. A failed turn is
// reported in TurnResult.Error, not as an error: the session stays playable.
func (s *gameServiceImpl) Step(ctx context.Context, sessionID string) (*TurnResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{SessionID: sess.ID, Turn: sess.Turn}
	if !engine.HasPendingWork(sess.World) {
		result.Board = boardView(sess)
		return result, nil
	}

	before := sess.World.Entities()
	turnErr := engine.Run(sess.World)

	sess.Turn++
	sess.LastError = ""
	result.Turn = sess.Turn
	result.Executed = true
	if turnErr != nil {
		sess.LastError = turnErr.Error()
		result.Error = sess.LastError
		s.log(sess.ID).WithError(turnErr).WithField("turn", sess.Turn).Warn("Turn failed.")
	}
	result.Events = diffWorld(before, sess.World)
	result.Board = boardView(sess)

	// UpdateLastAccessed also writes the session to its store.
	if err := s.sessions.UpdateLastAccessed(sess.ID); err != nil {
		s.log(sess.ID).WithError(err).Warn("Failed to persist session after turn.")
	}

	return result, nil
}

// Reset rebuilds the session's world from its map
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Reset(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(sess.ID); err != nil {
		s.log(sess.ID).WithError(err).Warn("Failed to persist session after reset.")
	}
	s.log(sess.ID).Info("Session reset.")
	return sessionInfo(sess), nil
}

// Board returns the current board of a session
func (s *gameServiceImpl) Board(ctx context.Context, sessionID string) (*BoardView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return boardView(sess), nil
}

// ListConfigs returns the available maps
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*config.ConfigInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.configs.ListConfigs()
}

// LoadConfig returns one map
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configID string) (*config.MapConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.configs.LoadConfig(configID)
}

// SaveConfig validates and stores a map
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configID string, cfg *config.MapConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.configs.SaveConfig(configID, cfg)
}

func (s *gameServiceImpl) resolveConfig(configID string) (*config.MapConfig, error) {
	if configID == "" {
		return s.configs.GetDefault(), nil
	}
	cfg, err := s.configs.LoadConfig(configID)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, config.ErrConfigNotFound) {
		if infos, listErr := s.configs.ListConfigs(); listErr == nil && len(infos) > 0 {
			ids := make([]string, 0, len(infos))
			for _, info := range infos {
				ids = append(ids, info.ConfigID)
			}
			return nil, fmt.Errorf("%w: %q (available: %v)", config.ErrConfigNotFound, configID, ids)
		}
	}
	return nil, fmt.Errorf("failed to load config %s: %w", configID, err)
}

func (s *gameServiceImpl) log(sessionID string) *logrus.Entry {
	return logger.Component("service").WithField("session_id", sessionID)
}

func sessionInfo(sess *session.Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		ConfigID:       sess.ConfigID,
		Turn:           sess.Turn,
		LastError:      sess.LastError,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Board:          boardView(sess),
	}
	if sess.Config != nil {
		info.MapName = sess.Config.Name
	}
	return info
}

func boardView(sess *session.Session) *BoardView {
	world := sess.World
	view := &BoardView{
		Width:   world.Width(),
		Height:  world.Height(),
		Rows:    textmap.PrintRows(world),
		Pending: engine.HasPendingWork(world),
	}

	for _, slot := range mapSlots(sess.Config) {
		status := PlayerStatus{Slot: slot}
		if player, ok := world.PlayerEntity(slot); ok {
			status.EntityID = player.ID
			status.Alive = true
			status.HitPoints = player.Health.Points
			status.X, status.Y = player.Coord.Cell()
		}
		view.Players = append(view.Players, status)
	}
	for _, e := range world.Entities() {
		if e.Type.Kind == engine.KindEnemy {
			view.EnemiesLeft++
		}
	}
	return view
}

// mapSlots returns the player slots present on the map layout, ascending.
func mapSlots(cfg *config.MapConfig) []int32 {
	if cfg == nil {
		return nil
	}
	seen := map[int32]bool{}
	var slots []int32
	for _, row := range cfg.Layout {
		for _, r := range row {
			if r >= '1' && r <= '9' && !seen[r-'0'] {
				seen[r-'0'] = true
				slots = append(slots, r-'0')
			}
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// diffWorld lists what happened to every entity that existed before the turn,
// in ascending id order.
func diffWorld(before []engine.Entity, world *engine.World) []TurnEvent {
	var events []TurnEvent
	for _, prev := range before {
		cur, alive := world.GetEntity(prev.ID)
		if !alive {
			events = append(events, TurnEvent{
				Type:     EventKilled,
				EntityID: prev.ID,
				Entity:   prev.Type.String(),
				From:     coordPtr(prev.Coord),
				Message:  fmt.Sprintf("%s was killed at %s", prev.Type, prev.Coord),
			})
			continue
		}
		if !cur.Coord.Equal(prev.Coord) {
			events = append(events, TurnEvent{
				Type:     EventMoved,
				EntityID: prev.ID,
				Entity:   prev.Type.String(),
				From:     coordPtr(prev.Coord),
				To:       coordPtr(cur.Coord),
				Message:  fmt.Sprintf("%s moved from %s to %s", prev.Type, prev.Coord, cur.Coord),
			})
		}
		if cur.Health.Points < prev.Health.Points {
			events = append(events, TurnEvent{
				Type:      EventDamaged,
				EntityID:  prev.ID,
				Entity:    prev.Type.String(),
				HitPoints: cur.Health.Points,
				Message:   fmt.Sprintf("%s was hit, %g hit points left", prev.Type, cur.Health.Points),
			})
		}
	}
	return events
}

func coordPtr(c engine.Coordinate) *engine.Coordinate {
	return &c
}
