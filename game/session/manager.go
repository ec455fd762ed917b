package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/pkg/logger"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// MaxSessionIDLength bounds caller supplied session ids.
const MaxSessionIDLength = 64

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// NewManagerWithPersistence creates a new session manager with persistence
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		persistence: persistence,
	}
}

// Create creates a new session with the given ID and map. An empty id gets a
// generated one.
func (m *Manager) Create(id, configID string, cfg *config.MapConfig) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	} else if err := ValidateID(id); err != nil {
		return nil, err
	}

	if m.sessionExists(id) || (m.persistence != nil && m.persistence.Exists(id)) {
		return nil, ErrSessionAlreadyExists
	}

	session, err := New(id, configID, cfg)
	if err != nil {
		return nil, err
	}

	m.sessions[key(id)] = session

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			m.log(id).WithError(err).Warn("Failed to persist new session.")
		}
	}

	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[key(id)]
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	if m.persistence != nil && ValidateID(id) == nil && m.persistence.Exists(id) {
		loaded, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		// Another goroutine may have loaded it meanwhile.
		if existing, ok := m.sessions[key(id)]; ok {
			return existing, nil
		}
		m.sessions[key(id)] = loaded
		return loaded, nil
	}

	return nil, ErrSessionNotFound
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id, configID string, cfg *config.MapConfig) (*Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, configID, cfg)
	}

	return nil, err
}

// List returns all sessions held in memory, sorted by ID
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool { return key(result[i].ID) < key(result[j].ID) })

	return result
}

// Delete removes a session from memory and persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.sessions[key(id)]
	delete(m.sessions, key(id))

	if m.persistence != nil && ValidateID(id) == nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory removes a session from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[key(id)]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, key(id))
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[key(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastAccessedAt = time.Now()

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			m.log(id).WithError(err).Warn("Failed to persist session after access update.")
		}
	}

	return nil
}

// Save saves a specific session to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[key(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpiredSessions removes sessions that haven't been accessed within
// maxAge, from memory and from persistence. It returns how many were removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for k, session := range m.sessions {
		if !session.LastAccessedAt.Before(cutoff) {
			continue
		}
		delete(m.sessions, k)
		removed++

		if m.persistence != nil && m.persistence.Exists(session.ID) {
			if err := m.persistence.Delete(session.ID); err != nil {
				m.log(session.ID).WithError(err).Warn("Failed to delete expired session.")
			}
		}
	}

	if removed > 0 {
		logger.Component("session").WithField("removed", removed).Info("Expired sessions cleaned up.")
	}
	return removed
}

// Count returns the number of sessions held in memory
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Exists reports whether a session is in memory or persisted
func (m *Manager) Exists(id string) bool {
	m.mu.RLock()
	exists := m.sessionExists(id)
	m.mu.RUnlock()
	if exists {
		return true
	}
	return m.persistence != nil && ValidateID(id) == nil && m.persistence.Exists(id)
}

// LoadPersistedSessions loads all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loadedCount := 0
	for _, id := range sessionIDs {
		if _, exists := m.sessions[key(id)]; exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			m.log(id).WithError(err).Warn("Failed to load persisted session.")
			continue
		}

		m.sessions[key(id)] = session
		loadedCount++
	}

	if loadedCount > 0 {
		logger.Component("session").WithField("count", loadedCount).Debug("Loaded persisted sessions.")
	}

	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessions := m.List()

	errorCount := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			m.log(session.ID).WithError(err).Warn("Failed to save session.")
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d sessions", errorCount)
	}

	return nil
}

// ValidateID checks a caller supplied session id. IDs are used as file names
// so only letters, digits, '-' and '_' are allowed.
func ValidateID(id string) error {
	if id == "" || len(id) > MaxSessionIDLength {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
		}
	}
	return nil
}

// generateSessionID returns the first group of a random UUID, retrying on
// the rare collision. Callers hold m.mu.
func (m *Manager) generateSessionID() string {
	for {
		id := strings.SplitN(uuid.NewString(), "-", 2)[0]
		if !m.sessionExists(id) && (m.persistence == nil || !m.persistence.Exists(id)) {
			return id
		}
	}
}

// sessionExists checks if a session exists in memory (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[key(id)]
	return exists
}

func (m *Manager) log(id string) *logrus.Entry {
	return logger.Component("session").WithField("session_id", id)
}

func key(id string) string {
	return strings.ToLower(id)
}
