package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/session/migrations"
)

const migrationTable = "schema_migrations"

// SQLitePersistence implements SessionPersistence on a SQLite database. Each
// session is one row holding the text board, the entities with their ids and
// the session metadata.
type SQLitePersistence struct {
	db *sql.DB
}

// OpenSQLitePersistence opens (creating if needed) the database at path and
// applies the embedded migrations.
func OpenSQLitePersistence(path string) (*SQLitePersistence, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLitePersistence{db: db}, nil
}

// Close closes the database handle.
func (p *SQLitePersistence) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Save inserts or replaces the session row.
func (p *SQLitePersistence) Save(session *Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if err := ValidateID(session.ID); err != nil {
		return err
	}

	data := session.Snapshot()
	configJSON, err := json.Marshal(data.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal map config: %w", err)
	}
	entitiesJSON, err := json.Marshal(data.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}
	controllersJSON, err := json.Marshal(data.Controllers)
	if err != nil {
		return fmt.Errorf("failed to marshal controllers: %w", err)
	}

	_, err = p.db.Exec(
		`INSERT INTO sessions (
		   id, config_id, config_json, board, entities_json, controllers_json, next_id,
		   health_json, turn, last_error, created_at, last_accessed_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, '[]', ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   config_id = excluded.config_id,
		   config_json = excluded.config_json,
		   board = excluded.board,
		   entities_json = excluded.entities_json,
		   controllers_json = excluded.controllers_json,
		   next_id = excluded.next_id,
		   health_json = excluded.health_json,
		   turn = excluded.turn,
		   last_error = excluded.last_error,
		   last_accessed_at = excluded.last_accessed_at`,
		data.ID,
		data.ConfigID,
		string(configJSON),
		strings.Join(data.Board, "\n"),
		string(entitiesJSON),
		string(controllersJSON),
		data.NextID,
		data.Turn,
		data.LastError,
		toMillis(data.CreatedAt),
		toMillis(data.LastAccessedAt),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads and restores one session.
func (p *SQLitePersistence) Load(id string) (*Session, error) {
	var (
		data            PersistedSessionData
		configJSON      string
		board           string
		entitiesJSON    string
		controllersJSON string
		healthJSON      string
		createdAt       int64
		lastAccessed    int64
	)
	row := p.db.QueryRow(
		`SELECT id, config_id, config_json, board, entities_json, controllers_json, next_id,
		   health_json, turn, last_error, created_at, last_accessed_at
		 FROM sessions WHERE id = ?`, id)
	err := row.Scan(&data.ID, &data.ConfigID, &configJSON, &board, &entitiesJSON, &controllersJSON,
		&data.NextID, &healthJSON, &data.Turn, &data.LastError, &createdAt, &lastAccessed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var cfg config.MapConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal map config: %w", err)
	}
	data.Config = &cfg
	if err := json.Unmarshal([]byte(entitiesJSON), &data.Entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}
	if err := json.Unmarshal([]byte(controllersJSON), &data.Controllers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal controllers: %w", err)
	}
	if err := json.Unmarshal([]byte(healthJSON), &data.Health); err != nil {
		return nil, fmt.Errorf("failed to unmarshal health: %w", err)
	}
	data.Board = strings.Split(board, "\n")
	data.CreatedAt = fromMillis(createdAt)
	data.LastAccessedAt = fromMillis(lastAccessed)

	return Restore(data)
}

// Delete removes the session row.
func (p *SQLitePersistence) Delete(id string) error {
	res, err := p.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns every stored session id in ascending order.
func (p *SQLitePersistence) ListAll() ([]string, error) {
	rows, err := p.db.Query(`SELECT id FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exists reports whether a row for id is stored.
func (p *SQLitePersistence) Exists(id string) bool {
	var one int
	err := p.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	return err == nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// applyMigrations runs each embedded *.sql file at most once, in name order,
// recording applied files in schema_migrations.
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`, migrationTable)); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var applied int
		err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE name = ?`, migrationTable), file).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		upSQL := extractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable),
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// extractUpMigration returns the SQL between "-- +migrate Up" and
// "-- +migrate Down", or the whole file when it has no markers.
func extractUpMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	upIdx := strings.Index(content, up)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(up):]
	if downIdx := strings.Index(rest, down); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}
