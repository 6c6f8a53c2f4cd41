package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-ahpgen/pkg/session"
)

const schema = `CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	setup TEXT NOT NULL,
	responses TEXT,
	updated_at INTEGER NOT NULL
)`

// SQLite persists sessions in a single table with JSON columns.
type SQLite struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying connection.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLite) Load(ctx context.Context, id string) (session.Session, error) {
	id, err := normalizeID(id)
	if err != nil {
		return session.Session{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT setup, responses, updated_at FROM sessions WHERE id = ?`, id)

	var (
		setupJSON     string
		responsesJSON sql.NullString
		updatedAt     int64
	)
	if err := row.Scan(&setupJSON, &responsesJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, fmt.Errorf("%w: %s", session.ErrNotFound, id)
		}
		return session.Session{}, fmt.Errorf("load session: %w", err)
	}

	out := session.Session{ID: id, UpdatedAt: time.UnixMilli(updatedAt).UTC()}
	if err := json.Unmarshal([]byte(setupJSON), &out.Setup); err != nil {
		return session.Session{}, fmt.Errorf("decode setup: %w", err)
	}
	if responsesJSON.Valid {
		var responses session.Responses
		if err := json.Unmarshal([]byte(responsesJSON.String), &responses); err != nil {
			return session.Session{}, fmt.Errorf("decode responses: %w", err)
		}
		out.Responses = &responses
	}
	return out, nil
}

func (s *SQLite) SaveSetup(ctx context.Context, id string, setup session.Setup) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(setup)
	if err != nil {
		return fmt.Errorf("encode setup: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO sessions (id, setup, responses, updated_at) VALUES (?, ?, NULL, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    setup = excluded.setup,
		    responses = NULL,
		    updated_at = excluded.updated_at`,
		id, string(payload), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save setup: %w", err)
	}
	return nil
}

func (s *SQLite) SaveResponses(ctx context.Context, id string, setup session.Setup, responses session.Responses) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	setupJSON, err := json.Marshal(setup)
	if err != nil {
		return fmt.Errorf("encode setup: %w", err)
	}
	payload, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}

	// setup is stored as written by SaveSetup, so the encoded forms compare equal.
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE sessions SET responses = ?, updated_at = ? WHERE id = ? AND setup = ?`,
		string(payload), s.now().UTC().UnixMilli(), id, string(setupJSON),
	)
	if err != nil {
		return fmt.Errorf("save responses: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save responses: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists int
	err = s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %s", session.ErrNotFound, id)
	case err != nil:
		return fmt.Errorf("save responses: %w", err)
	default:
		return fmt.Errorf("%w: %s", session.ErrSetupChanged, id)
	}
}
