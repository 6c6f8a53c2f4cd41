package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-ahpgen/pkg/session"
)

// Memory keeps sessions in a map guarded by a mutex.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
	now      func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]session.Session),
		now:      time.Now,
	}
}

func (m *Memory) Load(ctx context.Context, id string) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}
	id, err := normalizeID(id)
	if err != nil {
		return session.Session{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, fmt.Errorf("%w: %s", session.ErrNotFound, id)
	}
	return clone(s), nil
}

func (m *Memory) SaveSetup(ctx context.Context, id string, setup session.Setup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := normalizeID(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = clone(session.Session{
		ID:        id,
		Setup:     setup,
		UpdatedAt: m.now().UTC(),
	})
	return nil
}

func (m *Memory) SaveResponses(ctx context.Context, id string, setup session.Setup, responses session.Responses) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := normalizeID(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", session.ErrNotFound, id)
	}
	if !s.Setup.Equal(setup) {
		return fmt.Errorf("%w: %s", session.ErrSetupChanged, id)
	}
	s.Responses = &responses
	s.UpdatedAt = m.now().UTC()
	m.sessions[id] = clone(s)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

func clone(s session.Session) session.Session {
	out := s
	out.Setup = session.Setup{
		Alternatives: append([]string(nil), s.Setup.Alternatives...),
		Criteria:     append([]string(nil), s.Setup.Criteria...),
	}
	if s.Responses != nil {
		r := session.Responses{
			CriteriaMatrix:      cloneCells(s.Responses.CriteriaMatrix),
			AlternativeMatrices: make(map[string]session.Cells, len(s.Responses.AlternativeMatrices)),
		}
		for k, cells := range s.Responses.AlternativeMatrices {
			r.AlternativeMatrices[k] = cloneCells(cells)
		}
		out.Responses = &r
	}
	return out
}

func cloneCells(c session.Cells) session.Cells {
	if c == nil {
		return nil
	}
	out := make(session.Cells, len(c))
	for row, cols := range c {
		copied := make(map[string]session.Value, len(cols))
		for col, v := range cols {
			copied[col] = v
		}
		out[row] = copied
	}
	return out
}

func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("session id is required")
	}
	return id, nil
}
