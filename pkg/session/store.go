package session

import (
	"context"
	"errors"
	"time"
)

// DefaultID names the single shared session used by the web server.
const DefaultID = "default"

var (
	// ErrNotFound is returned when a session has no setup yet.
	ErrNotFound = errors.New("session: not found")
	// ErrSetupChanged is returned when responses were judged against a setup
	// that has since been replaced.
	ErrSetupChanged = errors.New("session: setup changed")
)

// Session is the persisted state of one decision.
type Session struct {
	ID        string
	Setup     Setup
	Responses *Responses
	UpdatedAt time.Time
}

// Complete reports whether responses have been recorded.
func (s Session) Complete() bool {
	return s.Responses != nil
}

// Store persists sessions. Saving a setup discards any earlier responses.
// SaveResponses stores responses only while the session still holds setup,
// the setup they were checked against. It returns ErrNotFound when the
// session has no setup and ErrSetupChanged when another setup replaced it.
type Store interface {
	Load(ctx context.Context, id string) (Session, error)
	SaveSetup(ctx context.Context, id string, setup Setup) error
	SaveResponses(ctx context.Context, id string, setup Setup, responses Responses) error
	Close() error
}
