package roleplay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
)

var ErrNoSession = errors.NewSentinel("no active session")

// Manager owns at most one active session per user. Starting a new session
// replaces the previous one, which is ended with its normal completion
// semantics so its devices are fully released.
type Manager struct {
	dialogue        DialogueService
	recorder        ActivityRecorder
	newCapabilities func() Capabilities
	logger          *slog.Logger
	now             func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(
	dialogue DialogueService,
	recorder ActivityRecorder,
	newCapabilities func() Capabilities,
	logger *slog.Logger,
) *Manager {
	if newCapabilities == nil {
		newCapabilities = NoopCapabilities
	}
	return &Manager{
		dialogue:        dialogue,
		recorder:        recorder,
		newCapabilities: newCapabilities,
		logger:          logger,
		now:             time.Now,
		sessions:        make(map[string]*Session),
	}
}

// Start begins a new session for the user, replacing any existing one.
func (m *Manager) Start(ctx context.Context, email string, scenario models.Scenario) (*Session, error) {
	m.mu.Lock()
	previous := m.sessions[email]
	delete(m.sessions, email)
	m.mu.Unlock()

	if previous != nil {
		if _, err := previous.End(ctx); err != nil {
			// The replacement session must still start; losing the previous
			// session's credit is logged, not propagated.
			m.logger.LogAttrs(ctx, slog.LevelError, "could not end replaced session", errors.SlogError(err))
		}
	}

	session := newSession(email, scenario, m.dialogue, m.recorder, m.newCapabilities(), m.logger, m.now)
	if err := session.start(ctx); err != nil {
		return nil, errors.Wrap(err, "start session")
	}

	m.mu.Lock()
	m.sessions[email] = session
	m.mu.Unlock()
	return session, nil
}

// Get returns the user's active session.
func (m *Manager) Get(email string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[email]
	if !ok {
		return nil, ErrNoSession
	}
	return session, nil
}

// End terminates the user's active session and reports whether completion
// credit was given.
func (m *Manager) End(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	session, ok := m.sessions[email]
	delete(m.sessions, email)
	m.mu.Unlock()
	if !ok {
		return false, ErrNoSession
	}
	return session.End(ctx)
}
