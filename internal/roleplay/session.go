// Package roleplay implements the stateful multi-turn role-play session:
// user input, outbound dialogue-generation requests, optional speech capture
// and playback, and camera/microphone lifecycle.
package roleplay

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/adaptlearn/internal/ai"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotActive   = errors.NewSentinel("session is not active")
	ErrTurnPending = errors.NewSentinel("a turn is already awaiting its response")
)

// DialogueService is the outbound dialogue-generation collaborator.
type DialogueService interface {
	Dialogue(ctx context.Context, req ai.DialogueRequest) (ai.DialogueResponse, error)
}

// ActivityRecorder receives the single completion event an eligible session
// emits when it ends.
type ActivityRecorder interface {
	RecordCompletion(ctx context.Context, email string, item models.HistoryItem) error
}

// State of a role-play session.
type State string

const (
	StateIdle       State = "idle"
	StateActive     State = "active"
	StateTerminated State = "terminated"
)

// Session is one role-play conversation. It exclusively owns its device
// handles and transcript; it is never shared across sessions.
type Session struct {
	id       string
	email    string
	scenario models.Scenario

	dialogue     DialogueService
	recorder     ActivityRecorder
	capabilities Capabilities
	logger       *slog.Logger
	now          func() time.Time

	mu                sync.Mutex
	state             State
	messages          []models.ChatMessage
	turnPending       bool
	recognitionActive bool
}

func newSession(
	email string,
	scenario models.Scenario,
	dialogue DialogueService,
	recorder ActivityRecorder,
	capabilities Capabilities,
	logger *slog.Logger,
	now func() time.Time,
) *Session {
	return &Session{
		id:           uuid.NewString(),
		email:        email,
		scenario:     scenario,
		dialogue:     dialogue,
		recorder:     recorder,
		capabilities: capabilities,
		logger:       logger.With("source", "RolePlaySession"),
		now:          now,
		state:        StateIdle,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the messages exchanged so far.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// start brings the session live: it acquires camera/microphone and requests
// the opening line as independent operations so that a slow permission prompt
// cannot block the opening line. Device denial is non-fatal; an opening-line
// failure terminates the session.
func (s *Session) start(ctx context.Context) error {
	var opening models.ChatMessage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.capabilities.Media.Acquire(gctx); err != nil {
			// Degrade to a no-camera/no-mic mode.
			s.logger.LogAttrs(gctx, slog.LevelInfo, "media capture unavailable", errors.SlogError(err))
		}
		return nil
	})
	g.Go(func() error {
		response, err := s.dialogue.Dialogue(gctx, ai.DialogueRequest{Scenario: s.scenario, History: nil})
		if err != nil {
			return errors.Wrap(err, "request opening line")
		}
		opening = models.ChatMessage{
			Role:         models.ChatRoleModel,
			Content:      response.Response,
			AudioDataURI: response.AudioDataURI,
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.capabilities.Media.Release()
		s.mu.Lock()
		s.state = StateTerminated
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.messages = append(s.messages, opening)
	s.state = StateActive
	s.mu.Unlock()

	if s.scenario.VoiceEnabled {
		if err := s.capabilities.SpeechInput.Start(ctx); err != nil {
			// Capability absence is a notice, not a crash.
			s.logger.LogAttrs(ctx, slog.LevelInfo, "speech recognition unavailable", errors.SlogError(err))
		} else {
			s.mu.Lock()
			s.recognitionActive = true
			s.mu.Unlock()
		}
		s.play(ctx, opening)
	}

	return nil
}

// SendMessage runs one turn cycle: the user message is appended
// optimistically, the full transcript is sent to the dialogue service, and on
// success the model's reply is appended and played back. On failure the
// optimistic message is rolled back and the session stays active so the user
// can retry. A new turn cannot start while a previous one is outstanding.
func (s *Session) SendMessage(ctx context.Context, content string) (models.ChatMessage, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrNotActive
	}
	if s.turnPending {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrTurnPending
	}
	s.turnPending = true
	s.messages = append(s.messages, models.ChatMessage{Role: models.ChatRoleUser, Content: content})
	history := slices.Clone(s.messages)
	s.mu.Unlock()

	response, err := s.dialogue.Dialogue(ctx, ai.DialogueRequest{Scenario: s.scenario, History: history})

	s.mu.Lock()
	s.turnPending = false
	if s.state != StateActive {
		// The session ended while the request was in flight; its result is ignored.
		s.mu.Unlock()
		return models.ChatMessage{}, ErrNotActive
	}
	if err != nil {
		// Roll back the optimistic user message, leaving the transcript as it
		// was before this turn.
		s.messages = s.messages[:len(s.messages)-1]
		s.mu.Unlock()
		return models.ChatMessage{}, errors.Wrap(err, "dialogue request failed")
	}
	reply := models.ChatMessage{
		Role:         models.ChatRoleModel,
		Content:      response.Response,
		AudioDataURI: response.AudioDataURI,
	}
	s.messages = append(s.messages, reply)
	s.mu.Unlock()

	if s.scenario.VoiceEnabled {
		s.play(ctx, reply)
	}

	return reply, nil
}

// play voices a model message. Recognition is paused while the audio plays so
// the system does not transcribe its own speech, and resumes only after
// playback completes. Server-provided audio is preferred over on-device
// synthesis.
func (s *Session) play(ctx context.Context, message models.ChatMessage) {
	s.mu.Lock()
	recognitionActive := s.recognitionActive
	s.mu.Unlock()

	if recognitionActive {
		s.capabilities.SpeechInput.Pause()
		defer s.capabilities.SpeechInput.Resume()
	}

	var err error
	if message.AudioDataURI != "" {
		err = s.capabilities.SpeechOutput.Play(ctx, message.AudioDataURI)
	} else {
		err = s.capabilities.SpeechOutput.Speak(ctx, message.Content, s.scenario.AIRole)
	}
	if err != nil && !errors.Is(err, ErrUnavailable) {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "voice playback failed", errors.SlogError(err))
	}
}

// End terminates the session. All device handles are released and any
// in-progress speech synthesis and recognition are cancelled. When at least
// one full round-trip happened beyond the opening line the session emits
// exactly one completion event; shorter sessions terminate silently so that
// abandoned sessions earn no credit. Returns whether completion credit was
// given.
func (s *Session) End(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.state == StateTerminated {
		s.mu.Unlock()
		return false, nil
	}
	s.state = StateTerminated
	s.recognitionActive = false
	transcript := slices.Clone(s.messages)
	s.mu.Unlock()

	s.capabilities.SpeechOutput.Cancel()
	s.capabilities.SpeechInput.Stop()
	s.capabilities.Media.Release()

	if len(transcript) < 2 {
		return false, nil
	}

	item := models.HistoryItem{
		ID:        uuid.NewString(),
		Type:      models.ActivityRolePlay,
		Title:     fmt.Sprintf("%s vs. %s", s.scenario.UserRole, s.scenario.AIRole),
		Timestamp: s.now(),
		Details: models.RolePlayDetails{
			ScenarioDescription: s.scenario.Description,
			UserRole:            s.scenario.UserRole,
			AIRole:              s.scenario.AIRole,
			Messages:            transcript,
		},
	}
	if err := s.recorder.RecordCompletion(ctx, s.email, item); err != nil {
		return false, errors.Wrap(err, "record role-play completion")
	}
	return true, nil
}
