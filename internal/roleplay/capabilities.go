package roleplay

import (
	"context"

	"github.com/myrjola/adaptlearn/internal/errors"
)

// ErrUnavailable signals that a device or speech engine is missing in the
// current environment. It degrades the session to a reduced-feature mode and
// is never fatal.
var ErrUnavailable = errors.NewSentinel("capability unavailable")

// SpeechInput captures continuous speech-to-text for the user's turns.
type SpeechInput interface {
	// Start begins continuous recognition. Returns ErrUnavailable when no
	// recognition engine exists in the runtime environment.
	Start(ctx context.Context) error
	// Pause suspends recognition while the session plays audio so that the
	// system does not transcribe its own speech.
	Pause()
	// Resume continues recognition after playback has completed.
	Resume()
	// Stop ends recognition for good.
	Stop()
}

// SpeechOutput plays the AI's lines out loud.
type SpeechOutput interface {
	// Play renders server-synthesized audio and blocks until playback ends.
	Play(ctx context.Context, audioDataURI string) error
	// Speak synthesizes text on-device with a voice fitting the role and
	// blocks until playback ends. Returns ErrUnavailable when no synthesis
	// engine exists.
	Speak(ctx context.Context, text string, role string) error
	// Cancel stops any in-progress playback.
	Cancel()
}

// MediaCapture owns the camera/microphone device handles of one session.
type MediaCapture interface {
	// Acquire requests the devices. An error means denied or absent and the
	// session falls back to a no-camera/no-mic mode.
	Acquire(ctx context.Context) error
	// Release stops every capture track. Must be safe to call without a
	// prior successful Acquire.
	Release()
}

// Capabilities bundles the device-facing dependencies of one session.
type Capabilities struct {
	SpeechInput  SpeechInput
	SpeechOutput SpeechOutput
	Media        MediaCapture
}

// NoopCapabilities returns capabilities for headless environments: media is
// always denied and speech engines are absent.
func NoopCapabilities() Capabilities {
	return Capabilities{
		SpeechInput:  noopSpeechInput{},
		SpeechOutput: noopSpeechOutput{},
		Media:        noopMediaCapture{},
	}
}

type noopSpeechInput struct{}

func (noopSpeechInput) Start(context.Context) error { return ErrUnavailable }
func (noopSpeechInput) Pause()                      {}
func (noopSpeechInput) Resume()                     {}
func (noopSpeechInput) Stop()                       {}

type noopSpeechOutput struct{}

func (noopSpeechOutput) Play(context.Context, string) error          { return nil }
func (noopSpeechOutput) Speak(context.Context, string, string) error { return ErrUnavailable }
func (noopSpeechOutput) Cancel()                                     {}

type noopMediaCapture struct{}

func (noopMediaCapture) Acquire(context.Context) error { return ErrUnavailable }
func (noopMediaCapture) Release()                      {}
