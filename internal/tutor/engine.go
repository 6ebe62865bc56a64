// Package tutor drives the conversational tutoring session: an append-only
// transcript, a topical context mode, and strictly serialized request turns.
package tutor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartpath/internal/models"
)

// greeting seeds every new transcript; it is shown to the user but never sent
// to the backend as history.
const greeting = "Hi! I'm your SmartPath tutor. Ask me anything about your schoolwork."

var (
	// ErrEmptyMessage means the input was empty or whitespace only
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy means a previous turn has not resolved yet
	ErrBusy = errors.New("a message is already being sent")

	// ErrInvalidMode means the context mode is not one the backend accepts
	ErrInvalidMode = errors.New("unknown context mode")
)

// TutoringService is the slice of the tutoring client the engine needs
type TutoringService interface {
	Send(ctx context.Context, message string, history []models.ChatMessage, sessionID string, mode models.ContextMode) (string, error)
}

// Engine holds one tutoring conversation
type Engine struct {
	service   TutoringService
	logger    *zap.Logger
	sessionID string

	mu         sync.Mutex
	transcript []models.ChatMessage
	mode       models.ContextMode
	busy       bool
}

// NewEngine starts a conversation with the assistant greeting
func NewEngine(service TutoringService, logger *zap.Logger) *Engine {
	return &Engine{
		service:    service,
		logger:     logger,
		sessionID:  uuid.NewString(),
		transcript: []models.ChatMessage{{Speaker: models.SpeakerAssistant, Text: greeting}},
		mode:       models.ModeGeneral,
	}
}

// Transcript returns a copy of the conversation so far
func (e *Engine) Transcript() []models.ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.ChatMessage, len(e.transcript))
	copy(out, e.transcript)
	return out
}

// Mode returns the active context mode
func (e *Engine) Mode() models.ContextMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetMode switches the context mode. The switch is instantaneous, keeps the
// transcript, and only changes the hint sent with the next turn.
func (e *Engine) SetMode(mode models.ContextMode) error {
	if !mode.Valid() {
		return ErrInvalidMode
	}
	e.mu.Lock()
	e.mode = mode
	e.mu.Unlock()
	return nil
}

// Busy reports whether a turn is in flight
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Send submits one user turn. The user's message is appended to the
// transcript before the request goes out and stays there on failure, so the
// input survives for a retry; the assistant turn is appended only on success.
func (e *Engine) Send(ctx context.Context, text string) (string, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return "", ErrEmptyMessage
	}

	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return "", ErrBusy
	}
	e.busy = true
	e.transcript = append(e.transcript, models.ChatMessage{Speaker: models.SpeakerUser, Text: message})

	// Full prior transcript including the turn just appended, minus the
	// synthetic greeting.
	history := make([]models.ChatMessage, len(e.transcript)-1)
	copy(history, e.transcript[1:])
	mode := e.mode
	e.mu.Unlock()

	reply, err := e.service.Send(ctx, message, history, e.sessionID, mode)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false
	if err != nil {
		e.logger.Warn("tutor turn failed", zap.String("mode", string(mode)), zap.Error(err))
		return "", err
	}
	e.transcript = append(e.transcript, models.ChatMessage{Speaker: models.SpeakerAssistant, Text: reply})
	return reply, nil
}

// Reset starts a fresh conversation under a new session id. Rejected while a
// turn is in flight.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return ErrBusy
	}
	e.sessionID = uuid.NewString()
	e.transcript = []models.ChatMessage{{Speaker: models.SpeakerAssistant, Text: greeting}}
	e.mode = models.ModeGeneral
	return nil
}
