// Package solver runs the math-problem workflow: solve a typed or
// photographed problem, then optionally derive a practice set from it.
package solver

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"smartpath/internal/models"
)

const (
	practiceSetSize = 10
	topicMaxLen     = 50
	defaultTopic    = "general problem solving"
	practiceSubject = "Mathematics"
)

var (
	// ErrNoInput means neither prompt text nor an image was provided
	ErrNoInput = errors.New("enter a problem or attach an image")

	// ErrNoSolution means practice was requested before anything was solved
	ErrNoSolution = errors.New("solve a problem before generating practice")

	// ErrSolveInFlight means a solve request has not resolved yet
	ErrSolveInFlight = errors.New("a solve request is already in progress")

	// ErrPracticeInFlight means practice generation has not resolved yet
	ErrPracticeInFlight = errors.New("practice generation is already in progress")
)

// MathService is the slice of the math client the workflow needs
type MathService interface {
	Solve(ctx context.Context, prompt, imageBase64 string) (string, error)
	GeneratePractice(ctx context.Context, subject, topic string, gradeLevel, count int) ([]models.PracticeProblem, error)
}

// Workflow holds one math session: the prompt, its solution, and the practice
// set derived from it. A new solve replaces the session wholesale.
type Workflow struct {
	service    MathService
	gradeLevel int
	logger     *zap.Logger

	mu         sync.Mutex
	prompt     string
	image      string
	solution   string
	practice   []models.PracticeProblem
	solving    bool
	generating bool
}

// NewWorkflow creates a math workflow. gradeLevel may be zero when unknown.
func NewWorkflow(service MathService, gradeLevel int, logger *zap.Logger) *Workflow {
	return &Workflow{
		service:    service,
		gradeLevel: gradeLevel,
		logger:     logger,
	}
}

// Solution returns the current solution text, false when nothing is solved
func (w *Workflow) Solution() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.solution, w.solution != ""
}

// Practice returns a copy of the current practice set
func (w *Workflow) Practice() []models.PracticeProblem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.PracticeProblem, len(w.practice))
	copy(out, w.practice)
	return out
}

// Solving reports whether a solve request is in flight
func (w *Workflow) Solving() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.solving
}

// Generating reports whether practice generation is in flight
func (w *Workflow) Generating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generating
}

// Solve submits the problem. At least one of prompt or image is required.
// Any previously generated practice set is cleared before the request goes
// out: practice belongs to the prompt it was derived from.
func (w *Workflow) Solve(ctx context.Context, prompt, imageBase64 string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" && imageBase64 == "" {
		return "", ErrNoInput
	}

	w.mu.Lock()
	if w.solving {
		w.mu.Unlock()
		return "", ErrSolveInFlight
	}
	w.solving = true
	w.prompt = prompt
	w.image = imageBase64
	w.solution = ""
	w.practice = nil
	w.mu.Unlock()

	solution, err := w.service.Solve(ctx, prompt, imageBase64)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.solving = false
	if err != nil {
		w.logger.Warn("solve failed", zap.Error(err))
		return "", err
	}
	w.solution = solution
	return solution, nil
}

// GeneratePractice derives a fixed-size practice set from the solved prompt.
// On failure any previous practice set is left untouched.
func (w *Workflow) GeneratePractice(ctx context.Context) ([]models.PracticeProblem, error) {
	w.mu.Lock()
	if w.generating {
		w.mu.Unlock()
		return nil, ErrPracticeInFlight
	}
	if w.solution == "" {
		w.mu.Unlock()
		return nil, ErrNoSolution
	}
	w.generating = true
	topic := topicFromPrompt(w.prompt)
	w.mu.Unlock()

	problems, err := w.service.GeneratePractice(ctx, practiceSubject, topic, w.gradeLevel, practiceSetSize)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.generating = false
	if err != nil {
		w.logger.Warn("practice generation failed", zap.String("topic", topic), zap.Error(err))
		return nil, err
	}
	w.practice = problems
	return problems, nil
}

// topicFromPrompt labels the practice topic with the start of the solved
// prompt: trim, truncate, then fall back to a default for image-only solves.
func topicFromPrompt(prompt string) string {
	topic := strings.TrimSpace(prompt)
	if runes := []rune(topic); len(runes) > topicMaxLen {
		topic = strings.TrimSpace(string(runes[:topicMaxLen]))
	}
	if topic == "" {
		return defaultTopic
	}
	return topic
}
