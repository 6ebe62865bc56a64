package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartpath/internal/models"
)

// fakeMath records requests and replies from a script
type fakeMath struct {
	solution    string
	solveErr    error
	problems    []models.PracticeProblem
	practiceErr error

	solveCalls    int
	practiceCalls int
	lastPrompt    string
	lastImage     string
	lastSubject   string
	lastTopic     string
	lastCount     int

	solveEntered chan struct{}
	solveRelease chan struct{}
}

func (f *fakeMath) Solve(ctx context.Context, prompt, imageBase64 string) (string, error) {
	f.solveCalls++
	f.lastPrompt = prompt
	f.lastImage = imageBase64
	if f.solveEntered != nil {
		f.solveEntered <- struct{}{}
		<-f.solveRelease
	}
	return f.solution, f.solveErr
}

func (f *fakeMath) GeneratePractice(ctx context.Context, subject, topic string, gradeLevel, count int) ([]models.PracticeProblem, error) {
	f.practiceCalls++
	f.lastSubject = subject
	f.lastTopic = topic
	f.lastCount = count
	return f.problems, f.practiceErr
}

func practiceSet(n int) []models.PracticeProblem {
	problems := make([]models.PracticeProblem, n)
	for i := range problems {
		problems[i] = models.PracticeProblem{
			Problem:  fmt.Sprintf("Solve for x: %dx = %d", i+2, (i+2)*3),
			Solution: "Divide both sides.",
			Answer:   "x = 3",
		}
	}
	return problems
}

func TestSolveRequiresInput(t *testing.T) {
	service := &fakeMath{}
	workflow := NewWorkflow(service, 9, zap.NewNop())

	tests := []struct {
		name   string
		prompt string
		image  string
	}{
		{name: "both empty", prompt: "", image: ""},
		{name: "whitespace prompt only", prompt: "   \n", image: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := workflow.Solve(context.Background(), tt.prompt, tt.image)
			assert.ErrorIs(t, err, ErrNoInput)
		})
	}
	assert.Zero(t, service.solveCalls, "invalid input must not reach the backend")
}

func TestSolveStoresSolution(t *testing.T) {
	service := &fakeMath{solution: "x = 5"}
	workflow := NewWorkflow(service, 9, zap.NewNop())

	solution, err := workflow.Solve(context.Background(), "Solve for x: 2x+5=15", "")
	require.NoError(t, err)
	assert.Equal(t, "x = 5", solution)

	stored, ok := workflow.Solution()
	assert.True(t, ok)
	assert.Equal(t, "x = 5", stored)
	assert.Empty(t, workflow.Practice(), "practice stays empty until requested")
}

func TestSolveAcceptsImageOnly(t *testing.T) {
	service := &fakeMath{solution: "The triangle area is 12."}
	workflow := NewWorkflow(service, 0, zap.NewNop())

	_, err := workflow.Solve(context.Background(), "", "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", service.lastImage)
}

func TestSolveFailureLeavesSolutionAbsent(t *testing.T) {
	service := &fakeMath{solveErr: errors.New("model overloaded")}
	workflow := NewWorkflow(service, 9, zap.NewNop())

	_, err := workflow.Solve(context.Background(), "2x = 10", "")
	require.EqualError(t, err, "model overloaded")

	_, ok := workflow.Solution()
	assert.False(t, ok)
	assert.False(t, workflow.Solving())
}

func TestNewSolveClearsPriorPractice(t *testing.T) {
	service := &fakeMath{solution: "x = 5", problems: practiceSet(10)}
	workflow := NewWorkflow(service, 9, zap.NewNop())
	ctx := context.Background()

	_, err := workflow.Solve(ctx, "Solve for x: 2x+5=15", "")
	require.NoError(t, err)
	_, err = workflow.GeneratePractice(ctx)
	require.NoError(t, err)
	require.Len(t, workflow.Practice(), 10)

	// Practice derives from the solved prompt; a new solve makes it stale
	_, err = workflow.Solve(ctx, "Solve for y: 3y=9", "")
	require.NoError(t, err)
	assert.Empty(t, workflow.Practice())
}

func TestGeneratePracticeRequiresSolution(t *testing.T) {
	service := &fakeMath{problems: practiceSet(10)}
	workflow := NewWorkflow(service, 9, zap.NewNop())

	_, err := workflow.GeneratePractice(context.Background())
	require.ErrorIs(t, err, ErrNoSolution)
	assert.Zero(t, service.practiceCalls, "no request without a solution")
}

func TestGeneratePracticeProducesFullSet(t *testing.T) {
	service := &fakeMath{solution: "x = 5", problems: practiceSet(10)}
	workflow := NewWorkflow(service, 9, zap.NewNop())
	ctx := context.Background()

	_, err := workflow.Solve(ctx, "Solve for x: 2x+5=15", "")
	require.NoError(t, err)

	problems, err := workflow.GeneratePractice(ctx)
	require.NoError(t, err)
	require.Len(t, problems, 10)
	for _, problem := range problems {
		assert.NotEmpty(t, problem.Problem)
		assert.NotEmpty(t, problem.Solution)
		assert.NotEmpty(t, problem.Answer)
	}

	assert.Equal(t, "Mathematics", service.lastSubject)
	assert.Equal(t, "Solve for x: 2x+5=15", service.lastTopic)
	assert.Equal(t, 10, service.lastCount)
}

func TestGeneratePracticeFailureKeepsPriorSet(t *testing.T) {
	service := &fakeMath{solution: "x = 5", problems: practiceSet(10)}
	workflow := NewWorkflow(service, 9, zap.NewNop())
	ctx := context.Background()

	_, err := workflow.Solve(ctx, "Solve for x: 2x+5=15", "")
	require.NoError(t, err)
	_, err = workflow.GeneratePractice(ctx)
	require.NoError(t, err)

	service.practiceErr = errors.New("generation failed")
	_, err = workflow.GeneratePractice(ctx)
	require.EqualError(t, err, "generation failed")

	assert.Len(t, workflow.Practice(), 10, "failed regeneration keeps the prior set")
	assert.False(t, workflow.Generating())
}

func TestSolveSerializesWithItself(t *testing.T) {
	service := &fakeMath{
		solution:     "x = 5",
		solveEntered: make(chan struct{}),
		solveRelease: make(chan struct{}),
	}
	workflow := NewWorkflow(service, 9, zap.NewNop())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := workflow.Solve(ctx, "2x = 10", "")
		done <- err
	}()

	<-service.solveEntered
	assert.True(t, workflow.Solving())

	_, err := workflow.Solve(ctx, "3y = 9", "")
	require.ErrorIs(t, err, ErrSolveInFlight)

	close(service.solveRelease)
	require.NoError(t, <-done)
	assert.Equal(t, 1, service.solveCalls)
}

func TestTopicFromPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "short prompt unchanged",
			prompt: "Solve for x: 2x+5=15",
			want:   "Solve for x: 2x+5=15",
		},
		{
			name:   "long prompt truncated to fifty characters",
			prompt: strings.Repeat("a", 80),
			want:   strings.Repeat("a", 50),
		},
		{
			name:   "exactly at the boundary",
			prompt: strings.Repeat("b", 50),
			want:   strings.Repeat("b", 50),
		},
		{
			name:   "trimmed before truncation",
			prompt: "   " + strings.Repeat("c", 50) + "   ",
			want:   strings.Repeat("c", 50),
		},
		{
			name:   "whitespace only falls back to default",
			prompt: "    \n\t",
			want:   defaultTopic,
		},
		{
			name:   "empty prompt falls back to default",
			prompt: "",
			want:   defaultTopic,
		},
		{
			name:   "truncation cannot leave trailing space",
			prompt: strings.Repeat("d", 49) + " trailing words",
			want:   strings.Repeat("d", 49),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topicFromPrompt(tt.prompt); got != tt.want {
				t.Errorf("topicFromPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}
