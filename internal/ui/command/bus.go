package command

import (
	"context"
	"time"

	"github.com/atomicstack/tabstrip/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultTimeout = 2 * time.Second

// Request encapsulates one bridge operation.
type Request struct {
	ID    string
	Label string
	Run   func(ctx context.Context) error
}

// ResultMsg is delivered to the model when a request finishes.
type ResultMsg struct {
	ID    string
	Label string
	Err   error
}

// Bus runs bridge operations off the Bubble Tea event loop.
type Bus struct {
	timeout time.Duration
}

// New initialises a command bus. A non-positive timeout uses the default.
func New(timeout time.Duration) *Bus {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Bus{timeout: timeout}
}

// Execute wraps req into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()
		err := req.Run(ctx)
		events.Command.Result(req.ID, req.Label, err)
		return ResultMsg{ID: req.ID, Label: req.Label, Err: err}
	}
}
