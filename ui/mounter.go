package ui

import (
	"context"
	"encoding/json"
	"io"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/invocation"
)

// Mounter runs the terminal program.
type Mounter struct {
	program *tea.Program
}

// Mount runs the program until the user quits or ctx is done.
func (m *Mounter) Mount(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.program.Quit()
		case <-done:
		}
	}()
	_, err := m.program.Run()
	return err
}

// Sink returns a sink delivering outcomes to the program.
func (m *Mounter) Sink() *Sink {
	return &Sink{program: m.program}
}

// NewMounter creates a mounter drawing model on output and reading keys from input.
func NewMounter(model Model, input io.Reader, output io.Writer) *Mounter {
	return &Mounter{program: tea.NewProgram(model, tea.WithInput(input), tea.WithOutput(output))}
}

// Sink forwards outcomes to a running program as messages.
type Sink struct {
	program *tea.Program
}

func (s *Sink) Success(_ context.Context, command string, value json.RawMessage) {
	s.program.Send(ResultMsg{Command: command, Value: Format(value)})
}

func (s *Sink) Failure(_ context.Context, command string, failure *invocation.Failure) {
	s.program.Send(FailureMsg{Command: command, Kind: failure.Kind.String(), Message: failure.Message})
}

// Format renders a JSON value for display; strings are shown unquoted.
func Format(value json.RawMessage) string {
	var decoded any
	if err := json.Unmarshal(value, &decoded); err == nil {
		if text, ok := decoded.(string); ok {
			return text
		}
	}
	return string(value)
}

// HeadlessMounter records the mount without drawing anything.
type HeadlessMounter struct {
	logger  logger.Logger
	mounted atomic.Bool
}

func (h *HeadlessMounter) Mount(_ context.Context) error {
	h.mounted.Store(true)
	h.logger.Debug("headless ui mounted")
	return nil
}

// Mounted reports whether Mount was called.
func (h *HeadlessMounter) Mounted() bool {
	return h.mounted.Load()
}

// NewHeadlessMounter creates a headless mounter.
func NewHeadlessMounter(l logger.Logger) *HeadlessMounter {
	if l == nil {
		l = logger.Nop()
	}
	return &HeadlessMounter{logger: l}
}
