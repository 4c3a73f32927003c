package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ConsoleMessage represents one line of tracer output with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// RunConsole implements the tracer's Printf logger by collecting messages
// for the propagation response while mirroring them to the server log.
// Surfaces propagate on worker goroutines, so collection is locked.
type RunConsole struct {
	mu       sync.Mutex
	log      *logrus.Logger
	messages []ConsoleMessage
}

// NewRunConsole creates a console collector for a single propagation run
func NewRunConsole(log *logrus.Logger) *RunConsole {
	return &RunConsole{log: log}
}

// Printf implements core.Logger
func (c *RunConsole) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if c.log != nil {
		c.log.Debug(strings.TrimSuffix(message, "\n"))
	}

	c.mu.Lock()
	c.messages = append(c.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	})
	c.mu.Unlock()
}

// Messages returns the collected messages in arrival order
func (c *RunConsole) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ConsoleMessage, len(c.messages))
	copy(out, c.messages)
	return out
}
