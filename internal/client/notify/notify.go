// Package notify prints transient notices, the terminal counterpart of toast
// messages.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "ok"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier writes one line per notice. It is safe for concurrent use, so
// background jobs may notify while the REPL is reading input.
type Notifier struct {
	mu    sync.Mutex
	w     io.Writer
	last  string
	muted bool
}

func New(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) Success(msg string) { n.notify(LevelSuccess, msg) }

func (n *Notifier) Error(msg string) { n.notify(LevelError, msg) }

func (n *Notifier) Info(msg string) { n.notify(LevelInfo, msg) }

// Mute suppresses output until Unmute.
func (n *Notifier) Mute() {
	n.mu.Lock()
	n.muted = true
	n.mu.Unlock()
}

func (n *Notifier) Unmute() {
	n.mu.Lock()
	n.muted = false
	n.mu.Unlock()
}

// Last returns the most recent notice, including muted ones.
func (n *Notifier) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func (n *Notifier) notify(level Level, msg string) {
	line := fmt.Sprintf("[%s] %s", level, msg)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = line
	if n.muted {
		return
	}
	_, _ = fmt.Fprintln(n.w, line)
}
