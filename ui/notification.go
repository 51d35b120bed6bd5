package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

type severity int

const (
	severityInfo severity = iota
	severityDestructive
)

// notification is a transient message shown below the form.
type notification struct {
	title       string
	description string
	severity    severity
}

type notificationTimeoutMsg struct{ seq int }

// toaster shows one notification at a time. A newer notification replaces
// the current one; each is dismissed after timeout.
type toaster struct {
	timeout time.Duration
	current *notification
	seq     int
}

func newToaster(timeout time.Duration) toaster {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return toaster{timeout: timeout}
}

// notify shows n and returns the command that dismisses it.
func (t *toaster) notify(n notification) tea.Cmd {
	t.seq++
	t.current = &n
	seq := t.seq
	return tea.Tick(t.timeout, func(time.Time) tea.Msg {
		return notificationTimeoutMsg{seq: seq}
	})
}

func (t *toaster) update(msg notificationTimeoutMsg) {
	// A later notification owns the slot now.
	if msg.seq == t.seq {
		t.current = nil
	}
}

func (t toaster) view(width int) string {
	if t.current == nil {
		return ""
	}

	style := toastStyle
	if t.current.severity == severityDestructive {
		style = destructiveToastStyle
	}

	desc := t.current.description
	if width > 4 {
		desc = truncate.StringWithTail(desc, uint(width-4), ellipsis) //nolint:gosec
	}
	return style.Render(toastTitleStyle.Render(t.current.title) + "\n" + desc)
}
