package ui

import (
	"strings"
	"testing"
	"time"
)

func TestToasterReplaceAndDismiss(t *testing.T) {
	ts := newToaster(time.Millisecond)

	first := ts.notify(notification{title: "One", description: "first"})
	second := ts.notify(notification{title: "Two", description: "second"})

	// The first timeout must not dismiss the second notification.
	ts.update(first().(notificationTimeoutMsg))
	if ts.current == nil || ts.current.title != "Two" {
		t.Fatalf("expected second notification to remain, got %+v", ts.current)
	}

	ts.update(second().(notificationTimeoutMsg))
	if ts.current != nil {
		t.Errorf("expected notification to be dismissed, got %+v", ts.current)
	}
	if ts.view(80) != "" {
		t.Error("expected empty view after dismissal")
	}
}

func TestToasterView(t *testing.T) {
	ts := newToaster(time.Second)
	_ = ts.notify(notification{
		title:       "Error",
		description: strings.Repeat("x", 200),
		severity:    severityDestructive,
	})

	v := ts.view(40)
	if !strings.Contains(v, "Error") {
		t.Errorf("expected title in view, got %q", v)
	}
	if !strings.Contains(v, ellipsis) {
		t.Errorf("expected long description to be truncated, got %q", v)
	}
}

func TestToasterDefaultTimeout(t *testing.T) {
	if ts := newToaster(0); ts.timeout != 3*time.Second {
		t.Errorf("expected 3s default, got %v", ts.timeout)
	}
}
