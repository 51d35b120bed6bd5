package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestVoiceSelectorReportsChoice(t *testing.T) {
	var got []string
	s := newVoiceSelector(func(id string) { got = append(got, id) })
	value := "EXAVITQu4vr4xnSDxMaL"

	s.update(tea.KeyMsg{Type: tea.KeyEnter}, value)
	if !s.open {
		t.Fatal("expected enter to open the list")
	}
	if s.cursor != 0 {
		t.Fatalf("expected cursor on current value, got %d", s.cursor)
	}

	s.update(tea.KeyMsg{Type: tea.KeyDown}, value)
	s.update(tea.KeyMsg{Type: tea.KeyDown}, value)
	s.update(tea.KeyMsg{Type: tea.KeyEnter}, value)

	if len(got) != 1 || got[0] != "XB0fDUnXU5powFXDhCwa" {
		t.Errorf("expected Charlotte to be reported once, got %v", got)
	}
	if s.open {
		t.Error("expected list to close after choosing")
	}
}

func TestVoiceSelectorIsControlled(t *testing.T) {
	s := newVoiceSelector(func(string) {})

	v := s.view("TX3LPaxmHKxFdv7VOQHJ", 0)
	if !strings.Contains(v, "Liam") {
		t.Errorf("expected view to show Liam, got %q", v)
	}

	// Nothing changes until the owner passes a new value.
	s.update(tea.KeyMsg{Type: tea.KeyEnter}, "TX3LPaxmHKxFdv7VOQHJ")
	s.update(tea.KeyMsg{Type: tea.KeyEsc}, "TX3LPaxmHKxFdv7VOQHJ")
	if v := s.view("TX3LPaxmHKxFdv7VOQHJ", 0); !strings.Contains(v, "Liam") {
		t.Errorf("expected Liam after cancel, got %q", v)
	}
}

func TestVoiceSelectorPlaceholder(t *testing.T) {
	s := newVoiceSelector(func(string) {})
	if v := s.view("not-a-voice", 0); !strings.Contains(v, voicePlaceholder) {
		t.Errorf("expected placeholder, got %q", v)
	}
}

func TestVoiceSelectorEscDoesNotReport(t *testing.T) {
	called := false
	s := newVoiceSelector(func(string) { called = true })

	s.update(tea.KeyMsg{Type: tea.KeyEnter}, "")
	s.update(tea.KeyMsg{Type: tea.KeyDown}, "")
	s.update(tea.KeyMsg{Type: tea.KeyEsc}, "")

	if called {
		t.Error("esc should not report a choice")
	}
}

func TestVoiceSelectorFilter(t *testing.T) {
	var got string
	s := newVoiceSelector(func(id string) { got = id })

	s.update(tea.KeyMsg{Type: tea.KeyEnter}, "")
	s.update(runes("l"), "")
	s.update(runes("y"), "")

	m := s.matches()
	if len(m) == 0 || m[0].voice.Name != "Lily" {
		t.Fatalf("expected Lily to rank first for %q, got %+v", s.filter, m)
	}

	s.update(tea.KeyMsg{Type: tea.KeyBackspace}, "")
	if s.filter != "l" {
		t.Errorf("expected filter %q, got %q", "l", s.filter)
	}

	s.update(runes("y"), "")
	s.update(tea.KeyMsg{Type: tea.KeyEnter}, "")
	if got != "pFZP5JQG7iQjIQuC4Bku" {
		t.Errorf("expected Lily's id, got %q", got)
	}
}

func TestVoiceSelectorNoMatches(t *testing.T) {
	called := false
	s := newVoiceSelector(func(string) { called = true })

	s.update(tea.KeyMsg{Type: tea.KeyEnter}, "")
	s.update(runes("zzz"), "")
	if len(s.matches()) != 0 {
		t.Fatalf("expected no matches, got %+v", s.matches())
	}
	if v := s.view("", 0); !strings.Contains(v, "no matching voices") {
		t.Errorf("unexpected view %q", v)
	}

	s.update(tea.KeyMsg{Type: tea.KeyEnter}, "")
	if called {
		t.Error("enter with no matches should not report a choice")
	}
}

func TestVoiceSelectorClosedIgnoresTyping(t *testing.T) {
	s := newVoiceSelector(func(string) {})
	if s.update(runes("x"), "") {
		t.Error("closed selector should not consume runes")
	}
}
