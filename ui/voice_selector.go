package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dgnsrekt/speak/internal/voices"
	"github.com/sahilm/fuzzy"
)

const voicePlaceholder = "Select a voice"

// voiceSelector is a controlled single-choice picker over the voice
// catalog. It never stores the selection itself: the current value is
// passed in, and choices are reported through onChange.
type voiceSelector struct {
	onChange func(id string)

	options []voices.Voice
	focused bool
	open    bool
	cursor  int
	filter  string
}

func newVoiceSelector(onChange func(id string)) voiceSelector {
	return voiceSelector{
		onChange: onChange,
		options:  voices.All(),
	}
}

type voiceMatch struct {
	voice   voices.Voice
	matched []int
}

// matches returns the options matching the current filter, best first.
func (s voiceSelector) matches() []voiceMatch {
	if s.filter == "" {
		out := make([]voiceMatch, len(s.options))
		for i, v := range s.options {
			out[i] = voiceMatch{voice: v}
		}
		return out
	}

	names := make([]string, len(s.options))
	for i, v := range s.options {
		names[i] = v.Name
	}

	ranks := fuzzy.Find(s.filter, names)
	out := make([]voiceMatch, len(ranks))
	for i, r := range ranks {
		out[i] = voiceMatch{voice: s.options[r.Index], matched: r.MatchedIndexes}
	}
	return out
}

func (s *voiceSelector) openList(value string) {
	s.open = true
	s.filter = ""
	s.cursor = 0
	for i, v := range s.options {
		if v.ID == value {
			s.cursor = i
		}
	}
}

func (s *voiceSelector) close() {
	s.open = false
	s.filter = ""
	s.cursor = 0
}

// update handles a key press. It reports whether the key was consumed.
func (s *voiceSelector) update(msg tea.KeyMsg, value string) bool {
	if !s.open {
		switch msg.String() {
		case "enter", " ", "down":
			s.openList(value)
			return true
		}
		return false
	}

	m := s.matches()
	switch msg.Type {
	case tea.KeyEsc:
		s.close()
	case tea.KeyEnter:
		if s.cursor < len(m) {
			s.onChange(m[s.cursor].voice.ID)
		}
		s.close()
	case tea.KeyUp, tea.KeyCtrlP:
		if s.cursor > 0 {
			s.cursor--
		}
	case tea.KeyDown, tea.KeyCtrlN:
		if s.cursor < len(m)-1 {
			s.cursor++
		}
	case tea.KeyBackspace:
		if s.filter != "" {
			r := []rune(s.filter)
			s.filter = string(r[:len(r)-1])
			s.cursor = 0
		}
	case tea.KeyRunes, tea.KeySpace:
		s.filter += string(msg.Runes)
		s.cursor = 0
	default:
		return false
	}
	return true
}

func (s voiceSelector) view(value string, width int) string {
	current := voicePlaceholder
	if v, ok := voices.Lookup(value); ok {
		current = v.Name
	}

	style := fieldStyle
	if s.focused {
		style = focusedFieldStyle
	}
	if width > 0 {
		style = style.Width(width)
	}

	if !s.open {
		return style.Render(current + " ▾")
	}

	var b strings.Builder
	if s.filter != "" {
		b.WriteString(subtleStyle.Render("filter: ") + s.filter + "\n")
	}
	m := s.matches()
	if len(m) == 0 {
		b.WriteString(subtleStyle.Render("no matching voices"))
	}
	for i, match := range m {
		name := highlightMatches(match.voice.Name, match.matched)
		prefix := "  "
		if match.voice.ID == value {
			prefix = "✓ "
		}
		line := prefix + name
		if i == s.cursor {
			line = selectedItemStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m)-1 {
			b.WriteByte('\n')
		}
	}
	return style.Render(b.String())
}

func highlightMatches(s string, idx []int) string {
	if len(idx) == 0 {
		return s
	}
	hit := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		hit[i] = struct{}{}
	}
	var b strings.Builder
	for i, r := range s {
		if _, ok := hit[i]; ok {
			b.WriteString(matchStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
