// Package ui provides the terminal text-to-speech panel.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speak/internal/audio"
	"github.com/dgnsrekt/speak/internal/elevenlabs"
	"github.com/muesli/termenv"
)

// Common stuff we'll need to access in all models.
type commonModel struct {
	cfg    Config
	width  int
	height int
}

type model struct {
	common *commonModel
	panel  *panelModel
}

func newModel(cfg Config, synth elevenlabs.Synthesizer, player audio.Player, store *audio.ClipStore) model {
	common := &commonModel{cfg: cfg}
	return model{
		common: common,
		panel:  newPanelModel(common, synth, player, store),
	}
}

// newProgram returns a new Tea program around m.
func newProgram(cfg Config, m model) *tea.Program {
	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if cfg.InputTTY {
		opts = append(opts, tea.WithInputTTY())
	}
	return tea.NewProgram(m, opts...)
}

// Run builds the panel and its collaborators and runs it until the user
// quits. Audio held by the panel is released on every exit path.
func Run(cfg Config) error {
	log.Debug("starting speak", "voice", cfg.Voice, "api", cfg.APIBaseURL, "timeout", cfg.APITimeout)

	store := audio.NewClipStore()
	player := audio.NewPlayer(audio.DefaultPlayerConfig())
	client := elevenlabs.NewClient(
		elevenlabs.WithBaseURL(cfg.APIBaseURL),
		elevenlabs.WithTimeout(cfg.APITimeout),
	)

	m := newModel(cfg, client, player, store)
	defer func() {
		m.panel.close()
		stats := store.Stats()
		log.Debug("clip store closed", "created", stats.Created, "revoked", stats.Revoked, "live", stats.Live)
	}()

	if _, err := newProgram(cfg, m).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return m.panel.init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.panel.close()
			return m, tea.Quit
		case msg.String() == "ctrl+z":
			return m, tea.Suspend
		}

	// Window size is received when starting up and on every resize
	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.panel.setSize(msg.Width, msg.Height)
		return m, nil
	}

	return m, m.panel.update(msg)
}

func (m model) View() string {
	return "\n" + indent(m.panel.view(), 2)
}

// Lightweight version of reflow's indent function.
func indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	l := strings.Split(s, "\n")
	b := strings.Builder{}
	i := strings.Repeat(" ", n)
	for _, v := range l {
		fmt.Fprintf(&b, "%s%s\n", i, v)
	}
	return b.String()
}
