package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speak/internal/audio"
	"github.com/dgnsrekt/speak/internal/elevenlabs"
	"github.com/dgnsrekt/speak/internal/voices"
	"github.com/dustin/go-humanize"
)

// panelState is the lifecycle of a single conversion.
type panelState int

const (
	stateIdle panelState = iota
	stateSubmitting
	statePlaying
)

func (s panelState) String() string {
	return map[panelState]string{
		stateIdle:       "idle",
		stateSubmitting: "submitting",
		statePlaying:    "playing",
	}[s]
}

type focusArea int

const (
	focusAPIKey focusArea = iota
	focusVoice
	focusText
	focusButton
	focusCount
)

const defaultFieldWidth = 60

type (
	synthesizedMsg struct {
		voiceID string
		pcm     audio.PCM
		encoded int
	}
	synthesisFailedMsg  struct{ err error }
	playbackFinishedMsg struct{ id int }
	clipboardMsg        struct {
		text string
		err  error
	}
)

var (
	apiKeyRequired = notification{
		title:       "API Key Required",
		description: "Please enter your ElevenLabs API key",
		severity:    severityDestructive,
	}
	textRequired = notification{
		title:       "Text Required",
		description: "Please enter some text to convert to speech",
		severity:    severityDestructive,
	}
	synthesisFailed = notification{
		title:       "Error",
		description: "Failed to convert text to speech. Please try again.",
		severity:    severityDestructive,
	}
	clipboardFailed = notification{
		title:       "Clipboard Unavailable",
		description: "Could not read text from the clipboard",
		severity:    severityInfo,
	}
)

type decodeFunc func([]byte) (audio.PCM, error)

// loadedText is text put into the editor from outside (a file, stdin or
// the clipboard). The textarea expands tabs, so raw is what gets sent
// while the editor still shows exactly what was loaded.
type loadedText struct {
	raw   string
	shown string
}

// activePlayback owns the clip for exactly one playback.
type activePlayback struct {
	id       int
	voiceID  string
	clip     *audio.Clip
	playback audio.Playback
}

// panelModel is the text-to-speech form. It owns the credential, the
// text, the selected voice and the conversion state.
type panelModel struct {
	common *commonModel

	synth         elevenlabs.Synthesizer
	decode        decodeFunc
	store         *audio.ClipStore
	player        audio.Player
	readClipboard func() (string, error)

	state           panelState
	focus           focusArea
	selectedVoiceID string

	apiKey  textinput.Model
	text    textarea.Model
	loaded  loadedText
	voice   voiceSelector
	spinner spinner.Model
	help    help.Model
	toast   toaster

	playbackSeq int
	active      *activePlayback
}

func newPanelModel(common *commonModel, synth elevenlabs.Synthesizer, player audio.Player, store *audio.ClipStore) *panelModel {
	ti := textinput.New()
	ti.Placeholder = "Enter your API key"
	ti.Prompt = ""
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	ta := textarea.New()
	ta.Placeholder = "Enter text to convert to speech..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	p := &panelModel{
		common:          common,
		synth:           synth,
		decode:          audio.DecodeMP3,
		store:           store,
		player:          player,
		readClipboard:   clipboard.ReadAll,
		state:           stateIdle,
		selectedVoiceID: voices.Default().ID,
		apiKey:          ti,
		text:            ta,
		spinner:         sp,
		help:            help.New(),
		toast:           newToaster(common.cfg.NotificationTimeout),
	}
	p.voice = newVoiceSelector(func(id string) {
		p.selectedVoiceID = id
	})

	if v, ok := voices.Resolve(common.cfg.Voice); ok {
		p.selectedVoiceID = v.ID
	}
	if common.cfg.Text != "" {
		p.setText(common.cfg.Text)
	}

	_ = p.setFocus(focusAPIKey)
	return p
}

func (p *panelModel) init() tea.Cmd {
	return textinput.Blink
}

func (p *panelModel) credential() string {
	return p.apiKey.Value()
}

func (p *panelModel) setText(s string) {
	p.text.SetValue(s)
	p.loaded = loadedText{raw: s, shown: p.text.Value()}
}

// textValue returns the text to convert.
func (p *panelModel) textValue() string {
	v := p.text.Value()
	if p.loaded.raw != "" && v == p.loaded.shown {
		return p.loaded.raw
	}
	return v
}

// charCount is the length of the text, in characters.
func (p *panelModel) charCount() int {
	return utf8.RuneCountInString(p.textValue())
}

// buttonDisabled reports whether the convert control is inert. While
// playing it acts as a stop control and stays enabled.
func (p *panelModel) buttonDisabled() bool {
	switch p.state {
	case stateSubmitting:
		return true
	case statePlaying:
		return false
	}
	return strings.TrimSpace(p.textValue()) == ""
}

func (p *panelModel) setFocus(f focusArea) tea.Cmd {
	p.focus = f
	p.apiKey.Blur()
	p.text.Blur()
	p.voice.focused = false
	p.voice.close()

	switch f {
	case focusAPIKey:
		return p.apiKey.Focus()
	case focusText:
		return p.text.Focus()
	case focusVoice:
		p.voice.focused = true
	}
	return nil
}

func (p *panelModel) setSize(w, _ int) {
	fw := p.fieldWidth()
	p.apiKey.Width = fw - 4
	p.text.SetWidth(fw - 4)
	p.help.Width = w
}

func (p *panelModel) fieldWidth() int {
	if p.common.width > 0 && p.common.width-4 < defaultFieldWidth {
		return max(p.common.width-4, 10)
	}
	return defaultFieldWidth
}

func (p *panelModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)

	case synthesizedMsg:
		return p.handleSynthesized(msg)

	case synthesisFailedMsg:
		return p.fail(msg.err)

	case playbackFinishedMsg:
		p.handlePlaybackFinished(msg)
		return nil

	case clipboardMsg:
		if msg.err != nil {
			log.Warn("unable to read clipboard", "error", msg.err)
			return p.toast.notify(clipboardFailed)
		}
		p.setText(msg.text)
		return nil

	case notificationTimeoutMsg:
		p.toast.update(msg)
		return nil

	case spinner.TickMsg:
		if p.state != stateSubmitting {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	}

	// Cursor blinks and the like.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	p.apiKey, cmd = p.apiKey.Update(msg)
	cmds = append(cmds, cmd)
	p.text, cmd = p.text.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (p *panelModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Convert):
		return p.convert()
	case key.Matches(msg, keys.Paste):
		return pasteCmd(p.readClipboard)
	}

	if p.focus == focusVoice && p.voice.update(msg, p.selectedVoiceID) {
		return nil
	}

	switch {
	case key.Matches(msg, keys.Next):
		return p.setFocus((p.focus + 1) % focusCount)
	case key.Matches(msg, keys.Prev):
		return p.setFocus((p.focus + focusCount - 1) % focusCount)
	}

	var cmd tea.Cmd
	switch p.focus {
	case focusAPIKey:
		if msg.Type == tea.KeyEnter {
			return p.setFocus(focusVoice)
		}
		p.apiKey, cmd = p.apiKey.Update(msg)
	case focusText:
		p.text, cmd = p.text.Update(msg)
	case focusButton:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			if p.buttonDisabled() {
				return nil
			}
			return p.convert()
		}
	}
	return cmd
}

// convert runs the convert action: stop while playing, otherwise check
// the preconditions and submit.
func (p *panelModel) convert() tea.Cmd {
	switch p.state {
	case stateSubmitting:
		return nil
	case statePlaying:
		p.stop()
		return nil
	}

	if p.credential() == "" {
		return p.toast.notify(apiKeyRequired)
	}
	text := p.textValue()
	if strings.TrimSpace(text) == "" {
		return p.toast.notify(textRequired)
	}

	req := elevenlabs.NewRequest(p.selectedVoiceID, text)
	p.state = stateSubmitting
	log.Debug("submitting synthesis request", "voice", req.VoiceID, "chars", utf8.RuneCountInString(text))

	return tea.Batch(
		p.spinner.Tick,
		synthesizeCmd(p.synth, p.decode, p.credential(), req),
	)
}

func (p *panelModel) handleSynthesized(msg synthesizedMsg) tea.Cmd {
	if p.state != stateSubmitting {
		log.Warn("discarding synthesized audio", "state", p.state)
		return nil
	}

	clip, err := p.store.Create(msg.pcm)
	if err != nil {
		return p.fail(err)
	}
	pb, err := p.player.Play(clip)
	if err != nil {
		clip.Release()
		return p.fail(fmt.Errorf("unable to start playback: %w", err))
	}

	p.playbackSeq++
	p.active = &activePlayback{id: p.playbackSeq, voiceID: msg.voiceID, clip: clip, playback: pb}
	p.state = statePlaying

	log.Info("playing synthesized speech",
		"clip", clip.Ref(),
		"encoded", humanize.Bytes(uint64(msg.encoded)), //nolint:gosec
		"duration", msg.pcm.Duration())

	return waitForPlayback(p.active.id, pb)
}

// fail collapses every synthesis failure into one generic notification.
func (p *panelModel) fail(err error) tea.Cmd {
	log.Error("text to speech failed", "error", err)
	p.state = stateIdle
	return p.toast.notify(synthesisFailed)
}

func (p *panelModel) handlePlaybackFinished(msg playbackFinishedMsg) {
	if p.active == nil || p.active.id != msg.id {
		return
	}
	log.Debug("playback finished", "clip", p.active.clip.Ref())
	p.active.clip.Release()
	p.active = nil
	p.state = stateIdle
}

// stop halts the current playback. The clip is released once the
// playback reports completion.
func (p *panelModel) stop() {
	if p.active != nil {
		log.Debug("stopping playback", "clip", p.active.clip.Ref())
		p.active.playback.Stop()
	}
}

// close tears the panel down, releasing any clip still held.
func (p *panelModel) close() {
	if p.active != nil {
		p.active.playback.Stop()
		p.active.clip.Release()
		p.active = nil
	}
	p.state = stateIdle
	if err := p.player.Close(); err != nil {
		log.Warn("unable to close audio player", "error", err)
	}
}

// VIEW

func (p *panelModel) view() string {
	w := p.fieldWidth()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Text to Speech") + "\n\n")

	b.WriteString(p.label("ElevenLabs API Key", focusAPIKey) + "\n")
	b.WriteString(p.field(p.apiKey.View(), focusAPIKey, w) + "\n")

	b.WriteString(p.label("Voice", focusVoice) + "\n")
	b.WriteString(p.voice.view(p.selectedVoiceID, w) + "\n")

	b.WriteString(p.label("Text", focusText) + "\n")
	b.WriteString(p.field(p.text.View(), focusText, w) + "\n")
	b.WriteString(counterStyle.Width(w+2).Render(fmt.Sprintf("%d characters", p.charCount())) + "\n\n")

	b.WriteString(p.buttonView(w) + "\n")
	if s := p.statusView(); s != "" {
		b.WriteString(s + "\n")
	}

	if t := p.toast.view(w); t != "" {
		b.WriteString("\n" + t + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(p.help.View(keys)))
	return b.String()
}

func (p *panelModel) label(s string, f focusArea) string {
	if p.focus == f {
		return focusedLabelStyle.Render(s)
	}
	return labelStyle.Render(s)
}

func (p *panelModel) field(s string, f focusArea, w int) string {
	style := fieldStyle
	if p.focus == f {
		style = focusedFieldStyle
	}
	return style.Width(w).Render(s)
}

func (p *panelModel) buttonLabel() string {
	switch p.state {
	case stateSubmitting:
		return p.spinner.View() + " Converting..."
	case statePlaying:
		return "■ Playing"
	default:
		return "▶ Convert to Speech"
	}
}

func (p *panelModel) buttonView(w int) string {
	style := buttonStyle
	switch {
	case p.buttonDisabled():
		style = disabledButtonStyle
	case p.focus == focusButton:
		style = focusedButtonStyle
	}
	return style.Width(w + 2).Render(p.buttonLabel())
}

func (p *panelModel) statusView() string {
	if p.active == nil {
		return ""
	}
	name := voicePlaceholder
	if v, ok := voices.Lookup(p.active.voiceID); ok {
		name = v.Name
	}
	return subtleStyle.Render(fmt.Sprintf("%s · %s of audio · %s to stop",
		name,
		humanize.Bytes(uint64(p.active.clip.Size())), //nolint:gosec
		keys.Convert.Help().Key,
	))
}

// COMMANDS

func synthesizeCmd(synth elevenlabs.Synthesizer, decode decodeFunc, apiKey string, req elevenlabs.Request) tea.Cmd {
	return func() tea.Msg {
		body, err := synth.Synthesize(context.Background(), apiKey, req)
		if err != nil {
			return synthesisFailedMsg{err: err}
		}
		pcm, err := decode(body)
		if err != nil {
			return synthesisFailedMsg{err: fmt.Errorf("unable to decode audio: %w", err)}
		}
		return synthesizedMsg{voiceID: req.VoiceID, pcm: pcm, encoded: len(body)}
	}
}

func waitForPlayback(id int, pb audio.Playback) tea.Cmd {
	return func() tea.Msg {
		<-pb.Done()
		return playbackFinishedMsg{id: id}
	}
}

func pasteCmd(read func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		s, err := read()
		return clipboardMsg{text: s, err: err}
	}
}
