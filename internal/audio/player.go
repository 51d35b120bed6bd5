package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrPlayerClosed is returned by Play after Close.
var ErrPlayerClosed = errors.New("player is closed")

// Player plays one clip at a time.
type Player interface {
	Play(clip *Clip) (Playback, error)
	Close() error
}

// Playback is a single, in-progress clip playback. Done is closed when
// the clip finishes or is stopped.
type Playback interface {
	Done() <-chan struct{}
	Stop()
}

// PlayerConfig contains configuration for the oto player.
type PlayerConfig struct {
	BufferSize   time.Duration // oto output buffer; zero picks the driver default
	PollInterval time.Duration // how often playback completion is checked
}

// DefaultPlayerConfig returns the default player configuration.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		BufferSize:   100 * time.Millisecond,
		PollInterval: 20 * time.Millisecond,
	}
}

// OtoPlayer implements Player on top of oto/v3. The oto context is created
// lazily with the format of the first clip, since oto allows a single
// context per process.
type OtoPlayer struct {
	config PlayerConfig

	mu         sync.Mutex
	context    *oto.Context
	sampleRate int
	channels   int
	current    *otoPlayback
	closed     bool
}

// NewPlayer creates a new oto-backed player.
func NewPlayer(config PlayerConfig) *OtoPlayer {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPlayerConfig().PollInterval
	}
	return &OtoPlayer{config: config}
}

func (p *OtoPlayer) ensureContext(sampleRate, channels int) error {
	if p.context != nil {
		if sampleRate != p.sampleRate || channels != p.channels {
			return fmt.Errorf("audio format %d Hz/%d ch does not match output %d Hz/%d ch",
				sampleRate, channels, p.sampleRate, p.channels)
		}
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   p.config.BufferSize,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	p.context = ctx
	p.sampleRate = sampleRate
	p.channels = channels
	return nil
}

// Play starts playing clip, stopping whatever was playing before.
func (p *OtoPlayer) Play(clip *Clip) (Playback, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPlayerClosed
	}

	r, err := clip.Open()
	if err != nil {
		return nil, err
	}

	sampleRate, channels := clip.Format()
	if err := p.ensureContext(sampleRate, channels); err != nil {
		return nil, err
	}

	if p.current != nil {
		p.current.Stop()
	}

	pb := &otoPlayback{
		player: p.context.NewPlayer(r),
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
	pb.player.Play()
	go pb.watch(p.config.PollInterval)

	p.current = pb
	return pb, nil
}

// Close stops any playback. The oto context itself lives until the
// process exits.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if p.current != nil {
		p.current.Stop()
		p.current = nil
	}
	if p.context != nil {
		return p.context.Suspend()
	}
	return nil
}

type otoPlayback struct {
	player   *oto.Player
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func (pb *otoPlayback) Done() <-chan struct{} { return pb.done }

func (pb *otoPlayback) Stop() {
	pb.stopOnce.Do(func() { close(pb.stop) })
}

func (pb *otoPlayback) watch(interval time.Duration) {
	defer close(pb.done)
	defer pb.player.Close() //nolint:errcheck

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-pb.stop:
			pb.player.Pause()
			return
		case <-t.C:
			if !pb.player.IsPlaying() {
				return
			}
		}
	}
}
