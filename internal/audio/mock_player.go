package audio

import (
	"errors"
	"sync"
)

// MockPlayer implements Player for testing purposes. It never produces
// sound; each playback stays active until Finish or Stop is called.
type MockPlayer struct {
	mu      sync.Mutex
	plays   []string
	current *MockPlayback
	closed  bool

	// PlayErr, when set, is returned by the next call to Play.
	PlayErr error
}

// NewMockPlayer returns an idle mock player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records the clip and starts a simulated playback. The clip's
// reference must still resolve.
func (mp *MockPlayer) Play(clip *Clip) (Playback, error) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.closed {
		return nil, ErrPlayerClosed
	}
	if err := mp.PlayErr; err != nil {
		mp.PlayErr = nil
		return nil, err
	}
	if clip == nil {
		return nil, errors.New("nil clip")
	}
	if _, err := clip.Open(); err != nil {
		return nil, err
	}

	if mp.current != nil {
		mp.current.Stop()
	}
	mp.plays = append(mp.plays, clip.Ref())
	mp.current = &MockPlayback{done: make(chan struct{})}
	return mp.current, nil
}

// Close stops the active playback.
func (mp *MockPlayer) Close() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.closed = true
	if mp.current != nil {
		mp.current.Stop()
	}
	return nil
}

// Plays returns the references played so far.
func (mp *MockPlayer) Plays() []string {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return append([]string(nil), mp.plays...)
}

// Current returns the most recent playback, or nil.
func (mp *MockPlayer) Current() *MockPlayback {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.current
}

// MockPlayback is a simulated playback.
type MockPlayback struct {
	done    chan struct{}
	once    sync.Once
	stopped bool
	mu      sync.Mutex
}

func (pb *MockPlayback) Done() <-chan struct{} { return pb.done }

// Stop ends the playback early.
func (pb *MockPlayback) Stop() {
	pb.once.Do(func() {
		pb.mu.Lock()
		pb.stopped = true
		pb.mu.Unlock()
		close(pb.done)
	})
}

// Finish simulates the clip playing to its end.
func (pb *MockPlayback) Finish() {
	pb.once.Do(func() { close(pb.done) })
}

// Stopped reports whether Stop ended the playback.
func (pb *MockPlayback) Stopped() bool {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.stopped
}
