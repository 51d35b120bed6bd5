package audio

import (
	"errors"
	"testing"
)

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(PlayerConfig{})
	if p.config.PollInterval != DefaultPlayerConfig().PollInterval {
		t.Errorf("expected default poll interval, got %v", p.config.PollInterval)
	}
	if p.context != nil {
		t.Error("oto context should be created lazily")
	}
}

func TestPlayerClosed(t *testing.T) {
	p := NewPlayer(DefaultPlayerConfig())
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	clip, _ := NewClipStore().Create(testPCM(4))
	if _, err := p.Play(clip); !errors.Is(err, ErrPlayerClosed) {
		t.Errorf("expected ErrPlayerClosed, got %v", err)
	}
}

func TestPlayerRevokedClip(t *testing.T) {
	p := NewPlayer(DefaultPlayerConfig())
	clip, _ := NewClipStore().Create(testPCM(4))
	clip.Release()

	if _, err := p.Play(clip); !errors.Is(err, ErrClipRevoked) {
		t.Errorf("expected ErrClipRevoked, got %v", err)
	}
}
