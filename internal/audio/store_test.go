package audio

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

func testPCM(n int) PCM {
	return PCM{Data: make([]byte, n), SampleRate: 44100, Channels: 2}
}

func TestClipStoreLifecycle(t *testing.T) {
	store := NewClipStore()

	clip, err := store.Create(testPCM(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 live clip, got %d", store.Len())
	}
	if _, ok := store.Lookup(clip.Ref()); !ok {
		t.Fatal("expected reference to resolve")
	}

	r, err := clip.Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, _ := io.ReadAll(r)
	if len(b) != 8 {
		t.Errorf("expected 8 bytes, got %d", len(b))
	}

	clip.Release()

	if _, ok := store.Lookup(clip.Ref()); ok {
		t.Error("reference should not resolve after release")
	}
	if _, err := clip.Open(); !errors.Is(err, ErrClipRevoked) {
		t.Errorf("expected ErrClipRevoked, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}

func TestClipReleaseIdempotent(t *testing.T) {
	store := NewClipStore()
	clip, _ := store.Create(testPCM(4))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clip.Release()
		}()
	}
	wg.Wait()

	stats := store.Stats()
	if stats.Revoked != 1 {
		t.Errorf("expected 1 revocation, got %d", stats.Revoked)
	}
	if stats.Size != 0 {
		t.Errorf("expected size 0, got %d", stats.Size)
	}
}

func TestClipStoreUniqueRefs(t *testing.T) {
	store := NewClipStore()
	a, _ := store.Create(testPCM(2))
	b, _ := store.Create(testPCM(2))
	if a.Ref() == b.Ref() {
		t.Fatalf("references collide: %q", a.Ref())
	}

	a.Release()
	if _, ok := store.Lookup(b.Ref()); !ok {
		t.Error("releasing one clip revoked another")
	}
}

func TestClipStoreRejectsEmpty(t *testing.T) {
	store := NewClipStore()
	if _, err := store.Create(PCM{}); !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("expected ErrEmptyAudio, got %v", err)
	}
}

func TestPCMDuration(t *testing.T) {
	tests := []struct {
		name string
		pcm  PCM
		want time.Duration
	}{
		{"one second stereo", PCM{Data: make([]byte, 44100*4), SampleRate: 44100, Channels: 2}, time.Second},
		{"half second mono", PCM{Data: make([]byte, 48000), SampleRate: 48000, Channels: 1}, 500 * time.Millisecond},
		{"no format", PCM{Data: make([]byte, 10)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pcm.Duration(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
