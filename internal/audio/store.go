package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// ErrClipRevoked is returned when a clip reference no longer resolves.
var ErrClipRevoked = errors.New("clip has been revoked")

// StoreStats tracks clip store activity.
type StoreStats struct {
	Created int64
	Revoked int64
	Live    int
	Size    int64 // bytes held by live clips
}

// ClipStore holds decoded audio under transient references, much like an
// object URL registry: a reference resolves until it is revoked, and never
// afterwards.
type ClipStore struct {
	mu    sync.RWMutex
	items map[string]PCM
	seq   atomic.Uint64
	stats StoreStats
}

// NewClipStore returns an empty store.
func NewClipStore() *ClipStore {
	return &ClipStore{items: make(map[string]PCM)}
}

// Create stores pcm and returns a clip owning the new reference.
func (s *ClipStore) Create(pcm PCM) (*Clip, error) {
	if len(pcm.Data) == 0 {
		return nil, ErrEmptyAudio
	}

	ref := fmt.Sprintf("clip:%d", s.seq.Add(1))

	s.mu.Lock()
	s.items[ref] = pcm
	s.stats.Created++
	s.stats.Size += int64(len(pcm.Data))
	s.mu.Unlock()

	return &Clip{ref: ref, store: s, pcm: pcm}, nil
}

// Lookup resolves a reference.
func (s *ClipStore) Lookup(ref string) (PCM, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pcm, ok := s.items[ref]
	return pcm, ok
}

// Revoke releases a reference. Revoking an unknown reference is a no-op.
func (s *ClipStore) Revoke(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pcm, ok := s.items[ref]
	if !ok {
		return
	}
	delete(s.items, ref)
	s.stats.Revoked++
	s.stats.Size -= int64(len(pcm.Data))
}

// Len returns the number of live references.
func (s *ClipStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stats returns a snapshot of the store statistics.
func (s *ClipStore) Stats() StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.stats
	st.Live = len(s.items)
	return st
}

// Clip is the playable handle for one decoded payload.
type Clip struct {
	ref   string
	store *ClipStore
	pcm   PCM
	once  sync.Once
}

// Ref returns the clip's reference string.
func (c *Clip) Ref() string { return c.ref }

// Format returns the sample rate and channel count of the clip.
func (c *Clip) Format() (sampleRate, channels int) {
	return c.pcm.SampleRate, c.pcm.Channels
}

// Size returns the size of the decoded audio in bytes.
func (c *Clip) Size() int { return len(c.pcm.Data) }

// Open resolves the reference and returns a reader over its samples.
func (c *Clip) Open() (io.Reader, error) {
	pcm, ok := c.store.Lookup(c.ref)
	if !ok {
		return nil, ErrClipRevoked
	}
	return bytes.NewReader(pcm.Data), nil
}

// Release revokes the clip's reference. It is safe to call more than once.
func (c *Clip) Release() {
	c.once.Do(func() {
		c.store.Revoke(c.ref)
	})
}
