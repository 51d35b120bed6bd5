// Package elevenlabs is a small client for the ElevenLabs text-to-speech
// API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// BaseURL is the ElevenLabs API base URL.
	BaseURL = "https://api.elevenlabs.io/v1"

	// DefaultTimeout bounds a whole synthesis call.
	DefaultTimeout = 30 * time.Second

	// ModelID is the model every request is synthesized with.
	ModelID = "eleven_monolingual_v1"

	// DefaultStability and DefaultSimilarityBoost are the fixed voice
	// settings sent with every request.
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.5

	maxErrorBody = 4096
)

var (
	ErrEmptyText    = errors.New("elevenlabs: text is required")
	ErrEmptyVoiceID = errors.New("elevenlabs: voice id is required")
	ErrEmptyAPIKey  = errors.New("elevenlabs: api key is required")
)

// Synthesizer turns text into encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, apiKey string, req Request) ([]byte, error)
}

// VoiceSettings are the per-request voice parameters.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Request describes a single synthesis call. VoiceID is part of the URL,
// not the body.
type Request struct {
	VoiceID       string        `json:"-"`
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// NewRequest builds a request with the fixed model and voice settings.
func NewRequest(voiceID, text string) Request {
	return Request{
		VoiceID: voiceID,
		Text:    text,
		ModelID: ModelID,
		VoiceSettings: VoiceSettings{
			Stability:       DefaultStability,
			SimilarityBoost: DefaultSimilarityBoost,
		},
	}
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("elevenlabs: API error (status %d): %s", e.StatusCode, e.Body)
}

// Client wraps HTTP calls to the ElevenLabs API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient constructs an ElevenLabs API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Synthesize posts req to the text-to-speech endpoint and returns the
// encoded audio body (MP3 by default).
func (c *Client) Synthesize(ctx context.Context, apiKey string, req Request) ([]byte, error) {
	switch {
	case apiKey == "":
		return nil, ErrEmptyAPIKey
	case req.VoiceID == "":
		return nil, ErrEmptyVoiceID
	case req.Text == "":
		return nil, ErrEmptyText
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	endpoint := c.baseURL + "/text-to-speech/" + url.PathEscape(req.VoiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: http request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: read audio: %w", err)
	}
	return audio, nil
}
