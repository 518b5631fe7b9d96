// Package gcloud provides a Google Cloud Text-to-Speech backed
// Synthesizer using the REST API with API-key authentication.
package gcloud

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/poiesic/lexikit/audio"
)

const defaultEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// Option is a functional option for configuring the Synthesizer.
type Option func(*Synthesizer)

// WithEndpoint overrides the API endpoint. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(s *Synthesizer) {
		s.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Synthesizer) {
		s.httpClient = client
	}
}

// Synthesizer implements audio.Synthesizer backed by Google Cloud TTS.
type Synthesizer struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var _ audio.Synthesizer = (*Synthesizer)(nil)

// New creates a new Google Cloud TTS synthesizer. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Synthesizer, error) {
	if apiKey == "" {
		return nil, errors.New("gcloud: apiKey must not be empty")
	}
	s := &Synthesizer{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// ---- request/response types ----

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceParams    `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceParams struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name,omitempty"`
}

type audioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate,omitempty"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"` // base64-encoded MP3
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Synthesize sends a synthesis request and returns the decoded MP3 bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, voice audio.Voice) ([]byte, error) {
	if text == "" {
		return nil, audio.ErrEmptyText
	}

	payload := synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.Name,
		},
		AudioConfig: audioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  voice.SpeakingRate,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gcloud: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gcloud: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gcloud: synthesize HTTP: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gcloud: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("gcloud: status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("gcloud: unexpected status %d", resp.StatusCode)
	}

	var sr synthesizeResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, fmt.Errorf("gcloud: decode response: %w", err)
	}
	if sr.AudioContent == "" {
		return nil, errors.New("gcloud: response has no audio content")
	}

	mp3, err := base64.StdEncoding.DecodeString(sr.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("gcloud: decode audio: %w", err)
	}
	return mp3, nil
}
