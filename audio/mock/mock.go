// Package mock provides a test double for the audio.Synthesizer
// interface.
package mock

import (
	"context"
	"sync"

	"github.com/poiesic/lexikit/audio"
)

// MockSynthesizer implements audio.Synthesizer for testing.
// It allows custom behavior injection via a function field and records
// every synthesized text.
type MockSynthesizer struct {
	// SynthesizeFunc, when set, replaces the default behavior.
	SynthesizeFunc func(ctx context.Context, text string, voice audio.Voice) ([]byte, error)

	mu    sync.Mutex
	texts []string
}

var _ audio.Synthesizer = (*MockSynthesizer)(nil)

// NewMockSynthesizer creates a mock that returns fake MP3 bytes.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize records the text and returns canned bytes unless a custom
// func is set.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, voice audio.Voice) ([]byte, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, voice)
	}
	return []byte("mp3:" + text), nil
}

// Texts returns the texts synthesized so far.
func (m *MockSynthesizer) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// CallCount returns the number of Synthesize calls.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.texts)
}
