// Package audio generates pronunciation audio for deck entries.
//
// A Synthesizer wraps a speech synthesis service and returns encoded MP3
// bytes for a piece of text. The Generator walks the entry list, writes
// one file per entry, and records the file reference on the entry.
// Implementations must be safe for concurrent use.
package audio

import (
	"context"
	"errors"
)

// Voice selects the synthesis voice.
type Voice struct {
	// LanguageCode is the BCP-47 language tag ("vi-VN").
	LanguageCode string

	// Name is the provider voice name ("vi-VN-Neural2-A").
	Name string

	// SpeakingRate scales speech speed; 1.0 is normal.
	SpeakingRate float64
}

// FemaleVoice is the default: female, Northern accent, slightly slowed
// for learners.
func FemaleVoice() Voice {
	return Voice{LanguageCode: "vi-VN", Name: "vi-VN-Neural2-A", SpeakingRate: 0.9}
}

// MaleVoice is the male Northern-accent alternative.
func MaleVoice() Voice {
	return Voice{LanguageCode: "vi-VN", Name: "vi-VN-Neural2-D", SpeakingRate: 0.9}
}

// Synthesizer is the abstraction over any speech synthesis backend.
type Synthesizer interface {
	// Synthesize returns MP3 bytes for the given text.
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)
}

var (
	// ErrEmptyText is returned when there is nothing to synthesize
	ErrEmptyText = errors.New("text to synthesize is empty")

	// ErrNoSynthesizer is returned when audio generation is requested
	// without a configured synthesizer
	ErrNoSynthesizer = errors.New("no speech synthesizer configured")
)
