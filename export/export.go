// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package export bundles a finished deck into a portable archive: the
// entry table as CSV, the referenced audio files, and a JSON manifest
// with a content-derived deck ID so rebuilds of identical content
// produce the same identifier.
package export

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/poiesic/lexikit/core"
	"github.com/poiesic/lexikit/deck"
)

// ErrNoEntries is returned when packaging is attempted on an empty deck.
var ErrNoEntries = errors.New("no entries to package")

// Archive member names.
const (
	DeckFileName     = "deck.csv"
	ManifestFileName = "manifest.json"
	mediaDirName     = "media"
)

var soundRefRe = regexp.MustCompile(`^\[sound:(.+)\]$`)

// MediaFile extracts the filename from a sound reference like
// "[sound:1_nhà.mp3]". It returns "" when the reference is empty or
// not in the expected form.
func MediaFile(audioRef string) string {
	m := soundRefRe.FindStringSubmatch(audioRef)
	if m == nil {
		return ""
	}
	return m[1]
}

// Manifest describes the packaged deck.
type Manifest struct {
	Name       string  `json:"name"`
	DeckID     core.ID `json:"deck_id"`
	EntryCount int     `json:"entry_count"`
	MediaCount int     `json:"media_count"`
}

// Report summarizes a packaging run. MissingMedia lists referenced
// files that were not found in the media directory; these are omitted
// from the archive but do not fail the export.
type Report struct {
	Manifest     Manifest
	MissingMedia []string
}

// Packager assembles deck archives.
type Packager struct {
	name     string
	mediaDir string
	logger   *slog.Logger
}

// NewPackager creates a packager for a named deck. mediaDir is where
// referenced audio files are read from; it may be empty when the deck
// carries no audio references.
func NewPackager(name, mediaDir string) *Packager {
	return &Packager{
		name:     name,
		mediaDir: mediaDir,
		logger:   slog.Default().With("component", "export"),
	}
}

// Write packages entries into a zip archive on w.
func (p *Packager) Write(w io.Writer, entries []core.CardEntry) (Report, error) {
	if len(entries) == 0 {
		return Report{}, ErrNoEntries
	}

	zw := zip.NewWriter(w)

	deckFile, err := zw.Create(DeckFileName)
	if err != nil {
		return Report{}, err
	}
	if err := deck.WriteEntries(deckFile, entries); err != nil {
		return Report{}, fmt.Errorf("failed to write deck table: %w", err)
	}

	report := Report{}
	for _, entry := range entries {
		filename := MediaFile(entry.AudioRef)
		if filename == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(p.mediaDir, filename))
		if err != nil {
			p.logger.Warn("referenced media file missing", "file", filename)
			report.MissingMedia = append(report.MissingMedia, filename)
			continue
		}
		mediaFile, err := zw.Create(mediaDirName + "/" + filename)
		if err != nil {
			return Report{}, err
		}
		if _, err := mediaFile.Write(data); err != nil {
			return Report{}, err
		}
		report.Manifest.MediaCount++
	}

	report.Manifest.Name = p.name
	report.Manifest.DeckID = core.IDFromContent(p.name)
	report.Manifest.EntryCount = len(entries)

	manifestFile, err := zw.Create(ManifestFileName)
	if err != nil {
		return Report{}, err
	}
	encoder := json.NewEncoder(manifestFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report.Manifest); err != nil {
		return Report{}, err
	}

	if err := zw.Close(); err != nil {
		return Report{}, err
	}

	p.logger.Info("deck packaged",
		"name", p.name,
		"entries", report.Manifest.EntryCount,
		"media", report.Manifest.MediaCount,
		"missing", len(report.MissingMedia))
	return report, nil
}

// WriteFile packages entries into a zip archive at path.
func (p *Packager) WriteFile(path string, entries []core.CardEntry) (Report, error) {
	f, err := os.Create(path)
	if err != nil {
		return Report{}, err
	}
	report, err := p.Write(f, entries)
	if err != nil {
		f.Close()
		return Report{}, err
	}
	return report, f.Close()
}
