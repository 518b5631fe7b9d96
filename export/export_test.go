package export_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexikit/core"
	"github.com/poiesic/lexikit/export"
)

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = content
	}
	return files
}

func TestMediaFile(t *testing.T) {
	assert.Equal(t, "1_nhà.mp3", export.MediaFile("[sound:1_nhà.mp3]"))
	assert.Equal(t, "", export.MediaFile(""))
	assert.Equal(t, "", export.MediaFile("1_nhà.mp3"))
}

func TestPackagerBundlesDeckMediaAndManifest(t *testing.T) {
	mediaDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "1_nhà.mp3"), []byte("audio-bytes"), 0644))

	entries := []core.CardEntry{
		{Rank: 1, Lemma: "nhà", OriginalWord: "nhà", SenseNumber: 1, TotalSenses: 1,
			POS: "noun", Definition: "house", AudioRef: "[sound:1_nhà.mp3]"},
		{Rank: 2, Lemma: "đi", OriginalWord: "đi", SenseNumber: 1, TotalSenses: 1,
			POS: "verb", Definition: "to go"},
	}

	var buf bytes.Buffer
	packager := export.NewPackager("Vietnamese Core", mediaDir)
	report, err := packager.Write(&buf, entries)
	require.NoError(t, err)

	assert.Equal(t, "Vietnamese Core", report.Manifest.Name)
	assert.Equal(t, core.IDFromContent("Vietnamese Core"), report.Manifest.DeckID)
	assert.Equal(t, 2, report.Manifest.EntryCount)
	assert.Equal(t, 1, report.Manifest.MediaCount)
	assert.Empty(t, report.MissingMedia)

	files := readArchive(t, buf.Bytes())
	assert.Contains(t, files, "deck.csv")
	assert.Equal(t, []byte("audio-bytes"), files["media/1_nhà.mp3"])

	csvText := string(files["deck.csv"])
	assert.True(t, strings.HasPrefix(csvText, "Rank,"))
	assert.Contains(t, csvText, "nhà")

	var manifest export.Manifest
	require.NoError(t, json.Unmarshal(files["manifest.json"], &manifest))
	assert.Equal(t, report.Manifest, manifest)
}

func TestPackagerDeterministicDeckID(t *testing.T) {
	a := export.NewPackager("Deck", "")
	b := export.NewPackager("Deck", "")
	entries := []core.CardEntry{{Rank: 1, Lemma: "nhà"}}

	var bufA, bufB bytes.Buffer
	reportA, err := a.Write(&bufA, entries)
	require.NoError(t, err)
	reportB, err := b.Write(&bufB, entries)
	require.NoError(t, err)
	assert.Equal(t, reportA.Manifest.DeckID, reportB.Manifest.DeckID)
}

func TestPackagerMissingMediaIsNotFatal(t *testing.T) {
	entries := []core.CardEntry{
		{Rank: 1, Lemma: "nhà", AudioRef: "[sound:1_nhà.mp3]"},
	}

	var buf bytes.Buffer
	packager := export.NewPackager("Deck", t.TempDir())
	report, err := packager.Write(&buf, entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"1_nhà.mp3"}, report.MissingMedia)
	assert.Equal(t, 0, report.Manifest.MediaCount)

	files := readArchive(t, buf.Bytes())
	assert.Contains(t, files, "deck.csv")
	assert.Contains(t, files, "manifest.json")
	assert.NotContains(t, files, "media/1_nhà.mp3")
}

func TestPackagerEmptyDeck(t *testing.T) {
	var buf bytes.Buffer
	packager := export.NewPackager("Deck", "")
	_, err := packager.Write(&buf, nil)
	assert.ErrorIs(t, err, export.ErrNoEntries)
}

func TestPackagerWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.zip")
	packager := export.NewPackager("Deck", "")
	_, err := packager.WriteFile(path, []core.CardEntry{{Rank: 1, Lemma: "nhà"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	files := readArchive(t, data)
	assert.Contains(t, files, "deck.csv")
}
