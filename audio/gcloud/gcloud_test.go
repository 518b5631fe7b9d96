package gcloud

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexikit/audio"
)

func TestSynthesize(t *testing.T) {
	mp3 := []byte("fake mp3 bytes")

	var gotReq synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(synthesizeResponse{
			AudioContent: base64.StdEncoding.EncodeToString(mp3),
		})
	}))
	defer server.Close()

	s, err := New("test-key", WithEndpoint(server.URL))
	require.NoError(t, err)

	got, err := s.Synthesize(context.Background(), "nhà", audio.FemaleVoice())
	require.NoError(t, err)
	assert.Equal(t, mp3, got)

	assert.Equal(t, "nhà", gotReq.Input.Text)
	assert.Equal(t, "vi-VN", gotReq.Voice.LanguageCode)
	assert.Equal(t, "vi-VN-Neural2-A", gotReq.Voice.Name)
	assert.Equal(t, "MP3", gotReq.AudioConfig.AudioEncoding)
	assert.InDelta(t, 0.9, gotReq.AudioConfig.SpeakingRate, 0.001)
}

func TestSynthesize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API not enabled","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	s, err := New("test-key", WithEndpoint(server.URL))
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "nhà", audio.FemaleVoice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API not enabled")
}

func TestSynthesize_EmptyText(t *testing.T) {
	s, err := New("test-key")
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "", audio.FemaleVoice())
	assert.ErrorIs(t, err, audio.ErrEmptyText)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestSynthesize_EmptyAudioContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s, err := New("test-key", WithEndpoint(server.URL))
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "nhà", audio.FemaleVoice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audio content")
}
