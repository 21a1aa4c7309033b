package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFakeWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segment.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVE"), 0o644))
	return path
}

func TestEngine_TranscribeReturnsTrimmedText(t *testing.T) {
	var gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotLanguage = r.FormValue("language")
		_, _, err := r.FormFile("file")
		require.NoError(t, err)
		w.Write([]byte(`{"text": "  hello world  "}`))
	}))
	defer server.Close()

	engine := NewEngine(Config{BaseURL: server.URL, Language: "en"})

	text, err := engine.Transcribe(context.Background(), writeFakeWAV(t))

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "en", gotLanguage)
}

func TestEngine_TranscribeEmptyTextIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": ""}`))
	}))
	defer server.Close()

	engine := NewEngine(Config{BaseURL: server.URL})

	text, err := engine.Transcribe(context.Background(), writeFakeWAV(t))

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestEngine_TranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "model not loaded"}}`))
	}))
	defer server.Close()

	engine := NewEngine(Config{BaseURL: server.URL})

	_, err := engine.Transcribe(context.Background(), writeFakeWAV(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestEngine_TranscribeMissingFile(t *testing.T) {
	engine := NewEngine(Config{BaseURL: "http://localhost:1"})

	_, err := engine.Transcribe(context.Background(), "/nonexistent/audio.wav")

	assert.Error(t, err)
}

func TestEngine_NameIncludesLanguage(t *testing.T) {
	engine := NewEngine(Config{Language: "es"})

	assert.Equal(t, "whisper (es)", engine.Name())
}
