// Package whisper provides a speech-to-text adapter for Whisper-style
// transcription APIs (OpenAI audio endpoint or a compatible local
// server such as faster-whisper-server).
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mentorlab/tutor-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SpeechEngine = (*Engine)(nil)

// Default configuration values.
const (
	DefaultBaseURL  = "http://localhost:9000/v1"
	DefaultModel    = "whisper-1"
	DefaultTimeout  = 120 * time.Second
	DefaultLanguage = "en"

	// DefaultRequestsPerSecond throttles segment uploads so a long
	// video does not hammer the transcription endpoint.
	DefaultRequestsPerSecond = 2.0
	DefaultBurstSize         = 4
)

// Config holds configuration for the Whisper engine.
type Config struct {
	// BaseURL is the API base URL (default: http://localhost:9000/v1).
	BaseURL string

	// APIKey authorizes requests; optional for local servers.
	APIKey string

	// Model is the transcription model (default: whisper-1).
	Model string

	// Language is the expected speech language code (default: en).
	Language string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond caps the upload rate (default: 2).
	RequestsPerSecond float64

	// BurstSize is the token bucket burst (default: 4).
	BurstSize int
}

// Engine transcribes WAV audio through a Whisper-compatible API.
type Engine struct {
	client   *http.Client
	limiter  *rate.Limiter
	baseURL  string
	apiKey   string
	model    string
	language string
}

// transcriptionResponse is the API response format.
type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewEngine creates a Whisper transcription engine.
func NewEngine(cfg Config) *Engine {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultBurstSize
	}

	return &Engine{
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		language: cfg.Language,
	}
}

// Name identifies the engine and its language.
func (e *Engine) Name() string {
	return "whisper (" + e.language + ")"
}

// Transcribe uploads the WAV file and returns the recognized text.
// An empty transcript with a nil error means the audio was processed
// but nothing was understood.
func (e *Engine) Transcribe(ctx context.Context, wavPath string) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	audio, err := os.Open(wavPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer audio.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	if err := writer.WriteField("model", e.model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("language", e.language); err != nil {
		return "", fmt.Errorf("write language field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.baseURL+"/audio/transcriptions",
		&body,
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var transcription transcriptionResponse
	if err := json.Unmarshal(respBody, &transcription); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if transcription.Error != nil {
		return "", fmt.Errorf("whisper error: %s", transcription.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return strings.TrimSpace(transcription.Text), nil
}
