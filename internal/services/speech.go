package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/config"
)

// Transcriber converts a recorded answer into text. Returns an empty
// string on any failure; it never reports errors to the caller.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) string
}

// Synthesizer converts text into a playable audio file and returns its
// path, or an empty string when no audio is available. Identical text must
// not be re-synthesized.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) string
}

// SpeechService is the pluggable speech engine; implementations are
// selected by configuration.
type SpeechService interface {
	Transcriber
	Synthesizer
}

// NewSpeechService builds the configured engine. Unknown engines disable
// audio rather than failing startup.
func NewSpeechService(cfg config.SpeechConfig, cacheDir string) SpeechService {
	switch cfg.Engine {
	case "openai":
		return newOpenAISpeech(cfg, cacheDir)
	case "off":
		return &noopSpeech{}
	default:
		log.Printf("⚠️ Unknown speech engine %q, audio disabled\n", cfg.Engine)
		return &noopSpeech{}
	}
}

type openAISpeech struct {
	apiKey   string
	voice    string
	ttsModel string
	sttModel string
	cacheDir string
	client   *http.Client
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func newOpenAISpeech(cfg config.SpeechConfig, cacheDir string) SpeechService {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create TTS cache directory %s: %v\n", cacheDir, err)
	}

	return &openAISpeech{
		apiKey:   cfg.OpenAIKey,
		voice:    cfg.Voice,
		ttsModel: cfg.SynthesisModel,
		sttModel: cfg.TranscribeModel,
		cacheDir: cacheDir,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Transcribe implements Transcriber using the OpenAI transcription API.
func (s *openAISpeech) Transcribe(ctx context.Context, audioPath string) string {
	file, err := os.Open(audioPath)
	if err != nil {
		log.Printf("⚠️ Audio file not found at %s: %v\n", audioPath, err)
		return ""
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		log.Printf("⚠️ Failed to build transcription request: %v\n", err)
		return ""
	}
	if _, err := io.Copy(part, file); err != nil {
		log.Printf("⚠️ Failed to read audio file: %v\n", err)
		return ""
	}
	writer.WriteField("model", s.sttModel)
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/audio/transcriptions", &body)
	if err != nil {
		log.Printf("⚠️ Failed to create transcription request: %v\n", err)
		return ""
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Transcription request failed: %v\n", err)
		return ""
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("⚠️ Failed to read transcription response: %v\n", err)
		return ""
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ Transcription API error: status %d, body: %s\n", resp.StatusCode, string(respBody))
		return ""
	}

	var transcription transcriptionResponse
	if err := json.Unmarshal(respBody, &transcription); err != nil {
		log.Printf("⚠️ Failed to parse transcription response: %v\n", err)
		return ""
	}

	return transcription.Text
}

// Synthesize implements Synthesizer using the OpenAI speech API with a
// content-hash file cache.
func (s *openAISpeech) Synthesize(ctx context.Context, text string) string {
	filename := fmt.Sprintf("%s.mp3", contentKey(text))
	path := filepath.Join(s.cacheDir, filename)

	if _, err := os.Stat(path); err == nil {
		return path
	}

	reqBody := speechRequest{
		Model: s.ttsModel,
		Voice: s.voice,
		Input: text,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		log.Printf("⚠️ Failed to marshal speech request: %v\n", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/audio/speech", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Printf("⚠️ Failed to create speech request: %v\n", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Speech synthesis request failed: %v\n", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("⚠️ Speech API error: status %d, body: %s\n", resp.StatusCode, string(respBody))
		return ""
	}

	out, err := os.Create(path)
	if err != nil {
		log.Printf("⚠️ Failed to create audio file %s: %v\n", path, err)
		return ""
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		log.Printf("⚠️ Failed to write audio file %s: %v\n", path, err)
		return ""
	}

	return path
}

func contentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}

// noopSpeech disables audio: transcription yields nothing and synthesis
// reports no audio available.
type noopSpeech struct{}

func (n *noopSpeech) Transcribe(ctx context.Context, audioPath string) string { return "" }

func (n *noopSpeech) Synthesize(ctx context.Context, text string) string { return "" }
