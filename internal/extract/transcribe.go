package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const whisperModel = "ggml-large-v3-turbo"

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type TranscriptionResponse struct {
	Text string `json:"text"`
}

// Whisper posts MP3 audio to an OpenAI-compatible /v1/audio/transcriptions endpoint.
type Whisper struct {
	client    *resty.Client
	serverURL string
}

func NewWhisper(serverURL string) *Whisper {
	return &Whisper{
		client:    resty.New().SetTimeout(5 * time.Minute),
		serverURL: serverURL,
	}
}

func (w *Whisper) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var result TranscriptionResponse
	resp, err := w.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"model": whisperModel}).
		SetFileReader("file", "audio.mp3", bytes.NewReader(audio)).
		SetResult(&result).
		Post(w.serverURL)
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("failed to transcribe audio: %s", resp.String())
	}

	return strings.Join(strings.Fields(result.Text), " "), nil
}

// StaticTranscriber answers every request with the same text. It stands in
// for speech-to-text when no endpoint is configured.
type StaticTranscriber string

func (s StaticTranscriber) Transcribe(context.Context, []byte) (string, error) {
	return string(s), nil
}
