package transcribe

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"careerpilot/internal/config"
	"careerpilot/internal/errors"
)

var testLogger = errors.NewLogger(slog.LevelDebug)

func TestNewFromConfigDisabled(t *testing.T) {
	tr, err := NewFromConfig(config.TranscriptionConfig{Provider: "disabled"}, testLogger)
	if err != nil {
		t.Fatalf("NewFromConfig(disabled) error = %v", err)
	}
	if _, ok := tr.(*DisabledTranscriber); !ok {
		t.Fatalf("NewFromConfig(disabled) = %T, want *DisabledTranscriber", tr)
	}

	if _, err := tr.Transcribe(context.Background(), []byte("audio")); err == nil {
		t.Error("DisabledTranscriber.Transcribe() should fail")
	}
}

func TestNewFromConfigUnknownProvider(t *testing.T) {
	_, err := NewFromConfig(config.TranscriptionConfig{Provider: "whisper"}, testLogger)
	if err == nil {
		t.Fatal("NewFromConfig(whisper) should fail")
	}
}

func TestNewDeepgramTranscriberRequiresKey(t *testing.T) {
	_, err := NewDeepgramTranscriber(config.TranscriptionConfig{
		Provider: "deepgram",
		Model:    "nova-2",
		Language: "en",
		Timeout:  30 * time.Second,
	}, testLogger)
	if err == nil {
		t.Fatal("NewDeepgramTranscriber without API key should fail")
	}
}

func TestDeepgramTranscribeEmptyAudio(t *testing.T) {
	tr, err := NewDeepgramTranscriber(config.TranscriptionConfig{
		Provider: "deepgram",
		APIKey:   "test-key",
		Model:    "nova-2",
		Language: "en",
		Timeout:  time.Second,
	}, testLogger)
	if err != nil {
		t.Fatalf("NewDeepgramTranscriber() error = %v", err)
	}

	if _, err := tr.Transcribe(context.Background(), nil); err == nil {
		t.Error("Transcribe(nil) should fail without calling the API")
	}
}
