package transcribe

import (
	"context"
	"fmt"

	"careerpilot/internal/config"
	"careerpilot/internal/errors"
)

// PlaceholderTranscript is stored when no transcript could be produced for an
// answer. Callers treat it as "answer received, content unknown".
const PlaceholderTranscript = "No transcription available"

// Transcriber converts recorded answer audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Close() error
}

// NewFromConfig builds the configured transcription backend.
func NewFromConfig(cfg config.TranscriptionConfig, logger *errors.Logger) (Transcriber, error) {
	switch cfg.Provider {
	case "deepgram":
		return NewDeepgramTranscriber(cfg, logger)
	case "disabled":
		logger.Debug("Transcription disabled")
		return &DisabledTranscriber{}, nil
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported transcription provider: %s", cfg.Provider), nil)
	}
}

// DisabledTranscriber is used when no speech-to-text backend is configured.
// Every call fails so callers fall back to the placeholder transcript.
type DisabledTranscriber struct{}

func (d *DisabledTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", errors.NewConfigError(errors.ErrCodeInvalidConfig, "Transcription is disabled", nil)
}

func (d *DisabledTranscriber) Close() error { return nil }
