package transcribe

import (
	"bytes"
	"context"
	"strings"

	"careerpilot/internal/config"
	"careerpilot/internal/errors"

	listenapi "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	restinterfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest/interfaces"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	listen "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// DeepgramTranscriber transcribes recorded answers through the Deepgram
// prerecorded REST API.
type DeepgramTranscriber struct {
	api    *listenapi.Client
	config config.TranscriptionConfig
	logger *errors.Logger
}

var _ Transcriber = (*DeepgramTranscriber)(nil)

// NewDeepgramTranscriber creates a Deepgram-backed transcriber
func NewDeepgramTranscriber(cfg config.TranscriptionConfig, logger *errors.Logger) (*DeepgramTranscriber, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			"Deepgram API key is required when transcription provider is deepgram", nil)
	}

	restClient := listen.NewREST(cfg.APIKey, &interfaces.ClientOptions{})

	logger.Debug("Initialized Deepgram transcriber",
		"model", cfg.Model,
		"language", cfg.Language,
		"timeout", cfg.Timeout)

	return &DeepgramTranscriber{
		api:    listenapi.New(restClient),
		config: cfg,
		logger: logger,
	}, nil
}

// Transcribe converts answer audio to text
func (d *DeepgramTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	tracer := otel.Tracer("careerpilot.transcribe.deepgram")
	ctx, span := tracer.Start(ctx, "deepgram.transcribe")
	defer span.End()

	span.SetAttributes(
		attribute.String("transcription.provider", "deepgram"),
		attribute.String("transcription.model", d.config.Model),
		attribute.Int("audio.bytes", len(audio)),
	)

	if len(audio) == 0 {
		return "", errors.NewValidationError(errors.ErrCodeValidation, "Audio payload is empty", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	options := &interfaces.PreRecordedTranscriptionOptions{
		Model:       d.config.Model,
		Language:    d.config.Language,
		Punctuate:   true,
		SmartFormat: true,
	}

	res, err := d.api.FromStream(ctx, bytes.NewReader(audio), options)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		d.logger.Warn("Deepgram transcription failed",
			"model", d.config.Model,
			"audio_bytes", len(audio),
			"error", err.Error())
		return "", errors.NewNetworkError(errors.ErrCodeAIServiceFailed, "Deepgram transcription failed", err)
	}

	transcript := extractTranscript(res)
	if transcript == "" {
		span.SetAttributes(attribute.Bool("success", false))
		return "", errors.NewAIError("TRANSCRIPT_EMPTY", "Deepgram returned no transcript", nil)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("transcript.length", len(transcript)),
	)

	return transcript, nil
}

// Close implements Transcriber
func (d *DeepgramTranscriber) Close() error { return nil }

// extractTranscript pulls the best-alternative transcript out of a
// prerecorded response.
func extractTranscript(res *restinterfaces.PreRecordedResponse) string {
	if res == nil || res.Results == nil {
		return ""
	}
	for _, channel := range res.Results.Channels {
		for _, alt := range channel.Alternatives {
			if t := strings.TrimSpace(alt.Transcript); t != "" {
				return t
			}
		}
	}
	return ""
}
