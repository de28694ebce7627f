package insights

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"careerpilot/internal/ai"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/storage"
	"careerpilot/internal/types"
)

// DefaultRefreshInterval is how long an insights snapshot stays current.
const DefaultRefreshInterval = 7 * 24 * time.Hour

// Store is the persistence surface for cached insights.
type Store interface {
	GetInsights(ctx context.Context, industry string) (types.IndustryInsights, error)
	UpsertInsights(ctx context.Context, insights types.IndustryInsights) error
}

// Service serves industry market insights, regenerating them through the
// AI provider once the refresh window lapses. A stale cached snapshot is
// preferred over a hard failure when regeneration breaks.
type Service struct {
	store           Store
	provider        ai.AIProvider
	refreshInterval time.Duration
	logger          *cpErrors.Logger

	now func() time.Time
}

func NewService(store Store, provider ai.AIProvider, refreshInterval time.Duration, logger *cpErrors.Logger) *Service {
	if refreshInterval <= 0 {
		refreshInterval = DefaultRefreshInterval
	}
	return &Service{
		store:           store,
		provider:        provider,
		refreshInterval: refreshInterval,
		logger:          logger,
		now:             time.Now,
	}
}

// Get returns current insights for an industry, regenerating when absent
// or past the refresh deadline.
func (s *Service) Get(ctx context.Context, industry string) (types.IndustryInsights, error) {
	tracer := otel.Tracer("careerpilot.insights")
	ctx, span := tracer.Start(ctx, "insights.get")
	defer span.End()

	industry = strings.TrimSpace(industry)
	if industry == "" {
		return types.IndustryInsights{}, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "industry is required", nil)
	}
	span.SetAttributes(attribute.String("insights.industry", industry))

	cached, err := s.store.GetInsights(ctx, industry)
	haveCached := err == nil
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return types.IndustryInsights{}, cpErrors.NewStorageError(cpErrors.ErrCodeStorageFailed, "Failed to load insights", err)
	}

	now := s.now()
	if haveCached && cached.NextUpdate.After(now) {
		span.SetAttributes(attribute.Bool("insights.cache_hit", true))
		return cached, nil
	}

	generated, _, genErr := s.provider.GenerateIndustryInsights(ctx, industry)
	if genErr != nil {
		span.RecordError(genErr)
		if haveCached {
			s.logger.Warn("Insights regeneration failed, serving stale snapshot",
				"industry", industry,
				"last_updated", cached.LastUpdated,
				"error", genErr.Error())
			span.SetAttributes(attribute.Bool("insights.stale", true))
			return cached, nil
		}
		return types.IndustryInsights{}, genErr
	}

	generated.Industry = industry
	generated.LastUpdated = now
	generated.NextUpdate = now.Add(s.refreshInterval)

	if err := s.store.UpsertInsights(ctx, generated); err != nil {
		// Serve the fresh snapshot anyway; the next request regenerates.
		s.logger.Warn("Failed to persist regenerated insights",
			"industry", industry,
			"error", err.Error())
	}

	return generated, nil
}
