package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/domain"
)

type catalogService struct {
	client   booking.Client
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewCatalogService(client booking.Client, logger *slog.Logger, observers ...UseCaseObserver) CatalogService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &catalogService{
		client:   client,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Destinations(ctx context.Context) (out []domain.Destination) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["count"] = len(out)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "list-destinations",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   true,
			Fields:    fields,
		})
	}()

	if s.client == nil {
		fields["source"] = "fallback"
		return domain.FallbackDestinations()
	}

	listings, err := s.client.ListListings(ctx)
	if err != nil || len(listings) == 0 {
		s.logger.Debug("catalog_fallback", "error", err, "listings", len(listings))
		fields["source"] = "fallback"
		return domain.FallbackDestinations()
	}

	out = make([]domain.Destination, 0, len(listings)+1)
	for _, l := range listings {
		if strings.TrimSpace(l.ID) == "" || l.ID == domain.CustomDestinationID {
			continue
		}
		out = append(out, domain.Destination{
			ID:           l.ID,
			Label:        domain.CoalesceStr(strings.TrimSpace(l.Title), l.ID),
			DurationHint: l.Duration.String(),
		})
	}
	fields["source"] = "api"
	return append(out, domain.CustomDestination())
}
