package processor

import (
	"context"
	"fmt"

	"storecatalog/catalog-service/internal/app/catalog/repository"
	"storecatalog/pkg/logger"
	"storecatalog/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// StatsScheduler periodically counts catalog rows into the catalog gauges.
type StatsScheduler struct {
	cron      *cron.Cron
	statsRepo repository.StatsRepository
}

func NewStatsScheduler(statsRepo repository.StatsRepository) *StatsScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger.Printf{})))

	return &StatsScheduler{
		cron:      c,
		statsRepo: statsRepo,
	}
}

// Start registers the refresh job, starts the scheduler and runs one refresh
// right away. A failed initial refresh does not stop the scheduler.
func (s *StatsScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting stats scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Refresh(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to refresh catalog stats")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", schedule, err)
	}

	s.cron.Start()

	if err := s.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial catalog stats refresh failed")
	}

	return nil
}

// Refresh reads the current counts and publishes them as gauges.
func (s *StatsScheduler) Refresh(ctx context.Context) error {
	stats, err := s.statsRepo.Stats(ctx)
	if err != nil {
		return err
	}

	metrics.CatalogCategories.Set(float64(stats.Categories))
	metrics.CatalogProducts.Set(float64(stats.Products))
	metrics.CatalogProductsOutOfStock.Set(float64(stats.ProductsOutOfStock))

	logger.Debug().
		Int64("categories", stats.Categories).
		Int64("products", stats.Products).
		Int64("out_of_stock", stats.ProductsOutOfStock).
		Msg("Catalog stats refreshed")
	return nil
}

func (s *StatsScheduler) Stop() {
	logger.Info().Msg("Stopping stats scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *StatsScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
