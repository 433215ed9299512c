package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/page"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for page walking.
var (
	pagesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custval_pages_processed_total",
		Help: "Total customer pages fetched and handled",
	})

	pageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "custval_page_duration_seconds",
		Help:    "Time to fetch, decode and handle one page",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	})
)

// ErrPageLimit is returned when the walk stops at Config.MaxPages while the
// server still reports more customers.
var ErrPageLimit = errors.New("page limit reached")

// Config holds walker configuration.
type Config struct {
	// MaxPages caps the number of pages requested. 0 means no cap.
	MaxPages int
}

// DefaultConfig returns an uncapped configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages: 0,
	}
}

// PageFetcher retrieves the raw document at a page URL.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
}

// PageHandler receives each decoded page. number is 1-based.
type PageHandler func(ctx context.Context, number int, p *page.Page) error

// Walker fetches pages one at a time until the pagination metadata says no
// customers remain.
type Walker struct {
	fetcher   PageFetcher
	paginator *Paginator
	config    Config
	logger    zerolog.Logger
}

// NewWalker creates a walker.
func NewWalker(fetcher PageFetcher, paginator *Paginator, config Config, logger zerolog.Logger) *Walker {
	if config.MaxPages < 0 {
		config.MaxPages = 0
	}

	return &Walker{
		fetcher:   fetcher,
		paginator: paginator,
		config:    config,
		logger:    logger,
	}
}

// Walk fetches, decodes and hands each page to handle, in order. The first
// error stops the walk; pages already handled stay handled. It returns the
// number of pages handled.
func (w *Walker) Walk(ctx context.Context, handle PageHandler) (int, error) {
	start := time.Now()

	for counter := 0; ; counter++ {
		if err := ctx.Err(); err != nil {
			return counter, fmt.Errorf("walk cancelled before page %d: %w", counter+1, err)
		}

		if w.config.MaxPages > 0 && counter >= w.config.MaxPages {
			w.logger.Warn().
				Int("max_pages", w.config.MaxPages).
				Msg("Page limit reached with customers remaining")
			return counter, fmt.Errorf("%w (%d pages)", ErrPageLimit, w.config.MaxPages)
		}

		pageStart := time.Now()
		pageURL := w.paginator.URL(counter)
		number := counter + 1

		w.logger.Debug().
			Int("page", number).
			Str("url", pageURL).
			Msg("Fetching page")

		data, err := w.fetcher.FetchPage(ctx, pageURL)
		if err != nil {
			return counter, fmt.Errorf("fetch page %d: %w", number, err)
		}

		p, err := page.Decode(data)
		if err != nil {
			return counter, fmt.Errorf("decode page %d: %w", number, err)
		}

		if err := handle(ctx, number, p); err != nil {
			return counter, fmt.Errorf("handle page %d: %w", number, err)
		}

		pagesProcessedTotal.Inc()
		pageDuration.Observe(time.Since(pageStart).Seconds())

		if !HasMore(p.Pagination) {
			w.logger.Info().
				Int("pages", number).
				Int("total_customers", p.Pagination.Total).
				Dur("duration", time.Since(start)).
				Msg("Walk complete")
			return number, nil
		}
	}
}
