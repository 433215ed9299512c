// Package app wires page sources to the validator and writes one report per
// page.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/logging"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/page"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/pagination"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/validator"
	"github.com/rs/zerolog"
)

// Stats summarizes a run.
type Stats struct {
	RunID            string
	Pages            int
	Customers        int
	InvalidCustomers int
	InvalidFields    int
	Duration         time.Duration
}

// Runner validates pages and writes their output documents.
type Runner struct {
	runID     string
	validator *validator.Validator
	out       io.Writer
	logger    zerolog.Logger
	stats     Stats
}

// NewRunner creates a runner writing reports to out. Each runner gets its own
// run id, attached to every log line it emits.
func NewRunner(out io.Writer, logger zerolog.Logger) *Runner {
	runID := uuid.NewString()
	logger = logging.WithRun(logger, runID)

	return &Runner{
		runID:     runID,
		validator: validator.New(logger),
		out:       out,
		logger:    logger,
		stats:     Stats{RunID: runID},
	}
}

// RunID returns the run's identifier.
func (r *Runner) RunID() string {
	return r.runID
}

// Stats returns the totals accumulated so far.
func (r *Runner) Stats() Stats {
	return r.stats
}

// HandlePage validates one page and writes its output. It satisfies
// pagination.PageHandler.
func (r *Runner) HandlePage(_ context.Context, number int, p *page.Page) error {
	customers := len(p.Customers.Array())

	report, err := r.validator.ProcessPage(p.Customers, p.Validations)
	if err != nil {
		return err
	}

	if err := page.NewOutput(p, report).Write(r.out); err != nil {
		return err
	}

	r.stats.Pages++
	r.stats.Customers += customers
	r.stats.InvalidCustomers += len(report.InvalidCustomers)
	r.stats.InvalidFields += report.InvalidFieldCount()

	r.logger.Info().
		Int("page", number).
		Int("customers", customers).
		Int("invalid_customers", len(report.InvalidCustomers)).
		Msg("Page validated")

	return nil
}

// Run walks every page with walker.
func (r *Runner) Run(ctx context.Context, walker *pagination.Walker) (Stats, error) {
	start := time.Now()
	r.logger.Info().Msg("Run started")

	_, err := walker.Walk(ctx, r.HandlePage)
	return r.finish(start, err)
}

// RunFile processes a local page document as a single page. Its pagination
// metadata is echoed but never followed.
func (r *Runner) RunFile(ctx context.Context, path string) (Stats, error) {
	start := time.Now()
	r.logger.Info().Str("file", path).Msg("Run started")

	data, err := os.ReadFile(path)
	if err != nil {
		return r.finish(start, fmt.Errorf("read page file: %w", err))
	}

	p, err := page.Decode(data)
	if err != nil {
		return r.finish(start, fmt.Errorf("decode %s: %w", path, err))
	}

	return r.finish(start, r.HandlePage(ctx, 1, p))
}

func (r *Runner) finish(start time.Time, err error) (Stats, error) {
	r.stats.Duration = time.Since(start)

	event := r.logger.Info()
	if err != nil {
		event = r.logger.Error().Err(err)
	}
	event.
		Int("pages", r.stats.Pages).
		Int("customers", r.stats.Customers).
		Int("invalid_customers", r.stats.InvalidCustomers).
		Int("invalid_fields", r.stats.InvalidFields).
		Dur("duration", r.stats.Duration).
		Msg("Run finished")

	return r.stats, err
}
