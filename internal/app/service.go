// Package service runs one landrank query: load epochs, filter, report.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/okian/landrank/internal/adapters/epochs"
	"github.com/okian/landrank/internal/adapters/input"
	"github.com/okian/landrank/internal/domain/filter"
	"github.com/okian/landrank/internal/domain/types"
	"github.com/okian/landrank/internal/report"
	"github.com/okian/landrank/pkg/logger"
	"github.com/okian/landrank/pkg/metrics"
)

// Error kinds recorded in run_errors_total.
const (
	kindLoad    = "load"
	kindFilter  = "filter"
	kindReport  = "report"
	kindMetrics = "metrics"
)

// Service wires an epoch source, the filter pipeline and the report formatter.
type Service struct {
	source      epochs.Source
	formatter   *report.Formatter
	metrics     *metrics.Manager
	metricsFile string
	out         io.Writer
	logger      logger.Logger
}

// Result describes a finished run.
type Result struct {
	RunID    string
	Epochs   int
	Lands    []types.RankedLand
	Duration time.Duration
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where epochs are loaded from.
func WithSource(src epochs.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithFormatter sets the report formatter.
func WithFormatter(f *report.Formatter) Option {
	return func(s *Service) {
		if f != nil {
			s.formatter = f
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMetricsFile makes every run write the metrics exposition to path.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithOutput sets where reports are written.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. A source must be supplied with WithSource.
func New(opts ...Option) *Service {
	s := &Service{
		formatter: report.New(),
		metrics:   metrics.NewManager(metrics.WithMetricsEnabled(false)),
		out:       os.Stdout,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads the epochs, applies the selection and writes the report.
// A selection that matches nothing still produces a report and no error.
func (s *Service) Run(ctx context.Context, sel input.Selection) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", res.RunID))
	start := time.Now()
	s.metrics.RecordRun()

	defer s.flushMetrics(ctx, log)

	if s.source == nil {
		s.metrics.RecordRunError(kindLoad)
		return res, ErrNoSource
	}

	log.Debug(ctx, "loading epochs")
	all, err := s.source.Epochs(ctx)
	if err != nil {
		s.metrics.RecordRunError(kindLoad)
		if errors.Is(err, epochs.ErrParse) {
			s.metrics.RecordParseError()
		}
		log.Error(ctx, "loading epochs failed", logger.Error(err))
		return res, fmt.Errorf("load epochs: %w", err)
	}
	res.Epochs = len(all)
	s.metrics.SetLoaded(len(all), countLands(all))

	criteria := sel.Criteria()
	log.Info(ctx, "running selection",
		logger.String("by", criteria.Parameter.String()),
		logger.String("query", criteria.QueryText()),
		logger.Bool("has_query", criteria.Query != nil),
		logger.String("sort", criteria.Sort.String()),
		logger.String("order", criteria.Direction.String()),
		logger.Int("limit", criteria.Limit),
		logger.String("epochs", input.FormatRange(criteria.Epochs)),
		logger.String("ranks", input.FormatRange(criteria.Ranks)),
		logger.Int("epochs_loaded", len(all)),
	)

	pipeline := filter.New(filter.WithStageObserver(func(stage string, n int) {
		log.Debug(ctx, "stage done", logger.String("stage", stage), logger.Int("entries", n))
		s.metrics.SetStageEntries(stage, n)
	}))
	lands, err := pipeline.Apply(all, criteria)
	if err != nil {
		s.metrics.RecordRunError(kindFilter)
		log.Error(ctx, "filtering failed", logger.Error(err))
		return res, err
	}
	res.Lands = lands
	s.metrics.SetResults(len(lands))

	if err := s.formatter.Write(s.out, criteria.Parameter, criteria.QueryText(), lands); err != nil {
		s.metrics.RecordRunError(kindReport)
		log.Error(ctx, "writing report failed", logger.Error(err))
		return res, fmt.Errorf("write report: %w", err)
	}

	res.Duration = time.Since(start)
	s.metrics.ObserveRunDuration(res.Duration)
	log.Info(ctx, "run complete", logger.Int("results", len(lands)), logger.Duration("duration", res.Duration))
	return res, nil
}

// flushMetrics writes the metrics textfile when one is configured. Failures
// are logged and never fail the run.
func (s *Service) flushMetrics(ctx context.Context, log logger.Logger) {
	if s.metricsFile == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.metricsFile); err != nil {
		s.metrics.RecordRunError(kindMetrics)
		log.Warn(ctx, "writing metrics file failed", logger.String("path", s.metricsFile), logger.Error(err))
	}
}

func countLands(all []types.Epoch) int {
	n := 0
	for _, e := range all {
		n += len(e.Lands)
	}
	return n
}
