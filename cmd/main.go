package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/landrank/internal/adapters/epochs"
	"github.com/okian/landrank/internal/adapters/input"
	app "github.com/okian/landrank/internal/app"
	"github.com/okian/landrank/internal/config"
	"github.com/okian/landrank/internal/domain/filter"
	"github.com/okian/landrank/internal/domain/types"
	"github.com/okian/landrank/internal/report"
	"github.com/okian/landrank/pkg/logger"
	"github.com/okian/landrank/pkg/metrics"

	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use plain writes for initialization errors since logger isn't available yet
		_, _ = io.WriteString(stderr, "failed to load config: "+err.Error()+"\n")
		return exitError
	}

	if err := logger.InitWithOptions(logger.Options{Writer: stderr, Format: cfg.LogFormat, Source: cfg.LogSource}); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return exitError
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			_, _ = io.WriteString(stderr, "failed to sync logger: "+err.Error()+"\n")
		}
	}()

	cmd := newRootCmd(cfg, stdin, stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = io.WriteString(stderr, "landrank: "+err.Error()+"\n")
		return exitCode(err)
	}
	return exitOK
}

// newRootCmd builds the landrank command. Flag defaults come from cfg.
func newRootCmd(cfg *config.Config, stdin io.Reader, stdout io.Writer) *cobra.Command {
	var (
		dataPath    string
		logLevel    string
		metricsFile string
		interactive bool
	)

	// Config values were validated by config.Load.
	sortAttr, _ := types.ParseSortAttribute(cfg.DefaultSort)
	order, _ := types.ParseSortDirection(cfg.DefaultOrder)
	defaults := input.Defaults{
		Parameter: types.FilterPlayer,
		Sort:      sortAttr,
		Direction: order,
		Limit:     cfg.DefaultLimit,
	}

	cmd := &cobra.Command{
		Use:   "landrank",
		Short: "Filter and rank land holdings across epochs",
		Long: `landrank reads epoch rankings from YAML files, keeps the lands matching a
player, alliance, state system or land number, sorts them by prestige or area
and prints the result as a table.`,
		Example: `  landrank --data ./epochs --by player -q Ana --sort area -n 10
  landrank --by alliance -q "" --epochs 3-7 --ranks 1-50
  landrank -i`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", input.ErrInvalidSelection, err)
	})

	flags := input.NewFlagReader(cmd, defaults)
	cmd.Flags().StringVar(&dataPath, "data", cfg.DataPath, "epoch YAML file or directory")
	cmd.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this file after the run")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for the selection instead of reading flags")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.Get()

		// Apply configured log level (fallback to info on invalid input)
		if err := logger.SetLevelString(logLevel); err != nil {
			log.Warn(ctx, "invalid log level; falling back to info", logger.String("log_level", logLevel), logger.Error(err))
			_ = logger.SetLevelString("info")
		}

		var reader input.Reader = flags
		if interactive {
			reader = input.NewPromptReader(stdin, cmd.ErrOrStderr(),
				input.WithDefaults(defaults),
				input.WithMaxAttempts(cfg.MaxPromptAttempts),
			)
		}
		sel, err := reader.Read(ctx)
		if err != nil {
			return err
		}

		svc := app.New(
			app.WithLogger(log),
			app.WithSource(epochs.NewFileSource(dataPath, epochs.WithLogger(log.Named("epochs")))),
			app.WithFormatter(report.New(report.WithAreaUnit(cfg.AreaUnit))),
			app.WithMetrics(newMetrics(cfg)),
			app.WithMetricsFile(metricsFile),
			app.WithOutput(stdout),
		)
		_, err = svc.Run(ctx, sel)
		return err
	}
	return cmd
}

// newMetrics builds the run metrics from the metrics_* settings.
func newMetrics(cfg *config.Config) *metrics.Manager {
	return metrics.NewManager(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
		metrics.WithCustomLabels(cfg.MetricsLabels),
	)
}

// exitCode maps caller mistakes to the usage code and everything else to a generic failure.
func exitCode(err error) int {
	switch {
	case errors.Is(err, filter.ErrInvalidQuery),
		errors.Is(err, input.ErrInvalidSelection),
		errors.Is(err, input.ErrTooManyAttempts):
		return exitUsage
	default:
		return exitError
	}
}
