// Command nsfg loads the 2002 NSFG respondent and pregnancy files,
// cleans them, checks them against known facts and prints the
// exploratory report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dhunton/nsfg/internal/config"
	"github.com/dhunton/nsfg/internal/survey"
)

type options struct {
	configPath string
	dataDir    string
	bins       int
	verbose    bool
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
}

// newLogger builds the logger described by cfg.  verbose forces the
// debug level.
func newLogger(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// newRootCmd returns the nsfg command.  The checks are run after the
// tables are read; any failure ends the run.
func newRootCmd(checks []survey.Check) *cobra.Command {

	opts := new(options)

	cmd := &cobra.Command{
		Use:   "nsfg",
		Short: "Clean, validate and summarize the 2002 NSFG pregnancy files",
		Long: `nsfg reads 2002FemResp and 2002FemPreg (Stata dictionary plus gzip
fixed-width data), cleans the pregnancy table, checks both tables
against reference facts and prints descriptive statistics and a
comparison of first babies with other babies.

Settings come from defaults, NSFG_* environment variables and an
optional YAML file, in increasing order of precedence.  Flags override
all of them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("data-dir") {
				cfg.Data.Dir = opts.dataDir
			}
			if flags.Changed("bins") {
				cfg.Report.HistogramBins = opts.bins
			}
			if opts.noColor {
				cfg.Report.Color = false
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			opts.cfg = cfg

			opts.logger, err = newLogger(cfg.Logging, opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts.cfg, opts.logger, checks)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.dataDir, "data-dir", "d", ".", "Directory holding the .dct and .dat.gz files")
	flags.IntVar(&opts.bins, "bins", 100, "Number of histogram bins")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	return cmd
}

func main() {
	if err := newRootCmd(survey.ReferenceChecks()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
