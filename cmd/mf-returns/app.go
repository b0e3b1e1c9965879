package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/mf-returns/internal/analysis"
	"github.com/iwvelando/mf-returns/internal/config"
	"github.com/iwvelando/mf-returns/internal/navstore"
	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/iwvelando/mf-returns/pkg/finance"
	"github.com/iwvelando/mf-returns/pkg/navseries"
	"github.com/iwvelando/mf-returns/pkg/output"
	"github.com/iwvelando/mf-returns/pkg/validation"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand once global flags are parsed.
type app struct {
	conf         *config.Configuration
	logger       *zap.Logger
	calc         *finance.Calculator
	outputFormat string
	outputFile   string
	stdout       io.Writer
}

func (a *app) init(configLocation, logLevel, outputFormat, outputFile string) error {
	conf, err := loadConfiguration(configLocation)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return err
	}

	// CLI override takes precedence over config
	if outputFormat == "" {
		outputFormat = conf.Output.Format
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFile == "" {
		outputFile = conf.Output.File
	}
	if err := validation.ValidateOutputTarget(outputFormat, outputFile); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	a.conf = conf
	a.logger = logger
	a.calc = finance.NewCalculator(logger, conf.Solver)
	a.outputFormat = outputFormat
	a.outputFile = outputFile
	return nil
}

// loadConfiguration reads the config file, falling back to the built-in
// defaults when the default file is absent.
func loadConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && path == constants.DefaultConfigFile {
		return config.DefaultConfiguration()
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

func (a *app) analyzer() *analysis.Analyzer {
	return analysis.NewAnalyzer(a.logger, a.calc, a.conf.Batch.Concurrency)
}

func (a *app) store() *navstore.Store {
	// The CLI reads each scheme once, so cached series never expire.
	return navstore.New(a.logger, a.conf.DataDir, 0)
}

// loadSeries reads a history document from file, or the scheme's history
// from the data directory when file is empty.
func (a *app) loadSeries(file, scheme string) (navseries.SchemeMeta, *navseries.MonthlySeries, error) {
	if file == "" {
		if scheme == "" {
			return navseries.SchemeMeta{}, nil, errors.New("a -history file or -scheme code is required")
		}
		entry, err := a.store().Monthly(scheme)
		if err != nil {
			return navseries.SchemeMeta{}, nil, err
		}
		return entry.Meta, entry.Series, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return navseries.SchemeMeta{}, nil, fmt.Errorf("failed to open NAV history: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	history, err := navseries.DecodeHistory(f)
	if err != nil {
		return navseries.SchemeMeta{}, nil, fmt.Errorf("%s: %w", file, err)
	}
	series, err := history.Monthly()
	if err != nil {
		return navseries.SchemeMeta{}, nil, fmt.Errorf("%s: %w", file, err)
	}
	return history.Meta, series, nil
}

func (a *app) write(reports []analysis.Report) (err error) {
	w := a.stdout
	if a.outputFile != "" && a.outputFormat != constants.OutputFormatXLSX {
		f, createErr := os.Create(a.outputFile)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		w = f
	}
	return output.Write(w, a.outputFormat, a.outputFile, reports)
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*s = append(*s, v)
		}
	}
	return nil
}
