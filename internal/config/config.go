// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/iwvelando/mf-returns/pkg/irr"
	"github.com/iwvelando/mf-returns/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mf-returns.
type Configuration struct {
	Logging  LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output   OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Solver   irr.Options   `mapstructure:"solver" yaml:"solver,omitempty"`
	Batch    BatchConfig   `mapstructure:"batch" yaml:"batch,omitempty"`
	DataDir  string        `mapstructure:"dataDir" yaml:"dataDir,omitempty"`
	Defaults Defaults      `mapstructure:"defaults" yaml:"defaults,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json, xlsx
	File   string `mapstructure:"file" yaml:"file,omitempty"`     // required for xlsx
}

// BatchConfig bounds concurrent analyses.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency,omitempty"`
}

// Defaults holds the investment parameters used when a request or flag does
// not provide its own.
type Defaults struct {
	MonthlySIP       float64 `mapstructure:"monthlySip" yaml:"monthlySip,omitempty"`
	InvestmentMonths int     `mapstructure:"investmentMonths" yaml:"investmentMonths,omitempty"`
	HoldingMonths    int     `mapstructure:"holdingMonths" yaml:"holdingMonths,omitempty"`
	LumpsumAmount    float64 `mapstructure:"lumpsumAmount" yaml:"lumpsumAmount,omitempty"`
	PurchaseNAV      float64 `mapstructure:"purchaseNav" yaml:"purchaseNav,omitempty"`
	CurrentNAV       float64 `mapstructure:"currentNav" yaml:"currentNav,omitempty"`
	HoldingYears     float64 `mapstructure:"holdingYears" yaml:"holdingYears,omitempty"`
	FundType         string  `mapstructure:"fundType" yaml:"fundType,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.file", "")
	v.SetDefault("solver.tolerance", constants.DefaultIRRTolerance)
	v.SetDefault("solver.maxIterations", constants.DefaultIRRMaxIterations)
	v.SetDefault("batch.concurrency", constants.DefaultBatchConcurrency)
	v.SetDefault("dataDir", constants.DefaultDataDir)
	v.SetDefault("defaults.monthlySip", 10000.0)
	v.SetDefault("defaults.investmentMonths", 60)
	v.SetDefault("defaults.holdingMonths", 60)
	v.SetDefault("defaults.lumpsumAmount", 100000.0)
	v.SetDefault("defaults.purchaseNav", 45.50)
	v.SetDefault("defaults.currentNav", 68.75)
	v.SetDefault("defaults.holdingYears", 3.0)
	v.SetDefault("defaults.fundType", constants.FundTypeEquity)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with MFR_ override
// file values, e.g. MFR_DEFAULTS_MONTHLYSIP.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// DefaultConfiguration returns the built-in defaults with environment
// overrides applied, for use when no config file exists.
func DefaultConfiguration() (*Configuration, error) {
	return decode(newViper())
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	d := c.Defaults
	if d.MonthlySIP <= 0 {
		warnings = append(warnings, fmt.Sprintf("defaults.monthlySip is %v; SIP returns will not be computed", d.MonthlySIP))
	}
	for _, w := range validation.ValidateHoldingPeriod(d.InvestmentMonths, d.HoldingMonths) {
		warnings = append(warnings, "defaults: "+w)
	}
	if w := validation.ValidateLumpsum(d.LumpsumAmount, d.PurchaseNAV, d.HoldingYears); w != "" {
		warnings = append(warnings, "defaults: "+w)
	}
	if w := validation.ValidateFundType(d.FundType); w != "" {
		warnings = append(warnings, "defaults: "+w)
	}
	if c.Solver.Tolerance <= 0 || c.Solver.MaxIterations <= 0 {
		warnings = append(warnings, "solver tolerance and maxIterations must be positive; defaults will be used")
	}
	if c.Batch.Concurrency <= 0 {
		warnings = append(warnings, fmt.Sprintf("batch.concurrency is %d; using %d", c.Batch.Concurrency, constants.DefaultBatchConcurrency))
	}

	return warnings
}
