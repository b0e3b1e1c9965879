// Package constants provides shared constants for the mf-returns application.
package constants

// NAVDateLayout is the day-month-year format used by fund NAV histories.
const NAVDateLayout = "02-01-2006"

// NAVDateUnpaddedLayout accepts NAV dates without zero-padded day or month.
const NAVDateUnpaddedLayout = "2-1-2006"

// MonthKeyLayout is the year-month format used to label monthly NAV entries.
const MonthKeyLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyPlaces is the number of decimal places reported for money
	CurrencyPlaces = 2

	// UnitPlaces is the number of decimal places reported for fund units
	UnitPlaces = 3

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultCurrency is the ISO code used when rendering amounts
	DefaultCurrency = "INR"
)

// IRR solver defaults
const (
	// DefaultIRRTolerance is the NPV magnitude under which a rate is accepted
	DefaultIRRTolerance = 1e-6

	// DefaultIRRMaxIterations bounds the bisection loop
	DefaultIRRMaxIterations = 200

	// IRRLowerBound is the lowest periodic rate tried (just above -100%)
	IRRLowerBound = -0.9999

	// IRRUpperBound is the initial upper bracket
	IRRUpperBound = 1.0

	// IRRBracketExpansions is the number of times the upper bracket is widened
	IRRBracketExpansions = 10
)

// Equity capital gains rules
const (
	// FundTypeEquity is the only fund type with computed capital gains tax
	FundTypeEquity = "equity"

	// LongTermHoldingMonths is the holding period at which gains become long term
	LongTermHoldingMonths = 12

	// ShortTermEquityRate applies to gains held under LongTermHoldingMonths
	ShortTermEquityRate = 0.20

	// LongTermEquityRate applies to long term gains above the exemption
	LongTermEquityRate = 0.125

	// LongTermEquityExemption is the long term gain exempt from tax
	LongTermEquityExemption = 125000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatXLSX is the spreadsheet output format
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of config keys
	EnvPrefix = "MFR"

	// DefaultDataDir holds NAV history documents named <schemeCode>.json
	DefaultDataDir = "data"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (1 MB)
	DefaultMaxBodySizeBytes int64 = 1024 * 1024

	// DefaultCacheTTLSeconds is how long aggregated monthly series stay cached
	DefaultCacheTTLSeconds = 600

	// DefaultBatchConcurrency bounds concurrent analyses in a batch
	DefaultBatchConcurrency = 4

	// DefaultHistoryDays is the number of NAV entries returned when unspecified
	DefaultHistoryDays = 30
)
