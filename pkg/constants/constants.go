// Package constants provides shared constants for the roi-forecast application.
package constants

// Projection model constants
const (
	// ImplementationYearBenefitShare is the fraction of steady-state benefits
	// realized during the rollout year (year 0).
	ImplementationYearBenefitShare = 0.15

	// RampBase and RampStep define the adoption curve min(RampBase + RampStep*year, 1).
	RampBase = 0.6
	RampStep = 0.15

	// AnnualGrowthRate is the linear organic growth applied to the benefit base
	// after the first post-implementation year.
	AnnualGrowthRate = 0.03

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Default run parameters applied when a profile is used without overrides.
const (
	// DefaultDiscountRate is the annual cost of capital used for NPV.
	DefaultDiscountRate = 0.08

	// DefaultTimeHorizon is the number of post-implementation years analyzed.
	DefaultTimeHorizon = 5

	// DefaultProfileKey is the catalog entry selected when none is given.
	DefaultProfileKey = "order-management"
)

// Impact category display weights. Each category receives weight/ImpactWeightDivisor
// of a year's operational benefit.
var ImpactCategoryWeights = [3]float64{1.2, 1.0, 0.8}

// ImpactWeightDivisor normalizes ImpactCategoryWeights so they sum to one.
const ImpactWeightDivisor = 3.0

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the indented JSON output format
	OutputFormatJSON = "json"

	// OutputFormatPDF is the PDF report format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

