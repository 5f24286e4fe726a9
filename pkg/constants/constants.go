// Package constants provides the shared rule constants for rentabimmo-engine.
// Every legal parameter lives here rather than inline in the calculators so
// that a rule change (new finance act, new social-charges rate) is a one-line
// edit.
package constants

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// BalanceEpsilon is the largest residual balance tolerated on the final
	// row of an amortization schedule.
	BalanceEpsilon = 0.01
)

// Rental income tax regimes
const (
	// MicroFoncierAbatement is the flat abatement applied to unfurnished
	// rental revenue under the micro-foncier regime.
	MicroFoncierAbatement = 0.30

	// MicroBICAbatement is the flat abatement applied to furnished rental
	// revenue under the micro-BIC regime.
	MicroBICAbatement = 0.50

	// DefaultDeficitCeiling is the annual cap on the portion of a foncier
	// deficit originating from non-financial charges.
	DefaultDeficitCeiling = 10700.0
)

// Capital gains taxation
const (
	// CapitalGainsIncomeTaxRate is the flat income-tax rate on taxable
	// capital gains.
	CapitalGainsIncomeTaxRate = 0.19

	// CapitalGainsSocialRate is the social-charges rate on taxable capital
	// gains.
	CapitalGainsSocialRate = 0.172

	// HoldingDiscountFloorYears is the holding duration below or at which no
	// discount applies.
	HoldingDiscountFloorYears = 5

	// IncomeDiscountRatePerYear is the income-tax discount earned per holding
	// year beyond the floor.
	IncomeDiscountRatePerYear = 0.06

	// IncomeDiscountFullYears is the holding duration beyond which the
	// income-tax discount is total.
	IncomeDiscountFullYears = 21

	// SocialDiscountRatePerYear is the social-charges discount earned per
	// holding year between the floor and the income full-discount point.
	SocialDiscountRatePerYear = 0.0165

	// SocialDiscountLateBase is the accumulated social-charges discount at 22
	// years of holding.
	SocialDiscountLateBase = 0.28

	// SocialDiscountLateRatePerYear is the social-charges discount earned per
	// holding year from 23 to 30 years.
	SocialDiscountLateRatePerYear = 0.09

	// SocialDiscountFullYears is the holding duration beyond which the
	// social-charges discount is total.
	SocialDiscountFullYears = 30

	// LMPShortHoldingYears is the holding duration at or below which a
	// professional furnished landlord is taxed entirely at the business rate.
	LMPShortHoldingYears = 2
)

// Corporate (IS) taxation defaults
const (
	// DefaultReducedISRate is the reduced corporate tax rate (percent).
	DefaultReducedISRate = 15.0

	// DefaultStandardISRate is the standard corporate tax rate (percent).
	DefaultStandardISRate = 25.0

	// DefaultReducedISThreshold is the upper bound of the taxable income
	// bracket taxed at the reduced rate.
	DefaultReducedISThreshold = 42500.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)
