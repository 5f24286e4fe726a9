package tax

import (
	"fmt"

	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// Result holds the outcome of one regime for one year. DeficitCarried is the
// deficit handed to the following year of the same regime; results of
// different regimes never cross-influence each other.
type Result struct {
	Regime           Regime
	Year             int
	Revenue          float64
	TaxableIncome    float64
	IncomeTax        float64
	SocialCharges    float64
	TotalTax         float64
	NetIncome        float64
	DeficitCarried   float64
	AmortizationUsed float64
}

// ComputeYear computes the result of one regime for one year. A nil prior
// result is the documented base case of the recurrence: the property's
// declared prior deficit is carried in, or zero.
func ComputeYear(logger *zap.Logger, p *config.Property, year int, regime Regime, prior *Result) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	carriedIn := p.Tax.PriorDeficit
	if prior != nil {
		if prior.Regime != regime {
			return Result{}, fmt.Errorf("prior result is for regime %s, want %s", prior.Regime, regime)
		}
		carriedIn = prior.DeficitCarried
	}

	result := Result{Regime: regime, Year: year}
	result.Revenue = Revenue(p, year, regime.Furnished())

	var err error
	switch regime {
	case MicroFoncier:
		result.TaxableIncome = result.Revenue * (1 - constants.MicroFoncierAbatement)
	case MicroBIC:
		result.TaxableIncome = result.Revenue * (1 - constants.MicroBICAbatement)
	case ReelFoncier:
		err = computeReelFoncier(logger, p, year, carriedIn, &result)
	case ReelBIC:
		err = computeReelBIC(logger, p, year, carriedIn, &result)
	default:
		err = fmt.Errorf("unknown regime %d", regime)
	}
	if err != nil {
		return Result{}, err
	}

	if result.TaxableIncome > 0 {
		result.IncomeTax = mathutil.ApplyPercentage(result.TaxableIncome, p.Tax.MarginalRate)
		result.SocialCharges = mathutil.ApplyPercentage(result.TaxableIncome, p.Tax.SocialChargesRate)
	}
	result.TotalTax = result.IncomeTax + result.SocialCharges
	result.NetIncome = result.Revenue - result.TotalTax

	logger.Debug("computed regime year",
		zap.String("op", "tax.ComputeYear"),
		zap.String("regime", regime.String()),
		zap.Int("year", year),
		zap.Float64("revenue", result.Revenue),
		zap.Float64("taxable", result.TaxableIncome),
		zap.Float64("deficitCarried", result.DeficitCarried),
	)

	return result, nil
}

// computeReelFoncier applies the real-cost unfurnished rules. A negative
// result splits into a financial portion (interest and loan insurance),
// which carries forward without limit, and an other-charges portion, capped
// by the annual ceiling with the excess carried forward.
func computeReelFoncier(logger *zap.Logger, p *config.Property, year int, carriedIn float64, result *Result) error {
	total, financial, err := DeductibleExpenses(logger, p, year)
	if err != nil {
		return err
	}

	ceiling := p.Tax.GetDeficitCeiling()
	net := result.Revenue - total

	if net >= 0 {
		used := mathutil.Min(net, mathutil.Min(carriedIn, ceiling))
		result.TaxableIncome = net - used
		result.DeficitCarried = carriedIn - used
		return nil
	}

	deficit := -net
	other := total - financial
	var financialPart, otherPart float64
	if result.Revenue >= other {
		// Revenue covers the non-financial charges; the whole deficit stems
		// from financial charges.
		financialPart = deficit
	} else {
		otherPart = other - result.Revenue
		financialPart = financial
	}

	result.TaxableIncome = 0
	result.DeficitCarried = carriedIn + financialPart + mathutil.Max(0, otherPart-ceiling)
	return nil
}

// computeReelBIC applies the real-cost furnished rules. Depreciation may
// only bring a positive pre-amortization result down to zero; it never
// creates a deficit, and unused depreciation is dropped. Operating deficits
// carry forward without ceiling.
func computeReelBIC(logger *zap.Logger, p *config.Property, year int, carriedIn float64, result *Result) error {
	total, _, err := DeductibleExpenses(logger, p, year)
	if err != nil {
		return err
	}

	preAmortization := result.Revenue - total

	if preAmortization < 0 {
		result.TaxableIncome = 0
		result.DeficitCarried = carriedIn - preAmortization
		return nil
	}

	used := mathutil.Min(preAmortization, carriedIn)
	afterDeficit := preAmortization - used

	amortization := AmortizationForYear(p, year)
	amortizationUsed := mathutil.Min(afterDeficit, amortization)

	result.TaxableIncome = afterDeficit - amortizationUsed
	result.AmortizationUsed = amortizationUsed
	result.DeficitCarried = carriedIn - used
	return nil
}

// AllRegimesForYear computes every regime's result for one year. The priors
// map may be nil or partially filled; a missing prior is the recurrence base
// case.
func AllRegimesForYear(logger *zap.Logger, p *config.Property, year int, priors map[Regime]*Result) (map[Regime]Result, error) {
	results := make(map[Regime]Result, len(AllRegimes))
	for _, regime := range AllRegimes {
		var prior *Result
		if priors != nil {
			prior = priors[regime]
		}
		result, err := ComputeYear(logger, p, year, regime, prior)
		if err != nil {
			return nil, err
		}
		results[regime] = result
	}
	return results, nil
}

// Sequence folds ComputeYear over the full holding period for one regime,
// carrying each year's deficit into the next.
func Sequence(logger *zap.Logger, p *config.Property, regime Regime) ([]Result, error) {
	var results []Result
	var prior *Result
	for year := p.StartYear(); year <= p.EndYear(); year++ {
		result, err := ComputeYear(logger, p, year, regime, prior)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
		prior = &results[len(results)-1]
	}
	return results, nil
}

// AccumulatedDepreciation sums the depreciation actually deducted across a
// sequence of results; the exit pricer uses it for the furnished recapture
// rule.
func AccumulatedDepreciation(results []Result) float64 {
	total := 0.0
	for _, result := range results {
		total += result.AmortizationUsed
	}
	return total
}
