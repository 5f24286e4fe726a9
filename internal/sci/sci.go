// Package sci consolidates the taxation of properties held through a
// corporate vehicle: revenues, expenses, and amortization are aggregated per
// year, taxed under the IS brackets, and the liability is allocated back to
// each member property by value-weighted prorata.
package sci

import (
	"fmt"

	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// PropertyContribution is one member property's share of a consolidated
// year.
type PropertyContribution struct {
	Revenue              float64
	Expenses             float64
	Amortization         float64
	ContributionToResult float64
	ProrataWeight        float64
	PropertyValue        float64
	AllocatedIS          float64
}

// TaxResult is the consolidated taxation of one corporate vehicle for one
// year.
type TaxResult struct {
	Year                int
	TotalRevenue        float64
	TotalExpenses       float64
	TotalAmortization   float64
	ResultBeforeDeficit float64
	DeficitUsed         float64
	DeficitGenerated    float64
	DeficitCarried      float64
	TaxableIncome       float64
	ReducedRateIS       float64
	StandardRateIS      float64
	TotalIS             float64
	Contributions       map[string]PropertyContribution
}

// ResultsForYear consolidates one year for the vehicle. A nil prior result
// is the recurrence base case: the vehicle's declared prior deficit is
// carried in. The corporate deficit carries forward fully, with no ceiling.
func ResultsForYear(logger *zap.Logger, sci *config.SCI, members []*config.Property, year int, prior *TaxResult) (TaxResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	carriedIn := sci.PriorDeficit
	if prior != nil {
		if prior.Year != year-1 {
			return TaxResult{}, fmt.Errorf("prior result is for year %d, want %d", prior.Year, year-1)
		}
		carriedIn = prior.DeficitCarried
	}

	result := TaxResult{
		Year:          year,
		Contributions: make(map[string]PropertyContribution, len(members)),
	}

	totalValue := 0.0
	for _, p := range members {
		revenue := tax.Revenue(p, year, sci.Furnished())
		expenses, _, err := tax.DeductibleExpenses(logger, p, year)
		if err != nil {
			return TaxResult{}, err
		}
		amortization := memberAmortization(sci, p, year)

		value := p.Value(sci.PropertyValues)
		if value > 0 {
			totalValue += value
		}

		result.Contributions[p.ID] = PropertyContribution{
			Revenue:              revenue,
			Expenses:             expenses,
			Amortization:         amortization,
			ContributionToResult: revenue - expenses - amortization,
			PropertyValue:        value,
		}
		result.TotalRevenue += revenue
		result.TotalExpenses += expenses
		result.TotalAmortization += amortization
	}

	result.ResultBeforeDeficit = result.TotalRevenue - result.TotalExpenses - result.TotalAmortization

	if result.ResultBeforeDeficit >= 0 {
		result.DeficitUsed = mathutil.Min(result.ResultBeforeDeficit, carriedIn)
		result.TaxableIncome = result.ResultBeforeDeficit - result.DeficitUsed
		result.DeficitCarried = carriedIn - result.DeficitUsed
	} else {
		result.DeficitGenerated = -result.ResultBeforeDeficit
		result.DeficitCarried = carriedIn + result.DeficitGenerated
	}

	if result.TaxableIncome > 0 {
		threshold := sci.GetReducedThreshold()
		reducedBase := mathutil.Min(result.TaxableIncome, threshold)
		standardBase := mathutil.Max(0, result.TaxableIncome-threshold)
		result.ReducedRateIS = mathutil.ApplyPercentage(reducedBase, sci.GetReducedRate())
		result.StandardRateIS = mathutil.ApplyPercentage(standardBase, sci.GetStandardRate())
		result.TotalIS = result.ReducedRateIS + result.StandardRateIS
	}

	for id, contribution := range result.Contributions {
		if totalValue > 0 && contribution.PropertyValue > 0 {
			contribution.ProrataWeight = contribution.PropertyValue / totalValue
			contribution.AllocatedIS = result.TotalIS * contribution.ProrataWeight
		}
		result.Contributions[id] = contribution
	}

	logger.Debug("consolidated SCI year",
		zap.String("op", "sci.ResultsForYear"),
		zap.String("sci", sci.Name),
		zap.Int("year", year),
		zap.Float64("taxable", result.TaxableIncome),
		zap.Float64("totalIS", result.TotalIS),
		zap.Float64("deficitCarried", result.DeficitCarried),
	)

	return result, nil
}

// ResultsAcrossYears folds ResultsForYear over the union of the members'
// holding periods, carrying the consolidated deficit forward.
func ResultsAcrossYears(logger *zap.Logger, sci *config.SCI, members []*config.Property) (map[int]TaxResult, error) {
	first, last, ok := Horizon(members)
	if !ok {
		return map[int]TaxResult{}, nil
	}

	results := make(map[int]TaxResult, last-first+1)
	var prior *TaxResult
	for year := first; year <= last; year++ {
		result, err := ResultsForYear(logger, sci, members, year, prior)
		if err != nil {
			return nil, err
		}
		results[year] = result
		prior = &result
	}
	return results, nil
}

// Horizon returns the first and last calendar years covered by any member.
func Horizon(members []*config.Property) (first, last int, ok bool) {
	for _, p := range members {
		if !ok {
			first, last, ok = p.StartYear(), p.EndYear(), true
			continue
		}
		if p.StartYear() < first {
			first = p.StartYear()
		}
		if p.EndYear() > last {
			last = p.EndYear()
		}
	}
	return first, last, ok
}

// memberAmortization uses the property's own amortization durations,
// substituting the vehicle defaults where the property declares none.
func memberAmortization(sci *config.SCI, p *config.Property, year int) float64 {
	buildingYears := orDefault(p.Tax.BuildingYears, sci.DefaultBuildingYears)
	furnitureYears := orDefault(p.Tax.FurnitureYears, sci.DefaultFurnitureYears)
	worksYears := orDefault(p.Tax.WorksYears, sci.DefaultWorksYears)
	return tax.AmortizationWithDurations(p, year, buildingYears, furnitureYears, worksYears, p.Tax.OtherYears)
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
