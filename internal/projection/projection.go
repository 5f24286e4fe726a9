// Package projection folds the per-year engines into a cash-flow series
// across the holding period, for a single property under one regime or for
// a corporate vehicle.
package projection

import (
	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"github.com/Rudyyyy/rentabimmo-engine/internal/sci"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
	"go.uber.org/zap"
)

// YearSnapshot is one year of a property projection.
type YearSnapshot struct {
	Year               int
	Coverage           float64
	Revenue            float64
	OperatingExpenses  float64
	LoanPayments       float64
	LoanInsurance      float64
	Tax                float64
	NetCashFlow        float64
	CumulativeCashFlow float64
	TaxResult          tax.Result
}

// Run projects the property's cash flow year by year under one regime,
// carrying the regime's deficit across years.
func Run(logger *zap.Logger, p *config.Property, regime tax.Regime) ([]YearSnapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var snapshots []YearSnapshot
	var prior *tax.Result
	cumulative := 0.0

	for year := p.StartYear(); year <= p.EndYear(); year++ {
		taxResult, err := tax.ComputeYear(logger, p, year, regime, prior)
		if err != nil {
			return nil, err
		}

		figures, err := p.LoanInfoForYear(logger, year)
		if err != nil {
			return nil, err
		}

		coverage := p.Coverage(year)
		record := p.ExpensesFor(year)
		// Cash out includes the non-deductible charges the tax engines
		// ignore.
		operating := (record.PropertyTax +
			record.CondoFees +
			record.OwnerInsurance +
			record.ManagementFees +
			record.UnpaidRentInsurance +
			record.Repairs +
			record.OtherDeductible +
			record.OtherNonDeductible) * coverage

		revenue := tax.Revenue(p, year, regime.Furnished())
		net := revenue - operating - figures.Payment - figures.Insurance - taxResult.TotalTax
		cumulative += net

		snapshots = append(snapshots, YearSnapshot{
			Year:               year,
			Coverage:           coverage,
			Revenue:            revenue,
			OperatingExpenses:  operating,
			LoanPayments:       figures.Payment,
			LoanInsurance:      figures.Insurance,
			Tax:                taxResult.TotalTax,
			NetCashFlow:        net,
			CumulativeCashFlow: cumulative,
			TaxResult:          taxResult,
		})
		prior = &snapshots[len(snapshots)-1].TaxResult
	}

	return snapshots, nil
}

// CumulativeCashFlowAt returns the cumulative net cash flow at the end of
// the given year, or the final value when the year is past the series.
func CumulativeCashFlowAt(snapshots []YearSnapshot, year int) float64 {
	cumulative := 0.0
	for _, snapshot := range snapshots {
		if snapshot.Year > year {
			break
		}
		cumulative = snapshot.CumulativeCashFlow
	}
	return cumulative
}

// AccumulatedDepreciationAt sums the depreciation deducted through the given
// year.
func AccumulatedDepreciationAt(snapshots []YearSnapshot, year int) float64 {
	total := 0.0
	for _, snapshot := range snapshots {
		if snapshot.Year > year {
			break
		}
		total += snapshot.TaxResult.AmortizationUsed
	}
	return total
}

// SCIYearSnapshot is one year of a corporate vehicle projection.
type SCIYearSnapshot struct {
	Year               int
	Revenue            float64
	Expenses           float64
	LoanPayments       float64
	LoanInsurance      float64
	TotalIS            float64
	NetCashFlow        float64
	CumulativeCashFlow float64
	TaxResult          sci.TaxResult
}

// RunSCI projects the vehicle-level cash flow: consolidated revenue less
// member expenses, loan service, and the consolidated IS.
func RunSCI(logger *zap.Logger, vehicle *config.SCI, members []*config.Property) ([]SCIYearSnapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	first, last, ok := sci.Horizon(members)
	if !ok {
		return nil, nil
	}

	var snapshots []SCIYearSnapshot
	var prior *sci.TaxResult
	cumulative := 0.0

	for year := first; year <= last; year++ {
		taxResult, err := sci.ResultsForYear(logger, vehicle, members, year, prior)
		if err != nil {
			return nil, err
		}

		var payments, insurance, cashExpenses float64
		for _, p := range members {
			figures, err := p.LoanInfoForYear(logger, year)
			if err != nil {
				return nil, err
			}
			payments += figures.Payment
			insurance += figures.Insurance
			record := p.ExpensesFor(year)
			cashExpenses += (record.PropertyTax +
				record.CondoFees +
				record.OwnerInsurance +
				record.ManagementFees +
				record.UnpaidRentInsurance +
				record.Repairs +
				record.OtherDeductible +
				record.OtherNonDeductible) * p.Coverage(year)
		}

		net := taxResult.TotalRevenue - cashExpenses - payments - insurance - taxResult.TotalIS
		cumulative += net

		snapshots = append(snapshots, SCIYearSnapshot{
			Year:               year,
			Revenue:            taxResult.TotalRevenue,
			Expenses:           cashExpenses,
			LoanPayments:       payments,
			LoanInsurance:      insurance,
			TotalIS:            taxResult.TotalIS,
			NetCashFlow:        net,
			CumulativeCashFlow: cumulative,
			TaxResult:          taxResult,
		})
		prior = &snapshots[len(snapshots)-1].TaxResult
	}

	return snapshots, nil
}
