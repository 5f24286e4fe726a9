package tax

import (
	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"go.uber.org/zap"
)

// Revenue returns the coverage-adjusted gross revenue recognized for the
// year. Unfurnished recognition counts the bare rent, the regime-specific
// tax benefit, and tenant-recharged charges; furnished recognition counts
// the furnished rent and tenant-recharged charges.
func Revenue(p *config.Property, year int, furnished bool) float64 {
	record := p.ExpensesFor(year)
	coverage := p.Coverage(year)

	if furnished {
		return (record.FurnishedRent + record.TenantRechargedCharges) * coverage
	}
	return (record.Rent + record.TaxBenefit + record.TenantRechargedCharges) * coverage
}

// DeductibleExpenses returns the coverage-adjusted deductible charges of the
// year under a real-cost regime, along with the financial portion (loan
// interest and loan insurance). The financial portion matters because it is
// exempt from the foncier deficit ceiling.
func DeductibleExpenses(logger *zap.Logger, p *config.Property, year int) (total, financial float64, err error) {
	record := p.ExpensesFor(year)
	coverage := p.Coverage(year)

	operating := (record.PropertyTax +
		record.CondoFees +
		record.OwnerInsurance +
		record.ManagementFees +
		record.UnpaidRentInsurance +
		record.Repairs +
		record.OtherDeductible) * coverage

	figures, err := p.LoanInfoForYear(logger, year)
	if err != nil {
		return 0, 0, err
	}
	financial = figures.Interest + figures.Insurance

	return operating + financial, financial, nil
}

// AmortizationForYear computes the depreciation allowance available for the
// year from the property's own amortization durations.
func AmortizationForYear(p *config.Property, year int) float64 {
	t := p.Tax
	return AmortizationWithDurations(p, year,
		t.BuildingYears, t.FurnitureYears, t.WorksYears, t.OtherYears)
}

// AmortizationWithDurations computes the depreciation allowance for the year
// using explicit durations, allowing a corporate vehicle to substitute its
// default durations. Each asset contributes base/duration while the elapsed
// holding years remain inside its amortization window, scaled by coverage.
func AmortizationWithDurations(p *config.Property, year, buildingYears, furnitureYears, worksYears, otherYears int) float64 {
	elapsed := year - p.StartYear()
	coverage := p.Coverage(year)

	total := amortizationComponent(p.Tax.BuildingValue, buildingYears, elapsed)
	total += amortizationComponent(p.Tax.FurnitureValue, furnitureYears, elapsed)
	total += amortizationComponent(p.Tax.WorksValue, worksYears, elapsed)
	total += amortizationComponent(p.Tax.OtherValue, otherYears, elapsed)
	return total * coverage
}

func amortizationComponent(base float64, durationYears, elapsed int) float64 {
	if base <= 0 || durationYears <= 0 {
		return 0
	}
	if elapsed < 0 || elapsed >= durationYears {
		return 0
	}
	return base / float64(durationYears)
}
