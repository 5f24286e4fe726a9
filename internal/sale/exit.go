package sale

import (
	"fmt"
	"math"
	"time"

	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// ExitResult is the full pricing of a sale at the end of a given year.
type ExitResult struct {
	Year                    int
	HoldingYears            int
	ResalePrice             float64
	NetSellingPrice         float64
	GrossGain               float64
	IncomeTax               float64
	SocialCharges           float64
	CapitalGainTax          float64
	OutstandingDebt         float64
	SaleBalance             float64
	CumulativeCashFlow      float64
	TotalGain               float64
	AccumulatedDepreciation float64
}

// ComputeExit prices a sale of the property at the end of the given year
// under the given regime. cumulativeCashFlow is the net cash flow
// accumulated over the holding period up to and including the sale year;
// accumulatedDepreciation is the depreciation actually deducted under the
// regime, which drives the furnished recapture rule.
func ComputeExit(logger *zap.Logger, p *config.Property, year int, regime tax.Regime, cumulativeCashFlow, accumulatedDepreciation float64) (ExitResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if year < p.StartYear() {
		return ExitResult{}, fmt.Errorf("sale year %d precedes the holding period start %d", year, p.StartYear())
	}

	holdingYears := year - p.StartYear()
	result := ExitResult{
		Year:                    year,
		HoldingYears:            holdingYears,
		CumulativeCashFlow:      cumulativeCashFlow,
		AccumulatedDepreciation: accumulatedDepreciation,
	}

	growth := math.Pow(1+p.Sale.AnnualIncreaseRate/constants.PercentageMultiplier, float64(holdingYears))
	result.ResalePrice = p.PurchasePrice * growth
	result.NetSellingPrice = result.ResalePrice - p.Sale.AgencyFee
	result.GrossGain = result.NetSellingPrice - (p.PurchasePrice + p.AcquisitionFees + p.Sale.NonDeductedWorks)

	if result.GrossGain > 0 {
		result.IncomeTax, result.SocialCharges = TaxOnGain(p, regime, result.GrossGain, holdingYears, accumulatedDepreciation)
		result.CapitalGainTax = result.IncomeTax + result.SocialCharges
	}

	saleDate := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	balance, err := p.OutstandingBalanceAt(logger, saleDate)
	if err != nil {
		return ExitResult{}, err
	}
	result.OutstandingDebt = balance + p.Sale.EarlyRepaymentPenalty
	result.SaleBalance = result.NetSellingPrice - result.OutstandingDebt
	result.TotalGain = cumulativeCashFlow + result.SaleBalance - result.CapitalGainTax - p.DownPayment

	logger.Debug("priced exit",
		zap.String("op", "sale.ComputeExit"),
		zap.Int("year", year),
		zap.String("regime", regime.String()),
		zap.Float64("grossGain", result.GrossGain),
		zap.Float64("capitalGainTax", result.CapitalGainTax),
		zap.Float64("totalGain", result.TotalGain),
	)

	return result, nil
}

// TaxOnGain returns the income-tax and social-charges components of the
// capital-gains tax. Furnished regimes that deducted depreciation recapture
// it as a short-term portion taxed at the marginal business rate; a
// professional landlord selling within two years is taxed entirely at the
// business rate.
func TaxOnGain(p *config.Property, regime tax.Regime, grossGain float64, holdingYears int, accumulatedDepreciation float64) (incomeTax, socialCharges float64) {
	if p.Tax.LMP && holdingYears <= constants.LMPShortHoldingYears {
		return mathutil.ApplyPercentage(grossGain, p.Tax.MarginalRate), 0
	}

	longTermGain := grossGain
	if regime.Furnished() && regime.Real() && accumulatedDepreciation > 0 {
		shortTermGain := mathutil.Min(accumulatedDepreciation, grossGain)
		incomeTax = mathutil.ApplyPercentage(shortTermGain, p.Tax.MarginalRate)
		longTermGain = grossGain - shortTermGain
	}

	incomeDiscount := IncomeTaxDiscount(holdingYears)
	socialDiscount := SocialChargesDiscount(holdingYears)
	incomeTax += longTermGain * (1 - incomeDiscount) * constants.CapitalGainsIncomeTaxRate
	socialCharges = longTermGain * (1 - socialDiscount) * constants.CapitalGainsSocialRate
	return incomeTax, socialCharges
}
