// Package sale prices the exit of a holding: projected resale value,
// outstanding debt, and capital-gains tax under the holding-period discount
// schedules.
package sale

import (
	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
)

// IncomeTaxDiscount returns the fraction of a gross capital gain exempt from
// income tax after the given number of holding years. The schedule is
// piecewise linear: nothing through year 5, 6% per year from year 6 to 21,
// total beyond 21 years.
func IncomeTaxDiscount(holdingYears int) float64 {
	if holdingYears <= constants.HoldingDiscountFloorYears {
		return 0
	}
	if holdingYears > constants.IncomeDiscountFullYears {
		return 1
	}
	discount := constants.IncomeDiscountRatePerYear * float64(holdingYears-constants.HoldingDiscountFloorYears)
	if discount > 1 {
		return 1
	}
	return discount
}

// SocialChargesDiscount returns the fraction of a gross capital gain exempt
// from social charges after the given number of holding years: nothing
// through year 5, 1.65% per year from year 6 to 21, then a fixed accumulated
// base plus 9% per year from year 23 to 30, total beyond 30 years.
func SocialChargesDiscount(holdingYears int) float64 {
	if holdingYears <= constants.HoldingDiscountFloorYears {
		return 0
	}
	if holdingYears > constants.SocialDiscountFullYears {
		return 1
	}
	if holdingYears <= constants.IncomeDiscountFullYears {
		return constants.SocialDiscountRatePerYear * float64(holdingYears-constants.HoldingDiscountFloorYears)
	}
	capped := holdingYears
	if capped > constants.SocialDiscountFullYears {
		capped = constants.SocialDiscountFullYears
	}
	discount := constants.SocialDiscountLateBase +
		constants.SocialDiscountLateRatePerYear*float64(capped-constants.IncomeDiscountFullYears-1)
	if discount > 1 {
		return 1
	}
	return discount
}
