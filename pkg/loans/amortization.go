// Package loans builds month-by-month amortization schedules for financed
// acquisitions, including the interest-only and full deferral variants used
// by French real-estate loans.
package loans

import (
	"fmt"
	"math"
	"time"

	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
	"go.uber.org/zap"
)

// DeferralKind selects how the grace period at the start of a loan behaves.
type DeferralKind string

const (
	// DeferralNone amortizes from the first month.
	DeferralNone DeferralKind = "none"
	// DeferralPartial defers principal only; interest is paid monthly on the
	// full principal during the grace period.
	DeferralPartial DeferralKind = "partial"
	// DeferralTotal defers both principal and interest payment; interest
	// still accrues and is reported as a lump sum.
	DeferralTotal DeferralKind = "total"
)

// Terms holds the immutable inputs of a loan.
type Terms struct {
	Principal        float64
	AnnualRate       float64 // percent
	Years            int
	Deferral         DeferralKind
	DeferralMonths   int
	InsuranceRate    float64 // annual percent, applied to the principal
	DisbursementDate time.Time
}

// Row is one month of the repayment schedule.
type Row struct {
	Date             time.Time
	Principal        float64
	Interest         float64
	Payment          float64
	RemainingBalance float64
}

// Schedule is the ordered month-by-month repayment plan for a loan. Interest
// accrued during a total deferral is not paid monthly and not capitalized
// into the principal; it is surfaced once in DeferredInterest.
type Schedule struct {
	Rows             []Row
	DeferredInterest float64
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard annuity formula over the amortizing months.
func CalculateMonthlyPayment(principal, annualRate float64, amortizingMonths int) float64 {
	if amortizingMonths <= 0 {
		return 0
	}
	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(amortizingMonths)
	}

	periodicRate := annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+periodicRate, float64(amortizingMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingBalance, annualRate float64) float64 {
	return remainingBalance * annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// MonthlyInsurance returns the flat monthly insurance premium, computed on
// the original principal for the life of the loan.
func MonthlyInsurance(terms Terms) float64 {
	return terms.Principal * terms.InsuranceRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Validate checks the terms for inputs that would corrupt a schedule. A
// non-positive principal or duration is not an error; it yields an empty
// schedule instead.
func (terms Terms) Validate() error {
	if terms.AnnualRate < 0 {
		return fmt.Errorf("loan annual rate cannot be negative, got %.4f", terms.AnnualRate)
	}
	if terms.InsuranceRate < 0 {
		return fmt.Errorf("loan insurance rate cannot be negative, got %.4f", terms.InsuranceRate)
	}
	if terms.DeferralMonths < 0 {
		return fmt.Errorf("loan deferral months cannot be negative, got %d", terms.DeferralMonths)
	}
	switch terms.Deferral {
	case "", DeferralNone, DeferralPartial, DeferralTotal:
	default:
		return fmt.Errorf("unknown deferral kind %q", terms.Deferral)
	}
	if terms.Deferral != DeferralNone && terms.Deferral != "" &&
		terms.Years > 0 && terms.DeferralMonths >= terms.Years*constants.MonthsPerYear {
		return fmt.Errorf("deferral of %d months leaves no amortizing months on a %d-year loan",
			terms.DeferralMonths, terms.Years)
	}
	return nil
}

// BuildSchedule produces the full amortization schedule for the given terms.
// Degenerate inputs (principal or duration not positive) yield an empty
// schedule with no deferred interest.
func BuildSchedule(logger *zap.Logger, terms Terms) (Schedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := terms.Validate(); err != nil {
		return Schedule{}, err
	}

	if terms.Principal <= 0 || terms.Years <= 0 {
		logger.Debug("degenerate loan terms, returning empty schedule",
			zap.String("op", "loans.BuildSchedule"),
			zap.Float64("principal", terms.Principal),
			zap.Int("years", terms.Years),
		)
		return Schedule{}, nil
	}

	deferralMonths := 0
	if terms.Deferral == DeferralPartial || terms.Deferral == DeferralTotal {
		deferralMonths = terms.DeferralMonths
	}

	totalMonths := terms.Years * constants.MonthsPerYear
	amortizingMonths := totalMonths - deferralMonths
	payment := CalculateMonthlyPayment(terms.Principal, terms.AnnualRate, amortizingMonths)

	schedule := Schedule{Rows: make([]Row, 0, totalMonths)}
	balance := terms.Principal

	for month := 1; month <= totalMonths; month++ {
		date := terms.DisbursementDate.AddDate(0, month-1, 0)
		interest := CalculateInterestPayment(balance, terms.AnnualRate)

		if month <= deferralMonths {
			row := Row{Date: date, Interest: interest, RemainingBalance: balance}
			if terms.Deferral == DeferralPartial {
				row.Payment = interest
			} else {
				// Accrued but unpaid; reported as a lump sum, never
				// compounded into the balance.
				schedule.DeferredInterest += interest
			}
			schedule.Rows = append(schedule.Rows, row)
			continue
		}

		principalPart := payment - interest
		rowPayment := payment
		if month == totalMonths {
			// Absorb the accumulated float drift so the loan closes at
			// exactly zero.
			principalPart = balance
			rowPayment = principalPart + interest
		}
		balance -= principalPart
		if math.Abs(balance) <= constants.BalanceEpsilon {
			balance = 0
		}

		schedule.Rows = append(schedule.Rows, Row{
			Date:             date,
			Principal:        principalPart,
			Interest:         interest,
			Payment:          rowPayment,
			RemainingBalance: balance,
		})
	}

	logger.Debug("built amortization schedule",
		zap.String("op", "loans.BuildSchedule"),
		zap.Int("rows", len(schedule.Rows)),
		zap.Float64("monthlyPayment", payment),
		zap.Float64("deferredInterest", schedule.DeferredInterest),
	)

	return schedule, nil
}

// BalanceAt returns the remaining balance of the loan at the given date: the
// balance after the last payment dated on or before it. Before the first row
// the balance is the full principal of the schedule; after the last row it
// is zero.
func (s Schedule) BalanceAt(date time.Time) float64 {
	if len(s.Rows) == 0 {
		return 0
	}
	if date.Before(s.Rows[0].Date) {
		return s.Rows[0].RemainingBalance + s.Rows[0].Principal
	}
	balance := s.Rows[0].RemainingBalance
	for _, row := range s.Rows {
		if row.Date.After(date) {
			break
		}
		balance = row.RemainingBalance
	}
	return balance
}

// PaymentsForYear sums the payments of the rows falling in the given
// calendar year.
func (s Schedule) PaymentsForYear(year int) float64 {
	total := 0.0
	for _, row := range s.Rows {
		if row.Date.Year() == year {
			total += row.Payment
		}
	}
	return total
}

// InterestForYear sums the interest portions of the rows falling in the
// given calendar year, whether paid or accrued under a deferral.
func (s Schedule) InterestForYear(year int) float64 {
	total := 0.0
	for _, row := range s.Rows {
		if row.Date.Year() == year {
			total += row.Interest
		}
	}
	return total
}

// MonthsInYear counts the schedule rows falling in the given calendar year.
func (s Schedule) MonthsInYear(year int) int {
	count := 0
	for _, row := range s.Rows {
		if row.Date.Year() == year {
			count++
		}
	}
	return count
}
