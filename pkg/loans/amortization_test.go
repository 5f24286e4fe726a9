package loans

import (
	"math"
	"testing"
	"time"

	"github.com/Rudyyyy/rentabimmo-engine/pkg/datetime"
)

func termsForTest(principal, rate float64, years int) Terms {
	return Terms{
		Principal:        principal,
		AnnualRate:       rate,
		Years:            years,
		Deferral:         DeferralNone,
		DisbursementDate: datetime.MustParseTime(datetime.DateTimeLayout, "2025-01-01"),
	}
}

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRate    float64
		months        int
		expectedRange []float64 // [min, max] expected range
	}{
		{
			name:          "Reference 20-year loan",
			principal:     200000,
			annualRate:    3.0,
			months:        240,
			expectedRange: []float64{1109.00, 1109.20}, // Around 1109.10
		},
		{
			name:          "25-year loan",
			principal:     150000,
			annualRate:    4.0,
			months:        300,
			expectedRange: []float64{790, 795}, // Around 791.76
		},
		{
			name:          "Zero interest loan",
			principal:     120000,
			annualRate:    0.0,
			months:        240,
			expectedRange: []float64{500, 500}, // Exactly 500
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualRate, tt.months)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestBuildScheduleStandard(t *testing.T) {
	schedule, err := BuildSchedule(nil, termsForTest(200000, 3.0, 20))
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	if len(schedule.Rows) != 240 {
		t.Fatalf("expected 240 rows, got %d", len(schedule.Rows))
	}

	first := schedule.Rows[0]
	if math.Abs(first.Interest-500.00) > 0.01 {
		t.Errorf("first-month interest = %.2f, expected 500.00", first.Interest)
	}
	if math.Abs(first.Payment-1109.10) > 0.10 {
		t.Errorf("first-month payment = %.2f, expected about 1109.10", first.Payment)
	}

	last := schedule.Rows[len(schedule.Rows)-1]
	if math.Abs(last.RemainingBalance) > 0.01 {
		t.Errorf("final remaining balance = %.4f, expected within 0.01 of zero", last.RemainingBalance)
	}
	if last.RemainingBalance < 0 {
		t.Errorf("final remaining balance is negative: %.4f", last.RemainingBalance)
	}

	principalSum := 0.0
	for _, row := range schedule.Rows {
		principalSum += row.Principal
	}
	if math.Abs(principalSum-200000) > 0.01 {
		t.Errorf("sum of principal portions = %.4f, expected 200000 within 0.01", principalSum)
	}

	if schedule.DeferredInterest != 0 {
		t.Errorf("deferred interest = %.2f, expected 0 without deferral", schedule.DeferredInterest)
	}
}

func TestBuildScheduleDates(t *testing.T) {
	schedule, err := BuildSchedule(nil, termsForTest(100000, 2.0, 1))
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	expected := datetime.MustParseTime(datetime.DateTimeLayout, "2025-01-01")
	for i, row := range schedule.Rows {
		if !row.Date.Equal(expected) {
			t.Errorf("row %d date = %s, expected %s", i,
				row.Date.Format(datetime.DateTimeLayout), expected.Format(datetime.DateTimeLayout))
		}
		expected = expected.AddDate(0, 1, 0)
	}
}

func TestBuildSchedulePartialDeferral(t *testing.T) {
	terms := termsForTest(200000, 3.0, 20)
	terms.Deferral = DeferralPartial
	terms.DeferralMonths = 12

	schedule, err := BuildSchedule(nil, terms)
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	monthlyInterest := 200000 * 3.0 / 100 / 12
	for i := 0; i < 12; i++ {
		row := schedule.Rows[i]
		if row.Principal != 0 {
			t.Errorf("deferral row %d principal = %.2f, expected 0", i, row.Principal)
		}
		if math.Abs(row.Payment-monthlyInterest) > 0.01 {
			t.Errorf("deferral row %d payment = %.2f, expected interest-only %.2f", i, row.Payment, monthlyInterest)
		}
		if row.RemainingBalance != 200000 {
			t.Errorf("deferral row %d balance = %.2f, expected untouched principal", i, row.RemainingBalance)
		}
	}

	// Amortization restarts over the remaining term on the full principal.
	expectedPayment := CalculateMonthlyPayment(200000, 3.0, 240-12)
	if math.Abs(schedule.Rows[12].Payment-expectedPayment) > 0.01 {
		t.Errorf("first amortizing payment = %.2f, expected %.2f", schedule.Rows[12].Payment, expectedPayment)
	}

	last := schedule.Rows[len(schedule.Rows)-1]
	if math.Abs(last.RemainingBalance) > 0.01 {
		t.Errorf("final remaining balance = %.4f, expected within 0.01 of zero", last.RemainingBalance)
	}
	if schedule.DeferredInterest != 0 {
		t.Errorf("deferred interest = %.2f, expected 0 for partial deferral", schedule.DeferredInterest)
	}
}

func TestBuildScheduleTotalDeferral(t *testing.T) {
	terms := termsForTest(150000, 2.4, 15)
	terms.Deferral = DeferralTotal
	terms.DeferralMonths = 24

	schedule, err := BuildSchedule(nil, terms)
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	accrued := 0.0
	for i := 0; i < 24; i++ {
		row := schedule.Rows[i]
		if row.Principal != 0 {
			t.Errorf("deferral row %d principal = %.2f, expected 0", i, row.Principal)
		}
		if row.Payment != 0 {
			t.Errorf("deferral row %d payment = %.2f, expected 0 under total deferral", i, row.Payment)
		}
		accrued += row.Interest
	}

	if math.Abs(schedule.DeferredInterest-accrued) > 0.001 {
		t.Errorf("deferred interest = %.4f, expected accrued sum %.4f", schedule.DeferredInterest, accrued)
	}

	// The accrual is not capitalized: every deferral month accrues on the
	// original principal.
	expectedMonthly := 150000 * 2.4 / 100 / 12
	if math.Abs(schedule.DeferredInterest-expectedMonthly*24) > 0.001 {
		t.Errorf("deferred interest = %.4f, expected %.4f", schedule.DeferredInterest, expectedMonthly*24)
	}

	// Amortization starts at month 25 on the original principal.
	if schedule.Rows[24].RemainingBalance >= 150000 {
		t.Errorf("first amortizing row should reduce the balance, got %.2f", schedule.Rows[24].RemainingBalance)
	}
	last := schedule.Rows[len(schedule.Rows)-1]
	if math.Abs(last.RemainingBalance) > 0.01 {
		t.Errorf("final remaining balance = %.4f, expected within 0.01 of zero", last.RemainingBalance)
	}
}

func TestBuildScheduleDegenerateInputs(t *testing.T) {
	tests := []struct {
		name  string
		terms Terms
	}{
		{
			name:  "Zero principal",
			terms: termsForTest(0, 3.0, 20),
		},
		{
			name:  "Negative principal",
			terms: termsForTest(-50000, 3.0, 20),
		},
		{
			name:  "Zero duration",
			terms: termsForTest(200000, 3.0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := BuildSchedule(nil, tt.terms)
			if err != nil {
				t.Fatalf("BuildSchedule() unexpected error: %v", err)
			}
			if len(schedule.Rows) != 0 {
				t.Errorf("expected empty schedule, got %d rows", len(schedule.Rows))
			}
			if schedule.DeferredInterest != 0 {
				t.Errorf("deferred interest = %.2f, expected 0", schedule.DeferredInterest)
			}
		})
	}
}

func TestBuildScheduleInvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Terms)
	}{
		{
			name:   "Negative rate",
			mutate: func(terms *Terms) { terms.AnnualRate = -1 },
		},
		{
			name:   "Negative deferral months",
			mutate: func(terms *Terms) { terms.DeferralMonths = -6 },
		},
		{
			name:   "Unknown deferral kind",
			mutate: func(terms *Terms) { terms.Deferral = "forever" },
		},
		{
			name: "Deferral swallows the whole term",
			mutate: func(terms *Terms) {
				terms.Deferral = DeferralTotal
				terms.DeferralMonths = 240
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := termsForTest(200000, 3.0, 20)
			tt.mutate(&terms)
			if _, err := BuildSchedule(nil, terms); err == nil {
				t.Errorf("BuildSchedule() expected error, got none")
			}
		})
	}
}

func TestBalanceAt(t *testing.T) {
	schedule, err := BuildSchedule(nil, termsForTest(200000, 3.0, 20))
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	beforeFirst := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	if got := schedule.BalanceAt(beforeFirst); math.Abs(got-200000) > 0.01 {
		t.Errorf("balance before first payment = %.2f, expected 200000", got)
	}

	afterFirst := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	expected := schedule.Rows[0].RemainingBalance
	if got := schedule.BalanceAt(afterFirst); got != expected {
		t.Errorf("balance after first payment = %.2f, expected %.2f", got, expected)
	}

	afterLast := time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := schedule.BalanceAt(afterLast); got != 0 {
		t.Errorf("balance past maturity = %.2f, expected 0", got)
	}
}

func TestYearAggregates(t *testing.T) {
	schedule, err := BuildSchedule(nil, termsForTest(200000, 3.0, 20))
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	if got := schedule.MonthsInYear(2025); got != 12 {
		t.Errorf("MonthsInYear(2025) = %d, expected 12", got)
	}
	if got := schedule.MonthsInYear(2044); got != 12 {
		t.Errorf("MonthsInYear(2044) = %d, expected 12", got)
	}
	if got := schedule.MonthsInYear(2050); got != 0 {
		t.Errorf("MonthsInYear(2050) = %d, expected 0", got)
	}

	payment := CalculateMonthlyPayment(200000, 3.0, 240)
	if got := schedule.PaymentsForYear(2030); math.Abs(got-payment*12) > 0.01 {
		t.Errorf("PaymentsForYear(2030) = %.2f, expected %.2f", got, payment*12)
	}

	// Interest declines year over year on a standard schedule.
	if schedule.InterestForYear(2026) >= schedule.InterestForYear(2025) {
		t.Errorf("interest should decline: 2026 %.2f >= 2025 %.2f",
			schedule.InterestForYear(2026), schedule.InterestForYear(2025))
	}
}

func TestMonthlyInsurance(t *testing.T) {
	terms := termsForTest(200000, 3.0, 20)
	terms.InsuranceRate = 0.36

	if got := MonthlyInsurance(terms); math.Abs(got-60.0) > 0.001 {
		t.Errorf("MonthlyInsurance() = %.4f, expected 60.00", got)
	}
}
