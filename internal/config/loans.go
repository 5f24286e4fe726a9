package config

import (
	"time"

	"github.com/Rudyyyy/rentabimmo-engine/pkg/loans"
	"go.uber.org/zap"
)

// Loan indicates a property loan and its parameters.
type Loan struct {
	Principal        float64
	AnnualRate       float64 // percent
	Years            int
	Deferral         string  // none, partial, total
	DeferralMonths   int
	InsuranceRate    float64 // annual percent of principal
	DisbursementDate string  // defaults to the property start date

	// Parsed by ParseDates.
	Disbursed time.Time `mapstructure:"-"`
	// Built once by ProcessLoans.
	Schedule *loans.Schedule `mapstructure:"-"`
}

// LoanFigures carries the coverage-adjusted loan amounts for one calendar
// year.
type LoanFigures struct {
	Payment   float64
	Insurance float64
	Interest  float64
}

// Terms converts the config loan into the loans package input type.
func (l *Loan) Terms() loans.Terms {
	deferral := loans.DeferralKind(l.Deferral)
	if l.Deferral == "" {
		deferral = loans.DeferralNone
	}
	return loans.Terms{
		Principal:        l.Principal,
		AnnualRate:       l.AnnualRate,
		Years:            l.Years,
		Deferral:         deferral,
		DeferralMonths:   l.DeferralMonths,
		InsuranceRate:    l.InsuranceRate,
		DisbursementDate: l.Disbursed,
	}
}

// ProcessLoans builds and caches the amortization schedule of every
// property.
func (conf *Configuration) ProcessLoans(logger *zap.Logger) error {
	for i := range conf.Properties {
		if err := conf.Properties[i].ProcessLoan(logger); err != nil {
			return err
		}
	}
	return nil
}

// ProcessLoan computes and caches the amortization schedule for the
// property's loan.
func (p *Property) ProcessLoan(logger *zap.Logger) error {
	schedule, err := loans.BuildSchedule(logger, p.Loan.Terms())
	if err != nil {
		return err
	}
	p.Loan.Schedule = &schedule
	return nil
}

// LoanInfoForYear returns the coverage-adjusted payment, insurance, and
// interest figures of the property's loan for a calendar year. The coverage
// factor is applied on top of the schedule's calendar-year sums even in a
// partial first or last year, mirroring how revenue and expense records are
// scaled.
func (p *Property) LoanInfoForYear(logger *zap.Logger, year int) (LoanFigures, error) {
	if p.Loan.Schedule == nil {
		if err := p.ProcessLoan(logger); err != nil {
			return LoanFigures{}, err
		}
	}

	schedule := p.Loan.Schedule
	coverage := p.Coverage(year)
	insurance := loans.MonthlyInsurance(p.Loan.Terms()) * float64(schedule.MonthsInYear(year))

	return LoanFigures{
		Payment:   schedule.PaymentsForYear(year) * coverage,
		Insurance: insurance * coverage,
		Interest:  schedule.InterestForYear(year) * coverage,
	}, nil
}

// InterestForYear returns the coverage-adjusted loan interest for a calendar
// year.
func (p *Property) InterestForYear(logger *zap.Logger, year int) (float64, error) {
	figures, err := p.LoanInfoForYear(logger, year)
	if err != nil {
		return 0, err
	}
	return figures.Interest, nil
}

// OutstandingBalanceAt returns the remaining loan balance at the given date.
func (p *Property) OutstandingBalanceAt(logger *zap.Logger, date time.Time) (float64, error) {
	if p.Loan.Schedule == nil {
		if err := p.ProcessLoan(logger); err != nil {
			return 0, err
		}
	}
	return p.Loan.Schedule.BalanceAt(date), nil
}
