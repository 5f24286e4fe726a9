package config

import (
	"fmt"
	"time"

	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/datetime"
	"github.com/google/uuid"
)

// Rental types recognized in configuration files.
const (
	RentalTypeUnfurnished = "unfurnished"
	RentalTypeFurnished   = "furnished"
)

// Property is one investment record: the purchase, its financing, its
// per-year expense history, and the assumptions used at exit.
type Property struct {
	ID              string
	Name            string
	PurchasePrice   float64
	AcquisitionFees float64 // notary and agency fees at purchase
	DownPayment     float64
	StartDate       string
	EndDate         string
	RentalType      string
	Loan            Loan
	Expenses        []ExpenseRecord
	Tax             TaxParameters
	Sale            SaleParameters

	// Parsed by ParseDates.
	Start time.Time `mapstructure:"-"`
	End   time.Time `mapstructure:"-"`
}

// ExpenseRecord carries the declared figures of one calendar year of the
// holding period. Values are full-year amounts; coverage scaling happens at
// computation time.
type ExpenseRecord struct {
	Year                   int
	PropertyTax            float64
	CondoFees              float64
	OwnerInsurance         float64
	ManagementFees         float64
	UnpaidRentInsurance    float64
	Repairs                float64
	OtherDeductible        float64
	OtherNonDeductible     float64
	Rent                   float64 // unfurnished rent
	FurnishedRent          float64
	TenantRechargedCharges float64
	TaxBenefit             float64 // regime-specific benefit counted as revenue
}

// TaxParameters holds the per-property parameters of the individual tax
// regimes.
type TaxParameters struct {
	MarginalRate       float64 // percent
	SocialChargesRate  float64 // percent
	BuildingValue      float64
	BuildingYears      int
	FurnitureValue     float64
	FurnitureYears     int
	WorksValue         float64
	WorksYears         int
	OtherValue         float64
	OtherYears         int
	PriorDeficit       float64
	DeficitCeiling     float64 // 0 means the legal default
	LMP                bool    // professional furnished-landlord status
}

// SaleParameters holds the assumptions used only at exit pricing time.
type SaleParameters struct {
	AnnualIncreaseRate    float64 // percent per year of holding
	AgencyFee             float64
	EarlyRepaymentPenalty float64
	NonDeductedWorks      float64
}

func (p *Property) parseDates() error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	start, err := parseDate("property start date", p.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("property end date", p.EndDate)
	if err != nil {
		return err
	}
	endsBeforeStart, err := datetime.DateBeforeDate(p.EndDate, p.StartDate)
	if err != nil {
		return err
	}
	if endsBeforeStart {
		return fmt.Errorf("property %s ends %s before it starts %s", p.Name, p.EndDate, p.StartDate)
	}
	p.Start = start
	p.End = end

	if p.Loan.DisbursementDate == "" {
		p.Loan.DisbursementDate = p.StartDate
	}
	disbursed, err := parseDate("loan disbursement date", p.Loan.DisbursementDate)
	if err != nil {
		return err
	}
	p.Loan.Disbursed = disbursed

	return nil
}

// Coverage returns the fraction of the given calendar year during which the
// property is held.
func (p *Property) Coverage(year int) float64 {
	return datetime.YearCoverage(p.Start, p.End, year)
}

// StartYear is the first calendar year of the holding period.
func (p *Property) StartYear() int {
	return p.Start.Year()
}

// EndYear is the last calendar year of the holding period.
func (p *Property) EndYear() int {
	return p.End.Year()
}

// ExpensesFor returns the expense record declared for the given year, or a
// zero record carrying the year when none was declared.
func (p *Property) ExpensesFor(year int) ExpenseRecord {
	for _, record := range p.Expenses {
		if record.Year == year {
			return record
		}
	}
	return ExpenseRecord{Year: year}
}

// Furnished reports whether the property is declared as a furnished rental.
func (p *Property) Furnished() bool {
	return p.RentalType == RentalTypeFurnished
}

// Value is the value used for prorata allocation inside a corporate vehicle;
// it defaults to the purchase price.
func (p *Property) Value(overrides map[string]float64) float64 {
	if overrides != nil {
		if v, ok := overrides[p.ID]; ok && v > 0 {
			return v
		}
	}
	return p.PurchasePrice
}

// GetDeficitCeiling returns the configured deficit ceiling or the legal
// default when unset.
func (t TaxParameters) GetDeficitCeiling() float64 {
	if t.DeficitCeiling > 0 {
		return t.DeficitCeiling
	}
	return constants.DefaultDeficitCeiling
}
