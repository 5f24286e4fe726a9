package search

import (
	"fmt"

	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"github.com/Rudyyyy/rentabimmo-engine/internal/projection"
	"github.com/Rudyyyy/rentabimmo-engine/internal/sale"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
	"go.uber.org/zap"
)

// RentalTypeCandidates enumerates the corporate candidate set in its
// canonical tie-break order.
var RentalTypeCandidates = []string{config.RentalTypeUnfurnished, config.RentalTypeFurnished}

// SCICandidateOutcome is the result of the scan for one rental-type
// candidate of a corporate vehicle.
type SCICandidateOutcome struct {
	RentalType string
	Year       *int
	Achieved   float64
	BestYear   int
}

// SCIOutcome is the overall corporate search result.
type SCIOutcome struct {
	Kind       TargetKind
	Target     float64
	Best       SCICandidateOutcome
	Candidates []SCICandidateOutcome
}

// FindEarliestYearSCI scans each rental-type candidate for the corporate
// vehicle. The vehicle's configured rental type is overridden per candidate;
// the input is not mutated.
func FindEarliestYearSCI(logger *zap.Logger, vehicle *config.SCI, members []*config.Property, kind TargetKind, target float64, candidates []string) (SCIOutcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if kind != TargetGain && kind != TargetCashFlow {
		return SCIOutcome{}, fmt.Errorf("unknown target kind %q", kind)
	}
	if len(candidates) == 0 {
		candidates = RentalTypeCandidates
	}

	outcome := SCIOutcome{Kind: kind, Target: target}
	bestSet := false

	for _, rentalType := range candidates {
		variant := *vehicle
		variant.RentalType = rentalType

		candidate, err := scanSCI(logger, &variant, members, kind, target)
		if err != nil {
			return SCIOutcome{}, err
		}
		candidate.RentalType = rentalType
		outcome.Candidates = append(outcome.Candidates, candidate)

		if !bestSet {
			outcome.Best = candidate
			bestSet = true
			continue
		}
		outcome.Best = betterSCI(outcome.Best, candidate)
	}

	return outcome, nil
}

func scanSCI(logger *zap.Logger, vehicle *config.SCI, members []*config.Property, kind TargetKind, target float64) (SCICandidateOutcome, error) {
	snapshots, err := projection.RunSCI(logger, vehicle, members)
	if err != nil {
		return SCICandidateOutcome{}, err
	}

	var candidate SCICandidateOutcome
	bestSet := false

	for _, snapshot := range snapshots {
		metric := snapshot.CumulativeCashFlow
		if kind == TargetGain {
			exitValue, err := sciExitValue(logger, vehicle, members, snapshots, snapshot.Year, snapshot.CumulativeCashFlow)
			if err != nil {
				return SCICandidateOutcome{}, err
			}
			metric = exitValue
		}

		if !bestSet || metric > candidate.Achieved {
			candidate.Achieved = metric
			candidate.BestYear = snapshot.Year
			bestSet = true
		}

		if metric >= target {
			year := snapshot.Year
			candidate.Year = &year
			candidate.Achieved = metric
			candidate.BestYear = snapshot.Year
			break
		}
	}

	return candidate, nil
}

// sciExitValue prices a full liquidation at the end of the year: cumulative
// vehicle cash flow plus every member's sale balance net of capital-gains
// tax and initial down payments. Members are priced under the real-cost
// regime matching the vehicle's rental type; a furnished vehicle recaptures
// each member's share of the depreciation deducted in consolidation.
func sciExitValue(logger *zap.Logger, vehicle *config.SCI, members []*config.Property, snapshots []projection.SCIYearSnapshot, year int, cumulativeCashFlow float64) (float64, error) {
	regime := tax.ReelFoncier
	if vehicle.Furnished() {
		regime = tax.ReelBIC
	}

	total := cumulativeCashFlow
	for _, p := range members {
		if year < p.StartYear() {
			continue
		}
		depreciation := memberDepreciationThrough(snapshots, p.ID, year)
		exit, err := sale.ComputeExit(logger, p, year, regime, 0, depreciation)
		if err != nil {
			return 0, err
		}
		total += exit.SaleBalance - exit.CapitalGainTax - p.DownPayment
	}
	return total, nil
}

// memberDepreciationThrough sums one member's deducted depreciation across
// the consolidated years up to and including the given year.
func memberDepreciationThrough(snapshots []projection.SCIYearSnapshot, id string, year int) float64 {
	total := 0.0
	for _, snapshot := range snapshots {
		if snapshot.Year > year {
			break
		}
		total += snapshot.TaxResult.Contributions[id].Amortization
	}
	return total
}

func betterSCI(current, challenger SCICandidateOutcome) SCICandidateOutcome {
	switch {
	case current.Year == nil && challenger.Year != nil:
		return challenger
	case current.Year != nil && challenger.Year == nil:
		return current
	case current.Year != nil && challenger.Year != nil:
		if *challenger.Year < *current.Year {
			return challenger
		}
		return current
	default:
		if challenger.Achieved > current.Achieved {
			return challenger
		}
		return current
	}
}
