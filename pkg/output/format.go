// Package output provides utilities for formatting and displaying
// projection and search results.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rudyyyy/rentabimmo-engine/internal/projection"
	"github.com/Rudyyyy/rentabimmo-engine/internal/sci"
	"github.com/Rudyyyy/rentabimmo-engine/internal/search"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PropertyReport groups the per-regime projections of one property.
type PropertyReport struct {
	Name      string
	Snapshots map[tax.Regime][]projection.YearSnapshot
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(reports []PropertyReport) {
	p := message.NewPrinter(language.French)
	for _, report := range reports {
		for _, regime := range tax.AllRegimes {
			snapshots, ok := report.Snapshots[regime]
			if !ok {
				continue
			}
			fmt.Printf("--- %s under %s ---\n", report.Name, regime)
			fmt.Printf("Year | Revenue      | Expenses     | Loan         | Tax          | Net cash flow | Cumulative\n")
			fmt.Printf("____ | ____________ | ____________ | ____________ | ____________ | _____________ | __________\n")
			for _, snapshot := range snapshots {
				_, _ = p.Printf("%d | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f\n",
					snapshot.Year, snapshot.Revenue, snapshot.OperatingExpenses,
					snapshot.LoanPayments+snapshot.LoanInsurance,
					snapshot.Tax, snapshot.NetCashFlow, snapshot.CumulativeCashFlow)
			}
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(reports []PropertyReport) {
	fmt.Printf(`"property","regime","year","revenue","expenses","loan","tax","net","cumulative"`)
	fmt.Printf("\n")
	for _, report := range reports {
		for _, regime := range tax.AllRegimes {
			snapshots, ok := report.Snapshots[regime]
			if !ok {
				continue
			}
			for _, snapshot := range snapshots {
				fmt.Printf(`"%s","%s","%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
					report.Name, regime, snapshot.Year, snapshot.Revenue,
					snapshot.OperatingExpenses,
					snapshot.LoanPayments+snapshot.LoanInsurance,
					snapshot.Tax, snapshot.NetCashFlow, snapshot.CumulativeCashFlow)
				fmt.Printf("\n")
			}
		}
	}
}

// PrettyFormatSCI outputs the consolidated results of a corporate vehicle.
func PrettyFormatSCI(name string, results map[int]sci.TaxResult) {
	years := make([]int, 0, len(results))
	for year := range results {
		years = append(years, year)
	}
	sort.Ints(years)

	fmt.Printf("--- Consolidated results for %s ---\n", name)
	fmt.Printf("Year | Revenue      | Expenses     | Amortization | Taxable      | Total IS\n")
	fmt.Printf("____ | ____________ | ____________ | ____________ | ____________ | ________\n")
	for _, year := range years {
		r := results[year]
		fmt.Printf("%d | %s | %s | %s | %s | %s\n",
			year, format.Currency(r.TotalRevenue), format.Currency(r.TotalExpenses),
			format.Currency(r.TotalAmortization), format.Currency(r.TaxableIncome),
			format.Currency(r.TotalIS))
	}
	fmt.Printf("\n")
}

// PrettySCISearchOutcome renders the goal-search verdict for a corporate
// vehicle.
func PrettySCISearchOutcome(outcome search.SCIOutcome) {
	target := format.Currency(outcome.Target)
	fmt.Printf("--- Target %s >= %s ---\n", outcome.Kind, target)
	for _, candidate := range outcome.Candidates {
		if candidate.Year != nil {
			fmt.Printf("%s reaches %s in %d (%s)\n",
				candidate.RentalType, target, *candidate.Year, format.Currency(candidate.Achieved))
		} else {
			fmt.Printf("%s never reaches %s; best %s in %d\n",
				candidate.RentalType, target, format.Currency(candidate.Achieved), candidate.BestYear)
		}
	}
	if outcome.Best.Year != nil {
		fmt.Printf("Best candidate: %s in %d\n\n", outcome.Best.RentalType, *outcome.Best.Year)
	} else {
		fmt.Printf("Best candidate: %s (target unreachable, best %s)\n\n",
			outcome.Best.RentalType, format.Currency(outcome.Best.Achieved))
	}
}

// PrettySearchOutcome renders the goal-search verdict.
func PrettySearchOutcome(outcome search.Outcome) {
	target := format.Currency(outcome.Target)
	var lines []string
	for _, candidate := range outcome.Candidates {
		if candidate.Year != nil {
			lines = append(lines, fmt.Sprintf("%s reaches %s in %d (%s)",
				candidate.Regime, target, *candidate.Year, format.Currency(candidate.Achieved)))
		} else {
			lines = append(lines, fmt.Sprintf("%s never reaches %s; best %s in %d",
				candidate.Regime, target, format.Currency(candidate.Achieved), candidate.BestYear))
		}
	}
	fmt.Printf("--- Target %s >= %s ---\n%s\n", outcome.Kind, target, strings.Join(lines, "\n"))
	if outcome.Best.Year != nil {
		fmt.Printf("Best candidate: %s in %d\n\n", outcome.Best.Regime, *outcome.Best.Year)
	} else {
		fmt.Printf("Best candidate: %s (target unreachable, best %s)\n\n",
			outcome.Best.Regime, format.Currency(outcome.Best.Achieved))
	}
}
