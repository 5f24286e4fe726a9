package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Rudyyyy/rentabimmo-engine/internal/projection"
	"github.com/Rudyyyy/rentabimmo-engine/internal/sci"
	"github.com/Rudyyyy/rentabimmo-engine/internal/search"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	reports := []PropertyReport{
		{
			Name: "studio-lyon",
			Snapshots: map[tax.Regime][]projection.YearSnapshot{
				tax.MicroFoncier: {
					{Year: 2024, Revenue: 8400, NetCashFlow: 5000, CumulativeCashFlow: 5000},
				},
			},
		},
	}

	output := captureStdout(t, func() { PrettyFormat(reports) })

	if !strings.Contains(output, "--- studio-lyon under micro-foncier ---") {
		t.Errorf("PrettyFormat missing property header:\n%s", output)
	}
	if !strings.Contains(output, "2024") {
		t.Errorf("PrettyFormat missing year row:\n%s", output)
	}
}

func TestPrettyFormatSCI(t *testing.T) {
	results := map[int]sci.TaxResult{
		2024: {Year: 2024, TotalRevenue: 62000, TotalExpenses: 5000, TaxableIncome: 57000, TotalIS: 10000},
	}

	output := captureStdout(t, func() { PrettyFormatSCI("sci-familiale", results) })

	if !strings.Contains(output, "--- Consolidated results for sci-familiale ---") {
		t.Errorf("PrettyFormatSCI missing header:\n%s", output)
	}
	if !strings.Contains(output, "€62,000.00") {
		t.Errorf("PrettyFormatSCI missing formatted revenue column:\n%s", output)
	}
	if !strings.Contains(output, "€10,000.00") {
		t.Errorf("PrettyFormatSCI missing formatted IS column:\n%s", output)
	}
}

func TestPrettySearchOutcome(t *testing.T) {
	year := 2031
	outcome := search.Outcome{
		Kind:   search.TargetCashFlow,
		Target: 50000,
		Best:   search.CandidateOutcome{Regime: tax.MicroBIC, Year: &year, Achieved: 51234.5},
		Candidates: []search.CandidateOutcome{
			{Regime: tax.MicroFoncier, Achieved: 42000, BestYear: 2039},
			{Regime: tax.MicroBIC, Year: &year, Achieved: 51234.5},
		},
	}

	output := captureStdout(t, func() { PrettySearchOutcome(outcome) })

	if !strings.Contains(output, "--- Target cashflow >= €50,000.00 ---") {
		t.Errorf("PrettySearchOutcome missing header:\n%s", output)
	}
	if !strings.Contains(output, "micro-bic reaches €50,000.00 in 2031 (€51,234.50)") {
		t.Errorf("PrettySearchOutcome missing reached line:\n%s", output)
	}
	if !strings.Contains(output, "micro-foncier never reaches €50,000.00; best €42,000.00 in 2039") {
		t.Errorf("PrettySearchOutcome missing unreached line:\n%s", output)
	}
	if !strings.Contains(output, "Best candidate: micro-bic in 2031") {
		t.Errorf("PrettySearchOutcome missing verdict:\n%s", output)
	}
}

func TestPrettySCISearchOutcome(t *testing.T) {
	outcome := search.SCIOutcome{
		Kind:   search.TargetGain,
		Target: 100000,
		Best:   search.SCICandidateOutcome{RentalType: "furnished", Achieved: 84210.99, BestYear: 2040},
		Candidates: []search.SCICandidateOutcome{
			{RentalType: "unfurnished", Achieved: 71000, BestYear: 2040},
			{RentalType: "furnished", Achieved: 84210.99, BestYear: 2040},
		},
	}

	output := captureStdout(t, func() { PrettySCISearchOutcome(outcome) })

	if !strings.Contains(output, "--- Target gain >= €100,000.00 ---") {
		t.Errorf("PrettySCISearchOutcome missing header:\n%s", output)
	}
	if !strings.Contains(output, "furnished never reaches €100,000.00; best €84,210.99 in 2040") {
		t.Errorf("PrettySCISearchOutcome missing candidate line:\n%s", output)
	}
	if !strings.Contains(output, "Best candidate: furnished (target unreachable, best €84,210.99)") {
		t.Errorf("PrettySCISearchOutcome missing verdict:\n%s", output)
	}
}
