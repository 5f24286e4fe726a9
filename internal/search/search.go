// Package search finds the earliest year at which a cumulative financial
// target is met, scanning candidate regimes or rental types across the
// project horizon. The scan is a bounded linear walk: cumulative gain is not
// monotonic in all scenarios (deficit-carry interactions), so no bisection
// is attempted.
package search

import (
	"fmt"

	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"github.com/Rudyyyy/rentabimmo-engine/internal/projection"
	"github.com/Rudyyyy/rentabimmo-engine/internal/sale"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
	"go.uber.org/zap"
)

// TargetKind selects the cumulative metric being chased.
type TargetKind string

const (
	// TargetGain targets the total realized gain of an exit at the end of
	// the candidate year.
	TargetGain TargetKind = "gain"
	// TargetCashFlow targets the cumulative net cash flow of holding through
	// the candidate year.
	TargetCashFlow TargetKind = "cashflow"
)

// CandidateOutcome is the result of the scan for one candidate regime.
type CandidateOutcome struct {
	Regime   tax.Regime
	Year     *int       // nil when the target is never reached
	Achieved float64    // metric at Year, or the best attainable value
	BestYear int        // year of the best attainable value
}

// Outcome is the overall search result. Best is the candidate reaching the
// target in the fewest years; ties resolve to the first candidate in
// enumeration order. When no candidate reaches the target, Best carries the
// highest attainable value and a nil Year.
type Outcome struct {
	Kind       TargetKind
	Target     float64
	Best       CandidateOutcome
	Candidates []CandidateOutcome
}

// FindEarliestYear scans each candidate regime in order over the property's
// holding period and reports the earliest year at which the target metric is
// reached. Candidates default to all regimes in their canonical order.
func FindEarliestYear(logger *zap.Logger, p *config.Property, kind TargetKind, target float64, candidates []tax.Regime) (Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if kind != TargetGain && kind != TargetCashFlow {
		return Outcome{}, fmt.Errorf("unknown target kind %q", kind)
	}
	if len(candidates) == 0 {
		candidates = tax.AllRegimes
	}

	outcome := Outcome{Kind: kind, Target: target}
	bestSet := false

	for _, regime := range candidates {
		candidate, err := scanRegime(logger, p, kind, target, regime)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Candidates = append(outcome.Candidates, candidate)

		if !bestSet {
			outcome.Best = candidate
			bestSet = true
			continue
		}
		outcome.Best = better(outcome.Best, candidate)
	}

	logBest(logger, "search.FindEarliestYear", outcome)
	return outcome, nil
}

func scanRegime(logger *zap.Logger, p *config.Property, kind TargetKind, target float64, regime tax.Regime) (CandidateOutcome, error) {
	snapshots, err := projection.Run(logger, p, regime)
	if err != nil {
		return CandidateOutcome{}, err
	}

	candidate := CandidateOutcome{Regime: regime}
	bestSet := false

	for _, snapshot := range snapshots {
		metric := snapshot.CumulativeCashFlow
		if kind == TargetGain {
			exit, err := sale.ComputeExit(logger, p, snapshot.Year, regime,
				snapshot.CumulativeCashFlow,
				projection.AccumulatedDepreciationAt(snapshots, snapshot.Year))
			if err != nil {
				return CandidateOutcome{}, err
			}
			metric = exit.TotalGain
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

// better prefers the candidate reaching the target in the fewest years;
// among failures, the higher attainable value. Ties keep the earlier
// enumerated candidate.
func better(current, challenger CandidateOutcome) CandidateOutcome {
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

func logBest(logger *zap.Logger, op string, outcome Outcome) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("kind", string(outcome.Kind)),
		zap.Float64("target", outcome.Target),
		zap.Float64("achieved", outcome.Best.Achieved),
	}
	if outcome.Best.Year != nil {
		fields = append(fields, zap.Int("year", *outcome.Best.Year))
		logger.Info("target reached", fields...)
		return
	}
	logger.Info("target unreachable within horizon", fields...)
}
