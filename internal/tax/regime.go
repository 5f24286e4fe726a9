// Package tax computes the yearly results of the four French rental-income
// tax regimes, chaining each year off the prior year's carried deficit.
package tax

// Regime is one of the four legally distinct rental-income tax treatments.
type Regime int

const (
	// MicroFoncier is the flat-abatement unfurnished regime.
	MicroFoncier Regime = iota
	// ReelFoncier is the real-cost unfurnished regime.
	ReelFoncier
	// MicroBIC is the flat-abatement furnished regime.
	MicroBIC
	// ReelBIC is the real-cost furnished regime with depreciation.
	ReelBIC
)

// AllRegimes enumerates the regimes in their canonical order. This order is
// also the tie-break order of the goal-seeking search.
var AllRegimes = []Regime{MicroFoncier, ReelFoncier, MicroBIC, ReelBIC}

// Furnished reports whether the regime applies to furnished rentals.
func (r Regime) Furnished() bool {
	return r == MicroBIC || r == ReelBIC
}

// Real reports whether the regime deducts real costs rather than a flat
// abatement.
func (r Regime) Real() bool {
	return r == ReelFoncier || r == ReelBIC
}

func (r Regime) String() string {
	switch r {
	case MicroFoncier:
		return "micro-foncier"
	case ReelFoncier:
		return "reel-foncier"
	case MicroBIC:
		return "micro-bic"
	case ReelBIC:
		return "reel-bic"
	default:
		return "unknown"
	}
}

// ParseRegime converts a config string into a Regime.
func ParseRegime(value string) (Regime, bool) {
	for _, regime := range AllRegimes {
		if regime.String() == value {
			return regime, true
		}
	}
	return MicroFoncier, false
}
