package tax

import (
	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"go.uber.org/zap"
)

// GrossYieldsForYear returns the gross rental yield per regime for a year:
// coverage-adjusted revenue over the total acquisition cost, as a
// percentage.
func GrossYieldsForYear(logger *zap.Logger, p *config.Property, year int) map[Regime]float64 {
	if logger == nil {
		logger = zap.NewNop()
	}

	basis := p.PurchasePrice + p.AcquisitionFees
	yields := make(map[Regime]float64, len(AllRegimes))
	for _, regime := range AllRegimes {
		if basis <= 0 {
			yields[regime] = 0
			continue
		}
		yields[regime] = Revenue(p, year, regime.Furnished()) / basis * 100
	}
	return yields
}

// NetYieldsForYear returns the net yield per regime for a year: revenue less
// total tax over the total acquisition cost, as a percentage. A nil prior in
// priors means no deficit carried.
func NetYieldsForYear(logger *zap.Logger, p *config.Property, year int, priors map[Regime]*Result) (map[Regime]float64, error) {
	basis := p.PurchasePrice + p.AcquisitionFees
	results, err := AllRegimesForYear(logger, p, year, priors)
	if err != nil {
		return nil, err
	}

	yields := make(map[Regime]float64, len(results))
	for regime, result := range results {
		if basis <= 0 {
			yields[regime] = 0
			continue
		}
		yields[regime] = result.NetIncome / basis * 100
	}
	return yields, nil
}
