package config

import "github.com/Rudyyyy/rentabimmo-engine/pkg/constants"

// SCI describes a corporate holding vehicle taxed under the IS regime. It
// references its member properties by ID; it does not own them.
type SCI struct {
	ID                    string
	Name                  string
	Capital               float64
	ReducedRate           float64 // percent, 0 means the legal default
	StandardRate          float64 // percent, 0 means the legal default
	ReducedThreshold      float64 // 0 means the legal default
	PriorDeficit          float64
	RentalType            string // revenue recognition for all members
	MemberPropertyIDs     []string
	PropertyValues        map[string]float64 // optional per-property value overrides
	DefaultBuildingYears  int
	DefaultFurnitureYears int
	DefaultWorksYears     int
}

// GetReducedRate returns the configured reduced IS rate or the legal default.
func (s *SCI) GetReducedRate() float64 {
	if s.ReducedRate > 0 {
		return s.ReducedRate
	}
	return constants.DefaultReducedISRate
}

// GetStandardRate returns the configured standard IS rate or the legal
// default.
func (s *SCI) GetStandardRate() float64 {
	if s.StandardRate > 0 {
		return s.StandardRate
	}
	return constants.DefaultStandardISRate
}

// GetReducedThreshold returns the configured reduced-rate bracket bound or
// the legal default.
func (s *SCI) GetReducedThreshold() float64 {
	if s.ReducedThreshold > 0 {
		return s.ReducedThreshold
	}
	return constants.DefaultReducedISThreshold
}

// Furnished reports whether the vehicle recognizes revenue as furnished
// rentals.
func (s *SCI) Furnished() bool {
	return s.RentalType == RentalTypeFurnished
}
