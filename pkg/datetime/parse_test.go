package datetime

import (
	"math"
	"testing"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateTimeLayout,
			dateStr:  "2025-01-15",
			expected: "2025-01-15",
		},
		{
			name:     "Another valid date",
			layout:   DateTimeLayout,
			dateStr:  "2030-12-31",
			expected: "2030-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
		wantErr  bool
	}{
		{
			name:     "Add one month",
			date:     "2025-01-15",
			months:   1,
			expected: "2025-02-15",
		},
		{
			name:     "Cross year boundary",
			date:     "2025-12-10",
			months:   2,
			expected: "2026-02-10",
		},
		{
			name:     "Negative offset",
			date:     "2025-03-01",
			months:   -3,
			expected: "2024-12-01",
		},
		{
			name:    "Invalid date",
			date:    "not-a-date",
			months:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if tt.wantErr {
				if err == nil {
					t.Errorf("OffsetDate() expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("OffsetDate() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestDateBeforeDate(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected bool
		wantErr  bool
	}{
		{
			name:     "Strictly before",
			first:    "2025-01-01",
			second:   "2025-06-30",
			expected: true,
		},
		{
			name:     "Same date",
			first:    "2025-01-01",
			second:   "2025-01-01",
			expected: false,
		},
		{
			name:     "After",
			first:    "2030-12-31",
			second:   "2025-01-01",
			expected: false,
		},
		{
			name:    "Malformed first date",
			first:   "01/06/2025",
			second:  "2025-01-01",
			wantErr: true,
		},
		{
			name:    "Malformed second date",
			first:   "2025-01-01",
			second:  "tomorrow",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DateBeforeDate(tt.first, tt.second)
			if tt.wantErr {
				if err == nil {
					t.Errorf("DateBeforeDate() expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("DateBeforeDate() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("DateBeforeDate(%s, %s) = %v, expected %v", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}

func TestYearCoverage(t *testing.T) {
	start := MustParseTime(DateTimeLayout, "2025-07-01")
	end := MustParseTime(DateTimeLayout, "2035-06-30")

	tests := []struct {
		name     string
		year     int
		expected float64
		exact    bool
	}{
		{
			name:     "Year before the period",
			year:     2024,
			expected: 0,
			exact:    true,
		},
		{
			name:     "First year covers the second half",
			year:     2025,
			expected: 184.0 / 365.0,
		},
		{
			name:     "Interior year is exactly one",
			year:     2030,
			expected: 1.0,
			exact:    true,
		},
		{
			name:     "Last year covers the first half",
			year:     2035,
			expected: 181.0 / 365.0,
		},
		{
			name:     "Year after the period",
			year:     2036,
			expected: 0,
			exact:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := YearCoverage(start, end, tt.year)
			if tt.exact {
				if result != tt.expected {
					t.Errorf("YearCoverage(%d) = %v, expected exactly %v", tt.year, result, tt.expected)
				}
				return
			}
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("YearCoverage(%d) = %v, expected %v", tt.year, result, tt.expected)
			}
		})
	}
}

func TestYearCoverageBoundaries(t *testing.T) {
	start := MustParseTime(DateTimeLayout, "2025-07-01")
	end := MustParseTime(DateTimeLayout, "2035-06-30")

	// Every interior year must be exactly 1.0 and the boundary years must
	// stay inside [0, 1).
	for year := 2026; year <= 2034; year++ {
		if got := YearCoverage(start, end, year); got != 1.0 {
			t.Errorf("interior year %d coverage = %v, expected 1.0", year, got)
		}
	}
	for _, year := range []int{2025, 2035} {
		got := YearCoverage(start, end, year)
		if got < 0 || got >= 1 {
			t.Errorf("boundary year %d coverage = %v, expected in [0, 1)", year, got)
		}
	}
}

func TestYearCoverageLeapYear(t *testing.T) {
	start := MustParseTime(DateTimeLayout, "2024-02-01")
	end := MustParseTime(DateTimeLayout, "2030-01-31")

	// 2024 is a leap year: February through December is 335 of 366 days.
	got := YearCoverage(start, end, 2024)
	expected := 335.0 / 366.0
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("leap-year coverage = %v, expected %v", got, expected)
	}
}

func TestYearCoverageEndBeforeStart(t *testing.T) {
	start := MustParseTime(DateTimeLayout, "2030-01-01")
	end := MustParseTime(DateTimeLayout, "2025-01-01")

	if got := YearCoverage(start, end, 2027); got != 0 {
		t.Errorf("inverted period coverage = %v, expected 0", got)
	}
}

func TestAdjustForCoverage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		coverage float64
		expected float64
	}{
		{
			name:     "Full year",
			value:    12000,
			coverage: 1.0,
			expected: 12000,
		},
		{
			name:     "Half year",
			value:    12000,
			coverage: 0.5,
			expected: 6000,
		},
		{
			name:     "No coverage",
			value:    12000,
			coverage: 0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustForCoverage(tt.value, tt.coverage); got != tt.expected {
				t.Errorf("AdjustForCoverage() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
