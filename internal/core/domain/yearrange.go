package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Fallback bounds used when no make is selected or the catalog has no range.
const (
	DefaultMinYear = 1922
	DefaultMaxYear = 2024
)

// YearRange bounds the year options for the selected make.
type YearRange struct {
	Min int
	Max int
}

// DefaultYearRange returns the global fallback range.
func DefaultYearRange() YearRange {
	return YearRange{Min: DefaultMinYear, Max: DefaultMaxYear}
}

// IsZero returns true if the range carries no bounds.
func (r YearRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// IsValid returns true if both bounds are set and ordered.
func (r YearRange) IsValid() bool {
	return r.Min > 0 && r.Max > 0 && r.Min <= r.Max
}

// OrDefault returns the range, or the global fallback if it is unusable.
func (r YearRange) OrDefault() YearRange {
	if !r.IsValid() {
		return DefaultYearRange()
	}
	return r
}

// Contains reports whether year lies within [Min, Max].
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// Years lists every year in the range, newest first.
func (r YearRange) Years() []int {
	if !r.IsValid() {
		return nil
	}
	years := make([]int, 0, r.Max-r.Min+1)
	for y := r.Max; y >= r.Min; y-- {
		years = append(years, y)
	}
	return years
}

// String returns the range as "min-max".
func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// ParseYear parses numeric year text.
func ParseYear(value string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: year %q is not a number", ErrInvalidInput, value)
	}
	return year, nil
}
