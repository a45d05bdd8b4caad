package entity

import (
	"cmp"
	"slices"
)

// RosterReport summarizes the roster at one point in time.
type RosterReport struct {
	Ranked       []*Hero // Heroes by level, highest first. Ties keep insertion order.
	Count        int
	AverageLevel float64
	VeteranCount int
}

// BuildReport computes the report over heroes. It returns false when heroes
// is empty, since there is no average to compute.
func BuildReport(heroes []*Hero) (*RosterReport, bool) {
	if len(heroes) == 0 {
		return nil, false
	}

	ranked := slices.Clone(heroes)
	slices.SortStableFunc(ranked, func(a, b *Hero) int {
		return cmp.Compare(b.Level, a.Level)
	})

	total := 0
	veterans := 0
	for _, hero := range heroes {
		total += hero.Level
		if hero.IsVeteran() {
			veterans++
		}
	}

	return &RosterReport{
		Ranked:       ranked,
		Count:        len(heroes),
		AverageLevel: float64(total) / float64(len(heroes)),
		VeteranCount: veterans,
	}, true
}
