package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport_StableRankingAndTotals(t *testing.T) {
	t.Parallel()

	first := NewHero("Aria", 5)
	top := NewHero("Mark", 9)
	second := NewVeteran("Zed", 5, 4)

	report, ok := BuildReport([]*Hero{first, top, second})
	require.True(t, ok)

	require.Len(t, report.Ranked, 3)
	assert.Same(t, top, report.Ranked[0])
	assert.Same(t, first, report.Ranked[1])
	assert.Same(t, second, report.Ranked[2])
	assert.Equal(t, 3, report.Count)
	assert.InDelta(t, 6.33, report.AverageLevel, 0.005)
	assert.Equal(t, 1, report.VeteranCount)
}

func TestBuildReport_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	heroes := []*Hero{NewHero("low", 1), NewHero("high", 10)}

	_, ok := BuildReport(heroes)
	require.True(t, ok)

	assert.Equal(t, "low", heroes[0].Name)
	assert.Equal(t, "high", heroes[1].Name)
}

func TestBuildReport_Empty(t *testing.T) {
	t.Parallel()

	report, ok := BuildReport(nil)
	assert.False(t, ok)
	assert.Nil(t, report)
}
