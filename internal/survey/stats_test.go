package survey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomeTable(t *testing.T) *Dataset {
	return table(t, []string{"Country", "ConvertedComp", "WorkWeekHrs", "Age"},
		[]string{"USA", "120000", "40", "30"},
		[]string{"India", "20000", "45", "25"},
		[]string{"USA", "100000", "50", "35"},
		[]string{"Germany", "70000", "40", "40"},
		[]string{"India", "", "60", "22"},
		[]string{"", "50000", "40", "28"},
		[]string{"Germany", "70000", "38", "45"},
		[]string{"USA", "140000", "55", "45"},
	)
}

func TestGroupMeanOrdersByDescendingMean(t *testing.T) {
	got, err := GroupMean(incomeTable(t), "Country", "ConvertedComp")
	require.NoError(t, err)
	assert.Equal(t, []GroupStat{
		{Label: "USA", Mean: 120000, Count: 3},
		{Label: "Germany", Mean: 70000, Count: 2},
		{Label: "India", Mean: 20000, Count: 1},
	}, got)
}

func TestGroupMeanErrors(t *testing.T) {
	ds := incomeTable(t)
	_, err := GroupMean(ds, "Continent", "ConvertedComp")
	require.ErrorIs(t, err, ErrFieldNotFound)
	_, err = GroupMean(ds, "Country", "Salary")
	require.ErrorIs(t, err, ErrFieldNotFound)

	bad := table(t, []string{"g", "v"}, []string{"a", "lots"})
	_, err = GroupMean(bad, "g", "v")
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestGroupCorrelationWithinSubset(t *testing.T) {
	ds := table(t, []string{"Lang", "x", "y"},
		[]string{"Go", "1", "2"},
		[]string{"Go", "2", "4"},
		[]string{"Go", "3", "6"},
		[]string{"Go", "4", ""},
		[]string{"Rust", "1", "9"},
		[]string{"Rust", "2", "1"},
	)
	c, err := GroupCorrelation(ds, "Lang", "x", "y", "Go")
	require.NoError(t, err)
	assert.Equal(t, 3, c.N)
	assert.InDelta(t, 1.0, c.R, 1e-12)
	assert.True(t, c.Defined())

	c, err = GroupCorrelation(ds, "Lang", "x", "y", "Rust")
	require.NoError(t, err)
	assert.InDelta(t, -1.0, c.R, 1e-12)
}

func TestGroupCorrelationUndefined(t *testing.T) {
	ds := table(t, []string{"Lang", "x", "y"},
		[]string{"Go", "1", "2"},
		[]string{"Rust", "1", "5"},
		[]string{"Rust", "2", "5"},
	)
	c, err := GroupCorrelation(ds, "Lang", "x", "y", "Go")
	require.ErrorIs(t, err, ErrUndefinedStatistic)
	assert.Equal(t, 1, c.N)
	assert.True(t, math.IsNaN(c.R))
	assert.False(t, c.Defined())

	c, err = GroupCorrelation(ds, "Lang", "x", "y", "Rust")
	require.ErrorIs(t, err, ErrUndefinedStatistic, "constant y has zero variance")
	assert.Equal(t, 2, c.N)

	c, err = GroupCorrelation(ds, "Lang", "x", "y", "Zig")
	require.ErrorIs(t, err, ErrUndefinedStatistic)
	assert.Equal(t, 0, c.N)

	_, err = GroupCorrelation(ds, "Language", "x", "y", "Go")
	require.ErrorIs(t, err, ErrFieldNotFound)
}

func TestCorrelateStaysInRange(t *testing.T) {
	c, err := Correlate(incomeTable(t), "ConvertedComp", "WorkWeekHrs")
	require.NoError(t, err)
	assert.Equal(t, 7, c.N)
	assert.GreaterOrEqual(t, c.R, -1.0)
	assert.LessOrEqual(t, c.R, 1.0)
}

func TestMedianAndDescribe(t *testing.T) {
	ds := incomeTable(t)
	m, err := Median(ds, "ConvertedComp")
	require.NoError(t, err)
	assert.Equal(t, 70000.0, m)

	s, err := Describe(ds, "Age")
	require.NoError(t, err)
	assert.Equal(t, 8, s.Count)
	assert.Equal(t, 22.0, s.Min)
	assert.Equal(t, 45.0, s.Max)
	assert.InDelta(t, 33.75, s.Mean, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)
	assert.LessOrEqual(t, s.Q1, s.Median)
	assert.LessOrEqual(t, s.Median, s.Q3)

	_, err = Median(column(t, "Age", ""), "Age")
	require.ErrorIs(t, err, ErrUndefinedStatistic)
	_, err = Describe(column(t, "Age", ""), "Age")
	require.ErrorIs(t, err, ErrUndefinedStatistic)
}
