package survey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleAnswerTopNWithOther(t *testing.T) {
	ds := column(t, "Country", "India", "USA", "India", "Chile", "", "USA", "India")

	got, err := SingleAnswer(ds, "Country", 2)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "India", Count: 3},
		{Label: "USA", Count: 2},
		{Label: OtherLabel, Count: 1},
	}, got)
	assert.Equal(t, 6, Total(got), "total equals non-missing rows")
}

func TestSingleAnswerNoOtherWhenNothingCollapsed(t *testing.T) {
	ds := column(t, "Employment", "Full-time", "Student", "Full-time")

	got, err := SingleAnswer(ds, "Employment", 10)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "Full-time", Count: 2},
		{Label: "Student", Count: 1},
	}, got)

	got, err = SingleAnswer(ds, "Employment", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSingleAnswerTiesKeepFirstSeenOrder(t *testing.T) {
	ds := column(t, "EdLevel", "Master", "Bachelor", "PhD", "Bachelor", "Master", "PhD")

	got, err := SingleAnswer(ds, "EdLevel", 3)
	require.NoError(t, err)
	labels := []string{got[0].Label, got[1].Label, got[2].Label}
	assert.Equal(t, []string{"Master", "Bachelor", "PhD"}, labels)
}

func TestSingleAnswerErrors(t *testing.T) {
	ds := column(t, "Country", "India")

	_, err := SingleAnswer(ds, "Country", 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = SingleAnswer(ds, "Country", -3)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = SingleAnswer(ds, "Continent", 5)
	require.ErrorIs(t, err, ErrFieldNotFound)
}

func TestMultiAnswerSharesOfRespondents(t *testing.T) {
	ds := column(t, "Lang", "Python;Go", "Go", "", "Python")

	got, err := MultiAnswer(ds, "Lang", ";", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Respondents)
	require.Len(t, got.Shares, 2)

	assert.Equal(t, "Python", got.Shares[0].Label)
	assert.Equal(t, 2, got.Shares[0].Count)
	assert.InDelta(t, 2.0/3.0, got.Shares[0].Share, 1e-12)

	assert.Equal(t, OtherLabel, got.Shares[1].Label)
	assert.Equal(t, 2, got.Shares[1].Count)
	assert.InDelta(t, 2.0/3.0, got.Shares[1].Share, 1e-12)
}

func TestMultiAnswerCountsRepeatsAndSkipsEmptyFragments(t *testing.T) {
	ds := column(t, "DevType", "back-end;back-end", "front-end;;", "back-end")

	got, err := MultiAnswer(ds, "DevType", "", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Respondents)
	assert.Equal(t, []LabelShare{
		{Label: "back-end", Count: 3, Share: 1},
		{Label: "front-end", Count: 1, Share: 1.0 / 3.0},
	}, got.Shares)
}

func TestMultiAnswerSharesMayExceedOne(t *testing.T) {
	ds := column(t, "Lang", "Go;Rust;C", "Go;Rust")

	got, err := MultiAnswer(ds, "Lang", ";", 5)
	require.NoError(t, err)
	sum := 0.0
	for _, s := range got.Shares {
		sum += s.Share
	}
	assert.Greater(t, sum, 1.0)
}

func TestMultiAnswerErrors(t *testing.T) {
	ds := column(t, "Lang", "Go")
	_, err := MultiAnswer(ds, "Lang", ";", 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = MultiAnswer(ds, "Language", ";", 3)
	require.ErrorIs(t, err, ErrFieldNotFound)
}

func TestCollapseTopNConservesTotal(t *testing.T) {
	counts := []LabelCount{{"a", 9}, {"b", 7}, {"c", 3}, {"d", 3}, {"e", 1}}
	for n := 1; n <= 6; n++ {
		got := CollapseTopN(counts, n)
		assert.Equal(t, Total(counts), Total(got), "n=%d", n)
	}
	assert.Equal(t, []LabelCount{{"a", 9}, {OtherLabel, 14}}, CollapseTopN(counts, 1))
}

func TestSharesZeroDenominatorIsNaN(t *testing.T) {
	got := Shares([]LabelCount{{"a", 0}}, 0)
	assert.True(t, math.IsNaN(got[0].Share))
}
