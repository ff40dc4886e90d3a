package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDatesWithLayout(t *testing.T) {
	ds := column(t, "Date", "20190109", "2019-01-10", "", "20190111")
	n, err := NormalizeDates(ds, "Date", "20060102")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	col, err := ds.Column("Date")
	require.NoError(t, err)
	assert.Equal(t, "2019-01-09", col[0].String())
	assert.Equal(t, "2019-01-10", col[1].String())
	assert.True(t, col[2].IsMissing())
	assert.Equal(t, "2019-01-11", col[3].String())

	n, err = NormalizeDates(ds, "Date", "20060102")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "second pass changes nothing")
}

func TestNormalizeDatesFailFastLeavesColumn(t *testing.T) {
	ds := column(t, "Date", "20190109", "yesterday")
	_, err := NormalizeDates(ds, "Date", "20060102")
	require.ErrorIs(t, err, ErrInvalidValue)
	v, err := ds.Value(0, "Date")
	require.NoError(t, err)
	assert.Equal(t, "20190109", v.String())

	_, err = NormalizeDates(ds, "When")
	require.ErrorIs(t, err, ErrFieldNotFound)
}

func TestFormatDateKeepsTimeOfDay(t *testing.T) {
	assert.Equal(t, "2019-01-09", FormatDate(time.Date(2019, 1, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2019-01-09 13:30:00", FormatDate(time.Date(2019, 1, 9, 13, 30, 0, 0, time.UTC)))
}
