package survey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// table builds a dataset from string rows; empty cells are missing.
func table(t *testing.T, fields []string, rows ...[]string) *Dataset {
	t.Helper()
	ds, err := NewDataset(fields...)
	require.NoError(t, err)
	for _, r := range rows {
		row := make([]Value, len(r))
		for i, c := range r {
			if c != "" {
				row[i] = Text(c)
			}
		}
		require.NoError(t, ds.Append(row...))
	}
	return ds
}

// column builds a single-field dataset.
func column(t *testing.T, field string, cells ...string) *Dataset {
	t.Helper()
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c}
	}
	return table(t, []string{field}, rows...)
}

func TestValueKinds(t *testing.T) {
	assert.True(t, Missing().IsMissing())
	assert.True(t, Value{}.IsMissing())

	f, ok := Text(" 42.5 ").Float()
	assert.True(t, ok)
	assert.Equal(t, 42.5, f)

	_, ok = Text("Less than 1 year").Float()
	assert.False(t, ok)
	_, ok = Text("NaN").Float()
	assert.False(t, ok, "NaN text is not a usable number")

	assert.Equal(t, "51", Number(51).String())
	assert.Equal(t, "0.5", Number(0.5).String())
	assert.Equal(t, "", Missing().String())
}

func TestNewDatasetRejectsDuplicateFields(t *testing.T) {
	_, err := NewDataset("a", "b", "a")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAppendPadsShortRowsAndRejectsLongRows(t *testing.T) {
	ds, err := NewDataset("a", "b")
	require.NoError(t, err)
	require.NoError(t, ds.Append(Text("x")))
	v, err := ds.Value(0, "b")
	require.NoError(t, err)
	assert.True(t, v.IsMissing())

	err = ds.Append(Text("1"), Text("2"), Text("3"))
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, ds.Len())
}

func TestColumnUnknownField(t *testing.T) {
	ds := column(t, "Country", "Norway")
	_, err := ds.Column("Continent")
	require.ErrorIs(t, err, ErrFieldNotFound)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Continent", fe.Field)
}

func TestFilterKeepsSchemaAndSelectsRows(t *testing.T) {
	ds := table(t, []string{"Country", "Age"},
		[]string{"Norway", "30"},
		[]string{"Chile", "41"},
		[]string{"Norway", "25"},
	)
	sub := ds.Filter(func(r Row) bool { return r.Get("Country").String() == "Norway" })
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, ds.Fields(), sub.Fields())

	v, err := sub.Value(1, "Age")
	require.NoError(t, err)
	assert.Equal(t, "25", v.String())
	assert.True(t, Row{ds: ds}.Get("Nope").IsMissing())
}
