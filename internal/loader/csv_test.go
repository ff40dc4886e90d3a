package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const surveyCSV = "Respondent,Country,LanguageWorkedWith,YearsCodePro,ConvertedComp\n" +
	"1,Norway,\"Python;Go\",Less than 1 year,61000\n" +
	"2,India,Go,12,NA\n" +
	"3,,\"\",More than 50 years,\n" +
	"4,Chile,Python,3,32000\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSVMissingTokens(t *testing.T) {
	ds, err := Load(writeFile(t, "survey_results_public.csv", surveyCSV), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "survey_results_public.csv", ds.Name)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"Respondent", "Country", "LanguageWorkedWith", "YearsCodePro", "ConvertedComp"}, ds.Fields())

	comp, err := ds.Column("ConvertedComp")
	require.NoError(t, err)
	assert.False(t, comp[0].IsMissing())
	assert.True(t, comp[1].IsMissing(), "NA is missing")
	assert.True(t, comp[2].IsMissing(), "empty is missing")

	got, err := survey.MultiAnswer(ds, "LanguageWorkedWith", ";", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Respondents)
}

func TestLoadCSVSniffsSemicolon(t *testing.T) {
	p := writeFile(t, "rates.csv", "Date;Rate\n2019-01-01;66,5\n2019-01-02;67\n")
	ds, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Rate"}, ds.Fields())
	assert.Equal(t, 2, ds.Len())
}

func TestLoadTSVAndBOM(t *testing.T) {
	p := writeFile(t, "data.tsv", "\ufeffCountry\tAge\nNorway\t30\n")
	ds, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, ds.HasField("Country"))
	v, err := ds.Value(0, "Age")
	require.NoError(t, err)
	assert.Equal(t, "30", v.String())
}

func TestLoadCSVColumnsAndShortRows(t *testing.T) {
	p := writeFile(t, "s.csv", "a,b,c\n1,2,3\n4\n")
	opt := DefaultOptions()
	opt.MissingTokens = nil
	opt.Columns = []string{"c", "a"}

	ds, err := Load(p, opt)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ds.Fields())
	v, err := ds.Value(1, "c")
	require.NoError(t, err)
	assert.True(t, v.IsMissing(), "padded cell is missing")
	v, err = ds.Value(1, "a")
	require.NoError(t, err)
	assert.Equal(t, "4", v.String())

	opt.Columns = []string{"z"}
	_, err = Load(p, opt)
	require.ErrorIs(t, err, survey.ErrFieldNotFound)
}

func TestLoadCSVMaxRowsLogsWarning(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	opt := DefaultOptions()
	opt.MaxRows = 2
	opt.Logger = zap.New(core)

	ds, err := Load(writeFile(t, "s.csv", surveyCSV), opt)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 1, logs.FilterMessage("row limit reached").Len())
	assert.Equal(t, 1, logs.FilterMessage("dataset loaded").Len())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "empty.csv", ""), DefaultOptions())
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = Load(writeFile(t, "notes.docx", "x"), DefaultOptions())
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "open csv"))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("a,b\n"), "inline", ',', DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.Fields())
}
