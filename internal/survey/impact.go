package survey

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// MeanStat is a mean over N rows. Mean is NaN when N is 0.
type MeanStat struct {
	Mean float64 `json:"mean"`
	N    int     `json:"n"`
}

// Defined reports whether at least one row contributed.
func (m MeanStat) Defined() bool { return m.N > 0 }

// Impact compares valueField between respondents who mentioned Option in a
// multi-answer field and those who did not.
type Impact struct {
	Field   string   `json:"field"`
	Option  string   `json:"option"`
	Value   string   `json:"value"`
	With    MeanStat `json:"with"`
	Without MeanStat `json:"without"`
}

// Difference returns With.Mean - Without.Mean, or NaN if either side is
// undefined.
func (im *Impact) Difference() float64 {
	if !im.With.Defined() || !im.Without.Defined() {
		return math.NaN()
	}
	return im.With.Mean - im.Without.Mean
}

// OptionImpact splits rows where both multiField and valueField are present
// by whether the multi-answer text contains option (substring match, so
// "full-stack" matches "Developer, full-stack") and averages valueField on
// each side.
func OptionImpact(ds *Dataset, multiField, option, valueField string) (*Impact, error) {
	if option == "" {
		return nil, invalidArg("option must not be empty")
	}
	mj, err := ds.col(multiField)
	if err != nil {
		return nil, err
	}
	vj, err := ds.col(valueField)
	if err != nil {
		return nil, err
	}
	var with, without []float64
	for i, r := range ds.rows {
		m, v := r[mj], r[vj]
		if m.IsMissing() || v.IsMissing() {
			continue
		}
		x, ok := v.Float()
		if !ok {
			return nil, &ValueError{Field: valueField, Row: i, Value: v.String(), Err: ErrInvalidValue}
		}
		if strings.Contains(m.String(), option) {
			with = append(with, x)
		} else {
			without = append(without, x)
		}
	}
	return &Impact{
		Field:   multiField,
		Option:  option,
		Value:   valueField,
		With:    meanOf(with),
		Without: meanOf(without),
	}, nil
}

func meanOf(xs []float64) MeanStat {
	if len(xs) == 0 {
		return MeanStat{Mean: math.NaN()}
	}
	return MeanStat{Mean: stat.Mean(xs, nil), N: len(xs)}
}
