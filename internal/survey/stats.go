package survey

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// GroupStat is the mean of a value field within one group.
type GroupStat struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Correlation is a Pearson coefficient over N paired rows. R is NaN when
// the coefficient is undefined.
type Correlation struct {
	R float64 `json:"r"`
	N int     `json:"n"`
}

// Defined reports whether R carries a usable coefficient.
func (c Correlation) Defined() bool { return !math.IsNaN(c.R) }

// NumericSummary describes one continuous field.
type NumericSummary struct {
	Field  string  `json:"field"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// GroupMean partitions rows by groupField and averages valueField in each
// group, dropping rows missing either field. Groups are ordered by
// descending mean; ties keep first-seen order.
func GroupMean(ds *Dataset, groupField, valueField string) ([]GroupStat, error) {
	gj, err := ds.col(groupField)
	if err != nil {
		return nil, err
	}
	vj, err := ds.col(valueField)
	if err != nil {
		return nil, err
	}
	buckets := map[string][]float64{}
	var order []string
	for i, r := range ds.rows {
		g, v := r[gj], r[vj]
		if g.IsMissing() || v.IsMissing() {
			continue
		}
		x, ok := v.Float()
		if !ok {
			return nil, &ValueError{Field: valueField, Row: i, Value: v.String(), Err: ErrInvalidValue}
		}
		key := g.String()
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], x)
	}
	out := make([]GroupStat, len(order))
	for i, key := range order {
		xs := buckets[key]
		out[i] = GroupStat{Label: key, Mean: stat.Mean(xs, nil), Count: len(xs)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out, nil
}

// Correlate computes the Pearson coefficient between fields a and b over
// rows where both are present. Fewer than 2 rows or a constant field yields
// ErrUndefinedStatistic with N still reported.
func Correlate(ds *Dataset, a, b string) (Correlation, error) {
	xs, ys, err := numericPairs(ds, a, b)
	if err != nil {
		return Correlation{R: math.NaN()}, err
	}
	c := Correlation{R: math.NaN(), N: len(xs)}
	if c.N < 2 {
		return c, undefined(a+"~"+b, "fewer than 2 paired rows")
	}
	if stat.Variance(xs, nil) == 0 {
		return c, undefined(a, "zero variance")
	}
	if stat.Variance(ys, nil) == 0 {
		return c, undefined(b, "zero variance")
	}
	r := stat.Correlation(xs, ys, nil)
	c.R = math.Max(-1, math.Min(1, r))
	return c, nil
}

// GroupCorrelation is Correlate restricted to rows where groupField equals
// groupValue.
func GroupCorrelation(ds *Dataset, groupField, a, b, groupValue string) (Correlation, error) {
	gj, err := ds.col(groupField)
	if err != nil {
		return Correlation{R: math.NaN()}, err
	}
	subset := ds.Filter(func(r Row) bool {
		g := r.ds.rows[r.idx][gj]
		return !g.IsMissing() && g.String() == groupValue
	})
	return Correlate(subset, a, b)
}

// Median returns the median of the non-missing values of field.
func Median(ds *Dataset, field string) (float64, error) {
	xs, err := numericColumn(ds, field)
	if err != nil {
		return math.NaN(), err
	}
	if len(xs) == 0 {
		return math.NaN(), undefined(field, "no values")
	}
	return stats.Median(xs)
}

// Describe summarizes the non-missing values of field.
func Describe(ds *Dataset, field string) (NumericSummary, error) {
	s := NumericSummary{Field: field}
	xs, err := numericColumn(ds, field)
	if err != nil {
		return s, err
	}
	s.Count = len(xs)
	if s.Count == 0 {
		return s, undefined(field, "no values")
	}
	s.Mean = stat.Mean(xs, nil)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	data := stats.Float64Data(xs)
	if s.Min, err = data.Min(); err != nil {
		return s, err
	}
	if s.Max, err = data.Max(); err != nil {
		return s, err
	}
	if s.Median, err = data.Median(); err != nil {
		return s, err
	}
	if s.Q1, err = data.Percentile(25); err != nil {
		return s, err
	}
	if s.Q3, err = data.Percentile(75); err != nil {
		return s, err
	}
	return s, nil
}

// numericColumn returns the non-missing values of field as floats.
func numericColumn(ds *Dataset, field string) ([]float64, error) {
	col, err := ds.Column(field)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(col))
	for i, v := range col {
		if v.IsMissing() {
			continue
		}
		x, ok := v.Float()
		if !ok {
			return nil, &ValueError{Field: field, Row: i, Value: v.String(), Err: ErrInvalidValue}
		}
		out = append(out, x)
	}
	return out, nil
}

// numericPairs returns aligned values of a and b from rows where both are present.
func numericPairs(ds *Dataset, a, b string) ([]float64, []float64, error) {
	aj, err := ds.col(a)
	if err != nil {
		return nil, nil, err
	}
	bj, err := ds.col(b)
	if err != nil {
		return nil, nil, err
	}
	var xs, ys []float64
	for i, r := range ds.rows {
		va, vb := r[aj], r[bj]
		if va.IsMissing() || vb.IsMissing() {
			continue
		}
		x, ok := va.Float()
		if !ok {
			return nil, nil, &ValueError{Field: a, Row: i, Value: va.String(), Err: ErrInvalidValue}
		}
		y, ok := vb.Float()
		if !ok {
			return nil, nil, &ValueError{Field: b, Row: i, Value: vb.String(), Err: ErrInvalidValue}
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

func ratio(n, d int) float64 {
	if d == 0 {
		return math.NaN()
	}
	return float64(n) / float64(d)
}
