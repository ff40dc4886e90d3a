package survey

import "strings"

// MixedNumeric configures how a mixed text/numeric field is turned into
// numbers. The two sentinel phrases stand in for clamped boundaries.
type MixedNumeric struct {
	UnderToken string
	UnderValue float64
	OverToken  string
	OverValue  float64
	// Lenient turns unparseable values into missing instead of failing.
	Lenient bool
}

// DefaultMixedNumeric matches the developer-survey experience columns.
func DefaultMixedNumeric() MixedNumeric {
	return MixedNumeric{
		UnderToken: "Less than 1 year",
		UnderValue: 0.5,
		OverToken:  "More than 50 years",
		OverValue:  51,
	}
}

// NormalizeStats summarizes one normalization pass.
type NormalizeStats struct {
	Converted int // text cells rewritten as numbers (sentinels included)
	Sentinels int // cells that matched one of the two sentinel phrases
	Coerced   int // unparseable cells turned into missing (lenient only)
}

// Resolve maps one raw cell to its numeric form under m. ok is false when
// the cell is neither a sentinel nor a number.
func (m MixedNumeric) Resolve(v Value) (out Value, sentinel, ok bool) {
	if v.IsMissing() || v.IsNumber() {
		return v, false, true
	}
	s := strings.TrimSpace(v.String())
	switch {
	case m.UnderToken != "" && s == m.UnderToken:
		return Number(m.UnderValue), true, true
	case m.OverToken != "" && s == m.OverToken:
		return Number(m.OverValue), true, true
	}
	if f, isNum := v.Float(); isNum {
		return Number(f), false, true
	}
	return v, false, false
}

// NormalizeMixedNumeric rewrites field in place so every non-missing cell
// holds a number. In fail-fast mode the first unreadable cell aborts the
// pass and the column is left untouched. Running it again on a normalized
// column changes nothing.
func NormalizeMixedNumeric(ds *Dataset, field string, m MixedNumeric) (NormalizeStats, error) {
	var st NormalizeStats
	j, err := ds.col(field)
	if err != nil {
		return st, err
	}
	next := make([]Value, len(ds.rows))
	for i, r := range ds.rows {
		v := r[j]
		out, sentinel, ok := m.Resolve(v)
		if !ok {
			if !m.Lenient {
				return NormalizeStats{}, &ValueError{Field: field, Row: i, Value: v.String(), Err: ErrInvalidValue}
			}
			st.Coerced++
			next[i] = Missing()
			continue
		}
		if !v.IsNumber() && !v.IsMissing() {
			st.Converted++
		}
		if sentinel {
			st.Sentinels++
		}
		next[i] = out
	}
	for i, r := range ds.rows {
		r[j] = next[i]
	}
	return st, nil
}
