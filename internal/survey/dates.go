package survey

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical text form of a date key.
const DateLayout = "2006-01-02"

const dateTimeLayout = "2006-01-02 15:04:05"

// NormalizeDates rewrites field in place so every non-missing cell holds
// its date in DateLayout (or "2006-01-02 15:04:05" when a time of day is
// present). Cells already in canonical form are kept; others are parsed
// with layouts in order. The first cell no layout can read aborts the pass
// with ErrInvalidValue and the column is left untouched. It returns the
// number of cells rewritten.
func NormalizeDates(ds *Dataset, field string, layouts ...string) (int, error) {
	j, err := ds.col(field)
	if err != nil {
		return 0, err
	}
	candidates := append([]string{DateLayout, dateTimeLayout}, layouts...)
	next := make([]Value, len(ds.rows))
	changed := 0
	for i, r := range ds.rows {
		v := r[j]
		if v.IsMissing() {
			continue
		}
		t, ok := parseDate(v.String(), candidates)
		if !ok {
			return 0, &ValueError{Field: field, Row: i, Value: v.String(), Err: ErrInvalidValue}
		}
		s := FormatDate(t)
		if s != v.String() {
			changed++
		}
		next[i] = Text(s)
	}
	for i, r := range ds.rows {
		r[j] = next[i]
	}
	return changed, nil
}

// FormatDate renders t in DateLayout, keeping the time of day if it is
// not midnight. Sub-second noise from spreadsheet serials is rounded away.
func FormatDate(t time.Time) string {
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(dateTimeLayout)
}

// ParseDate reads s in canonical form or with one of layouts.
func ParseDate(s string, layouts ...string) (time.Time, error) {
	t, ok := parseDate(s, append([]string{DateLayout, dateTimeLayout}, layouts...))
	if !ok {
		return time.Time{}, fmt.Errorf("date %q matches none of %v: %w", s, layouts, ErrInvalidValue)
	}
	return t, nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
