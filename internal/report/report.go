// Package report turns survey results into titled tables that can be
// printed to a terminal, written as Markdown, or exported as JSON series.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/google/uuid"
)

// Undefined is printed in place of a statistic that could not be computed.
const Undefined = "undefined"

// Kind names the result a report was built from.
type Kind string

const (
	KindCounts      Kind = "counts"
	KindShares      Kind = "shares"
	KindBuckets     Kind = "buckets"
	KindGroupMeans  Kind = "group_means"
	KindCorrelation Kind = "correlation"
	KindImpact      Kind = "impact"
	KindProfile     Kind = "profile"
	KindSummary     Kind = "summary"
)

// Point is one label/value pair of a chartable series. Value is nil when
// the statistic is undefined.
type Point struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// Report is a rendered-ready result table.
type Report struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Source    string     `json:"source,omitempty"`
	Kind      Kind       `json:"kind"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Series    []Point    `json:"series,omitempty"`
	Notes     []string   `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// New creates an empty report with a fresh ID.
func New(kind Kind, title, source string, columns ...string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Title:     title,
		Source:    source,
		Kind:      kind,
		Columns:   columns,
		Rows:      [][]string{},
		CreatedAt: time.Now().UTC(),
	}
}

// AddRow appends a table row.
func (r *Report) AddRow(cells ...string) {
	r.Rows = append(r.Rows, cells)
}

// AddPoint appends a series point; NaN is stored as undefined.
func (r *Report) AddPoint(label string, v float64) {
	p := Point{Label: label}
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		p.Value = &v
	}
	r.Series = append(r.Series, p)
}

// Notef appends a free-form note line.
func (r *Report) Notef(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Number formats a statistic for display. NaN and infinities render as
// Undefined; whole numbers print without decimals, others with at most four.
func Number(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Undefined
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Percent formats a 0..1 share as a percentage with one decimal.
func Percent(share float64) string {
	if math.IsNaN(share) || math.IsInf(share, 0) {
		return Undefined
	}
	return strconv.FormatFloat(share*100, 'f', 1, 64) + "%"
}

// Counts reports a frequency distribution.
func Counts(title, source string, counts []survey.LabelCount) *Report {
	r := New(KindCounts, title, source, "Label", "Count")
	for _, c := range counts {
		r.AddRow(c.Label, strconv.Itoa(c.Count))
		r.AddPoint(c.Label, float64(c.Count))
	}
	r.Notef("Total: %d", survey.Total(counts))
	return r
}

// Shares reports counts with their share of respondents.
func Shares(title, source string, shares []survey.LabelShare, respondents int) *Report {
	r := New(KindShares, title, source, "Label", "Count", "Share")
	for _, s := range shares {
		r.AddRow(s.Label, strconv.Itoa(s.Count), Percent(s.Share))
		r.AddPoint(s.Label, s.Share)
	}
	r.Notef("Respondents: %d", respondents)
	return r
}

// Buckets reports a bucketed distribution.
func Buckets(title, source string, res *survey.BucketResult) *Report {
	r := New(KindBuckets, title, source, "Bucket", "Count")
	for _, b := range res.Buckets {
		r.AddRow(b.Label, strconv.Itoa(b.Count))
		r.AddPoint(b.Label, float64(b.Count))
	}
	if res.Excluded > 0 {
		r.Notef("Excluded (outside all buckets): %d", res.Excluded)
	}
	return r
}

// GroupMeans reports per-group means. A non-NaN median of the whole value
// column is added as a reference line.
func GroupMeans(title, source string, stats []survey.GroupStat, median float64) *Report {
	r := New(KindGroupMeans, title, source, "Group", "Mean", "Count")
	for _, g := range stats {
		r.AddRow(g.Label, Number(g.Mean), strconv.Itoa(g.Count))
		r.AddPoint(g.Label, g.Mean)
	}
	if !math.IsNaN(median) {
		r.Notef("Median: %s", Number(median))
	}
	return r
}

// CorrelationReport reports a Pearson coefficient between fields a and b.
func CorrelationReport(title, source, a, b string, c survey.Correlation) *Report {
	r := New(KindCorrelation, title, source, "Field A", "Field B", "r", "N")
	r.AddRow(a, b, Number(c.R), strconv.Itoa(c.N))
	r.AddPoint(a+" ~ "+b, c.R)
	if !c.Defined() {
		r.Notef("Correlation is undefined for %d paired values", c.N)
	}
	return r
}

// ImpactReport compares value means with and without a selected option.
func ImpactReport(title, source string, im *survey.Impact) *Report {
	r := New(KindImpact, title, source, "Group", "Mean "+im.Value, "N")
	with := "with " + im.Option
	without := "without " + im.Option
	r.AddRow(with, Number(im.With.Mean), strconv.Itoa(im.With.N))
	r.AddRow(without, Number(im.Without.Mean), strconv.Itoa(im.Without.N))
	r.AddPoint(with, im.With.Mean)
	r.AddPoint(without, im.Without.Mean)
	r.Notef("Difference: %s", Number(im.Difference()))
	return r
}

// ProfileReport lists the inferred kind of every field.
func ProfileReport(source string, rows int, profiles []survey.FieldProfile) *Report {
	r := New(KindProfile, "Dataset profile", source, "Field", "Kind", "Non-null", "Missing", "Distinct")
	for _, p := range profiles {
		r.AddRow(p.Field, string(p.Kind), strconv.Itoa(p.NonNull), strconv.Itoa(p.Missing), strconv.Itoa(p.Distinct))
	}
	r.Notef("Rows: %d", rows)
	r.Notef("Fields: %d", len(profiles))
	return r
}

// SummaryReport lists descriptive statistics of numeric fields.
func SummaryReport(source string, sums []survey.NumericSummary) *Report {
	r := New(KindSummary, "Numeric summary", source, "Field", "Count", "Mean", "Std", "Min", "Q1", "Median", "Q3", "Max")
	for _, s := range sums {
		r.AddRow(s.Field, strconv.Itoa(s.Count), Number(s.Mean), Number(s.StdDev),
			Number(s.Min), Number(s.Q1), Number(s.Median), Number(s.Q3), Number(s.Max))
		r.AddPoint(s.Field, s.Mean)
	}
	return r
}
