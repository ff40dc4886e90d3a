package survey

import (
	"sort"
	"strings"
)

// OtherLabel names the synthetic bucket that absorbs labels beyond the top N.
const OtherLabel = "Other"

// DefaultDelimiter joins answers in multi-choice fields.
const DefaultDelimiter = ";"

// LabelCount is one entry of a count-ordered or boundary-ordered distribution.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelShare is a count together with its share of a denominator.
type LabelShare struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// MultiAnswerResult is the distribution of a delimiter-joined field.
// Shares are "fraction of respondents who mentioned the option" and need
// not sum to 1.
type MultiAnswerResult struct {
	Respondents int          `json:"respondents"`
	Shares      []LabelShare `json:"shares"`
}

// SingleAnswer counts the distinct labels of field, orders them by
// descending count (ties keep first-seen order) and collapses everything
// past topN into "Other". No "Other" entry is produced when nothing was
// collapsed.
func SingleAnswer(ds *Dataset, field string, topN int) ([]LabelCount, error) {
	if topN <= 0 {
		return nil, invalidArg("top-n must be positive, got %d", topN)
	}
	counts, _, err := Frequencies(ds, field)
	if err != nil {
		return nil, err
	}
	return CollapseTopN(counts, topN), nil
}

// Frequencies returns every distinct label of field ordered by descending
// count, and the number of non-missing rows.
func Frequencies(ds *Dataset, field string) ([]LabelCount, int, error) {
	col, err := ds.Column(field)
	if err != nil {
		return nil, 0, err
	}
	acc := newCounter()
	n := 0
	for _, v := range col {
		if v.IsMissing() {
			continue
		}
		n++
		acc.add(v.String())
	}
	return acc.sorted(), n, nil
}

// MultiAnswer splits each non-missing value of field on delimiter, counts
// every fragment (repeats within a row count again) and expresses the top
// N labels plus "Other" as shares of the respondents who answered.
func MultiAnswer(ds *Dataset, field, delimiter string, topN int) (*MultiAnswerResult, error) {
	if topN <= 0 {
		return nil, invalidArg("top-n must be positive, got %d", topN)
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	col, err := ds.Column(field)
	if err != nil {
		return nil, err
	}
	acc := newCounter()
	respondents := 0
	for _, v := range col {
		if v.IsMissing() {
			continue
		}
		respondents++
		for _, label := range splitAnswers(v.String(), delimiter) {
			acc.add(label)
		}
	}
	collapsed := CollapseTopN(acc.sorted(), topN)
	return &MultiAnswerResult{
		Respondents: respondents,
		Shares:      Shares(collapsed, respondents),
	}, nil
}

// CollapseTopN keeps the first n entries of an already ordered distribution
// and merges the rest into a trailing "Other" entry. The total count is
// conserved. n <= 0 keeps everything.
func CollapseTopN(counts []LabelCount, n int) []LabelCount {
	if n <= 0 || len(counts) <= n {
		out := make([]LabelCount, len(counts))
		copy(out, counts)
		return out
	}
	out := make([]LabelCount, n, n+1)
	copy(out, counts[:n])
	other := 0
	for _, c := range counts[n:] {
		other += c.Count
	}
	return append(out, LabelCount{Label: OtherLabel, Count: other})
}

// Shares divides each count by denominator. A zero denominator yields NaN
// shares rather than zeros.
func Shares(counts []LabelCount, denominator int) []LabelShare {
	out := make([]LabelShare, len(counts))
	for i, c := range counts {
		out[i] = LabelShare{Label: c.Label, Count: c.Count, Share: ratio(c.Count, denominator)}
	}
	return out
}

// Total sums the counts of a distribution.
func Total(counts []LabelCount) int {
	t := 0
	for _, c := range counts {
		t += c.Count
	}
	return t
}

func splitAnswers(s, delimiter string) []string {
	parts := strings.Split(s, delimiter)
	out := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// counter tallies labels and remembers first-seen order for tie breaks.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *counter) sorted() []LabelCount {
	out := make([]LabelCount, len(c.order))
	for i, l := range c.order {
		out[i] = LabelCount{Label: l, Count: c.counts[l]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
