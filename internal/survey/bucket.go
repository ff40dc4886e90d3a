package survey

import (
	"math"
	"sort"
)

// BucketResult is a boundary-ordered distribution of a continuous field.
// Excluded counts non-missing values that fell outside every interval.
type BucketResult struct {
	Buckets  []LabelCount `json:"buckets"`
	Excluded int          `json:"excluded"`
}

// Bucketize assigns each non-missing value of field to the half-open
// interval [boundaries[i-1], boundaries[i]) it falls in. Labels are
// "{lower}-{upper}". Output follows boundary order, not count order.
func Bucketize(ds *Dataset, field string, boundaries []float64) (*BucketResult, error) {
	if len(boundaries) < 2 {
		return nil, invalidArg("need at least 2 boundaries, got %d", len(boundaries))
	}
	for i := 1; i < len(boundaries); i++ {
		if !(boundaries[i] > boundaries[i-1]) {
			return nil, invalidArg("boundaries must be strictly increasing: %v then %v", boundaries[i-1], boundaries[i])
		}
	}
	values, err := numericColumn(ds, field)
	if err != nil {
		return nil, err
	}
	res := &BucketResult{Buckets: bucketLabels(boundaries)}
	for _, x := range values {
		// first boundary strictly greater than x closes x's interval
		k := sort.Search(len(boundaries), func(i int) bool { return boundaries[i] > x })
		if k == 0 || k == len(boundaries) {
			res.Excluded++
			continue
		}
		res.Buckets[k-1].Count++
	}
	return res, nil
}

// Histogram splits the observed range of field into bins equal-width
// buckets. The last bucket is closed on the right so the maximum is counted.
func Histogram(ds *Dataset, field string, bins int) (*BucketResult, error) {
	if bins <= 0 {
		return nil, invalidArg("bins must be positive, got %d", bins)
	}
	values, err := numericColumn(ds, field)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, undefined(field, "no values")
	}
	lo, hi := values[0], values[0]
	for _, x := range values[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		return &BucketResult{Buckets: []LabelCount{{Label: formatFloat(lo) + "-" + formatFloat(hi), Count: len(values)}}}, nil
	}
	width := (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi
	res := &BucketResult{Buckets: bucketLabels(roundEdges(edges, width))}
	for _, x := range values {
		k := int((x - lo) / width)
		if k >= bins {
			k = bins - 1
		}
		res.Buckets[k].Count++
	}
	return res, nil
}

func bucketLabels(edges []float64) []LabelCount {
	out := make([]LabelCount, len(edges)-1)
	for i := 1; i < len(edges); i++ {
		out[i-1] = LabelCount{Label: formatFloat(edges[i-1]) + "-" + formatFloat(edges[i])}
	}
	return out
}

// roundEdges trims float noise from computed edges for labelling only. At
// least 4 decimals are kept, more when the bin width needs them to keep
// neighbouring edges apart.
func roundEdges(edges []float64, width float64) []float64 {
	places := 4
	if p := int(math.Ceil(-math.Log10(width))) + 2; p > places {
		places = min(p, 15)
	}
	scale := math.Pow(10, float64(places))
	out := make([]float64, len(edges))
	for i, e := range edges {
		out[i] = math.Round(e*scale) / scale
	}
	return out
}
