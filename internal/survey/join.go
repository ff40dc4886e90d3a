package survey

import "strconv"

// RightSuffix is appended to right-hand field names that collide with the
// left-hand schema in Join. Further collisions get a counter: "_right2", ...
const RightSuffix = "_right"

// Join returns the inner join of left and right, matching left's leftKey
// against right's rightKey by text. The output keeps leftKey and drops
// rightKey. Output rows follow left row order; a left row matching several
// right rows yields one output row per match. Rows with a missing key never
// match.
func Join(left, right *Dataset, leftKey, rightKey string) (*Dataset, error) {
	lk, err := left.col(leftKey)
	if err != nil {
		return nil, err
	}
	rk, err := right.col(rightKey)
	if err != nil {
		return nil, err
	}
	fields := left.Fields()
	taken := make(map[string]bool, len(fields)+len(right.fields))
	for _, f := range fields {
		taken[f] = true
	}
	var rightCols []int
	for j, f := range right.fields {
		if j == rk {
			continue
		}
		name := f
		for n := 1; taken[name]; n++ {
			name = f + RightSuffix
			if n > 1 {
				name += strconv.Itoa(n)
			}
		}
		taken[name] = true
		fields = append(fields, name)
		rightCols = append(rightCols, j)
	}
	out, err := NewDataset(fields...)
	if err != nil {
		return nil, err
	}
	out.Name = left.Name
	index := map[string][]int{}
	for i, r := range right.rows {
		if k := r[rk]; !k.IsMissing() {
			index[k.String()] = append(index[k.String()], i)
		}
	}
	for _, l := range left.rows {
		k := l[lk]
		if k.IsMissing() {
			continue
		}
		for _, ri := range index[k.String()] {
			row := make([]Value, 0, len(fields))
			row = append(row, l...)
			for _, j := range rightCols {
				row = append(row, right.rows[ri][j])
			}
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}
