package survey

import "strings"

// FieldKind is the inferred semantic kind of a field.
type FieldKind string

const (
	KindEmpty   FieldKind = "empty"
	KindNumeric FieldKind = "numeric"
	KindMixed   FieldKind = "mixed"
	KindMulti   FieldKind = "multi"
	KindSingle  FieldKind = "single"
)

// FieldProfile describes one field of a dataset.
type FieldProfile struct {
	Field    string    `json:"field"`
	Kind     FieldKind `json:"kind"`
	NonNull  int       `json:"non_null"`
	Missing  int       `json:"missing"`
	Distinct int       `json:"distinct"`
}

// Profile infers the kind of every field. A field is numeric when every
// present value parses as a number, mixed when the only non-numeric values
// are the sentinel phrases of m, multi when any value contains delimiter,
// and single otherwise.
func Profile(ds *Dataset, delimiter string, m MixedNumeric) []FieldProfile {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	out := make([]FieldProfile, 0, len(ds.fields))
	for j, name := range ds.fields {
		p := FieldProfile{Field: name}
		distinct := map[string]struct{}{}
		var numeric, sentinel, multi int
		for _, r := range ds.rows {
			v := r[j]
			if v.IsMissing() {
				p.Missing++
				continue
			}
			p.NonNull++
			s := v.String()
			distinct[s] = struct{}{}
			if _, ok := v.Float(); ok {
				numeric++
				continue
			}
			if _, isSentinel, ok := m.Resolve(v); ok && isSentinel {
				sentinel++
				continue
			}
			if strings.Contains(s, delimiter) {
				multi++
			}
		}
		p.Distinct = len(distinct)
		switch {
		case p.NonNull == 0:
			p.Kind = KindEmpty
		case numeric == p.NonNull:
			p.Kind = KindNumeric
		case numeric+sentinel == p.NonNull:
			p.Kind = KindMixed
		case multi > 0:
			p.Kind = KindMulti
		default:
			p.Kind = KindSingle
		}
		out = append(out, p)
	}
	return out
}
