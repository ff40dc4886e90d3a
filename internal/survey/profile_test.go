package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileInfersKinds(t *testing.T) {
	ds := table(t, []string{"Country", "Lang", "Age", "YearsCode", "Blank"},
		[]string{"Norway", "Go;Python", "30", "Less than 1 year", ""},
		[]string{"Chile", "Go", "41", "12", ""},
		[]string{"Norway", "", "", "More than 50 years", ""},
	)
	got := Profile(ds, ";", DefaultMixedNumeric())
	require.Len(t, got, 5)

	kinds := map[string]FieldKind{}
	for _, p := range got {
		kinds[p.Field] = p.Kind
	}
	assert.Equal(t, map[string]FieldKind{
		"Country":   KindSingle,
		"Lang":      KindMulti,
		"Age":       KindNumeric,
		"YearsCode": KindMixed,
		"Blank":     KindEmpty,
	}, kinds)

	assert.Equal(t, FieldProfile{Field: "Country", Kind: KindSingle, NonNull: 3, Distinct: 2}, got[0])
	assert.Equal(t, 1, got[1].Missing)
	assert.Equal(t, 3, got[4].Missing)
}
