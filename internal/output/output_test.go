package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mitoseqfix/pkg/api"
)

func TestToAPI(t *testing.T) {
	v := ToAPI(Result{ID: "x", InputLen: 5, Repaired: "ACGTA", Changes: 2, Damaged: true})
	assert.True(t, v.Success)
	assert.Equal(t, 5, v.InputLen)
	assert.Equal(t, 5, v.OutputLen)
	assert.Equal(t, 2, v.Changes)
	assert.Equal(t, "x", v.ID)
	require.NotNil(t, v.Damaged)
	assert.True(t, *v.Damaged)
}

func TestWriteFASTAFallbackHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFASTA(&buf, Result{Repaired: "ACGT"}))
	assert.Equal(t, ">repaired\nACGT\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteFASTA(&buf, Result{ID: "id1", Repaired: ""}))
	assert.Equal(t, ">id1\n\n", buf.String())
}

func TestWriteReportText(t *testing.T) {
	rep := api.EvalReportV1{
		Dataset:       "test.csv",
		Samples:       3,
		Overall:       0.5,
		WindowSize:    1024,
		WindowOverlap: 256,
		ByDamageType: []api.DamageTypeV1{
			{DamageType: "deamination", Samples: 2, Accuracy: 0.25},
			{DamageType: "gap", Samples: 1, Accuracy: 1},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReportText(&buf, rep))
	out := buf.String()
	assert.Contains(t, out, "test.csv")
	assert.Contains(t, out, "deamination")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "50.0%")
}

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePretty(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	var m map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, 1, m["a"])
}

func TestNewResult(t *testing.T) {
	r := NewResult("id", "id desc", "acGN", "ACGT")
	assert.Equal(t, 4, r.InputLen)
	assert.Equal(t, 3, r.Changes)
	assert.True(t, r.Damaged)
	assert.Equal(t, "id desc", r.Header)

	r = NewResult("", "", "ACGT", "ACGT")
	assert.Zero(t, r.Changes)
	assert.False(t, r.Damaged)
}

func TestNewResultCountsCharacters(t *testing.T) {
	r := NewResult("", "", "éACGT", "NACGT")
	assert.Equal(t, 5, r.InputLen)
	assert.Equal(t, 1, r.Changes)
	assert.Equal(t, 5, ToAPI(r).OutputLen)
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePretty(&buf, NewResult("", "chrM partial", "aN", "AC")))
	assert.Equal(t, "# chrM partial  length=2  changed=2\n# in  1 aN\n#       ¦\n# out 1 AC\n\n", buf.String())
}
