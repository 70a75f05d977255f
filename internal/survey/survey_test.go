package survey

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dhunton/nsfg"
	"github.com/dhunton/nsfg/internal/synth"
)

// numeric builds a numeric Series; nil values are missing.
func numeric(name string, vals ...interface{}) *nsfg.Series {
	x := make([]float64, len(vals))
	miss := make([]bool, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case nil:
			miss[i] = true
		case int:
			x[i] = float64(v)
		case float64:
			x[i] = v
		default:
			panic("numeric: bad value")
		}
	}
	s, err := nsfg.NewSeries(name, x, miss)
	if err != nil {
		panic(err)
	}
	return s
}

func dataset(t *testing.T, name string, cols ...*nsfg.Series) *nsfg.Dataset {
	t.Helper()
	ds, err := nsfg.NewDataset(name, cols)
	require.NoError(t, err)
	return ds
}

// values returns a numeric column with nil standing in for missing
// values.
func values(t *testing.T, ds *nsfg.Dataset, name string) []interface{} {
	t.Helper()
	s, err := ds.Column(name)
	require.NoError(t, err)
	out := make([]interface{}, s.Length())
	for i := range out {
		if v, ok := s.Float(i); ok {
			out[i] = v
		}
	}
	return out
}

// readSynth writes the synthetic tables to a temporary directory and
// reads them back through the table readers.
func readSynth(t *testing.T, resp, preg *synth.Table) (*nsfg.Dataset, *nsfg.Dataset) {
	t.Helper()
	dir := t.TempDir()
	logger := zaptest.NewLogger(t)

	rdct, rdat, err := resp.WriteFiles(dir, true)
	require.NoError(t, err)
	pdct, pdat, err := preg.WriteFiles(dir, true)
	require.NoError(t, err)

	r, err := ReadFemResp(rdct, rdat, -1, logger)
	require.NoError(t, err)
	p, err := ReadFemPreg(pdct, pdat, DefaultPregRules(), logger)
	require.NoError(t, err)

	return r, p
}
