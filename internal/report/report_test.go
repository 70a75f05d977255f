package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhunton/nsfg"
	"github.com/dhunton/nsfg/internal/config"
)

func series(t *testing.T, name string, vals ...interface{}) *nsfg.Series {
	t.Helper()
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
		}
	}
	s, err := nsfg.NewSeries(name, x, miss)
	require.NoError(t, err)
	return s
}

func testData(t *testing.T) (*nsfg.Dataset, *nsfg.Dataset) {
	t.Helper()

	caseid, err := nsfg.NewSeries("caseid", []string{"1", "2"}, nil)
	require.NoError(t, err)
	resp, err := nsfg.NewDataset("2002FemResp", []*nsfg.Series{
		caseid,
		series(t, "age_r", 30, 44),
	})
	require.NoError(t, err)

	preg, err := nsfg.NewDataset("2002FemPreg", []*nsfg.Series{
		series(t, "caseid", 1, 2298, 2298, 5012, 5012),
		series(t, "outcome", 1, 1, 1, 1, 1),
		series(t, "pregordr", 1, 1, 2, 2, 1),
		series(t, "birthord", 1, 1, 2, nil, 1),
		series(t, "prglngth", 39, 40, 38, 39, 41),
		series(t, "totalwgt_lb", 7.5, 8.0, 6.0, nil, 9.0),
	})
	require.NoError(t, err)

	return resp, preg
}

func testConfig() config.ReportConfig {
	cfg := config.Default().Report
	cfg.HistogramBins = 4
	cfg.BarWidth = 10
	cfg.PoundsPerKg = 2
	cfg.Color = false
	return cfg
}

func TestExercise11(t *testing.T) {

	resp, preg := testData(t)
	var buf bytes.Buffer
	r := New(&buf, testConfig())

	require.NoError(t, r.Exercise11(resp, preg))
	out := buf.String()
	t.Logf("Report:\n%s", out)

	for _, want := range []string{
		"birthord",
		"prglngth",
		"age_r",
		"The number of nulls is: 1",
		"The mean of the weights in lb is: 7.625",
		"The mean of the weights in kg is: 3.8125",
		"The oldest respondent was 44 years old.",
		"The youngest respondent was 30 years old.",
		"Age of respondent #1: 30",
		"The pregnancy lengths for respondent #2298 are [40, 38]",
		"The weight of the first baby for respondent #5012 was 9",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")

	// The caller's table is unchanged.
	assert.False(t, preg.Has("totalwgt_kg"))
}

func TestExercise11NoRecord(t *testing.T) {

	resp, preg := testData(t)
	preg, err := nsfg.NewDataset("2002FemPreg", []*nsfg.Series{
		series(t, "caseid", 7),
		series(t, "outcome", 1),
		series(t, "pregordr", 1),
		series(t, "birthord", 1),
		series(t, "prglngth", 39),
		series(t, "totalwgt_lb", 7.5),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, testConfig()).Exercise11(resp, preg))

	assert.Contains(t, buf.String(), "no record with caseid == 2298, outcome == 1")
	assert.Contains(t, buf.String(), "no record with caseid == 5012, pregordr == 1, outcome == 1")
}

func TestExercise11MissingColumn(t *testing.T) {

	resp, _ := testData(t)
	preg, err := nsfg.NewDataset("2002FemPreg", []*nsfg.Series{series(t, "caseid", 1)})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = New(&buf, testConfig()).Exercise11(resp, preg)
	assert.ErrorIs(t, err, nsfg.ErrMissingColumn)
}

func TestExercise24(t *testing.T) {

	_, preg := testData(t)
	var buf bytes.Buffer
	require.NoError(t, New(&buf, testConfig()).Exercise24(preg))
	out := buf.String()

	for _, want := range []string{
		"totalwgt_lb, all pregnancies  (n=4, 4 bins)",
		"totalwgt_lb, first babies  (n=3, 4 bins)",
		"totalwgt_lb, other babies  (n=1, 4 bins)",
		"First babies: n=3",
		"Other babies: n=1, mean 6 lb",
		"Cohen's d for first vs other babies is:",
		"Cohen's d with pooled standard deviation:",
	} {
		assert.Contains(t, out, want)
	}
}

func TestExercise24NoHistograms(t *testing.T) {

	_, preg := testData(t)
	cfg := testConfig()
	cfg.Histograms = false

	var buf bytes.Buffer
	require.NoError(t, New(&buf, cfg).Exercise24(preg))

	assert.NotContains(t, buf.String(), barRune)
	assert.Contains(t, buf.String(), "First babies: n=3")
}

func TestRenderHistogram(t *testing.T) {

	h, err := nsfg.NewHistogram([]float64{1, 1.2, 2.8, 3, 2.9}, 2)
	require.NoError(t, err)

	styles := NewStyles(lipgloss.NewRenderer(&bytes.Buffer{}), false)
	out := RenderHistogram("weights", h, 6, styles, styles.Bar(0))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "weights  (n=5, 2 bins)", lines[0])
	assert.Equal(t, "   1.000      2 ████", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "     3 ██████"), lines[2])
}

func TestTable(t *testing.T) {

	styles := NewStyles(lipgloss.NewRenderer(&bytes.Buffer{}), true)

	table := NewTable("Test Table", "value", "count")
	table.AddRow("39", "4744")
	view := table.View(styles)

	t.Logf("View:\n%q", view)
	assert.Contains(t, view, "Test Table")
	assert.Contains(t, view, "4744")
	assert.Contains(t, view, "|")

	empty := NewTable("Nothing", "value").View(styles)
	assert.Contains(t, empty, "(empty)")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteError(t *testing.T) {

	_, preg := testData(t)
	r := New(failWriter{}, testConfig())

	err := r.Shape(preg)
	require.EqualError(t, err, "disk full")
	assert.EqualError(t, r.Passed(), "disk full")
	assert.EqualError(t, r.Err(), "disk full")
}

func TestShapeAndPassed(t *testing.T) {

	_, preg := testData(t)
	var buf bytes.Buffer
	r := New(&buf, testConfig())

	require.NoError(t, r.Shape(preg))
	require.NoError(t, r.Passed())
	assert.Equal(t, "2002FemPreg: 5 rows, 6 columns\nAll tests passed.\n", buf.String())
}
