package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhunton/nsfg"
	"github.com/dhunton/nsfg/internal/config"
	"github.com/dhunton/nsfg/internal/survey"
)

// A Report writes the console report to an output stream.  The first
// write error is retained and returned by the methods that follow.
type Report struct {
	w      io.Writer
	cfg    config.ReportConfig
	styles Styles
	err    error
}

// New returns a Report writing to w.
func New(w io.Writer, cfg config.ReportConfig) *Report {
	r := lipgloss.NewRenderer(w)
	return &Report{
		w:      w,
		cfg:    cfg,
		styles: NewStyles(r, cfg.Color),
	}
}

// Err returns the first write error, if any.
func (r *Report) Err() error {
	return r.err
}

func (r *Report) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

// line writes a label followed by a value.
func (r *Report) line(label, value string) {
	r.write(r.styles.Label.Render(label) + " " + r.styles.Value.Render(value) + "\n")
}

// formatValue writes v the way a number appears in the data files.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatValues(x []float64, miss []bool) string {
	s := make([]string, len(x))
	for i, v := range x {
		if miss[i] {
			s[i] = "missing"
		} else {
			s[i] = formatValue(v)
		}
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// Shape writes the number of rows and columns of a table.
func (r *Report) Shape(ds *nsfg.Dataset) error {
	r.line(ds.Name+":", fmt.Sprintf("%d rows, %d columns", ds.NumRows(), ds.NumCols()))
	return r.err
}

// Passed announces that the reference checks succeeded.
func (r *Report) Passed() error {
	r.write(r.styles.Success.Render("All tests passed.") + "\n")
	return r.err
}

// FreqTable writes the frequency table of a numeric column, ordered by
// value.
func (r *Report) FreqTable(ds *nsfg.Dataset, name string) error {

	s, err := ds.Column(name)
	if err != nil {
		return err
	}
	ft, err := nsfg.ValueCounts(s)
	if err != nil {
		return err
	}

	t := NewTable(name, "value", "count")
	for k, v := range ft.Values {
		t.AddRow(formatValue(v), strconv.Itoa(ft.Counts[k]))
	}
	r.write(t.View(r.styles) + "\n")

	return r.err
}

// lookup writes the values of column at the rows matching conds, or a
// "no record" line if there are none.  If first is set only the first
// match is written.
func (r *Report) lookup(label string, ds *nsfg.Dataset, column string, first bool, conds ...survey.Cond) error {

	x, miss, err := survey.Select(ds, column, conds...)
	if err != nil {
		return err
	}

	if len(x) == 0 {
		c := make([]string, len(conds))
		for k, cond := range conds {
			c[k] = cond.String()
		}
		r.line(label, fmt.Sprintf("no record with %s", strings.Join(c, ", ")))
		return r.err
	}

	switch {
	case first && miss[0]:
		r.line(label, "missing")
	case first:
		r.line(label, formatValue(x[0]))
	default:
		r.line(label, formatValues(x, miss))
	}
	return r.err
}

// mean writes the mean of the non-missing values of a column.
func (r *Report) mean(label string, ds *nsfg.Dataset, name string) error {
	s, err := ds.Column(name)
	if err != nil {
		return err
	}
	sm, err := nsfg.Summarize(s)
	if err != nil {
		return err
	}
	r.line(label, formatValue(sm.Mean))
	return r.err
}

// Exercise11 writes the descriptive statistics of the respondent and
// pregnancy tables: the birthord and prglngth frequency tables, the
// mean birth weight in pounds and kilograms, the respondent ages, and
// three lookups of individual respondents.
func (r *Report) Exercise11(resp, preg *nsfg.Dataset) error {

	if err := r.FreqTable(preg, "birthord"); err != nil {
		return err
	}
	birthord, err := preg.Column("birthord")
	if err != nil {
		return err
	}
	r.line("The number of nulls is:", strconv.Itoa(birthord.CountMissing()))
	r.write("\n")

	if err := r.FreqTable(preg, "prglngth"); err != nil {
		return err
	}

	if err := r.mean("The mean of the weights in lb is:", preg, "totalwgt_lb"); err != nil {
		return err
	}
	preg, err = survey.WithWeightKg(preg, r.cfg.PoundsPerKg)
	if err != nil {
		return err
	}
	if err := r.mean("The mean of the weights in kg is:", preg, "totalwgt_kg"); err != nil {
		return err
	}
	r.write("\n")

	if err := r.FreqTable(resp, "age_r"); err != nil {
		return err
	}
	age, err := resp.Column("age_r")
	if err != nil {
		return err
	}
	sm, err := nsfg.Summarize(age)
	if err != nil {
		return err
	}
	r.line("The oldest respondent was", formatValue(sm.Max)+" years old.")
	r.line("The youngest respondent was", formatValue(sm.Min)+" years old.")

	if err := r.lookup("Age of respondent #1:", resp, "age_r", true,
		survey.Cond{Column: "caseid", Value: 1}); err != nil {
		return err
	}
	if err := r.lookup("The pregnancy lengths for respondent #2298 are", preg, "prglngth", false,
		survey.Cond{Column: "caseid", Value: 2298},
		survey.Cond{Column: "outcome", Value: 1}); err != nil {
		return err
	}
	if err := r.lookup("The weight of the first baby for respondent #5012 was", preg, "totalwgt_lb", true,
		survey.Cond{Column: "caseid", Value: 5012},
		survey.Cond{Column: "pregordr", Value: 1},
		survey.Cond{Column: "outcome", Value: 1}); err != nil {
		return err
	}
	r.write("\n")

	return r.err
}

// histogram writes the histogram of x, or a note if x is empty.
func (r *Report) histogram(k int, title string, x []float64) error {
	if len(x) == 0 {
		r.line(title, "no values")
		return r.err
	}
	h, err := nsfg.NewHistogram(x, r.cfg.HistogramBins)
	if err != nil {
		return err
	}
	r.write(RenderHistogram(title, h, r.cfg.BarWidth, r.styles, r.styles.Bar(k)) + "\n")
	return r.err
}

// Exercise24 compares the birth weights of first babies with those of
// other babies: histograms of all, first and other weights, unless
// disabled, followed by the group means and effect sizes.
func (r *Report) Exercise24(preg *nsfg.Dataset) error {

	first, other, err := survey.SplitFirstOther(preg)
	if err != nil {
		return err
	}

	if r.cfg.Histograms {
		all, err := survey.Weights(preg)
		if err != nil {
			return err
		}
		for k, g := range []struct {
			title string
			x     []float64
		}{
			{"totalwgt_lb, all pregnancies", all},
			{"totalwgt_lb, first babies", first},
			{"totalwgt_lb, other babies", other},
		} {
			if err := r.histogram(k, g.title, g.x); err != nil {
				return err
			}
		}
	}

	c, err := survey.CompareFirstOther(preg)
	if err != nil {
		return err
	}
	r.line("First babies:", fmt.Sprintf("n=%d, mean %s lb", c.NFirst, formatValue(c.MeanFirst)))
	r.line("Other babies:", fmt.Sprintf("n=%d, mean %s lb", c.NOther, formatValue(c.MeanOther)))
	r.line("Cohen's d for first vs other babies is:", formatValue(c.EffectSize))
	r.line("Cohen's d with pooled standard deviation:", formatValue(c.CohenD))

	return r.err
}
