package nsfg

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A FreqTable holds the number of occurrences of each distinct
// non-missing value of a numeric Series, ordered by value.
type FreqTable struct {
	Values []float64
	Counts []int
}

// ValueCounts returns the frequency table of a numeric Series.
// Missing values are not counted.
func ValueCounts(s *Series) (*FreqTable, error) {

	x, err := s.NonMissing()
	if err != nil {
		return nil, err
	}

	y := make([]float64, len(x))
	copy(y, x)
	sort.Float64s(y)

	ft := new(FreqTable)
	for i, v := range y {
		if i == 0 || v != y[i-1] {
			ft.Values = append(ft.Values, v)
			ft.Counts = append(ft.Counts, 0)
		}
		ft.Counts[len(ft.Counts)-1]++
	}

	return ft, nil
}

// Count returns the number of occurrences of v.
func (ft *FreqTable) Count(v float64) int {
	i := sort.SearchFloat64s(ft.Values, v)
	if i < len(ft.Values) && ft.Values[i] == v {
		return ft.Counts[i]
	}
	return 0
}

// Len returns the number of distinct values.
func (ft *FreqTable) Len() int {
	return len(ft.Values)
}

// Total returns the number of values counted.
func (ft *FreqTable) Total() int {
	n := 0
	for _, c := range ft.Counts {
		n += c
	}
	return n
}

// Mean returns the arithmetic mean of x, or NaN if x is empty.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// PopVariance returns the population (biased) variance of x, or NaN
// if x is empty.
func PopVariance(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.PopVariance(x, nil)
}

// A Summary describes the non-missing values of a numeric Series.
type Summary struct {
	Name    string
	N       int
	Missing int
	Mean    float64
	Min     float64
	Max     float64
}

// Summarize computes a Summary of a numeric Series.  The mean, minimum
// and maximum are NaN when every value is missing.
func Summarize(s *Series) (Summary, error) {

	x, err := s.NonMissing()
	if err != nil {
		return Summary{}, err
	}

	sm := Summary{
		Name:    s.Name,
		N:       len(x),
		Missing: s.CountMissing(),
		Mean:    math.NaN(),
		Min:     math.NaN(),
		Max:     math.NaN(),
	}
	if len(x) > 0 {
		sm.Mean = stat.Mean(x, nil)
		sm.Min = floats.Min(x)
		sm.Max = floats.Max(x)
	}

	return sm, nil
}

// A Histogram holds counts of values falling in equal-width bins.
// Bin k covers [Dividers[k], Dividers[k+1]).
type Histogram struct {
	Dividers []float64
	Counts   []float64
}

// NewHistogram bins the values of x into the given number of
// equal-width bins spanning the range of the data.
func NewHistogram(x []float64, bins int) (*Histogram, error) {

	if bins < 1 {
		return nil, fmt.Errorf("histogram: %d bins", bins)
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("histogram: no data")
	}

	y := make([]float64, len(x))
	copy(y, x)
	sort.Float64s(y)

	lo, hi := y[0], y[len(y)-1]
	if hi == lo {
		hi = lo + 1
	}

	// The largest value must fall strictly below the last divider.
	// Span does not land exactly on its upper bound, so pin it.
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, y, nil)

	return &Histogram{Dividers: dividers, Counts: counts}, nil
}

// Total returns the number of values in the histogram.
func (h *Histogram) Total() float64 {
	return floats.Sum(h.Counts)
}

// CohenEffectSize compares the means of two groups relative to their
// variability:
//
//	(mean1 - mean2) / ((n1*var1 + n2*var2) / (n1 + n2))
//
// where var1 and var2 are population variances.  The denominator is the
// pooled variance, not its square root, so the value differs from the
// textbook Cohen's d; see StandardCohenD.  It is NaN if either group is
// empty.  If neither group varies the denominator is zero and the result
// is +Inf or -Inf, or NaN when the means are also equal.
func CohenEffectSize(group1, group2 []float64) float64 {

	n1, n2 := float64(len(group1)), float64(len(group2))
	if n1 == 0 || n2 == 0 {
		return math.NaN()
	}

	diff := Mean(group1) - Mean(group2)
	pooled := (n1*PopVariance(group1) + n2*PopVariance(group2)) / (n1 + n2)

	return diff / pooled
}

// StandardCohenD is Cohen's d with the pooled standard deviation in the
// denominator.  It is NaN if either group is empty, and infinite or NaN
// if neither group varies, as for CohenEffectSize.
func StandardCohenD(group1, group2 []float64) float64 {

	n1, n2 := float64(len(group1)), float64(len(group2))
	if n1 == 0 || n2 == 0 {
		return math.NaN()
	}

	diff := Mean(group1) - Mean(group2)
	pooled := (n1*PopVariance(group1) + n2*PopVariance(group2)) / (n1 + n2)

	return diff / math.Sqrt(pooled)
}
