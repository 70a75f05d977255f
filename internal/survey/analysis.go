package survey

import (
	"fmt"

	"github.com/dhunton/nsfg"
)

// Outcome code of a live birth.
const liveBirth = 1

// LiveBirths returns the rows of the pregnancy table that end in a live
// birth.
func LiveBirths(preg *nsfg.Dataset) ([]int, error) {
	live, err := preg.Equals("outcome", liveBirth)
	if err != nil {
		return nil, err
	}
	return preg.Where(live), nil
}

// nonMissing returns the values of a numeric column at the given rows,
// skipping missing values.
func nonMissing(ds *nsfg.Dataset, name string, rows []int) ([]float64, error) {

	x, miss, err := ds.Values(name, rows)
	if err != nil {
		return nil, err
	}

	var y []float64
	for i, v := range x {
		if !miss[i] {
			y = append(y, v)
		}
	}
	return y, nil
}

// SplitFirstOther returns the birth weights (totalwgt_lb) of live
// births that are first pregnancies and of all other live births.
// A live birth with a missing pregordr counts as "other".  Missing
// weights are left out.
func SplitFirstOther(preg *nsfg.Dataset) ([]float64, []float64, error) {

	live, err := LiveBirths(preg)
	if err != nil {
		return nil, nil, err
	}
	first, err := preg.Equals("pregordr", 1)
	if err != nil {
		return nil, nil, err
	}

	var firstRows, otherRows []int
	for _, i := range live {
		if first(i) {
			firstRows = append(firstRows, i)
		} else {
			otherRows = append(otherRows, i)
		}
	}

	fw, err := nonMissing(preg, "totalwgt_lb", firstRows)
	if err != nil {
		return nil, nil, err
	}
	ow, err := nonMissing(preg, "totalwgt_lb", otherRows)
	if err != nil {
		return nil, nil, err
	}

	return fw, ow, nil
}

// Weights returns the non-missing totalwgt_lb values of all records.
func Weights(preg *nsfg.Dataset) ([]float64, error) {
	s, err := preg.Column("totalwgt_lb")
	if err != nil {
		return nil, err
	}
	return s.NonMissing()
}

// A Comparison summarizes the birth weights of first babies against
// those of other babies.
type Comparison struct {
	NFirst    int
	NOther    int
	MeanFirst float64
	MeanOther float64

	// CohenEffectSize of first against other.
	EffectSize float64

	// StandardCohenD of first against other.
	CohenD float64
}

// CompareFirstOther splits the live births into first and other babies
// and compares their weights.
func CompareFirstOther(preg *nsfg.Dataset) (*Comparison, error) {

	first, other, err := SplitFirstOther(preg)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		NFirst:     len(first),
		NOther:     len(other),
		MeanFirst:  nsfg.Mean(first),
		MeanOther:  nsfg.Mean(other),
		EffectSize: nsfg.CohenEffectSize(first, other),
		CohenD:     nsfg.StandardCohenD(first, other),
	}, nil
}

// A Cond restricts a lookup to rows where a numeric column equals a
// value.
type Cond struct {
	Column string
	Value  float64
}

func (c Cond) String() string {
	return fmt.Sprintf("%s == %v", c.Column, c.Value)
}

// Select returns the values of column at the rows satisfying every
// condition, in row order, with indicators of which are missing.
// caseid is stored as text in the files, so string columns named in a
// condition are compared after conversion to numbers.
func Select(ds *nsfg.Dataset, column string, conds ...Cond) ([]float64, []bool, error) {

	preds := make([]func(int) bool, len(conds))
	for k, c := range conds {
		s, err := ds.Column(c.Column)
		if err != nil {
			return nil, nil, err
		}
		s = s.ForceNumeric()
		v := c.Value
		preds[k] = func(i int) bool {
			x, ok := s.Float(i)
			return ok && x == v
		}
	}

	rows := ds.Where(func(i int) bool {
		for _, p := range preds {
			if !p(i) {
				return false
			}
		}
		return true
	})

	return ds.Values(column, rows)
}

// WithWeightKg returns a copy of the pregnancy table with a
// totalwgt_kg column: totalwgt_lb divided by poundsPerKg.
func WithWeightKg(preg *nsfg.Dataset, poundsPerKg float64) (*nsfg.Dataset, error) {

	lb, err := preg.Column("totalwgt_lb")
	if err != nil {
		return nil, err
	}
	kg, err := lb.Apply(func(v float64) float64 { return v / poundsPerKg })
	if err != nil {
		return nil, err
	}
	kg.Name = "totalwgt_kg"

	return preg.WithColumn(kg)
}
