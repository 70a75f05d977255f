package survey

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dhunton/nsfg"
)

// PregRules are the codebook values used to clean the pregnancy table.
type PregRules struct {

	// Codes for "not ascertained", "refused" and "don't know" in
	// birthwgt_lb, birthwgt_oz and hpagelb.
	NASentinels []float64

	// birthwgt_lb values above this are not plausible.
	MaxBirthWeightLb float64

	// Codes in babysex that do not identify a sex.
	BabySexInvalid []float64

	// Codes in nbrnaliv that do not give a count.
	NbrnalivInvalid []float64

	// agepreg is recorded in centiyears.
	AgeScale float64

	OuncesPerPound float64

	// The column clipped by the dictionary layout, if any.  Its values
	// are not usable and are forced to missing.
	ClippedColumn string
}

// DefaultPregRules returns the rules of the 2002 codebook.
func DefaultPregRules() PregRules {
	return PregRules{
		NASentinels:      []float64{97, 98, 99},
		MaxBirthWeightLb: 20,
		BabySexInvalid:   []float64{7, 9},
		NbrnalivInvalid:  []float64{9},
		AgeScale:         100,
		OuncesPerPound:   16,
		ClippedColumn:    "cmintvw",
	}
}

// cleaner applies a sequence of column transformations to a dataset,
// stopping at the first error.
type cleaner struct {
	ds     *nsfg.Dataset
	logger *zap.Logger
	err    error
}

func (c *cleaner) column(name string) *nsfg.Series {
	if c.err != nil {
		return nil
	}
	s, err := c.ds.Column(name)
	if err != nil {
		c.err = err
		return nil
	}
	return s
}

func (c *cleaner) replace(rule string, s *nsfg.Series, err error) {
	if c.err != nil {
		return
	}
	if err != nil {
		c.err = fmt.Errorf("%s: %w", rule, err)
		return
	}
	before := 0
	if old, err := c.ds.Column(s.Name); err == nil {
		before = old.CountMissing()
	}
	c.ds, c.err = c.ds.WithColumn(s)
	c.logger.Debug("cleaning rule applied",
		zap.String("rule", rule),
		zap.String("column", s.Name),
		zap.Int("newly_missing", s.CountMissing()-before))
}

// mask marks the values of the named column that satisfy pred as missing.
func (c *cleaner) mask(rule, name string, pred func(float64) bool) {
	if s := c.column(name); s != nil {
		r, err := s.MaskWhere(pred)
		c.replace(rule, r, err)
	}
}

// drop marks the given codes of the named column as missing.
func (c *cleaner) drop(rule, name string, codes []float64) {
	if s := c.column(name); s != nil {
		r, err := s.ReplaceValues(codes...)
		c.replace(rule, r, err)
	}
}

// CleanFemPreg returns a cleaned copy of the pregnancy table.  The input
// is not modified.  agepreg is converted to years; implausible birth
// weights and the codebook's non-response codes become missing values;
// totalwgt_lb is added, derived from the cleaned pound and ounce
// columns; the clipped column is set entirely missing.
func CleanFemPreg(preg *nsfg.Dataset, rules PregRules, logger *zap.Logger) (*nsfg.Dataset, error) {

	if logger == nil {
		logger = zap.NewNop()
	}
	c := &cleaner{ds: preg, logger: logger}

	if s := c.column("agepreg"); s != nil {
		r, err := s.Apply(func(v float64) float64 { return v / rules.AgeScale })
		c.replace("agepreg in years", r, err)
	}

	c.mask("implausible birth weight", "birthwgt_lb", func(v float64) bool {
		return v > rules.MaxBirthWeightLb
	})
	for _, name := range []string{"birthwgt_lb", "birthwgt_oz", "hpagelb"} {
		c.drop("not ascertained", name, rules.NASentinels)
	}
	c.drop("invalid sex", "babysex", rules.BabySexInvalid)
	c.drop("invalid live birth count", "nbrnaliv", rules.NbrnalivInvalid)

	// Must follow the sentinel replacement above.
	lb, oz := c.column("birthwgt_lb"), c.column("birthwgt_oz")
	if lb != nil && oz != nil {
		r, err := nsfg.Combine("totalwgt_lb", lb, oz, func(x, y float64) float64 {
			return x + y/rules.OuncesPerPound
		})
		c.replace("total weight", r, err)
	}

	if rules.ClippedColumn != "" && c.err == nil && c.ds.Has(rules.ClippedColumn) {
		s := c.column(rules.ClippedColumn)
		c.replace("clipped column", s.SetAllMissing(), nil)
	}

	if c.err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", preg.Name, c.err)
	}

	return c.ds, nil
}

// CleanFemResp returns a copy of the respondent table.  No defects are
// known in it, so the values are unchanged.
func CleanFemResp(resp *nsfg.Dataset) (*nsfg.Dataset, error) {
	return resp.Copy(), nil
}
