package survey

import (
	"errors"
	"fmt"

	"github.com/dhunton/nsfg"
)

// ErrCheckFailed is returned by RunChecks when the data disagree with
// a known fact.
var ErrCheckFailed = errors.New("check failed")

// Table names used by checks.
const (
	Resp = "resp"
	Preg = "preg"
)

// A Check asserts one fact about the respondent and pregnancy tables.
// Run returns an error wrapping ErrCheckFailed if the fact does not
// hold, or another error if it cannot be evaluated.
type Check struct {
	Name string
	Run  func(resp, preg *nsfg.Dataset) error
}

func pick(table string, resp, preg *nsfg.Dataset) *nsfg.Dataset {
	if table == Resp {
		return resp
	}
	return preg
}

func failed(name string, got, want interface{}) error {
	return fmt.Errorf("%w: %s: got %v, want %v", ErrCheckFailed, name, got, want)
}

// RowCount checks the number of records of a table.
func RowCount(table string, want int) Check {
	name := fmt.Sprintf("%s has %d rows", table, want)
	return Check{
		Name: name,
		Run: func(resp, preg *nsfg.Dataset) error {
			if n := pick(table, resp, preg).NumRows(); n != want {
				return failed(name, n, want)
			}
			return nil
		},
	}
}

// ValueCount checks how often a value occurs in a column.
func ValueCount(table, column string, value float64, want int) Check {
	name := fmt.Sprintf("%s.%s == %v occurs %d times", table, column, value, want)
	return Check{
		Name: name,
		Run: func(resp, preg *nsfg.Dataset) error {
			s, err := pick(table, resp, preg).Column(column)
			if err != nil {
				return err
			}
			ft, err := nsfg.ValueCounts(s)
			if err != nil {
				return err
			}
			if n := ft.Count(value); n != want {
				return failed(name, n, want)
			}
			return nil
		},
	}
}

// ValueAt checks the value of a column at a row position.
func ValueAt(table, column string, row int, want float64) Check {
	name := fmt.Sprintf("%s.%s[%d] == %v", table, column, row, want)
	return Check{
		Name: name,
		Run: func(resp, preg *nsfg.Dataset) error {
			ds := pick(table, resp, preg)
			if row >= ds.NumRows() {
				return failed(name, fmt.Sprintf("only %d rows", ds.NumRows()), want)
			}
			s, err := ds.Column(column)
			if err != nil {
				return err
			}
			v, ok := s.ForceNumeric().Float(row)
			if !ok {
				return failed(name, "missing", want)
			}
			if v != want {
				return failed(name, v, want)
			}
			return nil
		},
	}
}

// MaxValueCount checks how often the largest value of a column occurs.
func MaxValueCount(table, column string, want int) Check {
	name := fmt.Sprintf("largest %s.%s occurs %d times", table, column, want)
	return Check{
		Name: name,
		Run: func(resp, preg *nsfg.Dataset) error {
			s, err := pick(table, resp, preg).Column(column)
			if err != nil {
				return err
			}
			ft, err := nsfg.ValueCounts(s)
			if err != nil {
				return err
			}
			if ft.Len() == 0 {
				return failed(name, "no values", want)
			}
			if n := ft.Counts[ft.Len()-1]; n != want {
				return failed(name, n, want)
			}
			return nil
		},
	}
}

// PregnumMatches checks that every respondent's pregnum equals the
// number of pregnancy records for the respondent.
func PregnumMatches() Check {
	name := "pregnum matches pregnancy records"
	return Check{
		Name: name,
		Run: func(resp, preg *nsfg.Dataset) error {
			m, ok, err := ValidatePregnum(resp, preg)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s: %v", ErrCheckFailed, name, m)
			}
			return nil
		},
	}
}

// ReferenceChecks returns the facts known to hold for the 2002 NSFG
// female respondent and pregnancy files after cleaning.
func ReferenceChecks() []Check {
	return []Check{
		RowCount(Resp, 7643),
		ValueCount(Resp, "pregnum", 1, 1267),
		RowCount(Preg, 13593),
		ValueAt(Preg, "caseid", 13592, 12571),
		ValueCount(Preg, "pregordr", 1, 5033),
		ValueCount(Preg, "nbrnaliv", 1, 8981),
		ValueCount(Preg, "babysex", 1, 4641),
		ValueCount(Preg, "birthwgt_lb", 7, 3049),
		ValueCount(Preg, "birthwgt_oz", 0, 1037),
		ValueCount(Preg, "prglngth", 39, 4744),
		ValueCount(Preg, "outcome", 1, 9148),
		ValueCount(Preg, "birthord", 1, 4413),
		ValueCount(Preg, "agepreg", 22.75, 100),
		ValueCount(Preg, "totalwgt_lb", 7.5, 302),
		MaxValueCount(Preg, "finalwgt", 6),
		PregnumMatches(),
	}
}

// RunChecks runs the checks in order and returns the error of the first
// one that fails.
func RunChecks(checks []Check, resp, preg *nsfg.Dataset) error {
	for _, c := range checks {
		if err := c.Run(resp, preg); err != nil {
			return err
		}
	}
	return nil
}
