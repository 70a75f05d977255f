package survey

import (
	"fmt"
	"math"

	"github.com/dhunton/nsfg"
)

// intColumn returns the named column as integers, with false where a
// value is missing or is not a whole number.  String columns are
// converted to numbers first.
func intColumn(ds *nsfg.Dataset, name string) ([]int, []bool, error) {

	s, err := ds.Column(name)
	if err != nil {
		return nil, nil, err
	}
	s = s.ForceNumeric()

	x := make([]int, s.Length())
	ok := make([]bool, s.Length())
	for i := range x {
		v, present := s.Float(i)
		if present && v == math.Trunc(v) && !math.IsInf(v, 0) {
			x[i] = int(v)
			ok[i] = true
		}
	}

	return x, ok, nil
}

// MakePregMap maps each caseid of the pregnancy table to the rows that
// belong to it, in row order.  Rows with a missing or non-integral
// caseid are skipped.
func MakePregMap(preg *nsfg.Dataset) (map[int][]int, error) {

	caseid, ok, err := intColumn(preg, "caseid")
	if err != nil {
		return nil, err
	}

	d := make(map[int][]int)
	for i, id := range caseid {
		if ok[i] {
			d[id] = append(d[id], i)
		}
	}

	return d, nil
}

// A Mismatch describes a respondent whose reported number of
// pregnancies differs from the number of pregnancy records.
type Mismatch struct {
	CaseID   int
	Actual   int
	Expected int

	// True if the respondent's pregnum is missing or not a whole
	// number; Expected is then meaningless.
	PregnumMissing bool
}

func (m Mismatch) String() string {
	if m.PregnumMissing {
		return fmt.Sprintf("caseid %d: %d pregnancy records, pregnum missing", m.CaseID, m.Actual)
	}
	return fmt.Sprintf("caseid %d: %d pregnancy records, pregnum %d", m.CaseID, m.Actual, m.Expected)
}

// ValidatePregnum checks, for each respondent in order, that the number
// of pregnancy records with the respondent's caseid equals pregnum.  It
// stops at the first respondent that disagrees and returns the mismatch
// and false.  If every respondent agrees it returns true.
func ValidatePregnum(resp, preg *nsfg.Dataset) (Mismatch, bool, error) {

	pregMap, err := MakePregMap(preg)
	if err != nil {
		return Mismatch{}, false, err
	}

	caseid, idok, err := intColumn(resp, "caseid")
	if err != nil {
		return Mismatch{}, false, err
	}
	pregnum, numok, err := intColumn(resp, "pregnum")
	if err != nil {
		return Mismatch{}, false, err
	}

	for i := range caseid {
		if !idok[i] {
			continue
		}
		n := len(pregMap[caseid[i]])
		if !numok[i] || n != pregnum[i] {
			m := Mismatch{CaseID: caseid[i], Actual: n, Expected: pregnum[i], PregnumMissing: !numok[i]}
			return m, false, nil
		}
	}

	return Mismatch{}, true, nil
}
