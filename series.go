package nsfg

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// A Series is a fixed-type one-dimensional sequence of data values,
// with an optional mask for missing values.  Numeric data is always
// held as float64.  Missingness is recorded only in the mask; the
// data value at a missing position is zero (or "" for strings) and
// must not be interpreted.
type Series struct {

	// A name describing what is in this series.
	Name string

	// The length of the series.
	length int

	// The data, either []float64 or []string.
	data interface{}

	// Indicators that data values are missing.  If nil, there are
	// no missing values.
	missing []bool
}

// ilen returns the length of a slice, held in an interface value.
// If the interface does not hold a slice of a known type, an error
// is returned.
func ilen(data interface{}) (int, error) {

	switch data.(type) {
	case []float64:
		return len(data.([]float64)), nil
	case []string:
		return len(data.([]string)), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrColumnType, data)
	}
}

// NewSeries returns a new Series value with the given name and data
// contents.  The data slice parameter is not copied.
func NewSeries(name string, data interface{}, missing []bool) (*Series, error) {

	length, err := ilen(data)
	if err != nil {
		return nil, err
	}

	if missing != nil && len(missing) != length {
		return nil, fmt.Errorf("series %s: mask length %d does not match data length %d",
			name, len(missing), length)
	}

	ser := Series{
		Name:    name,
		length:  length,
		data:    data,
		missing: missing,
	}

	return &ser, nil
}

// mustSeries is NewSeries for data built inside this package, where
// the type and mask length are known to be valid.
func mustSeries(name string, data interface{}, missing []bool) *Series {
	s, err := NewSeries(name, data, missing)
	if err != nil {
		panic(err)
	}
	return s
}

// Write writes the entire Series to the given writer.
func (ser *Series) Write(w io.Writer) error {
	return ser.WriteRange(w, 0, ser.length)
}

// WriteRange writes the given subinterval of the Series to the given writer.
func (ser *Series) WriteRange(w io.Writer, first, last int) error {

	ty := fmt.Sprintf("%T", ser.data)
	if _, err := fmt.Fprintf(w, "Name: %s\nType: %s\n", ser.Name, ty[2:]); err != nil {
		return err
	}

	for j := first; j < last; j++ {
		var s string
		if ser.IsMissing(j) {
			s = fmt.Sprintf("%d:\n", j)
		} else {
			switch data := ser.data.(type) {
			case []float64:
				s = fmt.Sprintf("%d:  %v\n", j, data[j])
			case []string:
				s = fmt.Sprintf("%d:  %s\n", j, data[j])
			}
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}

	return nil
}

// Print prints the entire Series to the standard output.
func (ser *Series) Print() {
	_ = ser.Write(os.Stdout)
}

// PrintRange prints a slice of the Series to the standard output.
func (ser *Series) PrintRange(first, last int) {
	_ = ser.WriteRange(os.Stdout, first, last)
}

// Data returns the data component of the Series.
func (ser *Series) Data() interface{} {
	return ser.data
}

// Missing returns the array of missing value indicators.
func (ser *Series) Missing() []bool {
	return ser.missing
}

// Length returns the number of elements in a Series.
func (ser *Series) Length() int {
	return ser.length
}

// IsNumeric reports whether the Series holds float64 data.
func (ser *Series) IsNumeric() bool {
	_, ok := ser.data.([]float64)
	return ok
}

// IsMissing reports whether position i holds a missing value.
func (ser *Series) IsMissing(i int) bool {
	return ser.missing != nil && ser.missing[i]
}

// Float returns the value at position i, and false if the value is
// missing or the Series is not numeric.
func (ser *Series) Float(i int) (float64, bool) {
	x, ok := ser.data.([]float64)
	if !ok || ser.IsMissing(i) {
		return 0, false
	}
	return x[i], true
}

// String returns the value at position i as it would be written to a
// text file, and false if the value is missing.
func (ser *Series) String(i int) (string, bool) {
	if ser.IsMissing(i) {
		return "", false
	}
	switch x := ser.data.(type) {
	case []float64:
		return strconv.FormatFloat(x[i], 'f', -1, 64), true
	case []string:
		return x[i], true
	}
	return "", false
}

// copyMask returns a non-nil copy of the missing value mask.
func (ser *Series) copyMask() []bool {
	cmiss := make([]bool, ser.length)
	if ser.missing != nil {
		copy(cmiss, ser.missing)
	}
	return cmiss
}

// Copy returns a deep copy of the Series.
func (ser *Series) Copy() *Series {

	var miss []bool
	if ser.missing != nil {
		miss = ser.copyMask()
	}

	switch x := ser.data.(type) {
	case []float64:
		y := make([]float64, len(x))
		copy(y, x)
		return mustSeries(ser.Name, y, miss)
	default:
		x0 := ser.data.([]string)
		y := make([]string, len(x0))
		copy(y, x0)
		return mustSeries(ser.Name, y, miss)
	}
}

// AllClose returns true, 0 if the Series is within tol of the other
// series.  If the Series have different lengths, AllClose returns
// false, -1.  If the Series have different types, AllClose returns
// false, -2.  If the Series have the same type and the same length
// but are not equal, AllClose returns false, j, where j is the index
// of the first position where the two series differ.
func (ser *Series) AllClose(other *Series, tol float64) (bool, int) {

	if ser.length != other.length {
		return false, -1
	}

	// Utility function for missing mask
	cmiss := func(j int) int {
		f1 := !ser.IsMissing(j)
		f2 := !other.IsMissing(j)
		if f1 != f2 {
			return 0 // inconsistent
		} else if f1 {
			return 1 // both non-missing
		}
		return 2 // both missing
	}

	switch u := ser.data.(type) {
	case []float64:
		v, ok := other.data.([]float64)
		if !ok {
			return false, -2
		}
		for i := 0; i < ser.length; i++ {
			c := cmiss(i)
			if c == 0 {
				return false, i
			}
			if (c == 1) && (math.Abs(u[i]-v[i]) > tol) {
				return false, i
			}
		}
	case []string:
		v, ok := other.data.([]string)
		if !ok {
			return false, -2
		}
		for j := 0; j < ser.length; j++ {
			c := cmiss(j)
			if c == 0 {
				return false, j
			}
			if (c == 1) && (u[j] != v[j]) {
				return false, j
			}
		}
	}
	return true, 0
}

// AllEqual is equivalent to AllClose with tol=0.
func (ser *Series) AllEqual(other *Series) (bool, int) {
	return ser.AllClose(other, 0.0)
}

// ForceNumeric converts string values to float64 values, creating
// missing values where the conversion is not possible.  Surrounding
// white space is ignored.  If the data is not string type, it is
// unaffected.
func (ser *Series) ForceNumeric() *Series {

	y, ok := ser.data.([]string)
	if !ok {
		return ser
	}

	n := ser.length
	cmiss := ser.copyMask()
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		if !cmiss[i] {
			v, err := strconv.ParseFloat(strings.TrimSpace(y[i]), 64)
			if err != nil {
				cmiss[i] = true
			} else {
				x[i] = v
			}
		}
	}

	return mustSeries(ser.Name, x, cmiss)
}

// NullStringMissing returns a copy of a string series in which
// zero-length strings are treated as missing values.  If the
// method is applied to a series that is not of string type,
// the series is returned unchanged.
func (ser *Series) NullStringMissing() *Series {

	y, ok := ser.data.([]string)
	if !ok {
		return ser
	}

	n := ser.length
	cmiss := ser.copyMask()
	x := make([]string, n)
	copy(x, y)
	for i := 0; i < n; i++ {
		if len(x[i]) == 0 {
			cmiss[i] = true
		}
	}

	return mustSeries(ser.Name, x, cmiss)
}

// CountMissing returns the number of missing values in the Series.
func (ser *Series) CountMissing() int {

	if ser.missing == nil {
		return 0
	}

	m := 0
	for i := 0; i < ser.length; i++ {
		if ser.missing[i] {
			m++
		}
	}

	return m
}

// floats returns the numeric data, or an error naming the series if
// it holds strings.
func (ser *Series) floats() ([]float64, error) {
	x, ok := ser.data.([]float64)
	if !ok {
		return nil, fmt.Errorf("%w: series %s holds %T", ErrColumnType, ser.Name, ser.data)
	}
	return x, nil
}

// MaskWhere returns a copy of a numeric Series in which every
// non-missing value satisfying pred is marked as missing.
func (ser *Series) MaskWhere(pred func(float64) bool) (*Series, error) {

	x, err := ser.floats()
	if err != nil {
		return nil, err
	}

	cmiss := ser.copyMask()
	y := make([]float64, len(x))
	for i, v := range x {
		if cmiss[i] {
			continue
		}
		if pred(v) {
			cmiss[i] = true
		} else {
			y[i] = v
		}
	}

	return mustSeries(ser.Name, y, cmiss), nil
}

// ReplaceValues returns a copy of a numeric Series in which every
// occurrence of one of the given values is marked as missing.
func (ser *Series) ReplaceValues(vals ...float64) (*Series, error) {
	return ser.MaskWhere(func(v float64) bool {
		for _, s := range vals {
			if v == s {
				return true
			}
		}
		return false
	})
}

// Apply returns a copy of a numeric Series with f applied to every
// non-missing value.
func (ser *Series) Apply(f func(float64) float64) (*Series, error) {

	x, err := ser.floats()
	if err != nil {
		return nil, err
	}

	var cmiss []bool
	if ser.missing != nil {
		cmiss = ser.copyMask()
	}
	y := make([]float64, len(x))
	for i, v := range x {
		if !ser.IsMissing(i) {
			y[i] = f(v)
		}
	}

	return mustSeries(ser.Name, y, cmiss), nil
}

// SetAllMissing returns a Series of the same name, type and length in
// which every value is missing.
func (ser *Series) SetAllMissing() *Series {

	cmiss := make([]bool, ser.length)
	for i := range cmiss {
		cmiss[i] = true
	}

	switch ser.data.(type) {
	case []float64:
		return mustSeries(ser.Name, make([]float64, ser.length), cmiss)
	default:
		return mustSeries(ser.Name, make([]string, ser.length), cmiss)
	}
}

// NonMissing returns the non-missing values of a numeric Series, in
// order.
func (ser *Series) NonMissing() ([]float64, error) {

	x, err := ser.floats()
	if err != nil {
		return nil, err
	}

	y := make([]float64, 0, len(x))
	for i, v := range x {
		if !ser.IsMissing(i) {
			y = append(y, v)
		}
	}

	return y, nil
}

// Combine returns a new numeric Series whose value at each position is
// f applied to the values of a and b.  A position is missing if it is
// missing in either input.
func Combine(name string, a, b *Series, f func(x, y float64) float64) (*Series, error) {

	if a.length != b.length {
		return nil, fmt.Errorf("combine %s: lengths %d and %d differ", name, a.length, b.length)
	}

	x, err := a.floats()
	if err != nil {
		return nil, err
	}
	y, err := b.floats()
	if err != nil {
		return nil, err
	}

	z := make([]float64, a.length)
	cmiss := make([]bool, a.length)
	for i := range z {
		if a.IsMissing(i) || b.IsMissing(i) {
			cmiss[i] = true
			continue
		}
		z[i] = f(x[i], y[i])
	}

	return mustSeries(name, z, cmiss), nil
}

// AsFloat64Slice returns the data of the series as a float64 slice,
// and a boolean slice for the missing value indicators.
func (ser *Series) AsFloat64Slice() ([]float64, []bool, error) {

	v, err := ser.floats()
	if err != nil {
		return nil, nil, err
	}

	return v, ser.missing, nil
}

// AsStringSlice returns the series data as slices for the values,
// and the missing data indicators.
func (ser *Series) AsStringSlice() ([]string, []bool, error) {

	v, ok := ser.data.([]string)
	if !ok {
		return nil, nil, fmt.Errorf("%w: can't convert %T to []string", ErrColumnType, ser.data)
	}

	return v, ser.missing, nil
}

// SeriesArray is an array of pointers to Series objects.  It can represent
// a dataset consisting of several variables.
type SeriesArray []*Series

// AllClose returns (true, 0, 0) if all numeric values in
// corresponding columns of the two arrays of Series objects are
// within the given tolerance.  If any corresponding columns are not
// identically equal, returns (false, j, i), where j is the index of a
// column and i is the index of a row where the two Series are not
// identical.  If the two SeriesArray objects have different numbers
// of columns, returns (false, -1, -1).  If column j of the two
// SeriesArray objects have different lengths, returns (false, j, -1).
// If column j of the two SeriesArray objects have different types,
// returns (false, j, -2)
func (ser SeriesArray) AllClose(other []*Series, tol float64) (bool, int, int) {

	if len(ser) != len(other) {
		return false, -1, -1
	}

	for j := 0; j < len(ser); j++ {
		if ser[j].Name != other[j].Name {
			return false, j, -2
		}
		f, i := ser[j].AllClose(other[j], tol)
		if !f {
			return false, j, i
		}
	}

	return true, 0, 0
}

// AllEqual is equivalent to AllClose with tol = 0.
func (ser SeriesArray) AllEqual(other []*Series) (bool, int, int) {
	return ser.AllClose(other, 0.0)
}
