package nsfg

import (
	"fmt"
)

// A Dataset is an ordered collection of equal-length Series, indexed
// by name.  Methods that change columns return a new Dataset and leave
// the receiver unchanged.
type Dataset struct {

	// A name for the dataset, usually derived from the data file.
	Name string

	columns []*Series
	index   map[string]int
	nrows   int
}

// NewDataset returns a Dataset holding the given columns.  The columns
// are not copied.  Column names must be distinct and all columns must
// have the same length.
func NewDataset(name string, cols []*Series) (*Dataset, error) {

	ds := &Dataset{
		Name:    name,
		columns: cols,
		index:   make(map[string]int, len(cols)),
	}

	for j, c := range cols {
		if _, ok := ds.index[c.Name]; ok {
			return nil, fmt.Errorf("dataset %s: duplicate column %s", name, c.Name)
		}
		if j == 0 {
			ds.nrows = c.Length()
		} else if c.Length() != ds.nrows {
			return nil, fmt.Errorf("dataset %s: column %s has length %d, want %d",
				name, c.Name, c.Length(), ds.nrows)
		}
		ds.index[c.Name] = j
	}

	return ds, nil
}

// NumRows returns the number of records.
func (ds *Dataset) NumRows() int {
	return ds.nrows
}

// NumCols returns the number of columns.
func (ds *Dataset) NumCols() int {
	return len(ds.columns)
}

// Names returns the column names in order.
func (ds *Dataset) Names() []string {
	names := make([]string, len(ds.columns))
	for j, c := range ds.columns {
		names[j] = c.Name
	}
	return names
}

// Columns returns the columns in order.  The Series are shared with
// the Dataset and must not be modified.
func (ds *Dataset) Columns() SeriesArray {
	return ds.columns
}

// Has reports whether the Dataset has a column with the given name.
func (ds *Dataset) Has(name string) bool {
	_, ok := ds.index[name]
	return ok
}

// Column returns the named column.
func (ds *Dataset) Column(name string) (*Series, error) {
	j, ok := ds.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, name, ds.Name)
	}
	return ds.columns[j], nil
}

// WithColumn returns a new Dataset in which the column with the name
// of s is replaced by s, or s is appended if there is no such column.
// Only the column list is copied; the other Series are shared.
func (ds *Dataset) WithColumn(s *Series) (*Dataset, error) {

	cols := make([]*Series, len(ds.columns), len(ds.columns)+1)
	copy(cols, ds.columns)

	if j, ok := ds.index[s.Name]; ok {
		cols[j] = s
	} else {
		cols = append(cols, s)
	}

	return NewDataset(ds.Name, cols)
}

// Copy returns a deep copy of the Dataset.
func (ds *Dataset) Copy() *Dataset {

	cols := make([]*Series, len(ds.columns))
	for j, c := range ds.columns {
		cols[j] = c.Copy()
	}

	cp, err := NewDataset(ds.Name, cols)
	if err != nil {
		panic(err)
	}
	return cp
}

// Where returns the indices of the rows for which pred returns true.
func (ds *Dataset) Where(pred func(row int) bool) []int {
	var rows []int
	for i := 0; i < ds.nrows; i++ {
		if pred(i) {
			rows = append(rows, i)
		}
	}
	return rows
}

// Values returns the values of a numeric column at the given rows,
// along with indicators of which of them are missing.
func (ds *Dataset) Values(name string, rows []int) ([]float64, []bool, error) {

	s, err := ds.Column(name)
	if err != nil {
		return nil, nil, err
	}
	if !s.IsNumeric() {
		return nil, nil, fmt.Errorf("%w: %s is not numeric", ErrColumnType, name)
	}

	x := make([]float64, len(rows))
	miss := make([]bool, len(rows))
	for k, i := range rows {
		v, ok := s.Float(i)
		x[k] = v
		miss[k] = !ok
	}

	return x, miss, nil
}

// Equals returns a row predicate that is true where the named numeric
// column holds value v.  Missing values never match.
func (ds *Dataset) Equals(name string, v float64) (func(int) bool, error) {

	s, err := ds.Column(name)
	if err != nil {
		return nil, err
	}
	if !s.IsNumeric() {
		return nil, fmt.Errorf("%w: %s is not numeric", ErrColumnType, name)
	}

	return func(i int) bool {
		x, ok := s.Float(i)
		return ok && x == v
	}, nil
}

// AllEqual reports whether the two datasets have the same columns, in
// the same order, holding the same values and missing value masks.
// If not, the column and row of the first difference are returned as
// in SeriesArray.AllClose.
func (ds *Dataset) AllEqual(other *Dataset) (bool, int, int) {
	return SeriesArray(ds.columns).AllEqual(other.columns)
}
