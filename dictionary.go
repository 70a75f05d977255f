package nsfg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Stata storage types that hold numbers.  String types are written
// str1, str2, ...
var numericStataTypes = map[string]bool{
	"byte":    true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"numeric": true,
}

// A Column describes one variable of a fixed-width file.
type Column struct {

	// The variable name, lower-cased.
	Name string

	// NumericType or StringType.
	Type ColumnType

	// The storage type as written in the dictionary, e.g. "byte" or "str12".
	StataType string

	// The display format, e.g. "%2f".
	Format string

	// The variable label.
	Label string

	// 1-based position of the first byte of the field.
	Start int

	// Number of bytes in the field.  Zero for the final column, which
	// extends to the end of the record.
	Width int
}

// span returns the 0-based half-open byte range of the column in a
// record of length n.  The final column stops one byte short of the
// end of the record.
func (col *Column) span(n int) (int, int) {
	a := col.Start - 1
	if col.Width > 0 {
		return a, a + col.Width
	}
	return a, n - 1
}

// A Dictionary is the column layout of a fixed-width data file, as
// described by a Stata infile dictionary.
type Dictionary struct {
	Columns []Column
}

// ColumnNames returns the variable names in file order.
func (dict *Dictionary) ColumnNames() []string {
	names := make([]string, len(dict.Columns))
	for j, c := range dict.Columns {
		names[j] = c.Name
	}
	return names
}

// ColumnTypes returns the declared storage type of each column.
func (dict *Dictionary) ColumnTypes() []ColumnType {
	types := make([]ColumnType, len(dict.Columns))
	for j, c := range dict.Columns {
		types[j] = c.Type
	}
	return types
}

// ParseDictionary reads a Stata infile dictionary.  Every line that
// contains a _column(N) directive declares one variable:
//
//	_column(13)  byte  pregordr  %2f  "PREGNANCY ORDER (NUMBER)"
//
// Other lines are ignored.  The width of each column is the distance
// to the start of the next one.
func ParseDictionary(r io.Reader) (*Dictionary, error) {

	dict := new(Dictionary)
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		ii := strings.Index(line, "_column(")
		if ii < 0 {
			continue
		}

		col, err := parseColumn(line[ii+len("_column("):])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDictionary, lineno, err)
		}

		if m := len(dict.Columns); m > 0 {
			prev := &dict.Columns[m-1]
			if col.Start <= prev.Start {
				return nil, fmt.Errorf("%w: line %d: column %s starts at %d, not after %s at %d",
					ErrDictionary, lineno, col.Name, col.Start, prev.Name, prev.Start)
			}
			prev.Width = col.Start - prev.Start
		}
		dict.Columns = append(dict.Columns, col)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(dict.Columns) == 0 {
		return nil, fmt.Errorf("%w: no _column declarations", ErrDictionary)
	}

	return dict, nil
}

// parseColumn parses the text following "_column(" in a declaration.
func parseColumn(s string) (Column, error) {

	var col Column

	jj := strings.Index(s, ")")
	if jj < 0 {
		return col, fmt.Errorf("unterminated _column")
	}

	start, err := strconv.Atoi(strings.TrimSpace(s[0:jj]))
	if err != nil {
		return col, fmt.Errorf("bad column position %q", s[0:jj])
	}
	if start < 1 {
		return col, fmt.Errorf("column position %d is not positive", start)
	}
	col.Start = start

	toks := strings.Fields(s[jj+1:])
	if len(toks) < 3 {
		return col, fmt.Errorf("expected type, name and format after _column(%d)", start)
	}

	col.StataType = toks[0]
	col.Name = strings.ToLower(toks[1])
	col.Format = toks[2]
	col.Label = strings.Trim(strings.Join(toks[3:], " "), `"`)

	switch {
	case strings.HasPrefix(col.StataType, "str"):
		col.Type = StringType
	case numericStataTypes[col.StataType]:
		col.Type = NumericType
	default:
		return col, fmt.Errorf("unknown storage type %q for %s", col.StataType, col.Name)
	}

	return col, nil
}

// OpenDictionary parses the Stata dictionary in the named file.
func OpenDictionary(path string) (*Dictionary, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dict, err := ParseDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return dict, nil
}
