package nsfg

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// Default number of records examined when deciding whether a
	// string column holds numbers.
	defaultSniffRows = 100

	// Longest record the reader accepts.
	maxRecordLength = 1 << 20
)

// A FixedWidthReader reads records from a fixed-width text file whose
// layout is given by a Dictionary.
//
// Fields are trimmed of surrounding white space.  Blank fields, and
// numeric fields that do not parse, are returned as missing values.
// A record that ends before a field begins yields a missing value for
// that field, so truncated records lose only their trailing fields.
type FixedWidthReader struct {

	// If true, string columns whose non-blank values all parse as
	// numbers are returned as float64.  Defaults to true.
	InferNumeric bool

	// Number of records used to infer column types.  If negative, the
	// whole file is examined before any data are returned.
	SniffRows int

	dict *Dictionary

	// Column types after inference.
	types []ColumnType

	// Has the init method been run yet?
	initRun bool

	// Records read during type inference, not yet returned.
	lines []string

	// The number of records returned so far.
	rowsRead int

	scanner *bufio.Scanner
}

// NewFixedWidthReader returns a FixedWidthReader that reads records
// from r using the column layout in dict.
func NewFixedWidthReader(r io.Reader, dict *Dictionary) *FixedWidthReader {

	rdr := new(FixedWidthReader)
	rdr.dict = dict
	rdr.InferNumeric = true
	rdr.SniffRows = defaultSniffRows

	rdr.scanner = bufio.NewScanner(r)
	rdr.scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLength)

	return rdr
}

// ColumnNames returns the names of the columns, in file order.
func (rdr *FixedWidthReader) ColumnNames() []string {
	return rdr.dict.ColumnNames()
}

// ColumnTypes returns the storage type of each column.  Before the
// first call to Read these are the types declared in the dictionary;
// afterwards they reflect type inference.
func (rdr *FixedWidthReader) ColumnTypes() []ColumnType {
	if rdr.types == nil {
		return rdr.dict.ColumnTypes()
	}
	return rdr.types
}

// RowsRead returns the number of records returned so far.
func (rdr *FixedWidthReader) RowsRead() int {
	return rdr.rowsRead
}

// scan returns the next non-empty record from the underlying reader.
func (rdr *FixedWidthReader) scan() (string, bool, error) {
	for rdr.scanner.Scan() {
		line := strings.TrimRight(rdr.scanner.Text(), "\r")
		if len(line) > 0 {
			return line, true, nil
		}
	}
	return "", false, rdr.scanner.Err()
}

// next returns the next record, taking buffered records first.
func (rdr *FixedWidthReader) next() (string, bool, error) {
	if len(rdr.lines) > 0 {
		line := rdr.lines[0]
		rdr.lines = rdr.lines[1:]
		return line, true, nil
	}
	return rdr.scan()
}

// field extracts the trimmed text of a column from a record.  The
// second return value is false if the record ends before the field
// begins.
func field(line string, col *Column) (string, bool) {
	a, b := col.span(len(line))
	if a >= len(line) || b <= a {
		return "", false
	}
	if b > len(line) {
		b = len(line)
	}
	return strings.TrimSpace(line[a:b]), true
}

// init buffers the records used for type inference and settles the
// type of each column.
func (rdr *FixedWidthReader) init() error {

	rdr.types = rdr.dict.ColumnTypes()
	rdr.initRun = true

	if !rdr.InferNumeric {
		return nil
	}

	for k := 0; rdr.SniffRows < 0 || k < rdr.SniffRows; k++ {
		line, ok, err := rdr.scan()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		rdr.lines = append(rdr.lines, line)
	}

	for j := range rdr.dict.Columns {
		col := &rdr.dict.Columns[j]
		if col.Type != StringType {
			continue
		}
		nobs, nfloat := 0, 0
		for _, line := range rdr.lines {
			s, ok := field(line, col)
			if !ok || len(s) == 0 {
				continue
			}
			nobs++
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				nfloat++
			}
		}
		if nobs > 0 && nobs == nfloat {
			rdr.types[j] = NumericType
		}
	}

	return nil
}

// Read reads up to rows records and returns them as an array of Series
// objects, one per column.  If rows is negative the rest of the file is
// read.  When no records remain, Read returns nil, io.EOF.
func (rdr *FixedWidthReader) Read(rows int) ([]*Series, error) {

	if !rdr.initRun {
		if err := rdr.init(); err != nil {
			return nil, err
		}
	}

	ncol := len(rdr.dict.Columns)
	fdata := make([][]float64, ncol)
	sdata := make([][]string, ncol)
	miss := make([][]bool, ncol)

	n := 0
	for rows < 0 || n < rows {
		line, ok, err := rdr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		for j := range rdr.dict.Columns {
			s, ok := field(line, &rdr.dict.Columns[j])
			ismiss := !ok || len(s) == 0
			switch rdr.types[j] {
			case NumericType:
				var x float64
				if !ismiss {
					var err error
					x, err = strconv.ParseFloat(s, 64)
					if err != nil {
						ismiss = true
						x = 0
					}
				}
				fdata[j] = append(fdata[j], x)
			case StringType:
				if ismiss {
					s = ""
				}
				sdata[j] = append(sdata[j], s)
			}
			miss[j] = append(miss[j], ismiss)
		}
		n++
	}

	if n == 0 {
		return nil, io.EOF
	}
	rdr.rowsRead += n

	return rdr.buildSeries(fdata, sdata, miss), nil
}

func (rdr *FixedWidthReader) buildSeries(fdata [][]float64, sdata [][]string, miss [][]bool) []*Series {

	series := make([]*Series, len(rdr.dict.Columns))
	for j, col := range rdr.dict.Columns {
		if miss[j] == nil {
			miss[j] = []bool{}
		}
		switch rdr.types[j] {
		case NumericType:
			if fdata[j] == nil {
				fdata[j] = []float64{}
			}
			series[j] = mustSeries(col.Name, fdata[j], miss[j])
		default:
			if sdata[j] == nil {
				sdata[j] = []string{}
			}
			series[j] = mustSeries(col.Name, sdata[j], miss[j])
		}
	}

	return series
}

// gzipFile closes both the gzip stream and the file beneath it.
type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if ferr := g.f.Close(); err == nil {
		err = ferr
	}
	return err
}

// bufferedFile reads through a bufio.Reader that has peeked at the
// file header.
type bufferedFile struct {
	*bufio.Reader
	f *os.File
}

func (b *bufferedFile) Close() error {
	return b.f.Close()
}

// OpenData opens a data file for reading.  The file is decompressed
// transparently if it is gzip compressed, as determined by its name
// or its leading bytes.  The caller must close the returned reader.
func OpenData(path string) (io.ReadCloser, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	magic, _ := br.Peek(2)
	isgz := len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b

	if !isgz && !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return &bufferedFile{Reader: br, f: f}, nil
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &gzipFile{Reader: gz, f: f}, nil
}

// datasetName derives a dataset name from a data file name, e.g.
// "2002FemPreg" from "data/2002FemPreg.dat.gz".
func datasetName(path string) string {
	name := filepath.Base(path)
	if ii := strings.Index(name, "."); ii > 0 {
		name = name[0:ii]
	}
	return name
}

// ReadFixedWidth reads a fixed-width data file described by a Stata
// dictionary.  At most nrows records are read; if nrows is negative
// the whole file is read.  Both files are closed before returning.
func ReadFixedWidth(dictPath, dataPath string, nrows int) (*Dataset, error) {

	dict, err := OpenDictionary(dictPath)
	if err != nil {
		return nil, err
	}

	r, err := OpenData(dataPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rdr := NewFixedWidthReader(r, dict)
	rdr.SniffRows = nrows

	cols, err := rdr.Read(nrows)
	if err == io.EOF {
		cols = rdr.buildSeries(make([][]float64, len(dict.Columns)),
			make([][]string, len(dict.Columns)), make([][]bool, len(dict.Columns)))
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", dataPath, err)
	}

	return NewDataset(datasetName(dataPath), cols)
}
