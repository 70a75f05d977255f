// Package synth generates small synthetic NSFG-style data sets: a
// Stata dictionary and a matching fixed-width data file for a
// respondent table and a pregnancy table.  The values follow the
// codebook conventions, including the sentinel codes for "not
// ascertained", "refused" and "don't know".
package synth

import (
	"compress/gzip"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// A Field is one column of a synthetic table.
type Field struct {
	Name  string
	Type  string // Stata storage type, e.g. "byte" or "str12"
	Width int
}

// A Table is a synthetic fixed-width table.  Row values are stored as
// text; an empty string is written as a blank field.
type Table struct {
	Name   string
	Fields []Field
	Rows   [][]string
}

// RespFields is the column layout of the synthetic respondent table.
var RespFields = []Field{
	{"caseid", "str12", 12},
	{"age_r", "byte", 2},
	{"pregnum", "byte", 2},
	{"cmintvw", "int", 4},
}

// PregFields is the column layout of the synthetic pregnancy table.
var PregFields = []Field{
	{"caseid", "str12", 12},
	{"pregordr", "byte", 2},
	{"outcome", "byte", 1},
	{"birthord", "byte", 2},
	{"prglngth", "byte", 2},
	{"birthwgt_lb", "byte", 2},
	{"birthwgt_oz", "byte", 2},
	{"babysex", "byte", 1},
	{"nbrnaliv", "byte", 1},
	{"hpagelb", "byte", 2},
	{"agepreg", "int", 4},
	{"finalwgt", "double", 18},
	{"cmintvw", "int", 4},
}

// NewTable returns an empty table with the given layout.
func NewTable(name string, fields []Field) *Table {
	return &Table{Name: name, Fields: fields}
}

// col returns the position of the named field.
func (t *Table) col(name string) int {
	for j, f := range t.Fields {
		if f.Name == name {
			return j
		}
	}
	panic(fmt.Sprintf("synth: no field %s in %s", name, t.Name))
}

// Append adds a row given as field name to value.  Unnamed fields are
// blank.
func (t *Table) Append(vals map[string]string) {
	row := make([]string, len(t.Fields))
	for k, v := range vals {
		row[t.col(k)] = v
	}
	t.Rows = append(t.Rows, row)
}

// Get returns the value of a field in a row.
func (t *Table) Get(row int, name string) string {
	return t.Rows[row][t.col(name)]
}

// Set changes the value of a field in a row.
func (t *Table) Set(row int, name, value string) {
	t.Rows[row][t.col(name)] = value
}

// WriteDict writes the Stata dictionary describing the table.
func (t *Table) WriteDict(w io.Writer) error {

	if _, err := fmt.Fprintf(w, "infile dictionary {\n"); err != nil {
		return err
	}

	pos := 1
	for _, f := range t.Fields {
		fmtcode := fmt.Sprintf("%%%df", f.Width)
		if strings.HasPrefix(f.Type, "str") {
			fmtcode = fmt.Sprintf("%%%ds", f.Width)
		}
		label := strings.ToUpper(strings.ReplaceAll(f.Name, "_", " "))
		if _, err := fmt.Fprintf(w, "    _column(%d)  %-8s %12s %6s  \"%s\"\n",
			pos, f.Type, f.Name, fmtcode, label); err != nil {
			return err
		}
		pos += f.Width
	}

	_, err := fmt.Fprintf(w, "}\n")
	return err
}

// Line returns the fixed-width text of one row.  Values are right
// justified in their fields; values longer than the field are
// truncated on the left.
func (t *Table) Line(row int) string {
	var b strings.Builder
	for j, f := range t.Fields {
		v := t.Rows[row][j]
		if len(v) > f.Width {
			v = v[len(v)-f.Width:]
		}
		b.WriteString(fmt.Sprintf("%*s", f.Width, v))
	}
	return b.String()
}

// WriteData writes the fixed-width records, one per line.
func (t *Table) WriteData(w io.Writer) error {
	for i := range t.Rows {
		if _, err := io.WriteString(w, t.Line(i)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFiles writes <name>.dct and <name>.dat.gz (or <name>.dat if
// compress is false) into dir, returning both paths.
func (t *Table) WriteFiles(dir string, compress bool) (string, string, error) {

	dctPath := filepath.Join(dir, t.Name+".dct")
	df, err := os.Create(dctPath)
	if err != nil {
		return "", "", err
	}
	if err := t.WriteDict(df); err != nil {
		df.Close()
		return "", "", err
	}
	if err := df.Close(); err != nil {
		return "", "", err
	}

	datPath := filepath.Join(dir, t.Name+".dat")
	if compress {
		datPath += ".gz"
	}
	f, err := os.Create(datPath)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		w = gz
	}
	if err := t.WriteData(w); err != nil {
		return "", "", err
	}
	if gz != nil {
		// order is important here
		if err := gz.Close(); err != nil {
			return "", "", err
		}
	}

	return dctPath, datPath, f.Close()
}

// Generate returns a respondent table with nresp respondents and a
// pregnancy table consistent with each respondent's pregnum.  The
// tables are named 2002FemResp and 2002FemPreg.
func Generate(seed int64, nresp int) (*Table, *Table) {

	r := rand.New(rand.NewSource(seed))

	resp := NewTable("2002FemResp", RespFields)
	preg := NewTable("2002FemPreg", PregFields)

	sentinel := func() string {
		return fmt.Sprintf("%d", 97+r.Intn(3))
	}

	for i := 0; i < nresp; i++ {
		caseid := fmt.Sprintf("%d", i+1)
		pregnum := r.Intn(4)
		cmintvw := fmt.Sprintf("%d", 1200+r.Intn(100))

		resp.Append(map[string]string{
			"caseid":  caseid,
			"age_r":   fmt.Sprintf("%d", 15+r.Intn(30)),
			"pregnum": fmt.Sprintf("%d", pregnum),
			"cmintvw": cmintvw,
		})

		nlive := 0
		for k := 0; k < pregnum; k++ {
			rec := map[string]string{
				"caseid":   caseid,
				"pregordr": fmt.Sprintf("%d", k+1),
				"agepreg":  fmt.Sprintf("%d", 1500+r.Intn(3000)),
				"finalwgt": fmt.Sprintf("%.6f", 1000+20000*r.Float64()),
				"cmintvw":  cmintvw,
			}

			if r.Float64() < 0.7 {
				nlive++
				rec["outcome"] = "1"
				rec["birthord"] = fmt.Sprintf("%d", nlive)
				rec["prglngth"] = fmt.Sprintf("%d", 35+r.Intn(9))

				switch u := r.Float64(); {
				case u < 0.05:
					rec["birthwgt_lb"] = sentinel()
				case u < 0.07:
					rec["birthwgt_lb"] = "51"
				default:
					rec["birthwgt_lb"] = fmt.Sprintf("%d", 4+r.Intn(7))
				}

				if r.Float64() < 0.05 {
					rec["birthwgt_oz"] = sentinel()
				} else {
					rec["birthwgt_oz"] = fmt.Sprintf("%d", r.Intn(16))
				}

				switch u := r.Float64(); {
				case u < 0.02:
					rec["babysex"] = "7"
				case u < 0.04:
					rec["babysex"] = "9"
				default:
					rec["babysex"] = fmt.Sprintf("%d", 1+r.Intn(2))
				}

				if r.Float64() < 0.03 {
					rec["nbrnaliv"] = "9"
				} else {
					rec["nbrnaliv"] = "1"
				}

				if r.Float64() < 0.05 {
					rec["hpagelb"] = sentinel()
				} else {
					rec["hpagelb"] = fmt.Sprintf("%d", 15+r.Intn(30))
				}
			} else {
				rec["outcome"] = fmt.Sprintf("%d", 2+r.Intn(5))
				rec["prglngth"] = fmt.Sprintf("%d", 4+r.Intn(16))
			}

			preg.Append(rec)
		}
	}

	return resp, preg
}
