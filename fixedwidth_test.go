package nsfg

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhunton/nsfg/internal/synth"
)

func sampleDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := ReadFixedWidth(filepath.Join("test_files", "data", "sample.dct"),
		filepath.Join("test_files", "data", "sample.dat"), -1)
	require.NoError(t, err)
	return ds
}

// floatsOf returns the values of a numeric column, with NaN standing in
// for missing values so that the result can be compared with cmp.
func floatsOf(t *testing.T, ds *Dataset, name string) []interface{} {
	t.Helper()
	s, err := ds.Column(name)
	require.NoError(t, err)
	out := make([]interface{}, s.Length())
	for i := range out {
		if v, ok := s.Float(i); ok {
			out[i] = v
		} else {
			out[i] = nil
		}
	}
	return out
}

func TestReadSample(t *testing.T) {

	ds := sampleDataset(t)
	assert.Equal(t, "sample", ds.Name)
	assert.Equal(t, 5, ds.NumRows())
	assert.Equal(t, 9, ds.NumCols())

	// caseid is declared str12 but holds only numbers.
	caseid, err := ds.Column("caseid")
	require.NoError(t, err)
	assert.True(t, caseid.IsNumeric())

	want := map[string][]interface{}{
		"caseid":    {1.0, 1.0, 2.0, 2298.0, 5012.0},
		"pregordr":  {1.0, 2.0, 1.0, 1.0, 1.0},
		"howpreg_n": {nil, nil, 9.0, nil, nil},
		"howpreg_p": {nil, nil, 2.0, nil, nil},
		"agepreg":   {3316.0, 3925.0, nil, 2575.0, nil},
		"finalwgt":  {6448.271111704751, 6448.271111704751, 8500.0, 12999.542264385902, nil},
		// The final column loses its last byte.
		"cmintvw": {123.0, 123.0, 123.0, 123.0, nil},
	}
	for name, w := range want {
		if diff := cmp.Diff(w, floatsOf(t, ds, name)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestReadNoInference(t *testing.T) {

	dict, err := OpenDictionary(filepath.Join("test_files", "data", "sample.dct"))
	require.NoError(t, err)
	f, err := os.Open(filepath.Join("test_files", "data", "sample.dat"))
	require.NoError(t, err)
	defer f.Close()

	rdr := NewFixedWidthReader(f, dict)
	rdr.InferNumeric = false
	cols, err := rdr.Read(-1)
	require.NoError(t, err)

	v, miss, err := cols[0].AsStringSlice()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1", "2", "2298", "5012"}, v)
	assert.Equal(t, []bool{false, false, false, false, false}, miss)
	assert.Equal(t, StringType, rdr.ColumnTypes()[0])
}

func TestReadChunks(t *testing.T) {

	dict, err := OpenDictionary(filepath.Join("test_files", "data", "sample.dct"))
	require.NoError(t, err)
	f, err := os.Open(filepath.Join("test_files", "data", "sample.dat"))
	require.NoError(t, err)
	defer f.Close()

	rdr := NewFixedWidthReader(f, dict)
	rdr.SniffRows = 2

	var sizes []int
	for {
		chunk, err := rdr.Read(2)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, chunk[0].Length())
	}

	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, 5, rdr.RowsRead())
	assert.Equal(t, NumericType, rdr.ColumnTypes()[0])
}

func TestReadRowLimit(t *testing.T) {
	ds, err := ReadFixedWidth(filepath.Join("test_files", "data", "sample.dct"),
		filepath.Join("test_files", "data", "sample.dat"), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())
}

func TestReadEmptyFile(t *testing.T) {

	dir := t.TempDir()
	dat := filepath.Join(dir, "empty.dat")
	require.NoError(t, os.WriteFile(dat, nil, 0o644))

	ds, err := ReadFixedWidth(filepath.Join("test_files", "data", "sample.dct"), dat, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.NumRows())
	assert.Equal(t, 9, ds.NumCols())
}

func TestReadGzip(t *testing.T) {

	resp, preg := synth.Generate(99, 50)
	dir := t.TempDir()

	for _, tab := range []*synth.Table{resp, preg} {
		dct, dat, err := tab.WriteFiles(dir, true)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(dat, ".dat.gz"))

		ds, err := ReadFixedWidth(dct, dat, -1)
		require.NoError(t, err)
		assert.Equal(t, len(tab.Rows), ds.NumRows())
		assert.Equal(t, tab.Name, ds.Name)
	}
}

func TestOpenDataSniffsGzip(t *testing.T) {

	// Compressed content under a name without the .gz suffix.
	path := filepath.Join(t.TempDir(), "data.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	r, err := OpenData(path)
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(b))
}

func TestOpenDataCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dat.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))
	_, err := OpenData(path)
	assert.Error(t, err)
}

// Reading the same files twice gives the same data.
func TestReadIdempotent(t *testing.T) {

	_, preg := synth.Generate(7, 200)
	dct, dat, err := preg.WriteFiles(t.TempDir(), true)
	require.NoError(t, err)

	ds1, err := ReadFixedWidth(dct, dat, -1)
	require.NoError(t, err)
	ds2, err := ReadFixedWidth(dct, dat, -1)
	require.NoError(t, err)

	eq, j, i := ds1.AllEqual(ds2)
	assert.True(t, eq, "first difference at column %d row %d", j, i)
}

func TestTruncatedRecord(t *testing.T) {

	dict, err := ParseDictionary(strings.NewReader(
		"_column(1) byte a %2f\n_column(3) byte b %2f\n_column(5) byte c %2f\n_column(7) int d %3f\n"))
	require.NoError(t, err)

	rdr := NewFixedWidthReader(strings.NewReader(" 1 2 3 45\n 6 7\n\n 8\n"), dict)
	cols, err := rdr.Read(-1)
	require.NoError(t, err)

	ds, err := NewDataset("t", cols)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())

	if diff := cmp.Diff([]interface{}{1.0, 6.0, 8.0}, floatsOf(t, ds, "a")); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]interface{}{2.0, 7.0, nil}, floatsOf(t, ds, "b")); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]interface{}{3.0, nil, nil}, floatsOf(t, ds, "c")); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]interface{}{4.0, nil, nil}, floatsOf(t, ds, "d")); diff != "" {
		t.Error(diff)
	}
}
