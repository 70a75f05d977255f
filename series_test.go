package nsfg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeriesErrors(t *testing.T) {

	_, err := NewSeries("x", []int{1, 2}, nil)
	assert.True(t, errors.Is(err, ErrColumnType))

	_, err = NewSeries("x", []float64{1, 2}, []bool{false})
	assert.Error(t, err)
}

func TestReplaceValues(t *testing.T) {

	s, err := NewSeries("birthwgt_oz", []float64{97, 3, 98, 0, 99, 15, 0}, []bool{false, false, false, false, false, false, true})
	require.NoError(t, err)

	r, err := s.ReplaceValues(97, 98, 99)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true, false, true, false, true}, r.Missing())
	assert.Equal(t, 4, r.CountMissing())
	x, err := r.NonMissing()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0, 15}, x)

	// The input is unchanged.
	assert.Equal(t, 1, s.CountMissing())
	v, ok := s.Float(0)
	assert.True(t, ok)
	assert.Equal(t, 97.0, v)
}

func TestMaskWhere(t *testing.T) {

	s, _ := NewSeries("birthwgt_lb", []float64{7, 51, 20, 21}, nil)
	r, err := s.MaskWhere(func(v float64) bool { return v > 20 })
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, r.Missing())

	// Masked positions hold zero, never the original magnitude.
	x, _, err := r.AsFloat64Slice()
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 0, 20, 0}, x)
}

func TestApply(t *testing.T) {

	s, _ := NewSeries("agepreg", []float64{3316, 0, 2275}, []bool{false, true, false})
	r, err := s.Apply(func(v float64) float64 { return v / 100 })
	require.NoError(t, err)

	v, ok := r.Float(0)
	assert.True(t, ok)
	assert.Equal(t, 33.16, v)
	_, ok = r.Float(1)
	assert.False(t, ok)
	v, _ = r.Float(2)
	assert.Equal(t, 22.75, v)
}

func TestCombine(t *testing.T) {

	lb, _ := NewSeries("lb", []float64{7, 0, 8, 6}, []bool{false, true, false, false})
	oz, _ := NewSeries("oz", []float64{8, 4, 0, 0}, []bool{false, false, false, true})

	tot, err := Combine("totalwgt_lb", lb, oz, func(x, y float64) float64 { return x + y/16 })
	require.NoError(t, err)

	assert.Equal(t, "totalwgt_lb", tot.Name)
	assert.Equal(t, []bool{false, true, false, true}, tot.Missing())
	v, _ := tot.Float(0)
	assert.Equal(t, 7.5, v)
	v, _ = tot.Float(2)
	assert.Equal(t, 8.0, v)

	short, _ := NewSeries("short", []float64{1}, nil)
	_, err = Combine("bad", lb, short, func(x, y float64) float64 { return x })
	assert.Error(t, err)
}

func TestStringOperations(t *testing.T) {

	s, _ := NewSeries("caseid", []string{"1", "", " 12 ", "x"}, nil)

	n := s.NullStringMissing()
	assert.Equal(t, []bool{false, true, false, false}, n.Missing())

	f := s.ForceNumeric()
	assert.True(t, f.IsNumeric())
	assert.Equal(t, []bool{false, true, false, true}, f.Missing())
	v, _ := f.Float(2)
	assert.Equal(t, 12.0, v)

	_, err := s.ReplaceValues(1)
	assert.True(t, errors.Is(err, ErrColumnType))
	_, err = s.NonMissing()
	assert.True(t, errors.Is(err, ErrColumnType))

	str, ok := s.String(2)
	assert.True(t, ok)
	assert.Equal(t, " 12 ", str)
}

func TestSetAllMissing(t *testing.T) {
	s, _ := NewSeries("cmintvw", []float64{1231, 1232}, nil)
	m := s.SetAllMissing()
	assert.Equal(t, 2, m.CountMissing())
	assert.Equal(t, 0, s.CountMissing())
}

func TestCopyIsDeep(t *testing.T) {

	s, _ := NewSeries("x", []float64{1, 2}, []bool{false, false})
	c := s.Copy()
	c.Missing()[0] = true
	c.Data().([]float64)[1] = 5

	assert.False(t, s.IsMissing(0))
	v, _ := s.Float(1)
	assert.Equal(t, 2.0, v)
}

func TestAllClose(t *testing.T) {

	a, _ := NewSeries("x", []float64{1, 2, 3}, []bool{false, true, false})
	b, _ := NewSeries("x", []float64{1, 9, 3.0000001}, []bool{false, true, false})
	c, _ := NewSeries("x", []float64{1, 2}, nil)
	d, _ := NewSeries("x", []string{"1", "2", "3"}, nil)

	eq, _ := a.AllClose(b, 1e-6)
	assert.True(t, eq)
	eq, i := a.AllEqual(b)
	assert.False(t, eq)
	assert.Equal(t, 2, i)
	_, i = a.AllEqual(c)
	assert.Equal(t, -1, i)
	_, i = a.AllEqual(d)
	assert.Equal(t, -2, i)

	eq, j, i := SeriesArray{a, d}.AllEqual([]*Series{a})
	assert.False(t, eq)
	assert.Equal(t, -1, j)
	assert.Equal(t, -1, i)
}

func TestWrite(t *testing.T) {

	s, _ := NewSeries("prglngth", []float64{39, 0}, []bool{false, true})
	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	assert.Equal(t, "Name: prglngth\nType: float64\n0:  39\n1:\n", buf.String())
}
