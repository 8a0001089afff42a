package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
)

func TestXOR(t *testing.T) {
	d := XOR()
	require.Equal(t, 4, d.Len())
	assert.Equal(t, 2, d.InputSize)
	assert.Equal(t, 1, d.OutputSize)

	for _, s := range d.Samples {
		want := float64(int(s.Input.At(0)) ^ int(s.Input.At(1)))
		assert.Equal(t, want, s.Expected.At(0), "xor%v", s.Input)
		assert.Equal(t, int(want), s.Label)
	}
}

func TestPoints(t *testing.T) {
	d, err := Points(200, 3)
	require.NoError(t, err)
	require.Equal(t, 200, d.Len())

	for _, s := range d.Samples {
		x, y := s.Input.At(0), s.Input.At(1)
		assert.True(t, x >= 0 && x < 1 && y >= 0 && y < 1)
		if x >= y {
			assert.Equal(t, 1, s.Label)
			assert.Equal(t, 1.0, s.Expected.At(0))
		} else {
			assert.Equal(t, 0, s.Label)
			assert.Equal(t, 0.0, s.Expected.At(0))
		}
	}

	again, err := Points(200, 3)
	require.NoError(t, err)
	assert.Equal(t, d.Samples[17].Input.Raw(), again.Samples[17].Input.Raw())

	_, err = Points(0, 1)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewRejectsMixedShapes(t *testing.T) {
	_, err := New("mixed", []Sample{
		{Input: linalg.VectorFrom(1, 2), Expected: linalg.VectorFrom(1)},
		{Input: linalg.VectorFrom(1), Expected: linalg.VectorFrom(1)},
	})
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)

	_, err = New("mixed", []Sample{
		{Input: linalg.VectorFrom(1), Expected: linalg.VectorFrom(1)},
		{Input: linalg.VectorFrom(1), Expected: linalg.VectorFrom(1, 0)},
	})
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)

	_, err = New("none", nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSplit(t *testing.T) {
	d, err := Points(10, 1)
	require.NoError(t, err)

	train, test := d.Split(0.8)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, test.Len())
	assert.Equal(t, d.InputSize, test.InputSize)

	all, none := d.Split(2)
	assert.Equal(t, 10, all.Len())
	assert.Equal(t, 0, none.Len())
}

func TestShuffle(t *testing.T) {
	d, err := Points(30, 1)
	require.NoError(t, err)
	before := make([]float64, d.Len())
	for i, s := range d.Samples {
		before[i] = s.Input.At(0)
	}

	d.Shuffle(4)
	after := make([]float64, d.Len())
	for i, s := range d.Samples {
		after[i] = s.Input.At(0)
	}
	assert.ElementsMatch(t, before, after)
	assert.NotEqual(t, before, after)
}

func TestOneHot(t *testing.T) {
	v, err := OneHot(2, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 0}, v.Raw())

	_, err = OneHot(4, 4)
	assert.Error(t, err)
	_, err = OneHot(-1, 4)
	assert.Error(t, err)
}

func digitBytes(images int, fill func(img, px int) byte) []byte {
	buf := make([]byte, images*DigitSize)
	for img := 0; img < images; img++ {
		for px := 0; px < DigitSize; px++ {
			buf[img*DigitSize+px] = fill(img, px)
		}
	}
	return buf
}

func TestReadDigits(t *testing.T) {
	raw := digitBytes(3, func(img, px int) byte { return byte(img * 100) })
	raw = append(raw, 1, 2, 3) // partial trailing image

	samples, err := ReadDigits(bytes.NewReader(raw), 1, 3, 0)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	for i, s := range samples {
		assert.Equal(t, DigitSize, s.Input.Len())
		assert.InDelta(t, float64(i*100)/255, s.Input.At(0), 1e-12)
		assert.Equal(t, []float64{0, 1, 0}, s.Expected.Raw())
		assert.Equal(t, 1, s.Label)
	}

	limited, err := ReadDigits(bytes.NewReader(raw), 0, 3, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = ReadDigits(bytes.NewReader(raw), 3, 3, 0)
	assert.Error(t, err)
}

func TestLoadDigits(t *testing.T) {
	dir := t.TempDir()
	for label := 0; label < 3; label++ {
		raw := digitBytes(4, func(_, px int) byte { return byte(px % 256) })
		require.NoError(t, os.WriteFile(filepath.Join(dir, "data"+strconv.Itoa(label)), raw, 0o644))
	}

	d, err := LoadDigits(dir, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, DigitSize, d.InputSize)
	assert.Equal(t, 3, d.OutputSize)
	assert.Equal(t, 2, d.Samples[5].Label)
	assert.InDelta(t, 255.0/255, d.Samples[0].Input.At(255), 1e-12)

	_, err = LoadDigits(dir, 4, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "data.csv")
	file, err := os.Create(filename)
	require.NoError(t, err)
	defer file.Close()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.WriteAll(rows))
	return filename
}

func TestLoadCSV(t *testing.T) {
	filename := writeCSV(t, [][]string{
		{"f1", "f2", "l1", "f3", "l2"},
		{"1.0", "2.0", "0.0", "3.0", "1.0"},
		{"4.0", "5.0", "1.0", "6.0", "0.0"},
	})

	d, err := LoadCSV(filename, []int{4, 2}, true)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	assert.Equal(t, 3, d.InputSize)
	assert.Equal(t, 2, d.OutputSize)

	assert.Equal(t, []float64{1, 2, 3}, d.Samples[0].Input.Raw())
	assert.Equal(t, []float64{1, 0}, d.Samples[0].Expected.Raw())
	assert.Equal(t, []float64{4, 5, 6}, d.Samples[1].Input.Raw())
	assert.Equal(t, []float64{0, 1}, d.Samples[1].Expected.Raw())
	assert.Equal(t, -1, d.Samples[0].Label)
}

func TestLoadCSVErrors(t *testing.T) {
	bad := writeCSV(t, [][]string{{"1", "x", "0"}})
	_, err := LoadCSV(bad, []int{2}, false)
	assert.ErrorContains(t, err, "row 0, col 1")

	headerOnly := writeCSV(t, [][]string{{"a", "b"}})
	_, err = LoadCSV(headerOnly, []int{1}, true)
	assert.ErrorIs(t, err, ErrEmpty)

	ok := writeCSV(t, [][]string{{"1", "2"}})
	_, err = LoadCSV(ok, []int{5}, false)
	assert.Error(t, err)
	_, err = LoadCSV(ok, []int{0, 1}, false)
	assert.Error(t, err)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), []int{0}, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	d, err := New("n", []Sample{
		{Input: linalg.VectorFrom(0, 5, 10), Expected: linalg.VectorFrom(0)},
		{Input: linalg.VectorFrom(10, 5, 20), Expected: linalg.VectorFrom(1)},
		{Input: linalg.VectorFrom(5, 5, 15), Expected: linalg.VectorFrom(1)},
	})
	require.NoError(t, err)

	d.Normalize()
	assert.Equal(t, []float64{0, 0, 0}, d.Samples[0].Input.Raw())
	assert.Equal(t, []float64{1, 0, 1}, d.Samples[1].Input.Raw())
	assert.Equal(t, []float64{0.5, 0, 0.5}, d.Samples[2].Input.Raw())
}

func TestUniformSampler(t *testing.T) {
	d := XOR()
	a := NewUniformSampler(d, 7)
	b := NewUniformSampler(d, 7)

	counts := map[int]int{}
	for i := 0; i < 4000; i++ {
		sa, sb := a.Next(), b.Next()
		assert.True(t, sa.Input.Equal(sb.Input))
		counts[int(sa.Input.At(0))*2+int(sa.Input.At(1))]++
	}
	require.Len(t, counts, 4)
	for k, c := range counts {
		assert.InDelta(t, 1000, c, 150, "case %d", k)
	}
}

func TestShuffleSamplerVisitsEachSampleOncePerEpoch(t *testing.T) {
	d, err := Points(25, 2)
	require.NoError(t, err)
	s := NewShuffleSampler(d, 9)

	for epoch := 0; epoch < 3; epoch++ {
		seen := map[[2]float64]int{}
		for i := 0; i < d.Len(); i++ {
			sample := s.Next()
			seen[[2]float64{sample.Input.At(0), sample.Input.At(1)}]++
		}
		assert.Len(t, seen, d.Len())
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}
		assert.Equal(t, epoch, s.Epoch())
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyUniform, p)

	p, err = ParsePolicy("Shuffle")
	require.NoError(t, err)
	assert.Equal(t, PolicyShuffle, p)

	_, err = ParsePolicy("minibatch")
	assert.Error(t, err)
}

func TestNewSampler(t *testing.T) {
	s, err := NewSampler(XOR(), PolicyShuffle, 1)
	require.NoError(t, err)
	assert.IsType(t, &ShuffleSampler{}, s)

	s, err = NewSampler(XOR(), PolicyUniform, 1)
	require.NoError(t, err)
	assert.IsType(t, &UniformSampler{}, s)

	_, err = NewSampler(&Dataset{}, PolicyUniform, 1)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = NewSampler(XOR(), Policy("other"), 1)
	assert.Error(t, err)
}
