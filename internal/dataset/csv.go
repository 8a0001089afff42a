package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
)

// LoadCSV loads data from a CSV file.
// labelCols specifies the indices of columns to be used as expected values,
// in that order. All other columns are used as features.
// hasHeader skips the first line if true.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, fmt.Errorf("csv file has no data rows: %w", ErrEmpty)
	}

	numCols := len(records[0])
	if len(labelCols) == 0 || len(labelCols) >= numCols {
		return nil, fmt.Errorf("csv file has %d columns, cannot use %d as labels", numCols, len(labelCols))
	}
	isLabelCol := make(map[int]bool, len(labelCols))
	for _, col := range labelCols {
		if col < 0 || col >= numCols || isLabelCol[col] {
			return nil, fmt.Errorf("invalid label column %d", col)
		}
		isLabelCol[col] = true
	}

	samples := make([]Sample, 0, len(records)-startRow)
	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, fmt.Errorf("inconsistent number of columns at row %d", i)
		}

		features := make([]float64, 0, numCols-len(labelCols))
		values := make([]float64, numCols)
		for j, valStr := range record {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value at row %d, col %d: %w", i, j, err)
			}
			values[j] = val
			if !isLabelCol[j] {
				features = append(features, val)
			}
		}

		expected := make([]float64, len(labelCols))
		for k, col := range labelCols {
			expected[k] = values[col]
		}

		samples = append(samples, Sample{
			Input:    linalg.VectorFrom(features...),
			Expected: linalg.VectorFrom(expected...),
			Label:    -1,
		})
	}

	return New(filename, samples)
}

// Normalize performs min-max normalization of every input feature to [0, 1].
// Features that never vary become 0.
func (d *Dataset) Normalize() {
	if len(d.Samples) == 0 {
		return
	}

	lo := d.Samples[0].Input.Raw()
	hi := d.Samples[0].Input.Raw()
	for _, s := range d.Samples {
		for i := 0; i < s.Input.Len(); i++ {
			v := s.Input.At(i)
			if v < lo[i] {
				lo[i] = v
			}
			if v > hi[i] {
				hi[i] = v
			}
		}
	}

	for k, s := range d.Samples {
		raw := s.Input.Raw()
		for i, v := range raw {
			if diff := hi[i] - lo[i]; diff != 0 {
				raw[i] = (v - lo[i]) / diff
			} else {
				raw[i] = 0
			}
		}
		d.Samples[k].Input = linalg.VectorFrom(raw...)
	}
}
