package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
)

const (
	// DigitSide is the width and height of a digit image in pixels.
	DigitSide = 28
	// DigitSize is the number of bytes in one digit image.
	DigitSize = DigitSide * DigitSide
)

// ReadDigits reads up to limit raw 28x28 grayscale images from r and labels
// them with label out of classes. Pixel bytes are scaled to [0, 1]. A limit
// of 0 reads every complete image; trailing partial images are ignored.
func ReadDigits(r io.Reader, label, classes, limit int) ([]Sample, error) {
	expected, err := OneHot(label, classes)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	buf := make([]byte, DigitSize)
	var samples []Sample
	for limit <= 0 || len(samples) < limit {
		if _, err := io.ReadFull(br, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("read image %d: %w", len(samples), err)
		}
		input, err := linalg.Generate(DigitSize, func(i int) float64 {
			return float64(buf[i]) / 255
		})
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample{Input: input, Expected: expected, Label: label})
	}
	return samples, nil
}

// LoadDigits loads files dir/data0 .. dir/data<classes-1>, one file per digit
// class, reading at most perClass images from each (0 for all).
func LoadDigits(dir string, classes, perClass int) (*Dataset, error) {
	if classes <= 0 {
		return nil, fmt.Errorf("digits: classes must be > 0 (got %d)", classes)
	}
	var samples []Sample
	for label := 0; label < classes; label++ {
		path := filepath.Join(dir, fmt.Sprintf("data%d", label))
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		digits, err := ReadDigits(file, label, classes, perClass)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(digits) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
		}
		samples = append(samples, digits...)
	}
	return New("digits", samples)
}
