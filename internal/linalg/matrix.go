package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is an immutable Rows x Cols matrix stored row-major. Row i holds the
// incoming weights of neuron i when the matrix is used as a layer.
// The zero value is an empty matrix.
type Matrix struct {
	d *mat.Dense
}

// NewMatrix builds a rows x cols matrix from row-major data. A nil data slice
// yields a zero matrix. The data is copied.
func NewMatrix(rows, cols int, data []float64) (Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return Matrix{}, fmt.Errorf("matrix of shape %dx%d: %w", rows, cols, ErrInvalidShape)
	}
	if data == nil {
		return Matrix{d: mat.NewDense(rows, cols, nil)}, nil
	}
	if len(data) != rows*cols {
		return Matrix{}, mismatch("new matrix", rows*cols, len(data))
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return Matrix{d: mat.NewDense(rows, cols, buf)}, nil
}

// MatrixFromRows builds a matrix from equally sized rows.
func MatrixFromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, fmt.Errorf("matrix from %d rows: %w", len(rows), ErrInvalidShape)
	}
	cols := len(rows[0])
	buf := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, mismatch(fmt.Sprintf("matrix row %d", i), cols, len(row))
		}
		buf = append(buf, row...)
	}
	return Matrix{d: mat.NewDense(len(rows), cols, buf)}, nil
}

// GenerateMatrix builds a rows x cols matrix whose (i, j) element is f(i, j).
func GenerateMatrix(rows, cols int, f func(i, j int) float64) (Matrix, error) {
	m, err := NewMatrix(rows, cols, nil)
	if err != nil {
		return Matrix{}, err
	}
	m.d.Apply(func(i, j int, _ float64) float64 { return f(i, j) }, m.d)
	return m, nil
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	if m.d == nil {
		return 0
	}
	r, _ := m.d.Dims()
	return r
}

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if m.d == nil {
		return 0
	}
	_, c := m.d.Dims()
	return c
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.d.At(i, j)
}

// Row returns row i.
func (m Matrix) Row(i int) Vector {
	return Vector{data: m.d.RawRowView(i)}
}

// Col returns a copy of column j.
func (m Matrix) Col(j int) Vector {
	return Vector{data: mat.Col(nil, j, m.d)}
}

// RawRows returns a copy of the matrix as a slice of rows.
func (m Matrix) RawRows() [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = m.Row(i).Raw()
	}
	return out
}

// Equal reports whether both matrices have the same shape and elements.
func (m Matrix) Equal(other Matrix) bool {
	if m.d == nil || other.d == nil {
		return m.d == nil && other.d == nil
	}
	return mat.Equal(m.d, other.d)
}

// IsFinite reports whether no element is NaN or infinite.
func (m Matrix) IsFinite() bool {
	if m.d == nil {
		return true
	}
	return allFinite(m.d.RawMatrix().Data)
}

func (m Matrix) String() string {
	if m.d == nil {
		return "[]"
	}
	return fmt.Sprintf("%.4v", mat.Formatted(m.d, mat.Squeeze()))
}

// RowMap computes f(row_i, bias_i) for every row of m. It fuses the
// dot-with-input, add-bias and activation steps of a layer into one pass.
func RowMap(m Matrix, bias Vector, f func(row Vector, bias float64) float64) (Vector, error) {
	if bias.Len() != m.Rows() {
		return Vector{}, mismatch("row map", m.Rows(), bias.Len())
	}
	out := make([]float64, m.Rows())
	for i := range out {
		out[i] = f(m.Row(i), bias.data[i])
	}
	return Vector{data: out}, nil
}

// MulVecT returns mᵀ·v, the vector whose j-th element is the sum over i of m[i][j]*v[i].
func MulVecT(m Matrix, v Vector) (Vector, error) {
	if v.Len() != m.Rows() {
		return Vector{}, mismatch("transposed product", m.Rows(), v.Len())
	}
	if m.d == nil {
		return Vector{}, fmt.Errorf("transposed product of empty matrix: %w", ErrInvalidShape)
	}
	var out mat.VecDense
	out.MulVec(m.d.T(), mat.NewVecDense(v.Len(), v.data))
	return Vector{data: out.RawVector().Data}, nil
}

// Outer returns the a.Len() x b.Len() matrix whose (i, j) element is a[i]*b[j].
func Outer(a, b Vector) (Matrix, error) {
	if a.Len() == 0 || b.Len() == 0 {
		return Matrix{}, fmt.Errorf("outer product of %d and %d: %w", a.Len(), b.Len(), ErrInvalidShape)
	}
	var d mat.Dense
	d.Outer(1, mat.NewVecDense(a.Len(), a.data), mat.NewVecDense(b.Len(), b.data))
	return Matrix{d: &d}, nil
}

// AddScaledMatrix returns a + alpha*b.
func AddScaledMatrix(a Matrix, alpha float64, b Matrix) (Matrix, error) {
	if a.Rows() != b.Rows() {
		return Matrix{}, mismatch("add scaled rows", a.Rows(), b.Rows())
	}
	if a.Cols() != b.Cols() {
		return Matrix{}, mismatch("add scaled cols", a.Cols(), b.Cols())
	}
	if a.d == nil {
		return Matrix{}, nil
	}
	var d mat.Dense
	d.Scale(alpha, b.d)
	d.Add(a.d, &d)
	return Matrix{d: &d}, nil
}
