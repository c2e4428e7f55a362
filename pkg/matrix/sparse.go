package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// SparseSystem holds a LinearSystem in the sparse LU package. Vectors are
// 1-based as the sparse package expects; slot 0 is unused.
type SparseSystem struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
	config   *sparse.Configuration
}

func NewSparseSystem(size int) (*SparseSystem, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &SparseSystem{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1),
		solution: make([]float64, size+1),
		config:   config,
	}, nil
}

// Load copies every entry of sys, zeros included, so the element structure
// is complete before ordering.
func (m *SparseSystem) Load(sys *LinearSystem) error {
	if sys.Size() != m.Size {
		return fmt.Errorf("size mismatch: dense %d, sparse %d", sys.Size(), m.Size)
	}

	m.matrix.Clear()
	for i := 1; i <= m.Size; i++ {
		for j := 1; j <= m.Size; j++ {
			m.matrix.GetElement(int64(i), int64(j)).Real += sys.At(i-1, j-1)
		}
		m.rhs[i] = sys.Constant(i - 1)
	}
	return nil
}

func (m *SparseSystem) Solve() ([]float64, error) {
	var err error

	err = m.matrix.Factor()
	if err != nil {
		return nil, fmt.Errorf("matrix factorization failed: %v", err)
	}

	m.solution, err = m.matrix.Solve(m.rhs)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}

	x := make([]float64, m.Size)
	copy(x, m.solution[1:m.Size+1])
	return x, nil
}

func (m *SparseSystem) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}
