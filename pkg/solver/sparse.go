package solver

import (
	"fmt"
	"math"

	"github.com/edp1096/nodemesh/pkg/matrix"
	"github.com/edp1096/nodemesh/pkg/util"
)

// sparse LU may finish on a structurally singular matrix without an error,
// so every solution is checked against the system before it is accepted
const sparseResidualTol = 1e-9

// Sparse factors the system with the Markowitz-ordered LU of the sparse
// package. Results are copied back into sys so both solvers share one
// contract.
type Sparse struct {
	residualTol float64
}

type SparseOption func(*Sparse)

// WithResidualTolerance sets the scaled residual above which a sparse
// solution is reported singular. tol <= 0 keeps the default.
func WithResidualTolerance(tol float64) SparseOption {
	return func(s *Sparse) {
		if tol > 0 {
			s.residualTol = tol
		}
	}
}

func NewSparse(opts ...SparseOption) *Sparse {
	s := &Sparse{residualTol: sparseResidualTol}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sparse) ResidualTolerance() float64 {
	return s.residualTol
}

func (s *Sparse) Solve(sys *matrix.LinearSystem) ([]float64, error) {
	mat, err := matrix.NewSparseSystem(sys.Size())
	if err != nil {
		return nil, err
	}
	defer mat.Destroy()

	if err := mat.Load(sys); err != nil {
		return nil, err
	}

	x, err := mat.Solve()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite value for unknown %d", ErrSingular, i+1)
		}
	}

	if r := sys.Residual(x); r > s.residualTol*residualScale(sys, x) {
		return nil, fmt.Errorf("%w: residual %g after sparse solve", ErrSingular, r)
	}

	b := sys.Constants()
	copy(b, x)
	return b, nil
}

func residualScale(sys *matrix.LinearSystem, x []float64) float64 {
	maxA := 0.0
	for i := 0; i < sys.Size(); i++ {
		maxA = math.Max(maxA, util.AbsMax(sys.Row(i)))
	}
	return math.Max(1, math.Max(util.AbsMax(sys.Constants()), maxA*util.AbsMax(x)))
}
