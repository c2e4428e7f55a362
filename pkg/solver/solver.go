package solver

import (
	"errors"

	"github.com/edp1096/nodemesh/pkg/matrix"
)

// ErrSingular means the system has no unique solution.
var ErrSingular = errors.New("solver: system has no unique solution")

// Solver solves sys in place. On success the returned slice is
// sys.Constants() holding x; on failure it is nil and the contents of sys
// are unspecified.
type Solver interface {
	Solve(sys *matrix.LinearSystem) ([]float64, error)
}
