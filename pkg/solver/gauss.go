package solver

import (
	"fmt"
	"math"

	"github.com/edp1096/nodemesh/pkg/matrix"
)

// Gaussian is elimination with partial pivoting followed by back
// substitution.
type Gaussian struct {
	pivotTol float64
}

type Option func(*Gaussian)

// WithPivotTolerance treats any pivot with |p| <= eps as zero. This is an
// optional strengthening; the default (eps = 0) only rejects exact zeros.
func WithPivotTolerance(eps float64) Option {
	return func(g *Gaussian) {
		if eps > 0 {
			g.pivotTol = eps
		}
	}
}

func NewGaussian(opts ...Option) *Gaussian {
	g := &Gaussian{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gaussian) PivotTolerance() float64 {
	return g.pivotTol
}

func (g *Gaussian) Solve(sys *matrix.LinearSystem) ([]float64, error) {
	n := sys.Size()
	b := sys.Constants()

	// Forward elimination
	for i := 0; i < n; i++ {
		pivotRow := i
		maxVal := math.Abs(sys.At(i, i))
		// strictly greater: the first row with the maximum wins
		for r := i + 1; r < n; r++ {
			if v := math.Abs(sys.At(r, i)); v > maxVal {
				maxVal = v
				pivotRow = r
			}
		}

		if g.isZeroPivot(maxVal) {
			return nil, fmt.Errorf("%w: zero pivot in column %d", ErrSingular, i+1)
		}

		sys.SwapRows(i, pivotRow)

		pivot := sys.Row(i)
		for r := i + 1; r < n; r++ {
			row := sys.Row(r)
			factor := row[i] / pivot[i]
			for k := i; k < n; k++ {
				row[k] -= factor * pivot[k]
			}
			b[r] -= factor * b[i]
		}
	}

	// Back substitution, x overwrites b
	for i := n - 1; i >= 0; i-- {
		row := sys.Row(i)
		x := b[i]
		for j := i + 1; j < n; j++ {
			x -= row[j] * b[j]
		}
		b[i] = x / row[i]
	}

	return b, nil
}

func (g *Gaussian) isZeroPivot(mag float64) bool {
	if g.pivotTol > 0 {
		return mag <= g.pivotTol
	}
	return mag == 0
}
