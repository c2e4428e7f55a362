package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/edp1096/nodemesh/pkg/circuit"
	"github.com/edp1096/nodemesh/pkg/solver"
)

// ErrSolved is returned when the circuit's system was already reduced by an
// earlier solve and must be loaded again.
var ErrSolved = errors.New("analysis: circuit is already solved, reload its equations")

// Linear solves a loaded circuit once with the given solver.
type Linear struct {
	BaseAnalysis
	solver   solver.Solver
	residual float64
	elapsed  time.Duration
}

// NewLinear uses a Gaussian solver when s is nil.
func NewLinear(s solver.Solver) *Linear {
	if s == nil {
		s = solver.NewGaussian()
	}
	return &Linear{
		BaseAnalysis: *NewBaseAnalysis(),
		solver:       s,
	}
}

func (l *Linear) Setup(ckt *circuit.Circuit) error {
	if ckt == nil || ckt.GetSystem() == nil {
		return fmt.Errorf("no circuit to analyze")
	}
	l.Circuit = ckt
	return nil
}

func (l *Linear) Execute() error {
	if l.Circuit == nil {
		return fmt.Errorf("analysis is not set up")
	}
	ckt := l.Circuit
	if ckt.Solved() {
		return ErrSolved
	}
	sys := ckt.GetSystem()
	original := sys.Clone()

	start := time.Now()
	x, err := l.solver.Solve(sys)
	l.elapsed = time.Since(start)
	if err != nil {
		return fmt.Errorf("matrix solve error: %w", err)
	}

	l.residual = original.Residual(x)
	if !l.CheckResidual(l.residual, original.Constants()) && l.logger != nil {
		l.logger.Printf("Warning: residual %g exceeds tolerance, solution may be inaccurate", l.residual)
	}

	ckt.SetSolution(x)
	l.storeResults(x)

	return nil
}

func (l *Linear) storeResults(x []float64) {
	for name, idx := range l.Circuit.GetUnknownMap() {
		l.storeResult(name, x[idx-1])
	}
}

// Residual is max |A·x - b| against the system as loaded.
func (l *Linear) Residual() float64 {
	return l.residual
}

func (l *Linear) Elapsed() time.Duration {
	return l.elapsed
}
