package matrix

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
)

var ErrInvalidSize = errors.New("matrix: system size must be at least 1")

// LinearSystem is a square system A·x = b. A is kept in one row-major
// buffer, b in a separate slice that the solvers overwrite with x.
type LinearSystem struct {
	size      int
	coeffs    []float64
	constants []float64
}

func NewLinearSystem(size int) (*LinearSystem, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	return &LinearSystem{
		size:      size,
		coeffs:    make([]float64, size*size),
		constants: make([]float64, size),
	}, nil
}

func (s *LinearSystem) Size() int {
	return s.size
}

func (s *LinearSystem) inBounds(i, j int) bool {
	return i >= 0 && j >= 0 && i < s.size && j < s.size
}

func (s *LinearSystem) At(i, j int) float64 {
	if !s.inBounds(i, j) {
		return 0
	}
	return s.coeffs[i*s.size+j]
}

func (s *LinearSystem) Constant(i int) float64 {
	if i < 0 || i >= s.size {
		return 0
	}
	return s.constants[i]
}

func (s *LinearSystem) AddCoefficient(i, j int, value float64) {
	if !s.inBounds(i, j) {
		log.Printf("Warning: Matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, s.size)
		return
	}
	s.coeffs[i*s.size+j] += value
}

func (s *LinearSystem) SetCoefficient(i, j int, value float64) {
	if !s.inBounds(i, j) {
		log.Printf("Warning: Matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, s.size)
		return
	}
	s.coeffs[i*s.size+j] = value
}

func (s *LinearSystem) SetConstant(i int, value float64) {
	if i < 0 || i >= s.size {
		log.Printf("Warning: RHS index out of bounds (i=%d, size=%d)", i, s.size)
		return
	}
	s.constants[i] = value
}

// Row returns row i of A as a view into the backing buffer.
func (s *LinearSystem) Row(i int) []float64 {
	return s.coeffs[i*s.size : (i+1)*s.size]
}

// Constants returns b as a view. After a successful solve it holds x.
func (s *LinearSystem) Constants() []float64 {
	return s.constants
}

// SwapRows exchanges two equations. A row never moves without its constant.
func (s *LinearSystem) SwapRows(i, j int) {
	if i == j {
		return
	}
	ri, rj := s.Row(i), s.Row(j)
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
	s.constants[i], s.constants[j] = s.constants[j], s.constants[i]
}

func (s *LinearSystem) Clone() *LinearSystem {
	c := &LinearSystem{
		size:      s.size,
		coeffs:    make([]float64, len(s.coeffs)),
		constants: make([]float64, len(s.constants)),
	}
	copy(c.coeffs, s.coeffs)
	copy(c.constants, s.constants)
	return c
}

func (s *LinearSystem) Clear() {
	clear(s.coeffs)
	clear(s.constants)
}

// Residual returns max_i |(A·x)_i - b_i| for a candidate solution x.
func (s *LinearSystem) Residual(x []float64) float64 {
	if len(x) != s.size {
		return math.Inf(1)
	}

	worst := 0.0
	for i := 0; i < s.size; i++ {
		sum := 0.0
		for j, a := range s.Row(i) {
			sum += a * x[j]
		}
		if d := math.Abs(sum - s.constants[i]); d > worst || math.IsNaN(d) {
			worst = d
		}
	}
	return worst
}

// PrintSystem writes the equations in symbolic form, using tag as the
// unknown prefix ("V" or "I").
func (s *LinearSystem) PrintSystem(w io.Writer, tag string) {
	fmt.Fprintf(w, "\nCircuit Equations (%dx%d):\n", s.size, s.size)

	for i := 0; i < s.size; i++ {
		fmt.Fprintf(w, "Equation %d:", i+1)
		rowHasElements := false
		for j, a := range s.Row(i) {
			if a != 0 {
				fmt.Fprintf(w, "  %+g*%s%d", a, tag, j+1)
				rowHasElements = true
			}
		}
		if !rowHasElements {
			fmt.Fprint(w, "  0")
		}
		fmt.Fprintf(w, " = %g\n", s.constants[i])
	}
}
