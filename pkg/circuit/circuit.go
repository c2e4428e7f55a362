package circuit

import (
	"errors"
	"fmt"
	"log"

	"github.com/edp1096/nodemesh/internal/consts"
	"github.com/edp1096/nodemesh/pkg/equation"
	"github.com/edp1096/nodemesh/pkg/matrix"
)

var ErrInvalidEquationCount = errors.New("circuit: invalid number of equations")

// Circuit is one solving session: a mode, n unknowns and the system their
// equations fill in.
type Circuit struct {
	name       string
	mode       equation.Mode
	size       int
	unknownMap map[string]int // "V1" -> 1
	system     *matrix.LinearSystem
	parser     *equation.Parser
	solution   []float64
	logger     *log.Logger
}

type Option func(*Circuit)

func WithLogger(l *log.Logger) Option {
	return func(c *Circuit) {
		c.logger = l
	}
}

func New(name string, mode equation.Mode, size int, opts ...Option) (*Circuit, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %v", equation.ErrInvalidMode, mode)
	}
	if err := ValidateCount(size); err != nil {
		return nil, err
	}

	sys, err := matrix.NewLinearSystem(size)
	if err != nil {
		return nil, err
	}

	c := &Circuit{
		name:       name,
		mode:       mode,
		size:       size,
		unknownMap: make(map[string]int, size),
		system:     sys,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = equation.NewParser(mode, equation.WithLogger(c.logger))
	for i := 1; i <= size; i++ {
		c.unknownMap[mode.Name(i)] = i
	}

	return c, nil
}

// ValidateCount checks 1 <= n <= MaxEquations.
func ValidateCount(n int) error {
	if n <= 0 || n > consts.MaxEquations {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidEquationCount, n, consts.MaxEquations)
	}
	return nil
}

// LoadEquations parses one symbolic equation per row.
func (c *Circuit) LoadEquations(lines []string) error {
	return c.load(lines, c.parser.ParseLine)
}

// LoadCoefficients reads one positional row per line (n coefficients and
// the constant).
func (c *Circuit) LoadCoefficients(lines []string) error {
	return c.load(lines, equation.ParseCoefficients)
}

func (c *Circuit) load(lines []string, parse func(matrix.Loader, int, string) error) error {
	if len(lines) != c.size {
		return fmt.Errorf("%w: have %d lines for %d unknowns", ErrInvalidEquationCount, len(lines), c.size)
	}

	c.system.Clear()
	c.parser.Reset()
	c.solution = nil

	for row, line := range lines {
		if err := parse(c.system, row, line); err != nil {
			return fmt.Errorf("equation %d: %w", row+1, err)
		}
	}
	return nil
}

func (c *Circuit) GetSystem() *matrix.LinearSystem {
	return c.system
}

func (c *Circuit) GetUnknownMap() map[string]int {
	return c.unknownMap
}

func (c *Circuit) Rejected() []equation.Rejection {
	return c.parser.Rejected()
}

// SetSolution records x (0-based, one value per unknown).
func (c *Circuit) SetSolution(x []float64) {
	c.solution = x
}

// Solved reports whether the system holds a solution in place of its
// constants. Loading equations clears it.
func (c *Circuit) Solved() bool {
	return c.solution != nil
}

// GetSolution maps unknown names to values; empty until a solve succeeded.
func (c *Circuit) GetSolution() map[string]float64 {
	solution := make(map[string]float64, len(c.solution))
	for name, idx := range c.unknownMap {
		if idx-1 < len(c.solution) {
			solution[name] = c.solution[idx-1]
		}
	}
	return solution
}

func (c *Circuit) Destroy() {
	c.system = nil
	c.solution = nil
}

func (c *Circuit) Name() string {
	return c.name
}

func (c *Circuit) Mode() equation.Mode {
	return c.mode
}

func (c *Circuit) Size() int {
	return c.size
}
