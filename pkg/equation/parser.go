package equation

import (
	"fmt"
	"log"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/edp1096/nodemesh/pkg/matrix"
	"github.com/edp1096/nodemesh/pkg/util"
)

// Rejection records a term that was dropped while parsing a row.
type Rejection struct {
	Row  int // 0-based
	Text string
	Err  error
}

func (r Rejection) String() string {
	return fmt.Sprintf("equation %d: term %q skipped: %v", r.Row+1, r.Text, r.Err)
}

type Parser struct {
	mode     Mode
	logger   *log.Logger
	rejected []Rejection
}

type Option func(*Parser)

// WithLogger reports every rejected term as a warning on l.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

func NewParser(mode Mode, opts ...Option) *Parser {
	p := &Parser{mode: mode}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rejected lists every term dropped since the parser was created or reset.
// The returned slice is a copy.
func (p *Parser) Rejected() []Rejection {
	return slices.Clone(p.rejected)
}

func (p *Parser) Reset() {
	p.rejected = nil
}

// ParseLine folds "<terms> = <constant>" into row of sys. Coefficients of
// accepted terms are added to the row, the constant replaces the row's
// constant. Bad terms are skipped and recorded; only a malformed line is an
// error, and then the row is left untouched.
func (p *Parser) ParseLine(sys matrix.Loader, row int, line string) error {
	size := sys.Size()
	if !util.InRange(row, 0, size) {
		return fmt.Errorf("%w: row %d, size %d", ErrIndexRange, row+1, size)
	}

	lhs, rhs, found := strings.Cut(line, "=")
	if !found {
		return fmt.Errorf("%w: missing '=' in %q", ErrMalformedEquation, line)
	}

	constant, err := parseConstant(rhs)
	if err != nil {
		return fmt.Errorf("%w: right-hand side of %q: %v", ErrMalformedEquation, line, err)
	}

	for _, text := range splitTerms(lhs) {
		term, err := ParseTerm(text, p.mode)
		if err == nil && !util.InRange(term.Column(), 0, size) {
			err = fmt.Errorf("%w: %w: %q with %d unknowns", ErrUnrecognizedTerm, ErrIndexRange, text, size)
		}
		if err != nil {
			p.reject(row, text, err)
			continue
		}
		sys.AddCoefficient(row, term.Column(), term.Coefficient)
	}
	sys.SetConstant(row, constant)

	return nil
}

func (p *Parser) reject(row int, text string, err error) {
	r := Rejection{Row: row, Text: text, Err: err}
	p.rejected = append(p.rejected, r)
	if p.logger != nil {
		p.logger.Printf("Warning: %s", r)
	}
}

// ParseCoefficients reads the positional form: n coefficients in column
// order followed by the constant, separated by whitespace. The values
// replace the row; nothing accumulates.
func ParseCoefficients(sys matrix.Loader, row int, line string) error {
	size := sys.Size()
	if !util.InRange(row, 0, size) {
		return fmt.Errorf("%w: row %d, size %d", ErrIndexRange, row+1, size)
	}

	fields := strings.Fields(line)
	if len(fields) != size+1 {
		return fmt.Errorf("%w: expected %d numbers, got %d", ErrMalformedEquation, size+1, len(fields))
	}

	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := parseConstant(field)
		if err != nil {
			return fmt.Errorf("%w: field %d: %v", ErrMalformedEquation, i+1, err)
		}
		values[i] = v
	}

	for j, v := range values[:size] {
		sys.SetCoefficient(row, j, v)
	}
	sys.SetConstant(row, values[size])

	return nil
}

func parseConstant(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", strings.TrimSpace(s))
	}
	return v, nil
}
