package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/edp1096/nodemesh/pkg/circuit"
	"github.com/edp1096/nodemesh/pkg/equation"
)

var ErrInvalidDeck = errors.New("deck: invalid deck")

// Deck is one equation set read from text:
//
//	* two-node example
//	.nodal
//	2V1 - V2 = 4      ; node 1
//	+V1 - 0.5V2
//	+ + 2V2 = 5
//	.end
//
// The first line is the title. Lines starting with '*' are comments and ';'
// starts a trailing comment. A '+' followed by whitespace, or standing alone,
// continues the previous line; "+V1" starts a new equation.
type Deck struct {
	Title     string
	Mode      equation.Mode
	Raw       bool // positional coefficients instead of symbolic equations
	Count     int  // from .count, 0 when not declared
	Equations []string
}

var spaces = regexp.MustCompile(`\s+`)

func Parse(input string) (*Deck, error) {
	return Read(strings.NewReader(input))
}

func Read(r io.Reader) (*Deck, error) {
	scanner := bufio.NewScanner(r)
	d := &Deck{}

	// Title or comment
	if scanner.Scan() {
		d.Title = strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "*"))
	}

	var currentLine string
	ended := false

	flush := func() {
		if currentLine != "" {
			d.Equations = append(d.Equations, spaces.ReplaceAllString(currentLine, " "))
			currentLine = ""
		}
	}

	for !ended && scanner.Scan() {
		line := scanner.Text()

		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)

		if len(line) == 0 || strings.HasPrefix(line, "*") {
			continue
		}

		if isContinuation(line) {
			if currentLine == "" {
				return nil, fmt.Errorf("%w: continuation without a line to continue", ErrInvalidDeck)
			}
			if rest := strings.TrimSpace(line[1:]); rest != "" {
				currentLine += " " + rest
			}
			continue
		}

		flush()
		if strings.HasPrefix(line, ".") {
			if err := d.parseDotOperator(line, &ended); err != nil {
				return nil, err
			}
			continue
		}
		currentLine = line
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading deck: %v", err)
	}

	flush()

	if !d.Mode.Valid() {
		return nil, fmt.Errorf("%w: no .nodal, .mesh or .mode line", ErrInvalidDeck)
	}
	if d.Count != 0 && d.Count != len(d.Equations) {
		return nil, fmt.Errorf("%w: .count %d but %d equations", circuit.ErrInvalidEquationCount, d.Count, len(d.Equations))
	}
	if err := circuit.ValidateCount(len(d.Equations)); err != nil {
		return nil, err
	}

	return d, nil
}

func isContinuation(line string) bool {
	if !strings.HasPrefix(line, "+") {
		return false
	}
	return len(line) == 1 || line[1] == ' ' || line[1] == '\t'
}

// Parse .nodal, .mesh, .mode, .raw, .count, .end
func (d *Deck) parseDotOperator(line string, ended *bool) error {
	var err error

	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case ".nodal":
		d.Mode = equation.Nodal

	case ".mesh":
		d.Mode = equation.Mesh

	case ".mode":
		if len(fields) != 2 {
			return fmt.Errorf("%w: .mode needs one selector", ErrInvalidDeck)
		}
		d.Mode, err = equation.ParseMode(fields[1])
		if err != nil {
			return err
		}

	case ".raw":
		d.Raw = true

	case ".count":
		if len(fields) != 2 {
			return fmt.Errorf("%w: .count needs one value", ErrInvalidDeck)
		}
		d.Count, err = strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%w: invalid count %q", circuit.ErrInvalidEquationCount, fields[1])
		}
		if err := circuit.ValidateCount(d.Count); err != nil {
			return err
		}

	case ".end":
		*ended = true

	default:
		return fmt.Errorf("%w: unsupported directive %s", ErrInvalidDeck, fields[0])
	}

	return nil
}

// Circuit builds a circuit sized to the deck and loads its equations.
func (d *Deck) Circuit(opts ...circuit.Option) (*circuit.Circuit, error) {
	ckt, err := circuit.New(d.Title, d.Mode, len(d.Equations), opts...)
	if err != nil {
		return nil, err
	}

	if d.Raw {
		err = ckt.LoadCoefficients(d.Equations)
	} else {
		err = ckt.LoadEquations(d.Equations)
	}
	if err != nil {
		return nil, err
	}

	return ckt, nil
}
