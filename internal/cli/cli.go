package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/edp1096/nodemesh/pkg/analysis"
	"github.com/edp1096/nodemesh/pkg/circuit"
	"github.com/edp1096/nodemesh/pkg/deck"
	"github.com/edp1096/nodemesh/pkg/equation"
	"github.com/edp1096/nodemesh/pkg/solver"
	"github.com/edp1096/nodemesh/pkg/util"
)

type Options struct {
	DeckPath  string  // read a deck file instead of prompting
	Backend   string  // "gauss" or "sparse"
	Raw       bool    // positional coefficient rows
	Tol       float64 // gauss: pivot tolerance, sparse: residual tolerance; 0 = default
	Precision int     // decimals, negative for engineering notation
	Timing    bool
	Verbose   bool
}

func (o Options) solver() (solver.Solver, error) {
	switch strings.ToLower(o.Backend) {
	case "", "gauss":
		return solver.NewGaussian(solver.WithPivotTolerance(o.Tol)), nil
	case "sparse":
		return solver.NewSparse(solver.WithResidualTolerance(o.Tol)), nil
	}
	return nil, fmt.Errorf("unknown backend %q (gauss or sparse)", o.Backend)
}

// Run performs one session: obtain mode and equations, solve, print.
// Nothing is printed for the solution unless every step succeeded.
func Run(opts Options, in io.Reader, out io.Writer, logger *log.Logger) error {
	s, err := opts.solver()
	if err != nil {
		return err
	}

	var warn *log.Logger
	if opts.Verbose {
		warn = logger
	}

	start := time.Now()
	var ckt *circuit.Circuit
	if opts.DeckPath != "" {
		ckt, err = loadDeck(opts.DeckPath, warn)
	} else {
		ckt, err = prompt(bufio.NewScanner(in), out, opts.Raw, warn)
	}
	if err != nil {
		return err
	}
	defer ckt.Destroy()
	parseTime := time.Since(start)

	if opts.Verbose {
		ckt.GetSystem().PrintSystem(out, ckt.Mode().Tag())
	}

	linear := analysis.NewLinear(s)
	linear.SetLogger(warn)
	if err := linear.Setup(ckt); err != nil {
		return err
	}
	if err := linear.Execute(); err != nil {
		return err
	}

	printResults(out, ckt, linear.GetResults(), opts.Precision)

	if opts.Verbose {
		fmt.Fprintf(out, "Residual: %g\n", linear.Residual())
	}
	if opts.Timing {
		fmt.Fprintf(out, "\nParse time: %v\n", parseTime)
		fmt.Fprintf(out, "Solve time: %v\n", linear.Elapsed())
	}

	return nil
}

func loadDeck(path string, logger *log.Logger) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck file: %v", err)
	}
	defer f.Close()

	d, err := deck.Read(f)
	if err != nil {
		return nil, err
	}
	return d.Circuit(circuit.WithLogger(logger))
}

func prompt(scanner *bufio.Scanner, out io.Writer, raw bool, logger *log.Logger) (*circuit.Circuit, error) {
	readLine := func(format string, args ...any) (string, error) {
		fmt.Fprintf(out, format, args...)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return scanner.Text(), nil
	}

	line, err := readLine("Enter 'A' for nodal analysis or 'B' for mesh analysis: ")
	if err != nil {
		return nil, err
	}
	mode, err := equation.ParseMode(line)
	if err != nil {
		return nil, err
	}

	line, err = readLine("\nEnter the number of equations: ")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", circuit.ErrInvalidEquationCount, strings.TrimSpace(line))
	}

	ckt, err := circuit.New(fmt.Sprintf("%s analysis", mode), mode, n, circuit.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "\nEquation format:")
	if raw {
		fmt.Fprintf(out, "a1 a2 ... a%d c  (coefficients of %s, then the constant)\n\n", n, strings.Join(unknownNames(mode, n), " "))
	} else if mode == equation.Nodal {
		fmt.Fprintln(out, "Nodal Analysis: y1V1 + y2V2 + ... + ynVn = I1  (y = admittance)")
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, "Mesh Analysis: x1I1 + x2I2 + ... + xnIn = V1  (x = impedance)")
		fmt.Fprintln(out)
	}

	lines := make([]string, n)
	for i := range lines {
		if lines[i], err = readLine("Equation %d: ", i+1); err != nil {
			return nil, err
		}
	}

	if raw {
		err = ckt.LoadCoefficients(lines)
	} else {
		err = ckt.LoadEquations(lines)
	}
	if err != nil {
		return nil, err
	}
	return ckt, nil
}

func unknownNames(mode equation.Mode, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = mode.Name(i + 1)
	}
	return names
}

func printResults(out io.Writer, ckt *circuit.Circuit, results map[string][]float64, precision int) {
	unknownMap := ckt.GetUnknownMap()
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return unknownMap[names[i]] < unknownMap[names[j]]
	})

	fmt.Fprintf(out, "\nSolution for %s analysis:\n", ckt.Mode())
	for _, name := range names {
		fmt.Fprintln(out, util.FormatUnknown(name, results[name][0], ckt.Mode().Unit(), precision))
	}
}

// Describe turns a session error into the message shown to the user,
// keeping a singular system apart from bad input.
func Describe(err error) string {
	switch {
	case errors.Is(err, solver.ErrSingular):
		return fmt.Sprintf("Error: The system of equations has no unique solution. (%v)", err)
	case errors.Is(err, equation.ErrInvalidMode):
		return "Invalid input. Please enter 'A' or 'B'."
	case errors.Is(err, circuit.ErrInvalidEquationCount):
		return fmt.Sprintf("Invalid number of equations: %v", err)
	case errors.Is(err, equation.ErrMalformedEquation):
		return fmt.Sprintf("Malformed equation: %v", err)
	case errors.Is(err, deck.ErrInvalidDeck):
		return fmt.Sprintf("Invalid deck: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}
