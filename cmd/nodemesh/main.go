package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/edp1096/nodemesh/internal/cli"
)

func main() {
	var opts cli.Options
	var eng bool

	flag.StringVar(&opts.Backend, "backend", "gauss", "solver backend: gauss or sparse")
	flag.BoolVar(&opts.Raw, "raw", false, "enter positional coefficient rows instead of equations")
	flag.Float64Var(&opts.Tol, "tol", 0, "gauss: treat pivots with |p| <= tol as zero; sparse: reject solutions whose scaled residual exceeds tol (0 = default)")
	flag.IntVar(&opts.Precision, "precision", 4, "decimal places in the solution")
	flag.BoolVar(&eng, "eng", false, "print values with engineering prefixes (m, u, n, ...)")
	flag.BoolVar(&opts.Timing, "time", false, "print parse and solve times")
	flag.BoolVar(&opts.Verbose, "v", false, "print the system, skipped terms and residual")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: nodemesh [flags] [deck_file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.DeckPath = flag.Arg(0)
	if eng {
		opts.Precision = -1
	}

	log.SetFlags(0)
	if err := cli.Run(opts, os.Stdin, os.Stdout, log.Default()); err != nil {
		log.Fatal(cli.Describe(err))
	}
}
