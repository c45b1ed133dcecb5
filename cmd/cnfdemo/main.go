// Command cnfdemo drives the cnf engine from the command line: parse an
// expression file, run one of simplify/negate/truths/combine against it, and
// print the resulting formula.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/wedgepath/cnfengine/cnf"
	"github.com/wedgepath/cnfengine/exprparse"
	"github.com/wedgepath/cnfengine/internal/config"
)

func main() {
	var (
		verbose    bool
		configDir  string
		op         string
		condID     int
		mergePoint int
	)
	flag.BoolVar(&verbose, "verbose", false, "sets verbose mode on")
	flag.StringVar(&configDir, "config-dir", ".", "directory to look for cnfdemo.yaml in")
	flag.StringVar(&op, "op", "simplify", "operation to run: simplify|negate|truths|combine")
	flag.IntVar(&condID, "cond", 1, "creatingConditionalID stamped on parsed clauses")
	flag.IntVar(&mergePoint, "merge-point", 1, "conditionalObjectID for combine's join point")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Syntax : %s [options] file.cnfexpr [file2.cnfexpr]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Error("loading config", "dir", configDir, "err", err)
		os.Exit(1)
	}
	limits := cfg.ResolveLimits()
	if cfg.IsVerbose() {
		verbose = true
	}

	f, err := parseFile(args[0], condID)
	if err != nil {
		logger.Error("parsing expression file", "path", args[0], "err", err)
		os.Exit(1)
	}

	var result cnf.Formula
	switch op {
	case "simplify":
		result = cnf.SimplifyWithLimits(f, limits)
	case "negate":
		result, err = cnf.NegateWithLimits(f, limits)
	case "combine":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "combine requires a second expression file")
			os.Exit(1)
		}
		var g cnf.Formula
		g, err = parseFile(args[1], condID)
		if err == nil {
			result = cnf.CombineOredWithLimits(f, g, mergePoint, limits)
		}
	case "truths":
		truths, active := cnf.Truths(f, &condID, nil)
		printTruths(truths, active, verbose)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown -op %q\n", op)
		os.Exit(1)
	}

	if err != nil {
		reportOperationError(logger, err)
		os.Exit(1)
	}
	printFormula(result, verbose)
}

func parseFile(path string, condID int) (cnf.Formula, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer r.Close()
	return exprparse.Parse(r, condID)
}

// reportOperationError distinguishes a resource-ceiling failure (expected,
// logged as a warning) from a genuine programming-contract violation (logged
// as an error), per the two error types the engine can return.
func reportOperationError(logger *slog.Logger, err error) {
	var complicated *cnf.ComplicatedExpression
	var invalid *cnf.InvalidState
	switch {
	case errors.As(err, &complicated):
		logger.Warn("formula too complicated to reason about", "err", complicated)
	case errors.As(err, &invalid):
		logger.Error("invalid engine state", "err", invalid)
	default:
		logger.Error("operation failed", "err", err)
	}
}

func printFormula(f cnf.Formula, verbose bool) {
	sep := color.New(color.FgCyan).SprintFunc()
	term := color.New(color.FgYellow).SprintFunc()
	if len(f) == 0 {
		fmt.Println(sep("(true)"))
		return
	}
	for i, c := range f {
		if verbose {
			fmt.Printf("c clause %d: generated=%t reconcilable=%t wedge=%t\n", i, c.IsGenerated(), c.IsReconcilable(), c.IsWedge())
		}
		fmt.Println(colorizeClause(c, sep, term))
	}
}

// colorizeClause renders c the way Clause.String does, but with each
// var:assertion term highlighted separately from the disjunction markers.
func colorizeClause(c *cnf.Clause, sep, term func(a ...interface{}) string) string {
	if c.IsWedge() {
		return sep("(wedge)")
	}
	keys := c.VarKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var out string
	first := true
	for _, v := range keys {
		list, _ := c.Possibilities(v)
		for _, a := range list {
			if !first {
				out += sep(" ∨ ")
			}
			first = false
			out += term(fmt.Sprintf("%s:%s", v, a.Render()))
		}
	}
	if out == "" {
		return sep("(true)")
	}
	return sep("(") + out + sep(")")
}

func printTruths(truths, active cnf.TruthSet, verbose bool) {
	fact := color.New(color.FgGreen).SprintFunc()
	for v, ands := range truths {
		for _, or := range ands {
			rendered := make([]string, len(or))
			for i, a := range or {
				rendered[i] = a.Render()
			}
			fmt.Println(fact(fmt.Sprintf("%s: %v", v, rendered)))
		}
	}
	if verbose {
		fmt.Printf("c %d active (conditional-matching) vars\n", len(active))
	}
}
