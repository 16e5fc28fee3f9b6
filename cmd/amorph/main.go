package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/amorphlab/amorph/engine"
)

func main() {
	var (
		opName      = flag.String("op", "base", "Operation: base, modulus, anamorphic_base, anamorphic_modulus")
		value       = flag.Float64("value", 100, "Input value (dividend for the modulus operations)")
		valuesStr   = flag.String("values", "", "Comma-separated batch of input values (overrides -value)")
		operand     = flag.Float64("operand", 10, "Base or divisor, depending on the operation")
		fluidity    = flag.Float64("fluidity", -1, "Fluidity in [0,1]; negative uses the config default")
		seed        = flag.Int64("seed", 0, "RNG seed for reproducible output")
		stats       = flag.Bool("stats", false, "Print ledger statistics after evaluation")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	seeded := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seeded = true
		}
	})

	var engineOpts []engine.Option
	if seeded {
		engineOpts = append(engineOpts, engine.WithSeed(*seed))
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(engineOpts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*opName, *value, *valuesStr, *operand, *fluidity, *stats, engineOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opName string, value float64, valuesStr string, operand, fluidity float64, stats bool, engineOpts []engine.Option) error {
	op, err := engine.ParseOp(opName)
	if err != nil {
		return err
	}

	values := []float64{value}
	if valuesStr != "" {
		values, err = parseValues(valuesStr)
		if err != nil {
			return err
		}
	}

	var callOpts []engine.CallOption
	if fluidity >= 0 {
		callOpts = append(callOpts, engine.WithFluidity(fluidity))
	}

	eng := engine.New(engineOpts...)
	results, err := eng.Batch(op, values, operand, callOpts...)
	if err != nil {
		return err
	}

	for i, r := range results {
		fmt.Printf("%s(%v, %v) = %v\n", op, values[i], operand, r)
	}

	if stats {
		printStats(eng.Stats())
	}
	return nil
}

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse value %q: %w", p, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func printStats(s engine.Stats) {
	fmt.Printf("\nOperations: %d\n", s.TotalOperations)
	if s.Results == nil {
		return
	}
	for _, op := range []engine.Op{engine.OpBase, engine.OpModulus, engine.OpAnamorphicBase, engine.OpAnamorphicModulus} {
		if n := s.OperationCounts[op]; n > 0 {
			fmt.Printf("  %s: %d\n", op, n)
		}
	}
	fmt.Printf("Results: mean=%.6g stddev=%.6g min=%.6g max=%.6g\n",
		s.Results.Mean, s.Results.StdDev, s.Results.Min, s.Results.Max)
}
