package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/anysearch/pkg/schemes/tsp"
	"github.com/gitrdm/anysearch/pkg/treesearch"
)

// algorithms maps --algorithm names to the treesearch entry point they run.
var algorithms = map[string]func(treesearch.Scheme[*tsp.Node], treesearch.Params[*tsp.Node]) (treesearch.Output[*tsp.Node], error){
	"bfs":    treesearch.BestFirstSearch[*tsp.Node],
	"imbbfs": treesearch.IMBBFS[*tsp.Node],
	"ibs":    treesearch.IBS[*tsp.Node],
	"acs":    treesearch.ACS[*tsp.Node],
	"greedy": treesearch.Greedy[*tsp.Node],
	"dfs":    treesearch.DepthFirstSearch[*tsp.Node],
	"nbfs":   treesearch.NestedBestFirstSearch[*tsp.Node],
}

type cliFlags struct {
	input           string
	output          string
	certificate     string
	format          string
	algorithm       string
	branchingScheme string
	timeLimit       time.Duration
	verbose         bool
	printInstance   bool
	printSolution   bool
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "anysearch",
		Short: "Run an anytime tree-search algorithm against a branching scheme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.input, "input", "", "path to a TOML instance/config file (required)")
	flags.StringVar(&f.output, "output", "", "path to write the structured JSON result (default: stdout)")
	flags.StringVar(&f.certificate, "certificate", "", "path to write the solution certificate via the branching scheme")
	flags.StringVar(&f.format, "format", "json", "output format (only \"json\" is currently supported)")
	flags.StringVar(&f.algorithm, "algorithm", "bfs", "algorithm to run: bfs, imbbfs, ibs, acs, greedy, dfs, nbfs")
	flags.StringVar(&f.branchingScheme, "branching-scheme", "tsp", "branching scheme to load the instance with (only \"tsp\" is registered)")
	flags.DurationVar(&f.timeLimit, "time-limit", 0, "wall-clock budget; overrides the instance file's time_limit, leave unset to keep that value (unbounded if the file sets none)")
	flags.BoolVar(&f.verbose, "verbose", false, "attach a structured logrus reporter for new-best and termination events")
	flags.BoolVar(&f.printInstance, "print-instance", false, "print the parsed instance to stderr before searching")
	flags.BoolVar(&f.printSolution, "print-solution", false, "print the best solution's Display string to stderr after searching")

	cmd.MarkFlagRequired("input")
	return cmd
}

func runSearch(f *cliFlags) error {
	if f.branchingScheme != "tsp" {
		return fmt.Errorf("unknown --branching-scheme %q (only \"tsp\" is registered)", f.branchingScheme)
	}
	if f.format != "json" {
		return fmt.Errorf("unknown --format %q (only \"json\" is supported)", f.format)
	}
	run, ok := algorithms[f.algorithm]
	if !ok {
		return fmt.Errorf("unknown --algorithm %q", f.algorithm)
	}

	scheme, inst, err := loadInstance(f.input)
	if err != nil {
		return err
	}
	if f.printInstance {
		fmt.Fprintf(os.Stderr, "instance: %d cities, start=%d, epsilon=%v\n", len(inst.Distance), inst.Start, inst.Epsilon)
	}

	opts, err := paramOptions(inst.Parameters)
	if err != nil {
		return err
	}
	if f.timeLimit > 0 {
		opts = append(opts, treesearch.WithTimeLimit[*tsp.Node](f.timeLimit))
	}
	if f.verbose {
		logger := logrus.New()
		opts = append(opts,
			treesearch.WithVerbosity[*tsp.Node](treesearch.Detailed),
			treesearch.WithReporter[*tsp.Node](treesearch.NewLogReporter[*tsp.Node](logger, f.algorithm)),
		)
	}

	out, err := run(scheme, treesearch.New(opts...))
	if err != nil {
		return err
	}

	if f.printSolution {
		fmt.Fprintln(os.Stderr, out.BestDisplay)
	}
	if f.certificate != "" {
		if err := scheme.SolutionWrite(out.Best, f.certificate); err != nil {
			return fmt.Errorf("write certificate: %w", err)
		}
	}

	return writeResult(f, inst, out)
}

// cliResult is the structured JSON shape written to --output: a top-level
// Parameters block, the IntermediaryOutputs log, and the final Output
// summary. Field names are stable.
type cliResult struct {
	Parameters          tomlParameters                             `json:"parameters"`
	IntermediaryOutputs []treesearch.IntermediaryOutput[*tsp.Node] `json:"intermediary_outputs"`
	Output              treesearch.Output[*tsp.Node]               `json:"output"`
}

func writeResult(f *cliFlags, inst tomlInstance, out treesearch.Output[*tsp.Node]) error {
	result := cliResult{
		Parameters:          inst.Parameters,
		IntermediaryOutputs: out.IntermediaryOutputs,
		Output:              out,
	}

	w := os.Stdout
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("create --output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
