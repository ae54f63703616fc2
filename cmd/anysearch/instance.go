package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gitrdm/anysearch/pkg/schemes/tsp"
	"github.com/gitrdm/anysearch/pkg/treesearch"
)

// tomlInstance is the on-disk shape of an --input file: a branching-scheme
// instance (currently only the dense-matrix TSP scheme is registered) plus
// algorithm parameter defaults, so a run need not pass every knob as a
// flag.
type tomlInstance struct {
	Start      int            `toml:"start"`
	Epsilon    float64        `toml:"epsilon"`
	Distance   [][]float64    `toml:"distance"`
	Parameters tomlParameters `toml:"parameters"`
}

type tomlParameters struct {
	MaxPoolSize            int     `toml:"maximum_size_of_the_solution_pool"`
	TimeLimit              string  `toml:"time_limit"`
	MaxNodes               int     `toml:"maximum_number_of_nodes"`
	MinQueueSize           int     `toml:"minimum_size_of_the_queue"`
	MaxQueueSize           int     `toml:"maximum_size_of_the_queue"`
	GrowthFactor           float64 `toml:"growth_factor"`
	InitialColumnSize      int     `toml:"initial_column_size"`
	ColumnSizeGrowthFactor float64 `toml:"column_size_growth_factor"`
	MaxIterations          int     `toml:"maximum_number_of_iterations"`
}

func loadInstance(path string) (*tsp.Scheme, tomlInstance, error) {
	var inst tomlInstance
	if _, err := toml.DecodeFile(path, &inst); err != nil {
		return nil, inst, fmt.Errorf("decode instance file %s: %w", path, err)
	}
	if len(inst.Distance) == 0 {
		return nil, inst, fmt.Errorf("instance file %s: [distance] matrix is required", path)
	}
	scheme, err := tsp.New(inst.Distance, inst.Start, inst.Epsilon)
	if err != nil {
		return nil, inst, err
	}
	return scheme, inst, nil
}

// paramOptions translates an instance's [parameters] table into treesearch
// options, skipping any field left at its TOML zero value so algorithm
// defaults (see treesearch.New) still apply.
func paramOptions(p tomlParameters) ([]treesearch.Option[*tsp.Node], error) {
	var opts []treesearch.Option[*tsp.Node]

	if p.MaxPoolSize > 0 {
		opts = append(opts, treesearch.WithMaxPoolSize[*tsp.Node](p.MaxPoolSize))
	}
	if p.TimeLimit != "" {
		d, err := time.ParseDuration(p.TimeLimit)
		if err != nil {
			return nil, fmt.Errorf("parameters.time_limit: %w", err)
		}
		opts = append(opts, treesearch.WithTimeLimit[*tsp.Node](d))
	}
	if p.MaxNodes != 0 {
		opts = append(opts, treesearch.WithMaxNodes[*tsp.Node](p.MaxNodes))
	}
	if p.MinQueueSize > 0 || p.MaxQueueSize > 0 {
		min := p.MinQueueSize
		if min == 0 {
			min = 1
		}
		opts = append(opts, treesearch.WithQueueSize[*tsp.Node](min, p.MaxQueueSize))
	}
	if p.GrowthFactor > 0 {
		opts = append(opts, treesearch.WithGrowthFactor[*tsp.Node](p.GrowthFactor))
	}
	if p.InitialColumnSize > 0 || p.ColumnSizeGrowthFactor > 0 {
		initial := p.InitialColumnSize
		if initial == 0 {
			initial = 1
		}
		growth := p.ColumnSizeGrowthFactor
		if growth == 0 {
			growth = 2
		}
		opts = append(opts, treesearch.WithColumnSize[*tsp.Node](initial, growth))
	}
	if p.MaxIterations > 0 {
		opts = append(opts, treesearch.WithMaxIterations[*tsp.Node](p.MaxIterations))
	}

	return opts, nil
}
