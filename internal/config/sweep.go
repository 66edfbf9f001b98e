package config

import (
	"qfrbench/internal/evaluation"
	"qfrbench/internal/spec"
)

// Sweep converts a loaded config into the evaluation's sweep definition.
func Sweep(cfg spec.Config) evaluation.Config {
	out := evaluation.Config{
		Benchmarks: append([]string(nil), cfg.Benchmarks...),
		Qubits:     evaluation.Range{Start: cfg.Qubits.Start, Stop: cfg.Qubits.Stop},
		Level:      cfg.AbstractionLevel,
		Verbose:    cfg.Verbose,
	}
	for _, p := range cfg.Params {
		out.Params = append(out.Params, evaluation.Params{
			Label:       p.Label,
			StoreDD:     p.StoreDD,
			StoreMatrix: p.StoreMatrix,
			ReduceT:     p.ReduceT,
		})
	}
	return out
}
