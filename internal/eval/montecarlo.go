// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"

	"meridianlab.net/paramset/internal/formula"
	"meridianlab.net/paramset/internal/sample"
)

// MCOption configures a Monte Carlo evaluation call.
type MCOption func(*mcConfig)

type mcConfig struct {
	sampler *sample.Sampler
}

// WithSampler supplies the sampler to draw from.
func WithSampler(s *sample.Sampler) MCOption {
	return func(c *mcConfig) { c.sampler = s }
}

// WithSeed makes the evaluation reproducible with a fixed seed.
func WithSeed(seed uint64) MCOption {
	return func(c *mcConfig) { c.sampler = sample.New(seed) }
}

// MonteCarlo walks the evaluation order computing a vector of iterations
// independent draws per name. Amount vectors are treated as pre-drawn
// samples and must have exactly iterations entries; scalar values without
// a declared uncertainty become point masses; formulas are evaluated once
// per draw index against the sampled values of their references. Any
// result that cannot fill a vector of the required length raises a
// BroadcastingError.
func (ps *ParameterSet) MonteCarlo(iterations int, opts ...MCOption) (map[string][]float64, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	cfg := mcConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampler == nil {
		cfg.sampler = sample.NewRandom()
	}

	result := make(map[string][]float64, len(ps.order))
	env := formula.BaseEnv()

	for _, name := range ps.order {
		var vec []float64
		var err error
		switch {
		case ps.isGlobal(name):
			vec, err = ps.sampleLiteral(name, ps.globals[name], nil, cfg.sampler, iterations)

		case ps.params[name].Formula != "":
			vec, err = ps.runFormula(name, env, result, iterations)

		default:
			p := ps.params[name]
			vec, err = ps.sampleLiteral(name, p.Amount, p.Uncertainty, cfg.sampler, iterations)
		}
		if err != nil {
			return nil, err
		}
		result[name] = vec
		// Placeholder so later formulas compile against this symbol.
		env[name] = 0.0
	}
	return result, nil
}

// sampleLiteral produces the sample vector for a name with no formula: a
// pre-drawn vector is used as-is after a length check, a declared
// uncertainty is sampled, and a bare scalar becomes a point mass.
func (ps *ParameterSet) sampleLiteral(name string, amount any, unc *sample.Spec, smp *sample.Sampler, iterations int) ([]float64, error) {
	if vec, ok := vectorOf(amount); ok {
		if len(vec) != iterations {
			return nil, &BroadcastingError{
				Name:     name,
				Formula:  "",
				Expected: shape(iterations),
				Actual:   shape(len(vec)),
			}
		}
		return vec, nil
	}
	if unc != nil {
		out, err := smp.Draw(*unc, iterations)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		return out, nil
	}
	if v, ok := scalarOf(amount); ok {
		out, err := smp.Draw(sample.PointMass(v), iterations)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		return out, nil
	}
	return nil, &MissingValueError{Name: name}
}

// runFormula evaluates a formula once per draw index. The program is
// compiled once; each iteration rebinds the formula's references to their
// sampled values for that index.
func (ps *ParameterSet) runFormula(name string, env map[string]any, samples map[string][]float64, iterations int) ([]float64, error) {
	src := ps.params[name].Formula
	program, err := formula.Compile(src, env)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}

	refs := ps.references[name]
	vec := make([]float64, iterations)
	for i := 0; i < iterations; i++ {
		for r := range refs {
			if s, ok := samples[r]; ok {
				env[r] = s[i]
			}
		}
		out, err := formula.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		v, ok := scalarOf(out)
		if !ok {
			return nil, &BroadcastingError{
				Name:     name,
				Formula:  src,
				Expected: shape(iterations),
				Actual:   resultShape(out, iterations),
			}
		}
		vec[i] = v
	}
	return vec, nil
}

// resultShape renders the shape of a non-scalar per-draw result.
func resultShape(out any, iterations int) string {
	if vec, ok := vectorOf(out); ok {
		return shape(iterations, len(vec))
	}
	return fmt.Sprintf("%T", out)
}
