// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval resolves and evaluates named parameter sets. Parameters
// hold a literal amount or a formula referencing other parameters and
// global constants; the package derives a dependency-respecting evaluation
// order and walks it either deterministically or by Monte Carlo sampling.
package eval

import "meridianlab.net/paramset/internal/sample"

// Parameter is a named quantity. Amount is a float64 scalar or a []float64
// pre-drawn sample vector (numeric ints and []any vectors from decoded
// YAML/JSON are accepted too). A Parameter needs an Amount or a Formula;
// when both are present the formula wins and evaluation may overwrite the
// amount. Uncertainty is consumed only by Monte Carlo evaluation.
type Parameter struct {
	Amount      any          `yaml:"amount,omitempty" json:"amount,omitempty"`
	Formula     string       `yaml:"formula,omitempty" json:"formula,omitempty"`
	Uncertainty *sample.Spec `yaml:"uncertainty,omitempty" json:"uncertainty,omitempty"`
}

// Clone returns a copy of the parameter. The uncertainty spec is copied;
// vector amounts are shared (evaluation never mutates them in place).
func (p *Parameter) Clone() *Parameter {
	c := *p
	if p.Uncertainty != nil {
		spec := *p.Uncertainty
		c.Uncertainty = &spec
	}
	return &c
}

// Exchange is a consumer-owned record evaluated after the parameter set
// itself: if it has a formula and no amount, ApplyExchanges fills the
// amount from the final parameter values. Exchanges never participate in
// the dependency graph.
type Exchange struct {
	Amount  any    `yaml:"amount,omitempty" json:"amount,omitempty"`
	Formula string `yaml:"formula,omitempty" json:"formula,omitempty"`
}
