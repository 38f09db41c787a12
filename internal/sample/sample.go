// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package sample draws Monte Carlo samples from declared uncertainty
// distributions. The numeric ids of Kind follow the stats_arrays
// convention so uncertainty data exported from LCA tools loads unchanged.
package sample

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Kind identifies an uncertainty distribution.
type Kind int

// Distribution kinds. Undefined and None are both point masses at Loc.
const (
	Undefined Kind = iota
	None
	Lognormal
	Normal
	Uniform
	Triangular
	Bernoulli
	DiscreteUniform
	Weibull
	Gamma
	Beta
)

var kindNames = map[Kind]string{
	Undefined:       "undefined",
	None:            "none",
	Lognormal:       "lognormal",
	Normal:          "normal",
	Uniform:         "uniform",
	Triangular:      "triangular",
	Bernoulli:       "bernoulli",
	DiscreteUniform: "discrete uniform",
	Weibull:         "weibull",
	Gamma:           "gamma",
	Beta:            "beta",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a distribution name to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if s == name {
			return k, true
		}
	}
	return Undefined, false
}

// Spec declares the uncertainty of a single value. Field meaning depends
// on Type:
//
//	Lognormal:       Loc = mu, Scale = sigma of the underlying normal
//	Normal:          Loc = mean, Scale = standard deviation
//	Uniform:         Minimum..Maximum
//	Triangular:      Loc = mode, Minimum..Maximum
//	Bernoulli:       Loc = p
//	DiscreteUniform: integers in [Minimum, Maximum)
//	Weibull:         Shape = k, Scale = lambda
//	Gamma:           Shape = shape, Scale = scale
//	Beta:            Loc = alpha, Shape = beta, Scale = optional multiplier
//
// Minimum and Maximum additionally clip any distribution via rejection
// resampling when set.
type Spec struct {
	Type    Kind     `yaml:"type" json:"type"`
	Loc     float64  `yaml:"loc,omitempty" json:"loc,omitempty"`
	Scale   float64  `yaml:"scale,omitempty" json:"scale,omitempty"`
	Shape   float64  `yaml:"shape,omitempty" json:"shape,omitempty"`
	Minimum *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
}

// PointMass returns a no-uncertainty spec: every draw is v.
func PointMass(v float64) Spec {
	return Spec{Type: None, Loc: v}
}

// maxRejects bounds rejection resampling per draw. A spec whose bounds
// exclude essentially all probability mass fails instead of spinning.
const maxRejects = 10000

// Sampler draws sample vectors from Specs. Not safe for concurrent use;
// create one per evaluation call.
type Sampler struct {
	src rand.Source
	rng *rand.Rand
}

// New creates a Sampler with a deterministic seed. The same seed and the
// same draw sequence produce identical samples.
func New(seed uint64) *Sampler {
	src := rand.NewPCG(seed, seed)
	return &Sampler{src: src, rng: rand.New(src)}
}

// NewRandom creates a Sampler seeded from the process-wide generator.
func NewRandom() *Sampler {
	src := rand.NewPCG(rand.Uint64(), rand.Uint64())
	return &Sampler{src: src, rng: rand.New(src)}
}

// Draw returns n independent draws from spec.
func (s *Sampler) Draw(spec Spec, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}
	draw, bounded, err := s.variate(spec)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	if !bounded || (spec.Minimum == nil && spec.Maximum == nil) {
		for i := range out {
			out[i] = draw()
		}
		return out, nil
	}

	lo, hi := math.Inf(-1), math.Inf(1)
	if spec.Minimum != nil {
		lo = *spec.Minimum
	}
	if spec.Maximum != nil {
		hi = *spec.Maximum
	}
	for i := range out {
		ok := false
		for tries := 0; tries < maxRejects; tries++ {
			v := draw()
			if v >= lo && v <= hi {
				out[i] = v
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("%s distribution: no draw within bounds [%v, %v] after %d attempts",
				spec.Type, lo, hi, maxRejects)
		}
	}
	return out, nil
}

// variate builds the draw function for spec. bounded reports whether
// Minimum/Maximum act as rejection bounds (they are distribution
// parameters for the uniform family, not bounds).
func (s *Sampler) variate(spec Spec) (draw func() float64, bounded bool, err error) {
	switch spec.Type {
	case Undefined, None:
		v := spec.Loc
		return func() float64 { return v }, false, nil

	case Lognormal:
		if spec.Scale <= 0 {
			return nil, false, fmt.Errorf("lognormal distribution: scale must be positive, got %v", spec.Scale)
		}
		d := distuv.LogNormal{Mu: spec.Loc, Sigma: spec.Scale, Src: s.src}
		return d.Rand, true, nil

	case Normal:
		if spec.Scale <= 0 {
			return nil, false, fmt.Errorf("normal distribution: scale must be positive, got %v", spec.Scale)
		}
		d := distuv.Normal{Mu: spec.Loc, Sigma: spec.Scale, Src: s.src}
		return d.Rand, true, nil

	case Uniform:
		lo, hi, err := s.bounds(spec)
		if err != nil {
			return nil, false, err
		}
		d := distuv.Uniform{Min: lo, Max: hi, Src: s.src}
		return d.Rand, false, nil

	case Triangular:
		lo, hi, err := s.bounds(spec)
		if err != nil {
			return nil, false, err
		}
		if spec.Loc < lo || spec.Loc > hi {
			return nil, false, fmt.Errorf("triangular distribution: mode %v outside [%v, %v]", spec.Loc, lo, hi)
		}
		d := distuv.NewTriangle(lo, hi, spec.Loc, s.src)
		return d.Rand, false, nil

	case Bernoulli:
		if spec.Loc < 0 || spec.Loc > 1 {
			return nil, false, fmt.Errorf("bernoulli distribution: p must be in [0, 1], got %v", spec.Loc)
		}
		d := distuv.Bernoulli{P: spec.Loc, Src: s.src}
		return d.Rand, false, nil

	case DiscreteUniform:
		lo, hi, err := s.bounds(spec)
		if err != nil {
			return nil, false, err
		}
		span := int(hi) - int(lo)
		if span <= 0 {
			return nil, false, fmt.Errorf("discrete uniform distribution: empty range [%v, %v)", lo, hi)
		}
		base := int(lo)
		return func() float64 { return float64(base + s.rng.IntN(span)) }, false, nil

	case Weibull:
		if spec.Shape <= 0 || spec.Scale <= 0 {
			return nil, false, fmt.Errorf("weibull distribution: shape and scale must be positive, got %v, %v",
				spec.Shape, spec.Scale)
		}
		d := distuv.Weibull{K: spec.Shape, Lambda: spec.Scale, Src: s.src}
		return d.Rand, true, nil

	case Gamma:
		if spec.Shape <= 0 || spec.Scale <= 0 {
			return nil, false, fmt.Errorf("gamma distribution: shape and scale must be positive, got %v, %v",
				spec.Shape, spec.Scale)
		}
		d := distuv.Gamma{Alpha: spec.Shape, Beta: 1 / spec.Scale, Src: s.src}
		return d.Rand, true, nil

	case Beta:
		if spec.Loc <= 0 || spec.Shape <= 0 {
			return nil, false, fmt.Errorf("beta distribution: alpha and beta must be positive, got %v, %v",
				spec.Loc, spec.Shape)
		}
		d := distuv.Beta{Alpha: spec.Loc, Beta: spec.Shape, Src: s.src}
		mult := spec.Scale
		if mult == 0 {
			mult = 1
		}
		return func() float64 { return d.Rand() * mult }, false, nil
	}
	return nil, false, fmt.Errorf("unknown uncertainty type %d", int(spec.Type))
}

// bounds extracts the required Minimum/Maximum pair.
func (s *Sampler) bounds(spec Spec) (float64, float64, error) {
	if spec.Minimum == nil || spec.Maximum == nil {
		return 0, 0, fmt.Errorf("%s distribution: minimum and maximum are required", spec.Type)
	}
	if *spec.Maximum <= *spec.Minimum {
		return 0, 0, fmt.Errorf("%s distribution: maximum %v not greater than minimum %v",
			spec.Type, *spec.Maximum, *spec.Minimum)
	}
	return *spec.Minimum, *spec.Maximum, nil
}
