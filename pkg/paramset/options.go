// Package paramset provides the public API for named parameter sets:
// validation, dependency ordering, deterministic evaluation, and Monte
// Carlo sampling.
package paramset

import (
	"meridianlab.net/paramset/internal/eval"
	"meridianlab.net/paramset/internal/sample"
	"meridianlab.net/paramset/internal/store"
)

// Option configures a Set.
type Option func(*Set)

// WithSQLiteStore configures SQLite persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(s *Set) {
		st, err := store.NewSQLite(path)
		if err != nil {
			s.optErr = err
			return
		}
		s.store = st
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(s *Set) {
		s.store = store.NewMemory()
	}
}

// WithStore configures a custom store.
func WithStore(st Store) Option {
	return func(s *Set) {
		s.store = st
	}
}

// WithSeed configures a deterministic sampler for Monte Carlo runs.
func WithSeed(seed uint64) Option {
	return func(s *Set) {
		s.sampler = sample.New(seed)
	}
}

// WithSampler configures a custom sampler for Monte Carlo runs.
func WithSampler(sampler *sample.Sampler) Option {
	return func(s *Set) {
		s.sampler = sampler
	}
}

// Parameter is a named quantity with a literal amount, a formula, or both,
// plus optional uncertainty.
type Parameter = eval.Parameter

// Exchange is a lightweight amount/formula pair filled in from a set's
// resolved values.
type Exchange = eval.Exchange

// Spec describes a parameter's uncertainty distribution.
type Spec = sample.Spec

// Kind identifies an uncertainty distribution family.
type Kind = sample.Kind

// Distribution kinds.
const (
	Undefined       = sample.Undefined
	NoUncertainty   = sample.None
	Lognormal       = sample.Lognormal
	Normal          = sample.Normal
	Uniform         = sample.Uniform
	Triangular      = sample.Triangular
	Bernoulli       = sample.Bernoulli
	DiscreteUniform = sample.DiscreteUniform
	Weibull         = sample.Weibull
	Gamma           = sample.Gamma
	Beta            = sample.Beta
)

// Store is the interface for parameter-set persistence.
type Store = store.Store

// Document is the stored unit: parameters plus globals.
type Document = store.Document

// NewSQLiteStore opens a SQLite-backed store directly, for callers that
// manage persistence outside a Set.
func NewSQLiteStore(path string) (Store, error) {
	return store.NewSQLite(path)
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() Store {
	return store.NewMemory()
}

// Typed errors returned by New and the evaluation methods.
type (
	ValidationError     = eval.ValidationError
	DuplicateNameError  = eval.DuplicateNameError
	SelfReferenceError  = eval.SelfReferenceError
	CapitalizationError = eval.CapitalizationError
	OrderingError       = eval.OrderingError
	BroadcastingError   = eval.BroadcastingError
	MissingValueError   = eval.MissingValueError
)
