package paramset

import (
	"fmt"

	"meridianlab.net/paramset/internal/eval"
	"meridianlab.net/paramset/internal/formula"
	"meridianlab.net/paramset/internal/sample"
	"meridianlab.net/paramset/internal/store"
)

// Set is a validated parameter set bound to optional persistence and a
// configured sampler. It wraps the evaluation engine with a stable public
// surface.
type Set struct {
	inner   *eval.ParameterSet
	params  map[string]*Parameter
	globals map[string]any
	store   store.Store
	sampler *sample.Sampler
	optErr  error
}

// New validates the parameter dictionary and global constants and returns
// a ready-to-evaluate set. Construction fails with a typed error on
// structural violations, self-references, case mismatches, or undefined
// or circular references.
func New(params map[string]*Parameter, globals map[string]any, opts ...Option) (*Set, error) {
	s := &Set{params: params, globals: globals}
	for _, opt := range opts {
		opt(s)
	}
	if s.optErr != nil {
		return nil, s.optErr
	}

	inner, err := eval.New(params, globals)
	if err != nil {
		if s.store != nil {
			s.store.Close()
		}
		return nil, err
	}
	s.inner = inner
	return s, nil
}

// Load retrieves a stored parameter set by name and constructs a Set from
// it. One of the store options is required.
func Load(name string, opts ...Option) (*Set, error) {
	probe := &Set{}
	for _, opt := range opts {
		opt(probe)
	}
	if probe.optErr != nil {
		return nil, probe.optErr
	}
	if probe.store == nil {
		return nil, fmt.Errorf("load %q: no store configured", name)
	}

	doc, err := probe.store.Load(name)
	if err != nil {
		probe.store.Close()
		return nil, err
	}
	if doc == nil {
		probe.store.Close()
		return nil, fmt.Errorf("parameter set %q not found", name)
	}

	inner, err := eval.New(doc.Parameters, doc.Globals)
	if err != nil {
		probe.store.Close()
		return nil, err
	}
	probe.params = doc.Parameters
	probe.globals = doc.Globals
	probe.inner = inner
	return probe, nil
}

// Evaluate resolves every parameter and global in dependency order and
// returns the name-to-value map. The underlying dictionary is not modified.
func (s *Set) Evaluate() (map[string]any, error) {
	return s.inner.Evaluate()
}

// EvaluateAndSetAmounts evaluates and writes each computed value back into
// the parameter's amount, leaving formulas intact.
func (s *Set) EvaluateAndSetAmounts() (map[string]any, error) {
	return s.inner.EvaluateAndSetAmounts()
}

// MonteCarlo draws iterations samples for every parameter and global and
// returns the name-to-vector map. Uncertain parameters are sampled from
// their distributions; certain values become constant vectors; formulas
// are applied draw by draw.
func (s *Set) MonteCarlo(iterations int) (map[string][]float64, error) {
	if s.sampler != nil {
		return s.inner.MonteCarlo(iterations, eval.WithSampler(s.sampler))
	}
	return s.inner.MonteCarlo(iterations)
}

// ApplyExchanges evaluates each exchange formula against the resolved
// parameter values and fills in amounts that are not already set.
func (s *Set) ApplyExchanges(exchanges []*Exchange) error {
	return s.inner.ApplyExchanges(exchanges)
}

// Order returns the evaluation order: every parameter and global exactly
// once, dependencies before dependents.
func (s *Set) Order() []string {
	return s.inner.Order()
}

// References returns each name's sorted dependency list.
func (s *Set) References() map[string][]string {
	return s.inner.References()
}

// Env returns the evaluation environment: the builtin vocabulary plus all
// parameter and global values. With evaluateFirst, formulas are resolved
// before the values are collected.
func (s *Set) Env(evaluateFirst bool) (map[string]any, error) {
	return s.inner.Env(evaluateFirst)
}

// Len returns the number of parameters plus globals.
func (s *Set) Len() int {
	return s.inner.Len()
}

// Save persists the set under the given name. One of the store options
// must have been configured.
func (s *Set) Save(name string) error {
	if s.store == nil {
		return fmt.Errorf("save %q: no store configured", name)
	}
	return s.store.Save(name, &store.Document{
		Parameters: s.params,
		Globals:    s.globals,
	})
}

// Close releases store resources, if any.
func (s *Set) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// MangleFormula prefixes every free variable in formula with prefix + "__",
// leaving builtins and names listed in context untouched.
func MangleFormula(src, prefix string, context []string) (string, error) {
	return formula.MangleFormula(src, prefix, context)
}

// PrefixParameterDict returns a copy of params with every name prefixed
// and every formula rewritten to match, plus the old-to-new name mapping.
// The input dictionary is not modified.
func PrefixParameterDict(params map[string]*Parameter, prefix string) (map[string]*Parameter, map[string]string, error) {
	return eval.PrefixParameterDict(params, prefix)
}

// SubstituteInFormulas rewrites identifiers in every formula of params
// according to the given old-to-new name mapping, in place.
func SubstituteInFormulas(params map[string]*Parameter, substitutions map[string]string) error {
	return eval.SubstituteInFormulas(params, substitutions)
}
