// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"sort"
	"strings"

	"meridianlab.net/paramset/internal/formula"
)

// ParameterSet holds a validated parameter dictionary together with its
// dependency map and evaluation order. The order is computed once at
// construction and reused by every evaluation call; replace the set if the
// dictionaries change. Not safe for concurrent mutation: callers needing
// concurrency must serialize evaluation or work on private copies.
type ParameterSet struct {
	params     map[string]*Parameter
	globals    map[string]any
	references map[string]map[string]bool
	order      []string
}

// New validates params and globals, builds the dependency map, and
// computes the evaluation order. Globals hold literal numeric values only
// and participate as leaves in the graph. Construction fails with a typed
// error on any structural violation, self-reference, case-mismatch, or
// undefined/circular reference.
func New(params map[string]*Parameter, globals map[string]any) (*ParameterSet, error) {
	ps := &ParameterSet{
		params:  params,
		globals: globals,
	}
	if ps.params == nil {
		ps.params = map[string]*Parameter{}
	}
	if ps.globals == nil {
		ps.globals = map[string]any{}
	}
	if err := ps.validate(); err != nil {
		return nil, err
	}
	if err := ps.buildReferences(); err != nil {
		return nil, err
	}
	for name, refs := range ps.references {
		if refs[name] {
			return nil, &SelfReferenceError{Name: name, Formula: ps.params[name].Formula}
		}
	}
	order, err := ps.resolveOrder()
	if err != nil {
		return nil, err
	}
	ps.order = order
	return ps, nil
}

// validate checks structural preconditions before any graph work. Checks
// run per name in sorted order, so the first violation reported is
// deterministic.
func (ps *ParameterSet) validate() error {
	for _, name := range sortedKeys(ps.params) {
		p := ps.params[name]
		if p == nil {
			return &ValidationError{Name: name, Reason: "parameter is nil"}
		}
		_, numeric := normalizeValue(p.Amount)
		if !numeric && p.Formula == "" {
			return &ValidationError{Name: name, Reason: "must have either a numeric amount or a formula"}
		}
		if !formula.ValidIdent(name) {
			return &ValidationError{Name: name, Reason: "name is not a valid identifier"}
		}
		if formula.IsReserved(name) {
			return &DuplicateNameError{Name: name}
		}
	}
	for _, name := range sortedKeys(ps.globals) {
		if _, ok := normalizeValue(ps.globals[name]); !ok {
			return &ValidationError{Name: name, Reason: "global parameter does not have a numeric value"}
		}
		if !formula.ValidIdent(name) {
			return &ValidationError{Name: name, Reason: "global parameter name is not a valid identifier"}
		}
	}
	return nil
}

// buildReferences computes each parameter's dependency set: the free
// symbols of its formula, or the empty set for plain amounts. Unresolved
// symbols are kept so they surface as ordering failures rather than being
// silently dropped. Globals register with empty sets.
func (ps *ParameterSet) buildReferences() error {
	ps.references = make(map[string]map[string]bool, len(ps.params)+len(ps.globals))
	for name, p := range ps.params {
		refs := map[string]bool{}
		if p.Formula != "" {
			symbols, err := formula.FreeSymbols(p.Formula)
			if err != nil {
				return err
			}
			for _, s := range symbols {
				refs[s] = true
			}
		}
		ps.references[name] = refs
	}
	for name := range ps.globals {
		ps.references[name] = map[string]bool{}
	}
	return nil
}

// resolveOrder runs the incremental Kahn loop: repeatedly resolve the
// first remaining name whose references are all seen, restarting the scan
// after each resolution. Scan order is sorted name order, which makes the
// result (and any stuck-state diagnosis) deterministic for a given input.
func (ps *ParameterSet) resolveOrder() ([]string, error) {
	remaining := make(map[string]map[string]bool, len(ps.references))
	for name, refs := range ps.references {
		cp := make(map[string]bool, len(refs))
		for r := range refs {
			cp[r] = true
		}
		remaining[name] = cp
	}
	names := sortedKeys(remaining)

	order := make([]string, 0, len(remaining))
	seen := make(map[string]bool, len(remaining))

	for len(remaining) > 0 {
		progressed := false
		for _, name := range names {
			refs, ok := remaining[name]
			if !ok {
				continue
			}
			if containedIn(refs, seen) {
				order = append(order, name)
				seen[name] = true
				delete(remaining, name)
				progressed = true
				break
			}
		}
		if !progressed {
			return nil, ps.diagnoseStuck(remaining, order, seen)
		}
	}
	return order, nil
}

// diagnoseStuck produces the two-tier stuck diagnosis: a capitalization
// error when lower-casing makes every unresolved reference match a
// resolved name, otherwise the generic undefined-or-circular error with
// the full stuck state.
func (ps *ParameterSet) diagnoseStuck(remaining map[string]map[string]bool, order []string, seen map[string]bool) error {
	seenLower := make(map[string]bool, len(seen))
	for name := range seen {
		seenLower[strings.ToLower(name)] = true
	}

	// Tier one: every outstanding reference matches some resolved name
	// once case is ignored.
	caseOnly := len(remaining) > 0
	unresolved := make(map[string][]string, len(remaining))
	for name, refs := range remaining {
		deps := make([]string, 0, len(refs))
		for r := range refs {
			deps = append(deps, r)
			if !seen[r] && !seenLower[strings.ToLower(r)] {
				caseOnly = false
			}
		}
		sort.Strings(deps)
		unresolved[name] = deps
	}

	if caseOnly {
		resolved := make([]string, 0, len(seen))
		for name := range seen {
			resolved = append(resolved, name)
		}
		sort.Strings(resolved)
		return &CapitalizationError{Unresolved: unresolved, Resolved: resolved}
	}

	sortedOrder := append([]string(nil), order...)
	sort.Strings(sortedOrder)
	return &OrderingError{Unresolved: unresolved, Order: sortedOrder}
}

// Order returns a copy of the evaluation order: every parameter and
// global name exactly once, dependencies strictly before dependents.
func (ps *ParameterSet) Order() []string {
	return append([]string(nil), ps.order...)
}

// References returns the dependency map with sorted reference slices.
func (ps *ParameterSet) References() map[string][]string {
	out := make(map[string][]string, len(ps.references))
	for name, refs := range ps.references {
		deps := make([]string, 0, len(refs))
		for r := range refs {
			deps = append(deps, r)
		}
		sort.Strings(deps)
		out[name] = deps
	}
	return out
}

// Len returns the number of parameters plus globals.
func (ps *ParameterSet) Len() int {
	return len(ps.references)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// containedIn reports whether every element of refs is in seen.
func containedIn(refs, seen map[string]bool) bool {
	for r := range refs {
		if !seen[r] {
			return false
		}
	}
	return true
}
