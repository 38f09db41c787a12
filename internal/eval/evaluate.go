// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"

	"meridianlab.net/paramset/internal/formula"
)

// Evaluate walks the evaluation order and computes one value per name:
// globals and plain amounts pass through, formulas run against a symbol
// table holding everything resolved before them. Returns a fresh mapping
// from every parameter and global name to its value (float64, or a
// pre-supplied []float64 passed through).
func (ps *ParameterSet) Evaluate() (map[string]any, error) {
	env := formula.BaseEnv()
	result := make(map[string]any, len(ps.order))

	for _, name := range ps.order {
		var value any
		switch {
		case ps.isGlobal(name):
			value, _ = normalizeValue(ps.globals[name])

		case ps.params[name].Formula != "":
			out, err := formula.Evaluate(ps.params[name].Formula, env)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", name, err)
			}
			value, err = coerceResult(name, ps.params[name].Formula, out)
			if err != nil {
				return nil, err
			}

		default:
			v, ok := normalizeValue(ps.params[name].Amount)
			if !ok {
				return nil, &MissingValueError{Name: name}
			}
			value = v
		}

		env[name] = value
		result[name] = value
	}
	return result, nil
}

// EvaluateAndSetAmounts evaluates the set and additionally writes each
// result back into the owning parameter's Amount field, in place.
func (ps *ParameterSet) EvaluateAndSetAmounts() (map[string]any, error) {
	result, err := ps.Evaluate()
	if err != nil {
		return nil, err
	}
	for name, p := range ps.params {
		p.Amount = result[name]
	}
	return result, nil
}

// ApplyExchanges evaluates the set with write-back, then fills the Amount
// of every exchange that has a formula but no amount, using a symbol table
// seeded with all final parameter and global values. Exchanges are
// consumer-owned and never join the dependency graph, so their formulas
// may only reference parameter/global names and builtins.
func (ps *ParameterSet) ApplyExchanges(exchanges []*Exchange) error {
	if _, err := ps.EvaluateAndSetAmounts(); err != nil {
		return err
	}
	env, err := ps.Env(false)
	if err != nil {
		return err
	}
	for i, ex := range exchanges {
		if ex == nil || ex.Formula == "" || ex.Amount != nil {
			continue
		}
		out, err := formula.Evaluate(ex.Formula, env)
		if err != nil {
			return fmt.Errorf("exchange %d: %w", i, err)
		}
		value, err := coerceResult(fmt.Sprintf("exchange %d", i), ex.Formula, out)
		if err != nil {
			return err
		}
		ex.Amount = value
	}
	return nil
}

// Env returns a symbol table prepopulated with the builtin vocabulary and
// every parameter and global value. With evaluateFirst, formulas are
// evaluated (with write-back) before the table is built; otherwise the
// current Amount fields are used as-is.
func (ps *ParameterSet) Env(evaluateFirst bool) (map[string]any, error) {
	if evaluateFirst {
		if _, err := ps.EvaluateAndSetAmounts(); err != nil {
			return nil, err
		}
	}
	env := formula.BaseEnv()
	for name, value := range ps.globals {
		v, _ := normalizeValue(value)
		env[name] = v
	}
	for name, p := range ps.params {
		v, ok := normalizeValue(p.Amount)
		if !ok {
			return nil, &MissingValueError{Name: name}
		}
		env[name] = v
	}
	return env, nil
}

// isGlobal reports whether name is a global parameter. Globals shadow
// same-named parameters, matching the evaluation-order contract.
func (ps *ParameterSet) isGlobal(name string) bool {
	_, ok := ps.globals[name]
	return ok
}

// coerceResult normalizes an engine result to float64 or []float64.
func coerceResult(name, src string, out any) (any, error) {
	if v, ok := normalizeValue(out); ok {
		return v, nil
	}
	return nil, fmt.Errorf("parameter %q: formula %q returned non-numeric %T", name, src, out)
}
