// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"

	"meridianlab.net/paramset/internal/formula"
)

// PrefixParameterDict returns a copy of params with every key renamed to
// prefix + key and every formula rewritten to use the renamed symbols,
// plus the old-name to new-name substitution map. Builtins and names not
// in params are left untouched in formulas, so references to a shared
// outer scope survive the merge.
func PrefixParameterDict(params map[string]*Parameter, prefix string) (map[string]*Parameter, map[string]string, error) {
	substitutions := make(map[string]string, len(params))
	for name := range params {
		renamed := prefix + name
		if !formula.ValidIdent(renamed) {
			return nil, nil, fmt.Errorf("prefixed name %q is not a valid identifier", renamed)
		}
		substitutions[name] = renamed
	}

	out := make(map[string]*Parameter, len(params))
	for name, p := range params {
		c := p.Clone()
		if c.Formula != "" {
			rewritten, err := formula.Substitute(c.Formula, substitutions)
			if err != nil {
				return nil, nil, fmt.Errorf("parameter %q: %w", name, err)
			}
			c.Formula = rewritten
		}
		out[substitutions[name]] = c
	}
	return out, substitutions, nil
}

// SubstituteInFormulas rewrites every formula in params in place,
// renaming identifiers per the substitution map. Used to rebind formulas
// to a merged namespace after prefixing.
func SubstituteInFormulas(params map[string]*Parameter, substitutions map[string]string) error {
	for name, p := range params {
		if p == nil || p.Formula == "" {
			continue
		}
		rewritten, err := formula.Substitute(p.Formula, substitutions)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		p.Formula = rewritten
	}
	return nil
}
