// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package formula is the boundary to the expression engine. It compiles and
// evaluates formula strings against a symbol table, extracts the free
// symbols a formula references, and rewrites identifiers for namespace
// mangling. The engine itself (grammar, type coercion, builtin functions)
// is expr-lang; nothing outside this package imports it directly.
package formula

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compile compiles a formula against the given symbol table. Unknown
// identifiers are a compile error. The returned program can be run many
// times against updated values of the same symbols.
func Compile(src string, env map[string]any) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("compile formula %q: %w", src, err)
	}
	return program, nil
}

// Run executes a compiled formula against the symbol table.
func Run(program *vm.Program, env map[string]any) (any, error) {
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluate formula: %w", err)
	}
	return out, nil
}

// Evaluate compiles and runs a formula in one step.
func Evaluate(src string, env map[string]any) (any, error) {
	program, err := Compile(src, env)
	if err != nil {
		return nil, err
	}
	return Run(program, env)
}

// ValidIdent reports whether name is a valid formula identifier: a letter
// or underscore followed by letters, digits or underscores.
func ValidIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
