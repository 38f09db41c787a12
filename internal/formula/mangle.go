// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package formula

import (
	"fmt"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// renamer rewrites identifier reads according to rename. Names absent from
// the map are left untouched.
type renamer struct {
	rename map[string]string
}

func (r *renamer) Visit(node *ast.Node) {
	if id, ok := (*node).(*ast.IdentifierNode); ok {
		if to, ok := r.rename[id.Value]; ok {
			id.Value = to
		}
	}
}

// MangleFormula prefixes every free variable in src with prefix + "__",
// leaving builtins, let-bound names, and names listed in context untouched.
// Context names are the deliberate escape hatch: they keep binding to the
// shared outer scope when formulas from independent parameter sets are
// merged into one symbol table. The rewritten formula is returned as source
// text, structurally identical to the input apart from the renames.
func MangleFormula(src, prefix string, context []string) (string, error) {
	tree, names, declared, err := collect(src)
	if err != nil {
		return "", err
	}
	skip := make(map[string]struct{}, len(context)+len(declared))
	for _, name := range context {
		skip[name] = struct{}{}
	}
	for name := range declared {
		skip[name] = struct{}{}
	}
	rename := make(map[string]string)
	for name := range names {
		if IsReserved(name) {
			continue
		}
		if _, ok := skip[name]; ok {
			continue
		}
		rename[name] = prefix + "__" + name
	}
	ast.Walk(&tree.Node, &renamer{rename: rename})
	return tree.Node.String(), nil
}

// Substitute rewrites identifiers in src according to an explicit old-name
// to new-name mapping and returns the regenerated source. Names not in the
// mapping, including builtins, are untouched.
func Substitute(src string, mapping map[string]string) (string, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse formula %q: %w", src, err)
	}
	ast.Walk(&tree.Node, &renamer{rename: mapping})
	return tree.Node.String(), nil
}
