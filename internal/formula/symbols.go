// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package formula

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// nameCollector gathers every identifier read by a formula, plus the names
// bound by let declarations (the only write context in the grammar).
type nameCollector struct {
	names    map[string]struct{}
	declared map[string]struct{}
}

func (c *nameCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		c.names[n.Value] = struct{}{}
	case *ast.VariableDeclaratorNode:
		c.declared[n.Name] = struct{}{}
	}
}

// collect parses src and returns its identifier reads and let-bound names.
func collect(src string) (tree *parser.Tree, names, declared map[string]struct{}, err error) {
	tree, err = parser.Parse(src)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse formula %q: %w", src, err)
	}
	c := &nameCollector{
		names:    make(map[string]struct{}),
		declared: make(map[string]struct{}),
	}
	ast.Walk(&tree.Node, c)
	return tree, c.names, c.declared, nil
}

// FreeSymbols returns the sorted set of free variable names a formula
// references: identifiers in read context, minus the builtin vocabulary and
// minus names bound inside the formula itself.
func FreeSymbols(src string) ([]string, error) {
	_, names, declared, err := collect(src)
	if err != nil {
		return nil, err
	}
	free := make([]string, 0, len(names))
	for name := range names {
		if IsReserved(name) {
			continue
		}
		if _, ok := declared[name]; ok {
			continue
		}
		free = append(free, name)
	}
	sort.Strings(free)
	return free, nil
}
