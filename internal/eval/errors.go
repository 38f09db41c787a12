// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a structurally invalid parameter or global:
// missing amount and formula, a non-identifier name, or a non-numeric
// value. Raised before any graph work.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Name, e.Reason)
}

// DuplicateNameError reports a parameter named after a builtin symbol.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("parameter name %q is a built-in symbol", e.Name)
}

// SelfReferenceError reports a formula that references its own parameter.
type SelfReferenceError struct {
	Name    string
	Formula string
}

func (e *SelfReferenceError) Error() string {
	return fmt.Sprintf("formula for parameter %q references itself: %q", e.Name, e.Formula)
}

// CapitalizationError reports an ordering failure where every unresolved
// reference matches a resolved name case-insensitively: almost certainly a
// capitalization typo rather than a missing parameter or a cycle.
type CapitalizationError struct {
	Unresolved map[string][]string // name -> outstanding references
	Resolved   []string
}

func (e *CapitalizationError) Error() string {
	return fmt.Sprintf(
		"possible upper/lower case errors for some parameters\nunmatched references:\n%s\nmatched names:\n  %s",
		formatRefs(e.Unresolved), strings.Join(e.Resolved, ", "))
}

// OrderingError reports an ordering failure with no specific diagnosis:
// the remaining parameters reference something undefined or form a cycle.
type OrderingError struct {
	Unresolved map[string][]string // name -> outstanding references
	Order      []string            // names resolved before getting stuck
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf(
		"undefined or circular references for the following:\n%s\nexisting order:\n  %s",
		formatRefs(e.Unresolved), strings.Join(e.Order, ", "))
}

// BroadcastingError reports a Monte Carlo formula result that cannot fill
// a sample vector of the required length. Shapes use numpy-style
// rendering, e.g. "(1000,)".
type BroadcastingError struct {
	Name     string
	Formula  string
	Expected string
	Actual   string
}

func (e *BroadcastingError) Error() string {
	return fmt.Sprintf(
		"formula returned array of wrong shape:\nname: %s\nformula: %s\nexpected shape: %s\nreturned shape: %s",
		e.Name, e.Formula, e.Expected, e.Actual)
}

// MissingValueError reports a parameter with neither formula nor amount at
// evaluation time. Validation makes this unreachable, but the evaluators
// defend against it independently.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no suitable formula or static amount found in %q", e.Name)
}

// formatRefs renders a reference map with sorted keys, one per line.
func formatRefs(refs map[string][]string) string {
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		deps := append([]string(nil), refs[name]...)
		sort.Strings(deps)
		fmt.Fprintf(&sb, "  %s: [%s]\n", name, strings.Join(deps, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// shape renders a sample-vector shape numpy-style.
func shape(dims ...int) string {
	if len(dims) == 1 {
		return fmt.Sprintf("(%d,)", dims[0])
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
