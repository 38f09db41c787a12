// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package formula

import (
	"math"
	"sort"

	"github.com/expr-lang/expr/builtin"
)

// mathEnv is the builtin math vocabulary available to every formula, on top
// of the engine's own builtin functions (abs, ceil, floor, round, min, max,
// sum, mean, ...). Names mirror the usual scientific vocabulary, with the
// numpy-style aliases (ln, arcsin, ...) kept for formulas ported from other
// tools.
var mathEnv = map[string]any{
	"sqrt":     math.Sqrt,
	"cbrt":     math.Cbrt,
	"exp":      math.Exp,
	"exp2":     math.Exp2,
	"expm1":    math.Expm1,
	"log":      math.Log,
	"ln":       math.Log,
	"log2":     math.Log2,
	"log10":    math.Log10,
	"log1p":    math.Log1p,
	"pow":      math.Pow,
	"hypot":    math.Hypot,
	"fmod":     math.Mod,
	"copysign": math.Copysign,
	"sign": func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	},
	"sin":     math.Sin,
	"cos":     math.Cos,
	"tan":     math.Tan,
	"asin":    math.Asin,
	"acos":    math.Acos,
	"atan":    math.Atan,
	"atan2":   math.Atan2,
	"arcsin":  math.Asin,
	"arccos":  math.Acos,
	"arctan":  math.Atan,
	"arctan2": math.Atan2,
	"sinh":    math.Sinh,
	"cosh":    math.Cosh,
	"tanh":    math.Tanh,
	"asinh":   math.Asinh,
	"acosh":   math.Acosh,
	"atanh":   math.Atanh,
	"arcsinh": math.Asinh,
	"arccosh": math.Acosh,
	"arctanh": math.Atanh,
	"erf":     math.Erf,
	"erfc":    math.Erfc,
	"gamma":   math.Gamma,
	"lgamma": func(x float64) float64 {
		v, _ := math.Lgamma(x)
		return v
	},
	"degrees": func(x float64) float64 { return x * 180 / math.Pi },
	"radians": func(x float64) float64 { return x * math.Pi / 180 },
	"pi":      math.Pi,
	"e":       math.E,
	"tau":     2 * math.Pi,
	"inf":     math.Inf(1),
	"nan":     math.NaN(),
}

// keywords are names the engine grammar reserves. They can never be symbol
// references, but they must not be usable as parameter names either.
var keywords = []string{
	"and", "or", "not", "in", "let", "if", "else", "nil", "true", "false",
	"matches", "contains", "startsWith", "endsWith",
}

// reserved is the full set of builtin/reserved symbol names: the engine's
// builtin functions, the math vocabulary above, and grammar keywords.
// Computed once at startup (the engine's vocabulary is fixed).
var reserved = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, fn := range builtin.Builtins {
		set[fn.Name] = struct{}{}
	}
	for name := range mathEnv {
		set[name] = struct{}{}
	}
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return set
}()

// BaseEnv returns a fresh symbol table preloaded with the builtin math
// vocabulary. Callers own the returned map and may add their own symbols.
func BaseEnv() map[string]any {
	env := make(map[string]any, len(mathEnv))
	for k, v := range mathEnv {
		env[k] = v
	}
	return env
}

// IsReserved reports whether name belongs to the builtin vocabulary and is
// therefore never a user-defined parameter.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// ReservedSymbols returns the sorted list of all reserved symbol names.
func ReservedSymbols() []string {
	names := make([]string, 0, len(reserved))
	for name := range reserved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
