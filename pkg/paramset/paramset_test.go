package paramset

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAndEvaluate(t *testing.T) {
	ps, err := New(map[string]*Parameter{
		"a": {Amount: 2.0},
		"b": {Formula: "a * 3"},
	}, map[string]any{"g": 10.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ps.Close()

	result, err := ps.Evaluate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["b"].(float64) != 6 {
		t.Errorf("expected b=6, got %v", result["b"])
	}
	if result["g"].(float64) != 10 {
		t.Errorf("expected g=10, got %v", result["g"])
	}
}

func TestNewTypedErrors(t *testing.T) {
	_, err := New(map[string]*Parameter{
		"a": {Formula: "a + 1"},
	}, nil)
	var serr *SelfReferenceError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SelfReferenceError, got %v", err)
	}
}

func TestMonteCarloSeeded(t *testing.T) {
	build := func() map[string][]float64 {
		ps, err := New(map[string]*Parameter{
			"a": {Amount: 1.0, Uncertainty: &Spec{Type: Normal, Loc: 1, Scale: 0.5}},
			"b": {Formula: "a * 2"},
		}, nil, WithSeed(7))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer ps.Close()
		result, err := ps.MonteCarlo(30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result
	}

	first, second := build(), build()
	for i := range first["a"] {
		if first["a"][i] != second["a"][i] {
			t.Fatalf("sample %d differs between seeded runs", i)
		}
		if first["b"][i] != 2*first["a"][i] {
			t.Fatalf("b[%d] != 2*a[%d]", i, i)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sets.db")

	ps, err := New(map[string]*Parameter{
		"a": {Amount: 4.0},
		"b": {Formula: "sqrt(a)"},
	}, nil, WithSQLiteStore(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ps.Save("demo"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ps.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	loaded, err := Load("demo", WithSQLiteStore(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer loaded.Close()

	result, err := loaded.Evaluate()
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result["b"].(float64) != 2 {
		t.Errorf("expected b=2, got %v", result["b"])
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("nope", WithMemoryStore()); err == nil {
		t.Error("expected error for missing set")
	}
}

func TestSaveWithoutStore(t *testing.T) {
	ps, err := New(map[string]*Parameter{"a": {Amount: 1.0}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ps.Close()
	if err := ps.Save("x"); err == nil {
		t.Error("expected error without a store")
	}
}

func TestMangleFormula(t *testing.T) {
	out, err := MangleFormula("log(foo * bar) + 7 / baz", "pre", []string{"bar"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "pre__foo") || !strings.Contains(out, "pre__baz") {
		t.Errorf("expected prefixed names, got %q", out)
	}
	if strings.Contains(out, "pre__bar") || strings.Contains(out, "pre__log") {
		t.Errorf("context or builtin renamed: %q", out)
	}
}

func TestPrefixAndMerge(t *testing.T) {
	left := map[string]*Parameter{
		"x": {Amount: 1.0},
		"y": {Formula: "x + 1"},
	}
	renamed, subs, err := PrefixParameterDict(left, "l__")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subs["y"] != "l__y" {
		t.Errorf("unexpected substitutions: %v", subs)
	}

	ps, err := New(renamed, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ps.Close()
	result, err := ps.Evaluate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["l__y"].(float64) != 2 {
		t.Errorf("expected l__y=2, got %v", result["l__y"])
	}
}

func TestOrderAndReferences(t *testing.T) {
	ps, err := New(map[string]*Parameter{
		"a": {Amount: 1.0},
		"b": {Formula: "a + 1"},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ps.Close()

	order := ps.Order()
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("unexpected order: %v", order)
	}
	refs := ps.References()
	if len(refs["b"]) != 1 || refs["b"][0] != "a" {
		t.Errorf("unexpected references: %v", refs)
	}
}
