package sample

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func ptr(v float64) *float64 { return &v }

func TestPointMass(t *testing.T) {
	s := New(42)
	out, err := s.Draw(PointMass(3.5), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 100 {
		t.Fatalf("expected 100 draws, got %d", len(out))
	}
	for i, v := range out {
		if v != 3.5 {
			t.Fatalf("draw %d: expected 3.5, got %v", i, v)
		}
	}
}

func TestDrawLength(t *testing.T) {
	s := New(1)
	for _, spec := range []Spec{
		{Type: Normal, Loc: 0, Scale: 1},
		{Type: Lognormal, Loc: 0, Scale: 0.5},
		{Type: Uniform, Minimum: ptr(0), Maximum: ptr(1)},
		{Type: Triangular, Loc: 0.5, Minimum: ptr(0), Maximum: ptr(1)},
		{Type: Weibull, Shape: 1.5, Scale: 2},
		{Type: Gamma, Shape: 2, Scale: 1},
		{Type: Beta, Loc: 2, Shape: 5},
	} {
		out, err := s.Draw(spec, 50)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", spec.Type, err)
		}
		if len(out) != 50 {
			t.Errorf("%s: expected 50 draws, got %d", spec.Type, len(out))
		}
	}
}

func TestSeedReproducibility(t *testing.T) {
	spec := Spec{Type: Normal, Loc: 10, Scale: 2}
	a, err := New(7).Draw(spec, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New(7).Draw(spec, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestUniformRange(t *testing.T) {
	s := New(3)
	out, err := s.Draw(Spec{Type: Uniform, Minimum: ptr(2), Maximum: ptr(4)}, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v < 2 || v >= 4 {
			t.Fatalf("draw %d out of range: %v", i, v)
		}
	}
}

func TestDiscreteUniformIntegers(t *testing.T) {
	s := New(5)
	out, err := s.Draw(Spec{Type: DiscreteUniform, Minimum: ptr(1), Maximum: ptr(5)}, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v != math.Trunc(v) || v < 1 || v >= 5 {
			t.Fatalf("draw %d: expected integer in [1, 5), got %v", i, v)
		}
	}
}

func TestBoundedNormal(t *testing.T) {
	s := New(11)
	out, err := s.Draw(Spec{Type: Normal, Loc: 0, Scale: 1, Minimum: ptr(-1), Maximum: ptr(1)}, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v < -1 || v > 1 {
			t.Fatalf("draw %d outside bounds: %v", i, v)
		}
	}
}

func TestImpossibleBounds(t *testing.T) {
	s := New(13)
	_, err := s.Draw(Spec{Type: Normal, Loc: 0, Scale: 0.001, Minimum: ptr(50), Maximum: ptr(51)}, 10)
	if err == nil {
		t.Error("expected error for bounds excluding all probability mass")
	}
}

func TestInvalidSpecs(t *testing.T) {
	s := New(17)
	cases := []Spec{
		{Type: Normal, Loc: 0, Scale: 0},
		{Type: Lognormal, Loc: 0, Scale: -1},
		{Type: Uniform, Minimum: ptr(1)},
		{Type: Uniform, Minimum: ptr(2), Maximum: ptr(1)},
		{Type: Triangular, Loc: 9, Minimum: ptr(0), Maximum: ptr(1)},
		{Type: Bernoulli, Loc: 1.5},
		{Type: DiscreteUniform, Minimum: ptr(3), Maximum: ptr(3)},
		{Type: Weibull, Shape: 0, Scale: 1},
		{Type: Gamma, Shape: 1, Scale: 0},
		{Type: Beta, Loc: 0, Shape: 1},
		{Type: Kind(99)},
	}
	for _, spec := range cases {
		if _, err := s.Draw(spec, 5); err == nil {
			t.Errorf("%+v: expected error", spec)
		}
	}
}

func TestDrawInvalidCount(t *testing.T) {
	if _, err := New(1).Draw(PointMass(1), 0); err == nil {
		t.Error("expected error for zero draws")
	}
}

func TestKindYAMLRoundTrip(t *testing.T) {
	var spec Spec
	if err := yaml.Unmarshal([]byte("type: normal\nloc: 1\nscale: 2\n"), &spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Type != Normal {
		t.Errorf("expected Normal, got %v", spec.Type)
	}

	if err := yaml.Unmarshal([]byte("type: 2\n"), &spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Type != Lognormal {
		t.Errorf("expected Lognormal, got %v", spec.Type)
	}

	out, err := yaml.Marshal(Spec{Type: Triangular, Loc: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Spec
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Type != Triangular {
		t.Errorf("expected Triangular after round trip, got %v", back.Type)
	}
}

func TestKindJSON(t *testing.T) {
	var spec Spec
	if err := json.Unmarshal([]byte(`{"type": "weibull", "shape": 2, "scale": 1}`), &spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Type != Weibull {
		t.Errorf("expected Weibull, got %v", spec.Type)
	}
	if err := json.Unmarshal([]byte(`{"type": 3}`), &spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Type != Normal {
		t.Errorf("expected Normal, got %v", spec.Type)
	}
	if err := json.Unmarshal([]byte(`{"type": "warped"}`), &spec); err == nil {
		t.Error("expected error for unknown kind name")
	}
}
