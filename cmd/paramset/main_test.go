package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadDocument(t *testing.T) {
	path := writeTemp(t, `
parameters:
  a:
    amount: 2
  b:
    formula: a * 3
  c:
    amount: 1
    uncertainty:
      type: normal
      loc: 1
      scale: 0.2
globals:
  g: 10
`)

	doc, err := readDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Parameters) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(doc.Parameters))
	}
	if doc.Parameters["b"].Formula != "a * 3" {
		t.Errorf("unexpected formula: %q", doc.Parameters["b"].Formula)
	}
	if doc.Parameters["c"].Uncertainty == nil {
		t.Fatal("uncertainty not parsed")
	}
	if doc.Globals["g"] == nil {
		t.Error("global not parsed")
	}
}

func TestReadDocumentEmpty(t *testing.T) {
	path := writeTemp(t, "globals:\n  g: 1\n")
	if _, err := readDocument(path); err == nil {
		t.Error("expected error for document without parameters")
	}
}

func TestReadDocumentBadYAML(t *testing.T) {
	path := writeTemp(t, "parameters: [not a map")
	if _, err := readDocument(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSummarize(t *testing.T) {
	out := summarize(map[string][]float64{
		"a": {1, 2, 3, 4},
	})
	s := out["a"]
	if s.Mean != 2.5 {
		t.Errorf("expected mean 2.5, got %v", s.Mean)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("unexpected min/max: %v/%v", s.Min, s.Max)
	}
	if math.Abs(s.StdDev-1.2909944487358056) > 1e-9 {
		t.Errorf("unexpected stddev: %v", s.StdDev)
	}
}

func TestWriteOutputFormats(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput(&buf, map[string]float64{"a": 2}, "json"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"a": 2`) {
		t.Errorf("unexpected json: %s", buf.String())
	}

	buf.Reset()
	if err := writeOutput(&buf, map[string]float64{"a": 2}, "yaml"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a: 2") {
		t.Errorf("unexpected yaml: %s", buf.String())
	}
}
