// Command paramset evaluates named parameter sets from the command line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"meridianlab.net/paramset/pkg/paramset"
)

func main() {
	var (
		file       = flag.String("f", "", "Parameter set file (YAML), - for stdin")
		dbPath     = flag.String("db", "", "SQLite database path")
		saveName   = flag.String("save", "", "Save the parameter set under this name")
		loadName   = flag.String("load", "", "Load a stored parameter set by name")
		list       = flag.Bool("list", false, "List stored parameter set names")
		deleteName = flag.String("delete", "", "Delete a stored parameter set by name")
		iterations = flag.Int("mc", 0, "Monte Carlo iterations (0 = deterministic evaluation)")
		seed       = flag.Uint64("seed", 0, "Monte Carlo seed (0 = random)")
		setAmounts = flag.Bool("set-amounts", false, "Write evaluated values back and print the document")
		summary    = flag.Bool("summary", false, "Print mean/stddev instead of raw Monte Carlo samples")
		format     = flag.String("o", "yaml", "Output format: yaml or json")
	)

	flag.Parse()

	if *format != "yaml" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Unknown output format: %s (use yaml or json)\n", *format)
		os.Exit(1)
	}

	// Store-only operations
	if *list || *deleteName != "" {
		if *dbPath == "" {
			fmt.Fprintln(os.Stderr, "Error: -db is required for -list and -delete")
			os.Exit(1)
		}
		st, err := paramset.NewSQLiteStore(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		if *deleteName != "" {
			if err := st.Delete(*deleteName); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		if *list {
			names, err := st.List()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			for _, name := range names {
				fmt.Println(name)
			}
		}
		return
	}

	// Build options
	opts := []paramset.Option{}
	if *dbPath != "" {
		opts = append(opts, paramset.WithSQLiteStore(*dbPath))
	}
	if *seed != 0 {
		opts = append(opts, paramset.WithSeed(*seed))
	}

	var ps *paramset.Set
	var doc *paramset.Document
	var err error

	switch {
	case *file != "":
		doc, err = readDocument(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		ps, err = paramset.New(doc.Parameters, doc.Globals, opts...)
	case *loadName != "":
		if *dbPath == "" {
			fmt.Fprintln(os.Stderr, "Error: -db is required for -load")
			os.Exit(1)
		}
		ps, err = paramset.Load(*loadName, opts...)
	default:
		fmt.Fprintln(os.Stderr, "Error: one of -f, -load, -list, or -delete is required")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer ps.Close()

	if *saveName != "" {
		if err := ps.Save(*saveName); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *iterations > 0:
		samples, mcErr := ps.MonteCarlo(*iterations)
		if mcErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", mcErr)
			os.Exit(1)
		}
		if *summary {
			err = writeOutput(os.Stdout, summarize(samples), *format)
		} else {
			err = writeOutput(os.Stdout, samples, *format)
		}

	case *setAmounts:
		if doc == nil {
			fmt.Fprintln(os.Stderr, "Error: -set-amounts requires -f")
			os.Exit(1)
		}
		if _, evalErr := ps.EvaluateAndSetAmounts(); evalErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", evalErr)
			os.Exit(1)
		}
		err = writeOutput(os.Stdout, doc, *format)

	default:
		result, evalErr := ps.Evaluate()
		if evalErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", evalErr)
			os.Exit(1)
		}
		err = writeOutput(os.Stdout, result, *format)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Summary holds per-name sample statistics.
type Summary struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

func summarize(samples map[string][]float64) map[string]Summary {
	out := make(map[string]Summary, len(samples))
	for name, vec := range samples {
		sorted := append([]float64(nil), vec...)
		sort.Float64s(sorted)
		out[name] = Summary{
			Mean:   stat.Mean(vec, nil),
			StdDev: stat.StdDev(vec, nil),
			Min:    sorted[0],
			Max:    sorted[len(sorted)-1],
		}
	}
	return out
}

// readDocument parses a YAML parameter set document from path, or stdin
// when path is "-".
func readDocument(path string) (*paramset.Document, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var doc paramset.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Parameters) == 0 {
		return nil, fmt.Errorf("no parameters in %s", path)
	}
	return &doc, nil
}

func writeOutput(w io.Writer, v any, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return yaml.NewEncoder(w).Encode(v)
}
