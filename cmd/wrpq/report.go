package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/wrpq/rpq"
)

// resultsFile is the name of the answer file written to the output directory.
const resultsFile = "queryResults.txt"

// printResult writes the answers and session statistics to w.
func printResult(w io.Writer, res *rpq.Result) {
	if res.Mode == rpq.ModeLargestWeight {
		if res.HasLargest {
			fmt.Fprintf(w, "largest weight: %g\n", res.Largest)
		} else {
			fmt.Fprintln(w, "largest weight: none")
		}
	} else {
		for _, e := range res.Ordered {
			fmt.Fprintln(w, e)
		}
		fmt.Fprintf(w, "total answers: %d\n", len(res.Ordered))
	}

	fmt.Fprintf(w, "max iteration steps: %d\n", res.Stats.MaxObserved)
	fmt.Fprintf(w, "number of max nodes possible: %d\n", res.MaxNodesPossible)
	fmt.Fprintf(w, "number of actual nodes: %d\n", res.ProductNodes)
	fmt.Fprintf(w, "possible inf run: %t\n", res.Stats.PossiblyIncomplete)
	fmt.Fprintf(w, "timings: preprocessing=%s search=%s postprocessing=%s total=%s\n",
		res.Timings.Preprocessing, res.Timings.Search, res.Timings.Postprocessing, res.Timings.Total)
}

// writeResults writes the ordered answers to dir/queryResults.txt, replacing
// any previous file, and returns its path.
func writeResults(dir string, res *rpq.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("query processed.\n")
	for _, e := range res.Ordered {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "total answers: %d\n", len(res.Ordered))

	path := filepath.Join(dir, resultsFile)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}

	return path, nil
}
