// Command wrpq evaluates weighted regular-path queries over a database graph.
//
//	wrpq --sample social classic
//	wrpq --input data.yaml --transducer generate topk 5
//	wrpq --config wrpq.yaml --input data.yaml threshold 2.5
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
