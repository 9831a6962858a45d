// Command typeforge compiles schema documents through the typed IR into
// generated outputs, and vets documents and values against a schema.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if code, ok := exitCodeOf(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, "typeforge:", err)
		os.Exit(2)
	}
}
