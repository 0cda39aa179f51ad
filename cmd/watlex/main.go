// Command watlex parses a WebAssembly text format module and prints its
// parse event stream. It is a thin consumer of the wat package: all file
// I/O, byte-buffer acquisition, and error rendering live here, outside the
// core lexer/parser.
package main

import (
	"fmt"
	"os"

	"github.com/watlex/watlex/cmd/watlex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
