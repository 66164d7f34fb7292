// Command asm is a two-pass assembler for a didactic 24-bit
// word-addressable machine. It turns one or more ".as" sources into
// object (".ob"), entries (".ent") and externals (".ext") listings.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/twopass/asm24/asm"
)

func main() {
	config := parseArgs()

	failed := false
	for _, input := range config.Inputs {
		base := strings.TrimSuffix(input, ".as")

		switch {
		case config.DumpAST:
			dumpAST(base)
		case config.DumpSymbols:
			dumpSymbols(base, config)
		default:
			if !build(base, config) {
				failed = true
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

// build assembles one unit, printing any diagnostics to stderr. It
// returns true on success.
func build(base string, config *Config) bool {
	errs := asm.Build(base, asm.Options{Base: config.Base, OutDir: config.OutDir})
	for _, err := range errs {
		reportError(base+".as", err)
	}
	return len(errs) == 0
}

// reportError prints a single diagnostic in the form
// "Error in <file>, line <n>: <message>", falling back to a line-less
// form for errors without source position (I/O failures).
func reportError(file string, err error) {
	if le, ok := err.(interface{ Line() int }); ok {
		fmt.Fprintf(os.Stderr, "Error in %s, line %d: %s\n", file, le.Line(), err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error in %s: %s\n", file, err)
}
