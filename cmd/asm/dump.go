package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/twopass/asm24/asm/firstpass"
	"github.com/twopass/asm24/asm/line"
	"github.com/twopass/asm24/asm/macro"
)

// expandAndParse runs just the macro expander and line parser for base,
// the shared first step of both debug dumps.
func expandAndParse(base string) ([]*line.ParsedLine, []error) {
	src := base + ".as"

	f, err := os.Open(src)
	if err != nil {
		return nil, []error{err}
	}
	defer f.Close()

	expanded, errs := macro.Expand(f, src)
	if len(errs) > 0 {
		return nil, errs
	}

	return parseAll(expanded)
}

// parseAll mirrors asm.Build's own line splitting; duplicated here since
// it is unexported from that package.
func parseAll(expanded string) ([]*line.ParsedLine, []error) {
	raw := strings.Split(strings.TrimRight(expanded, "\n"), "\n")
	lines := make([]*line.ParsedLine, 0, len(raw))
	var errs []error

	for i, text := range raw {
		p, err := line.Parse(text, i+1)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, p)
	}

	return lines, errs
}

// dumpAST prints each parsed line's kind and fields to stdout.
func dumpAST(base string) {
	lines, errs := expandAndParse(base)
	if len(errs) > 0 {
		for _, err := range errs {
			reportError(base+".as", err)
		}
		os.Exit(1)
	}

	for _, p := range lines {
		switch p.Kind {
		case line.Instr:
			fmt.Printf("%4d  %-10s label=%-10q mnemonic=%-6s operands=%v\n", p.Ln, p.Kind, p.Label, p.Mnemonic, p.Operands)
		case line.DataDirective:
			fmt.Printf("%4d  %-10s label=%-10q data=%q\n", p.Ln, p.Kind, p.Label, p.DataOperand)
		case line.StringDirective:
			fmt.Printf("%4d  %-10s label=%-10q string=%s\n", p.Ln, p.Kind, p.Label, p.StringOperand)
		case line.EntryDirective, line.ExternDirective:
			fmt.Printf("%4d  %-10s symbol=%s\n", p.Ln, p.Kind, p.Symbol)
		default:
			fmt.Printf("%4d  %-10s\n", p.Ln, p.Kind)
		}
	}
}

// dumpSymbols runs the first pass and prints the resulting symbol table.
func dumpSymbols(base string, config *Config) {
	lines, errs := expandAndParse(base)
	if len(errs) > 0 {
		for _, err := range errs {
			reportError(base+".as", err)
		}
		os.Exit(1)
	}

	addr := config.Base
	if addr == 0 {
		addr = 100
	}

	fp, errs := firstpass.Run(lines, addr)
	for _, err := range errs {
		reportError(base+".as", err)
	}
	if len(errs) > 0 {
		os.Exit(1)
	}

	for _, name := range fp.Table.Names() {
		sym, _ := fp.Table.Find(name)
		fmt.Printf("%-32s value=%-6d attrs=%s\n", sym.Name, sym.Value, sym.Attrs)
	}
}
