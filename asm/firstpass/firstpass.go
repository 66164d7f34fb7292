// Package firstpass implements the assembler's first pass: it walks the
// macro-expanded line stream, maintains the instruction and data counters,
// populates the symbol table, and computes each instruction's encoded word
// count ahead of the second pass.
package firstpass

import (
	"github.com/twopass/asm24/arch"
	"github.com/twopass/asm24/asm/line"
	"github.com/twopass/asm24/asm/symtab"
)

// Result holds everything the second pass needs: the populated symbol
// table (with data symbols already relocated past the code image) and the
// final counter values.
type Result struct {
	Table   *symtab.Table
	ICFinal int
	DCFinal int
}

// Run executes the first pass over lines, which must already have macros
// expanded. base is the machine's load address (BASE in spec terms).
//
// Errors are collected rather than returned immediately: a bad line is
// skipped and the pass continues, so later lines still get a chance to
// report their own problems. A non-empty error slice means the unit failed
// and later pipeline stages must not run.
func Run(lines []*line.ParsedLine, base int) (*Result, []error) {
	table := symtab.New()
	var errs []error

	var ic, dc int

	for _, p := range lines {
		switch p.Kind {
		case line.Blank, line.Comment, line.EntryDirective:
			// .entry is resolved in the second pass.

		case line.DataDirective:
			values, err := line.ParseIntList(p.DataOperand, p.Ln)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if p.Label != "" {
				if err := table.Add(p.Label, dc+base, symtab.Data); err != nil {
					errs = append(errs, atLine(p.Ln, err))
				}
			}
			dc += len(values)

		case line.StringDirective:
			s, err := line.ParseQuotedString(p.StringOperand, p.Ln)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if p.Label != "" {
				if err := table.Add(p.Label, dc+base, symtab.Data); err != nil {
					errs = append(errs, atLine(p.Ln, err))
				}
			}
			dc += len(s) + 1 // +1 for the terminating NUL

		case line.ExternDirective:
			if err := table.Add(p.Symbol, 0, symtab.External); err != nil {
				errs = append(errs, atLine(p.Ln, err))
			}

		case line.Instr:
			if p.Label != "" {
				if err := table.Add(p.Label, ic+base, symtab.Code); err != nil {
					errs = append(errs, atLine(p.Ln, err))
				}
			}

			length, err := InstrLength(p)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			ic += length
		}
	}

	table.BulkRelocateData(ic)

	return &Result{Table: table, ICFinal: ic, DCFinal: dc}, errs
}

// InstrLength computes the number of 24-bit words an instruction line
// encodes to: the instruction word itself, plus one word per operand that
// requires one, or a single shared word when both operands are registers.
func InstrLength(p *line.ParsedLine) (int, error) {
	instr, ok := arch.Lookup(p.Mnemonic)
	if !ok {
		return 0, line.NewError(p.Ln, "unknown instruction %q", p.Mnemonic)
	}

	if len(p.Operands) != instr.Operands {
		return 0, line.NewError(p.Ln, "invalid operand count for %q; expected %d, got %d",
			p.Mnemonic, instr.Operands, len(p.Operands))
	}

	if instr.SrcMustDirect && p.Operands[0].Mode != arch.Direct {
		return 0, line.NewError(p.Ln, "%q requires a direct-addressed source operand", p.Mnemonic)
	}

	length := 1

	switch len(p.Operands) {
	case 1:
		if p.Operands[0].Mode.RequiresWord() {
			length++
		}

	case 2:
		src, dst := p.Operands[0], p.Operands[1]
		if src.Mode == arch.Register && dst.Mode == arch.Register {
			length++
		} else {
			if src.Mode.RequiresWord() {
				length++
			}
			if dst.Mode.RequiresWord() {
				length++
			}
		}
	}

	return length, nil
}

// atLine rewrites a symtab error (which carries no line context of its
// own) to report the line at which the offending operation occurred.
func atLine(ln int, err error) error {
	if se, ok := err.(*symtab.Error); ok {
		se.Ln = ln
		return se
	}
	return err
}
