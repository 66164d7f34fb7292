// Package secondpass implements the assembler's second pass: it encodes
// every instruction and data line into 24-bit machine words, resolves
// symbol references against the table the first pass built, and records
// the ordered list of external-symbol reference sites.
package secondpass

import (
	"github.com/twopass/asm24/arch"
	"github.com/twopass/asm24/asm/firstpass"
	"github.com/twopass/asm24/asm/line"
	"github.com/twopass/asm24/asm/symtab"
)

// ExternRef records one site at which an external symbol was referenced:
// the symbol's name and the address of the word that carries the
// reference.
type ExternRef struct {
	Name    string
	Address int
}

// Result holds the encoded memory image, keyed by absolute address, and
// the external reference list in the order the references were seen.
type Result struct {
	Code    map[int]arch.Word
	Data    map[int]arch.Word
	Externs []ExternRef
}

// Run executes the second pass over lines using the symbol table and
// counters the first pass produced. base is the machine's load address.
//
// As in the first pass, errors are collected rather than returned
// immediately so that one bad line does not hide problems in later ones.
func Run(lines []*line.ParsedLine, fp *firstpass.Result, base int) (*Result, []error) {
	res := &Result{Code: make(map[int]arch.Word), Data: make(map[int]arch.Word)}
	var errs []error

	addr := base
	dataAddr := base + fp.ICFinal

	for _, p := range lines {
		switch p.Kind {
		case line.Blank, line.Comment, line.ExternDirective:
			// nothing to encode

		case line.EntryDirective:
			if err := fp.Table.AddAttrs(p.Symbol, symtab.Entry); err != nil {
				errs = append(errs, atLine(p.Ln, err))
			}

		case line.DataDirective:
			values, err := line.ParseIntList(p.DataOperand, p.Ln)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for _, v := range values {
				res.Data[dataAddr] = arch.NewPayloadWord(v, arch.Absolute)
				dataAddr++
			}

		case line.StringDirective:
			s, err := line.ParseQuotedString(p.StringOperand, p.Ln)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for _, r := range s {
				res.Data[dataAddr] = arch.NewPayloadWord(int64(r), arch.Absolute)
				dataAddr++
			}
			res.Data[dataAddr] = arch.NewPayloadWord(0, arch.Absolute)
			dataAddr++

		case line.Instr:
			words, refs, err := encodeInstruction(p, fp.Table, addr)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for i, w := range words {
				res.Code[addr+i] = w
			}
			res.Externs = append(res.Externs, refs...)
			addr += len(words)
		}
	}

	return res, errs
}

// encodeInstruction produces the word(s) for a single instruction line,
// plus any external references it made. instrAddr is the address of the
// instruction's first (opcode) word.
func encodeInstruction(p *line.ParsedLine, table *symtab.Table, instrAddr int) ([]arch.Word, []ExternRef, error) {
	instr, ok := arch.Lookup(p.Mnemonic)
	if !ok {
		return nil, nil, line.NewError(p.Ln, "unknown instruction %q", p.Mnemonic)
	}
	if len(p.Operands) != instr.Operands {
		return nil, nil, line.NewError(p.Ln, "invalid operand count for %q; expected %d, got %d",
			p.Mnemonic, instr.Operands, len(p.Operands))
	}

	srcMode, dstMode := arch.Immediate, arch.Immediate
	srcReg, dstReg := 0, 0

	switch len(p.Operands) {
	case 1:
		dstMode, dstReg = p.Operands[0].Mode, regOf(p.Operands[0])
	case 2:
		srcMode, srcReg = p.Operands[0].Mode, regOf(p.Operands[0])
		dstMode, dstReg = p.Operands[1].Mode, regOf(p.Operands[1])
	}

	words := []arch.Word{arch.NewInstructionWord(instr.Op, srcMode, srcReg, dstMode, dstReg, instr.Funct)}
	var refs []ExternRef

	if len(p.Operands) == 2 && p.Operands[0].Mode == arch.Register && p.Operands[1].Mode == arch.Register {
		words = append(words, arch.NewRegisterWord(p.Operands[0].Register, p.Operands[1].Register))
		return words, refs, nil
	}

	for _, op := range p.Operands {
		if op.Mode == arch.Register {
			continue
		}

		w, ref, err := encodeOperandWord(p.Ln, op, table, instrAddr, instrAddr+len(words))
		if err != nil {
			return nil, nil, err
		}
		words = append(words, w)
		if ref != nil {
			refs = append(refs, *ref)
		}
	}

	return words, refs, nil
}

// encodeOperandWord encodes a single non-Register operand word. instrAddr
// is the address of the instruction's word 0, the base for Relative-mode
// distance computation; wordAddr is the absolute address this particular
// operand word will occupy, used for external reference bookkeeping.
func encodeOperandWord(ln int, op line.Operand, table *symtab.Table, instrAddr, wordAddr int) (arch.Word, *ExternRef, error) {
	switch op.Mode {
	case arch.Immediate:
		return arch.NewPayloadWord(op.Immediate, arch.Absolute), nil, nil

	case arch.Direct:
		sym, ok := table.Find(op.Label)
		if !ok {
			return 0, nil, line.NewError(ln, "undefined symbol %q", op.Label)
		}
		if sym.Attrs&symtab.External != 0 {
			return arch.NewPayloadWord(0, arch.External), &ExternRef{Name: op.Label, Address: wordAddr}, nil
		}
		return arch.NewPayloadWord(int64(sym.Value), arch.Relocatable), nil, nil

	case arch.Relative:
		sym, ok := table.Find(op.Label)
		if !ok {
			return 0, nil, line.NewError(ln, "undefined symbol %q", op.Label)
		}
		if sym.Attrs&symtab.External != 0 {
			return 0, nil, line.NewError(ln, "relative operand %q can not reference an external symbol", op.Label)
		}
		dist := int64(sym.Value - instrAddr)
		return arch.NewPayloadWord(dist, arch.Relocatable), nil, nil
	}

	return 0, nil, line.NewError(ln, "unencodable operand mode %v", op.Mode)
}

func regOf(op line.Operand) int {
	if op.Mode == arch.Register {
		return op.Register
	}
	return 0
}

// atLine rewrites a symtab error, which carries no line context of its
// own, to report the line at which the .entry directive occurred.
func atLine(ln int, err error) error {
	if se, ok := err.(*symtab.Error); ok {
		se.Ln = ln
		return se
	}
	return err
}
