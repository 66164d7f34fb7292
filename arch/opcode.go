// Package arch defines the target machine's instruction set, register file
// and word layout, along with some related helper functions.
package arch

import "strings"

// Instruction describes one mnemonic's identity and shape.
//
// Several mnemonics share a primary opcode; Funct disambiguates between
// them. The (Op, Funct) pair is the instruction's true identity, never Op
// alone.
type Instruction struct {
	Mnemonic      string
	Op            int
	Funct         int
	Operands      int  // required operand count: 0, 1 or 2
	SrcMustDirect bool // true only for lea
}

var instructions = []Instruction{
	{"mov", 0, 0, 2, false},
	{"cmp", 1, 0, 2, false},
	{"add", 2, 1, 2, false},
	{"sub", 2, 2, 2, false},
	{"lea", 4, 0, 2, true},
	{"clr", 5, 1, 1, false},
	{"not", 5, 2, 1, false},
	{"inc", 5, 3, 1, false},
	{"dec", 5, 4, 1, false},
	{"jmp", 9, 1, 1, false},
	{"bne", 9, 2, 1, false},
	{"jsr", 9, 3, 1, false},
	{"red", 12, 0, 1, false},
	{"prn", 13, 0, 1, false},
	{"rts", 14, 0, 0, false},
	{"stop", 15, 0, 0, false},
}

// Lookup returns the Instruction descriptor for the given mnemonic.
// Returns false if the name is not a known instruction.
func Lookup(name string) (Instruction, bool) {
	name = strings.ToLower(name)
	for _, in := range instructions {
		if in.Mnemonic == name {
			return in, true
		}
	}
	return Instruction{}, false
}

// IsInstruction returns true if name is a known instruction mnemonic.
func IsInstruction(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// directives are the assembler's non-instruction reserved keywords,
// given without their leading '.'.
var directives = []string{"data", "string", "entry", "extern"}

// IsReserved returns true if name can not be used as a label or macro name,
// because it collides with an instruction mnemonic, a directive keyword or
// one of the macro-expander keywords.
func IsReserved(name string) bool {
	name = strings.ToLower(name)

	if IsInstruction(name) {
		return true
	}

	for _, d := range directives {
		if d == name {
			return true
		}
	}

	return name == "mcro" || name == "endmcro"
}
