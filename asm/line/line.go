// Package line tokenizes one already macro-expanded source line into a
// tagged ParsedLine record, the shared input to both assembler passes.
package line

import "github.com/twopass/asm24/arch"

// Kind tags the syntactic category of a parsed line.
type Kind int

// Known line kinds.
const (
	Blank Kind = iota
	Comment
	DataDirective
	StringDirective
	EntryDirective
	ExternDirective
	Instr
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case DataDirective:
		return "data"
	case StringDirective:
		return "string"
	case EntryDirective:
		return "entry"
	case ExternDirective:
		return "extern"
	case Instr:
		return "instruction"
	}
	return "unknown"
}

// Operand is one parsed instruction operand, already classified by
// addressing mode.
type Operand struct {
	Mode      arch.AddressMode
	Register  int    // valid when Mode == arch.Register
	Immediate int64  // valid when Mode == arch.Immediate
	Label     string // valid when Mode == arch.Direct or arch.Relative
}

// ParsedLine is the tagged record produced by Parse for a single source
// line. Only the fields relevant to Kind are populated.
type ParsedLine struct {
	Kind Kind
	Ln   int

	Label string // optional leading label, colon stripped

	Mnemonic string    // Instr
	Operands []Operand // Instr

	DataOperand   string // DataDirective: raw comma-separated integer list
	StringOperand string // StringDirective: raw operand text, quotes included

	Symbol string // EntryDirective / ExternDirective
}
