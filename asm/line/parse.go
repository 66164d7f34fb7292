package line

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/twopass/asm24/arch"
)

var labelPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,30}$`)

// Parse tokenizes a single source line into a tagged ParsedLine. ln is the
// 1-based source line number, used for diagnostics.
func Parse(raw string, ln int) (*ParsedLine, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return &ParsedLine{Kind: Blank, Ln: ln}, nil
	}

	if trimmed[0] == ';' {
		return &ParsedLine{Kind: Comment, Ln: ln}, nil
	}

	rest := trimmed
	label := ""

	if tok := firstToken(trimmed); strings.HasSuffix(tok, ":") {
		candidate := strings.TrimSuffix(tok, ":")
		if err := validateLabel(candidate, ln, true); err != nil {
			return nil, err
		}
		label = candidate
		rest = strings.TrimSpace(trimmed[len(tok):])
	}

	if rest == "" {
		return nil, NewError(ln, "missing instruction or directive after label %q", label)
	}

	head := firstToken(rest)
	tail := strings.TrimSpace(rest[len(head):])

	switch strings.ToLower(head) {
	case ".data":
		return &ParsedLine{Kind: DataDirective, Ln: ln, Label: label, DataOperand: tail}, nil

	case ".string":
		return &ParsedLine{Kind: StringDirective, Ln: ln, Label: label, StringOperand: tail}, nil

	case ".entry":
		if label != "" {
			return nil, NewError(ln, "a label is not allowed on a .entry line")
		}
		sym, err := soleSymbol(tail, ln, ".entry")
		if err != nil {
			return nil, err
		}
		return &ParsedLine{Kind: EntryDirective, Ln: ln, Symbol: sym}, nil

	case ".extern":
		if label != "" {
			return nil, NewError(ln, "a label is not allowed on a .extern line")
		}
		sym, err := soleSymbol(tail, ln, ".extern")
		if err != nil {
			return nil, err
		}
		return &ParsedLine{Kind: ExternDirective, Ln: ln, Symbol: sym}, nil

	default:
		operands, err := parseOperands(tail, ln)
		if err != nil {
			return nil, err
		}
		return &ParsedLine{Kind: Instr, Ln: ln, Label: label, Mnemonic: strings.ToLower(head), Operands: operands}, nil
	}
}

// firstToken returns the first whitespace-separated token of s.
func firstToken(s string) string {
	i := strings.IndexAny(s, " \t")
	if i == -1 {
		return s
	}
	return s[:i]
}

// soleSymbol validates that tail holds exactly one symbol token, used by
// .entry and .extern.
func soleSymbol(tail string, ln int, directive string) (string, error) {
	fields := strings.Fields(tail)
	if len(fields) != 1 {
		return "", NewError(ln, "%s expects exactly one symbol, got %d", directive, len(fields))
	}
	if err := validateLabel(fields[0], ln, directive == ".extern"); err != nil {
		return "", err
	}
	return fields[0], nil
}

// parseOperands splits an instruction's operand text on commas, trims each
// piece and classifies its addressing mode. Returns at most two operands;
// more is an error.
func parseOperands(tail string, ln int) ([]Operand, error) {
	if tail == "" {
		return nil, nil
	}

	parts := strings.Split(tail, ",")
	if len(parts) > 2 {
		return nil, NewError(ln, "too many operands; expected at most 2, got %d", len(parts))
	}

	out := make([]Operand, 0, len(parts))
	for _, p := range parts {
		op, err := parseOperand(strings.TrimSpace(p), ln)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}

// parseOperand classifies a single trimmed operand token by addressing
// mode.
func parseOperand(tok string, ln int) (Operand, error) {
	if tok == "" {
		return Operand{}, NewError(ln, "empty operand")
	}

	switch {
	case strings.HasPrefix(tok, "#"):
		v, err := strconv.ParseInt(tok[1:], 10, 64)
		if err != nil {
			return Operand{}, NewError(ln, "immediate operand %q is not an integer", tok)
		}
		return Operand{Mode: arch.Immediate, Immediate: v}, nil

	case strings.HasPrefix(tok, "&"):
		name := tok[1:]
		if err := validateLabel(name, ln, false); err != nil {
			return Operand{}, err
		}
		return Operand{Mode: arch.Relative, Label: name}, nil

	case arch.IsRegister(tok):
		return Operand{Mode: arch.Register, Register: arch.RegisterIndex(tok)}, nil

	default:
		if err := validateLabel(tok, ln, false); err != nil {
			return Operand{}, err
		}
		return Operand{Mode: arch.Direct, Label: tok}, nil
	}
}

// validateLabel checks a label's format. checkReserved additionally rejects
// names colliding with instruction mnemonics or directive keywords; this is
// only meaningful for label definitions, not for operand references (which
// could never have been defined under a reserved name in the first place).
func validateLabel(name string, ln int, checkReserved bool) error {
	if len(name) == 0 {
		return NewError(ln, "empty label")
	}
	if !labelPattern.MatchString(name) {
		return NewError(ln, "invalid label %q; must match [A-Za-z][A-Za-z0-9]{0,30}", name)
	}
	if checkReserved && arch.IsReserved(name) {
		return NewError(ln, "label %q collides with a reserved word", name)
	}
	return nil
}

// ParseIntList parses a .data directive's comma-separated integer list.
func ParseIntList(raw string, ln int) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, NewError(ln, ".data requires at least one value")
	}

	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, NewError(ln, "empty value in .data list")
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, NewError(ln, "value %q in .data list is not an integer", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseQuotedString parses a .string directive's operand: a double-quoted
// string, with no escape processing beyond the enclosing quotes.
func ParseQuotedString(raw string, ln int) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", NewError(ln, ".string operand must be enclosed in double quotes")
	}
	return raw[1 : len(raw)-1], nil
}
