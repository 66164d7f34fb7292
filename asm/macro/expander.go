// Package macro implements the assembler's line-oriented macro preprocessor:
// it recognizes "mcro NAME" / "endmcro" definitions and expands bare-name
// invocations, turning a .as source unit into its .am expansion.
package macro

import (
	"bufio"
	"io"
	"strings"

	"github.com/twopass/asm24/arch"
)

// state is the expander's current scanning state.
type state int

const (
	outside state = iota
	defining
)

// Expand reads source from r and returns its macro-expanded form. Macro
// definitions are elided from the output; invocations are replaced by their
// stored bodies. filename is not used: the returned errors carry only a
// line number.
//
// Errors are collected rather than returned immediately: a bad macro
// line is skipped and scanning continues, so later problems in the same
// file are still reported. Only an unterminated definition left open at
// EOF aborts the expansion outright, since there is no sensible point to
// resume from. A non-empty error slice means expansion failed and the
// returned text must not be used.
func Expand(r io.Reader, filename string) (string, []error) {
	var (
		st      = outside
		macros  = make(map[string][]string)
		out     = make([]string, 0, 128)
		curName string
		curBody []string
		curLine int
		lineNo  int
		errs    []error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 1<<20)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		fields := strings.Fields(trimmed)

		switch st {
		case outside:
			switch {
			case trimmed == "":
				out = append(out, line)

			case trimmed[0] == ';':
				out = append(out, line)

			case len(fields) > 0 && fields[0] == "mcro":
				if len(fields) != 2 {
					errs = append(errs, NewError(lineNo, "invalid macro definition; expected exactly one name after 'mcro'"))
					continue
				}

				name := fields[1]
				if arch.IsReserved(name) {
					errs = append(errs, NewError(lineNo, "macro name %q collides with a reserved word", name))
					continue
				}
				if _, exists := macros[name]; exists {
					errs = append(errs, NewError(lineNo, "redefinition of macro %q", name))
					continue
				}

				curName = name
				curBody = nil
				curLine = lineNo
				st = defining

			case len(fields) > 0 && fields[0] == "endmcro":
				errs = append(errs, NewError(lineNo, "'endmcro' outside of a macro definition"))

			case len(fields) > 0 && hasBody(macros, fields[0]):
				out = append(out, macros[fields[0]]...)

			default:
				out = append(out, line)
			}

		case defining:
			switch {
			case trimmed == "endmcro":
				macros[curName] = curBody
				st = outside

			case len(fields) > 0 && fields[0] == "endmcro":
				errs = append(errs, NewError(lineNo, "unexpected tokens after 'endmcro'"))
				macros[curName] = curBody
				st = outside

			case len(fields) > 0 && fields[0] == "mcro":
				errs = append(errs, NewError(lineNo, "nested macro definitions are not supported"))

			default:
				curBody = append(curBody, line)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	if st == defining {
		errs = append(errs, NewError(curLine, "unterminated macro definition %q", curName))
	}

	return strings.Join(out, "\n") + "\n", errs
}

func hasBody(macros map[string][]string, name string) bool {
	_, ok := macros[name]
	return ok
}
