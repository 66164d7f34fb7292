// Package asm implements the two-pass assembler pipeline: macro
// expansion, first pass, second pass and artifact writing, wired
// together into a single per-unit Build call.
package asm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/twopass/asm24/asm/artifact"
	"github.com/twopass/asm24/asm/firstpass"
	"github.com/twopass/asm24/asm/line"
	"github.com/twopass/asm24/asm/macro"
	"github.com/twopass/asm24/asm/secondpass"
)

// DefaultBase is the machine's default load address, used when Options
// leaves Base unset.
const DefaultBase = 100

// Options configures a single Build call.
type Options struct {
	Base   int    // load address; DefaultBase when zero
	OutDir string // directory for .am/.ob/.ent/.ext; source's own directory when empty
}

// Build assembles the translation unit rooted at path, a source path
// with its extension already stripped. It reads path+".as", writes the
// macro-expanded <out>.am, and on success <out>.ob plus, when non-empty,
// <out>.ent and <out>.ext. <out> is path itself, or path relocated under
// opts.OutDir when set.
//
// The returned errors are every diagnostic the failing stage collected;
// a non-empty return means the unit failed and no later stage ran.
func Build(path string, opts Options) []error {
	base := opts.Base
	if base == 0 {
		base = DefaultBase
	}

	out := path
	if opts.OutDir != "" {
		out = filepath.Join(opts.OutDir, filepath.Base(path))
	}

	src := path + ".as"

	f, err := os.Open(src)
	if err != nil {
		return []error{errors.Wrap(err, "asm: open source")}
	}
	defer f.Close()

	expanded, errs := macro.Expand(f, src)
	if len(errs) > 0 {
		return errs
	}

	if err := os.WriteFile(out+".am", []byte(expanded), 0644); err != nil {
		return []error{errors.Wrap(err, "asm: write expanded source")}
	}

	lines, errs := parseAll(expanded)
	if len(errs) > 0 {
		return errs
	}

	fp, errs := firstpass.Run(lines, base)
	if len(errs) > 0 {
		return errs
	}

	sp, errs := secondpass.Run(lines, fp, base)
	if len(errs) > 0 {
		return errs
	}

	if err := artifact.WriteObject(out+".ob", sp, base, fp.ICFinal, fp.DCFinal); err != nil {
		return []error{err}
	}
	if err := artifact.WriteEntries(out+".ent", fp.Table); err != nil {
		return []error{err}
	}
	if err := artifact.WriteExterns(out+".ext", sp.Externs); err != nil {
		return []error{err}
	}

	return nil
}

// parseAll splits expanded source into lines and parses each in turn,
// collecting every parse error rather than stopping at the first.
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
