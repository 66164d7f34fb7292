// Package artifact writes the assembler's output files: the object
// listing (.ob), the entries listing (.ent) and the externals listing
// (.ext).
package artifact

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/twopass/asm24/arch"
	"github.com/twopass/asm24/asm/secondpass"
	"github.com/twopass/asm24/asm/symtab"
)

// WriteObject writes the .ob listing to path: a header line with the code
// and data word counts, then one line per word (code first, then data) as
// "<address> <base64>".
func WriteObject(path string, res *secondpass.Result, base, icFinal, dcFinal int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "artifact: create object file")
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d %d\n", icFinal, dcFinal); err != nil {
		return errors.Wrap(err, "artifact: write object header")
	}

	for addr := base; addr < base+icFinal; addr++ {
		if err := writeWordLine(f, addr, res.Code[addr]); err != nil {
			return err
		}
	}
	for addr := base + icFinal; addr < base+icFinal+dcFinal; addr++ {
		if err := writeWordLine(f, addr, res.Data[addr]); err != nil {
			return err
		}
	}

	return nil
}

func writeWordLine(w io.Writer, addr int, word arch.Word) error {
	b := word.Bytes()
	enc := base64.StdEncoding.EncodeToString(b[:])
	if _, err := fmt.Fprintf(w, "%04d %s\n", addr, enc); err != nil {
		return errors.Wrap(err, "artifact: write object word")
	}
	return nil
}

// WriteEntries writes the .ent listing: one line per Entry symbol, in
// discovery order, as "<name> <address>". The file is not created at all
// when there are no entries.
func WriteEntries(path string, table *symtab.Table) error {
	entries := table.Entries()
	if len(entries) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "artifact: create entries file")
	}
	defer f.Close()

	for _, sym := range entries {
		if _, err := fmt.Fprintf(f, "%s %04d\n", sym.Name, sym.Value); err != nil {
			return errors.Wrap(err, "artifact: write entry")
		}
	}
	return nil
}

// WriteExterns writes the .ext listing: one line per external reference
// site, in the order the references were encountered, as
// "<name> <address>". The file is not created at all when there are no
// references.
func WriteExterns(path string, refs []secondpass.ExternRef) error {
	if len(refs) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "artifact: create externals file")
	}
	defer f.Close()

	for _, ref := range refs {
		if _, err := fmt.Fprintf(f, "%s %04d\n", ref.Name, ref.Address); err != nil {
			return errors.Wrap(err, "artifact: write external reference")
		}
	}
	return nil
}
