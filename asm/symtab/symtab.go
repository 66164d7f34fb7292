// Package symtab implements the assembler's symbol table: a name-indexed
// store of labels, externs and entries, with the attribute-exclusivity
// rules that keep a symbol's meaning unambiguous.
package symtab

// Attr is a bitset of the attributes a Symbol may carry.
type Attr uint8

// Known symbol attributes.
const (
	Code Attr = 1 << iota
	Data
	External
	Entry
)

func (a Attr) String() string {
	var out string
	for _, pair := range []struct {
		bit  Attr
		name string
	}{{Code, "code"}, {Data, "data"}, {External, "extern"}, {Entry, "entry"}} {
		if a&pair.bit != 0 {
			if out != "" {
				out += "|"
			}
			out += pair.name
		}
	}
	if out == "" {
		return "none"
	}
	return out
}

// Symbol is one entry in the symbol table.
type Symbol struct {
	Name  string
	Value int
	Attrs Attr
}

// Table is a name-indexed symbol store. Iteration order for .ent output
// purposes is the order in which symbols were first discovered, not map
// order.
type Table struct {
	byName map[string]*Symbol
	order  []string
}

// New creates a new, empty symbol table.
func New() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Add inserts a freshly discovered symbol. Re-inserting an identical
// External declaration is tolerated as a no-op; any other collision with an
// existing name is an error.
func (t *Table) Add(name string, value int, attrs Attr) error {
	if existing, ok := t.byName[name]; ok {
		if attrs == External && existing.Attrs == External && value == 0 {
			return nil
		}
		return NewError(0, "redefinition of symbol %q", name)
	}

	t.byName[name] = &Symbol{Name: name, Value: value, Attrs: attrs}
	t.order = append(t.order, name)
	return nil
}

// Find returns the symbol with the given name, if any.
func (t *Table) Find(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// AddAttrs merges additional attributes onto an existing symbol, used by
// .entry processing. Errors if the symbol is undefined or External: Entry
// never composes with External.
func (t *Table) AddAttrs(name string, attrs Attr) error {
	sym, ok := t.byName[name]
	if !ok {
		return NewError(0, "undefined symbol %q", name)
	}
	if sym.Attrs&External != 0 {
		return NewError(0, "symbol %q is external and can not be an entry", name)
	}
	sym.Attrs |= attrs
	return nil
}

// BulkRelocateData adds offset to the value of every Data-attributed
// symbol. Called once, at the end of the first pass, with IC_final.
func (t *Table) BulkRelocateData(offset int) {
	for _, name := range t.order {
		sym := t.byName[name]
		if sym.Attrs&Data != 0 {
			sym.Value += offset
		}
	}
}

// Names returns symbol names in discovery order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns, in discovery order, the symbols carrying the Entry
// attribute.
func (t *Table) Entries() []*Symbol {
	var out []*Symbol
	for _, name := range t.order {
		sym := t.byName[name]
		if sym.Attrs&Entry != 0 {
			out = append(out, sym)
		}
	}
	return out
}
