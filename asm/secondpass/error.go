package secondpass

// no dedicated Error type: secondpass reuses line.Error, produced by
// line.NewError, for its instruction and data diagnostics; .entry failures
// are the symtab.Error returned by the symbol table.
