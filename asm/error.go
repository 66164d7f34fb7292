package asm

// LineError is implemented by every stage's Error type: it carries the
// 1-based source line a diagnostic belongs to, alongside the message
// returned by Error().
type LineError interface {
	error
	Line() int
}
