package line

import "fmt"

// Error defines a line-parsing error with source context.
type Error struct {
	Ln  int
	Msg string
}

// NewError creates a new, formatted error message tied to source line ln.
func NewError(ln int, f string, argv ...interface{}) *Error {
	return &Error{Ln: ln, Msg: fmt.Sprintf(f, argv...)}
}

func (e *Error) Error() string {
	return e.Msg
}

// Line returns the source line at which the error occurred.
func (e *Error) Line() int {
	return e.Ln
}
