package compiler

import "fmt"

// Kind identifies the phase a compile failed in.
type Kind int

const (
	KindRead Kind = iota + 1
	KindParse
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindParse:
		return "parse"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Error is a fatal failure for a single entry.
type Error struct {
	Kind     Kind
	Filename string
	Line     int
	Column   int
	Message  string
}

// Error formats the failure as "<file>: [L<line>:C<col>] <message>".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: [L%d:C%d] %s", e.Filename, e.Line, e.Column, e.Message)
}
