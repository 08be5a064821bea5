package functions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dimensionPattern = regexp.MustCompile(`^([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)(%|[a-zA-Z]*)$`)
	colorPattern     = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	keywordPattern   = regexp.MustCompile(`^-{0,2}[a-zA-Z_][-a-zA-Z0-9_]*$`)
)

type (
	// Node is a value passed to or returned from a custom function.
	Node interface {
		CSS() string
	}

	// Anonymous is an opaque literal that is emitted unchanged.
	Anonymous struct {
		Value string
	}

	// Keyword is a bare identifier such as bold or inherit.
	Keyword struct {
		Value string
	}

	// Quoted is a string literal. Value holds the unquoted text.
	Quoted struct {
		Value string
		Quote byte
	}

	// Dimension is a number with an optional unit.
	Dimension struct {
		Value float64
		Unit  string
	}

	// Color is a hex color including the leading '#'.
	Color struct {
		Hex string
	}

	// Nodes exposes node constructors to custom functions.
	Nodes struct{}
)

func (n *Anonymous) CSS() string { return n.Value }
func (n *Keyword) CSS() string { return n.Value }
func (n *Color) CSS() string { return n.Hex }

func (n *Quoted) CSS() string {
	q := n.Quote
	if q == 0 {
		q = '"'
	}

	return string(q) + n.Value + string(q)
}

func (n *Dimension) CSS() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit
}

// String returns the unquoted value, which is what templates usually want.
func (n *Quoted) String() string { return n.Value }

func (Nodes) Anonymous(v any) Node {
	if n, ok := v.(Node); ok {
		return &Anonymous{Value: n.CSS()}
	}

	return &Anonymous{Value: fmt.Sprint(v)}
}

func (Nodes) Keyword(s string) Node { return &Keyword{Value: s} }
func (Nodes) Quoted(s string) Node { return &Quoted{Value: s, Quote: '"'} }
func (Nodes) Dimension(v float64, unit string) Node { return &Dimension{Value: v, Unit: unit} }
func (Nodes) Color(hex string) Node { return &Color{Hex: "#" + strings.TrimPrefix(hex, "#")} }

// ParseNode classifies rendered argument text into the closest node type.
// Anything that is not a single recognizable value becomes Anonymous.
func ParseNode(text string) Node {
	text = strings.TrimSpace(text)

	switch {
	case len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0]:
		return &Quoted{Value: text[1 : len(text)-1], Quote: text[0]}
	case colorPattern.MatchString(text):
		return &Color{Hex: text}
	case keywordPattern.MatchString(text):
		return &Keyword{Value: text}
	}

	if m := dimensionPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &Dimension{Value: v, Unit: m[2]}
		}
	}

	return &Anonymous{Value: text}
}
