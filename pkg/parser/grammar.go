package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type (
	// Stylesheet is the root of a parsed document.
	Stylesheet struct {
		Items []*Item `parser:"@@*"`
	}

	// Item is a top-level statement.
	Item struct {
		AtRule *AtRule `parser:"  @@"`
		Rule   *Rule   `parser:"| @@"`
		Empty  bool    `parser:"| @';'"`
	}

	// AtRule represents @media, @font-face, @import, @charset and friends.
	// Statement at-rules end with a semicolon, block at-rules carry a Block.
	AtRule struct {
		Pos     lexer.Position
		Keyword string       `parser:"@AtKeyword"`
		Prelude []*Component `parser:"@@*"`
		Block   *Block       `parser:"( @@"`
		Semi    bool         `parser:"| @';' )"`
	}

	// Rule is a qualified rule: a selector followed by a block.
	Rule struct {
		Pos      lexer.Position
		Selector []*Component `parser:"@@+"`
		Block    *Block       `parser:"@@"`
	}

	// Block holds the contents between braces. The final declaration of a
	// block may omit its semicolon, so it is captured separately in Last.
	Block struct {
		Pos   lexer.Position
		Items []*BlockItem `parser:"'{' @@*"`
		Last  *Declaration `parser:"@@? '}'"`
	}

	// BlockItem is a statement nested inside a block.
	BlockItem struct {
		Declaration *Declaration `parser:"  @@ ';'"`
		AtRule      *AtRule      `parser:"| @@"`
		Rule        *Rule        `parser:"| @@"`
		Empty       bool         `parser:"| @';'"`
	}

	// Declaration is a property/value pair.
	Declaration struct {
		Pos      lexer.Position
		Property string       `parser:"@Ident ':'"`
		Value    []*Component `parser:"@@*"`
	}

	// Component is a single piece of a selector, prelude or value.
	Component struct {
		Pos      lexer.Position
		Function *Function `parser:"  @@"`
		Group    *Group    `parser:"| @@"`
		Token    *string   `parser:"| @(String | URL | AtKeyword | Hash | Number | Ident | Punct)"`
	}

	// Function is a call such as rgba(0, 0, 0, .5). Name includes the
	// opening parenthesis as produced by the lexer.
	Function struct {
		Name  string       `parser:"@Function"`
		Args  []*Component `parser:"@@*"`
		Close *Closer      `parser:"@@"`
	}

	// Group is a parenthesized list, as in media query features.
	Group struct {
		Items []*Component `parser:"'(' @@*"`
		Close *Closer      `parser:"@@"`
	}

	// Closer records where a function or group ends.
	Closer struct {
		Pos   lexer.Position
		Paren string `parser:"@')'"`
	}
)

// Entries returns the block's statements in source order, including the
// trailing declaration.
func (b *Block) Entries() []*BlockItem {
	if b.Last == nil {
		return b.Items
	}

	entries := make([]*BlockItem, 0, len(b.Items)+1)
	entries = append(entries, b.Items...)
	return append(entries, &BlockItem{Declaration: b.Last})
}

// IsEmpty reports whether the block would render no output.
func (b *Block) IsEmpty() bool {
	for _, item := range b.Entries() {
		switch {
		case item.Declaration != nil:
			return false
		case item.Rule != nil:
			if !item.Rule.Block.IsEmpty() {
				return false
			}
		case item.AtRule != nil:
			if item.AtRule.Block == nil || !item.AtRule.Block.IsEmpty() {
				return false
			}
		}
	}

	return true
}

// FuncName returns the function name without the opening parenthesis.
func (f *Function) FuncName() string {
	return strings.TrimSuffix(f.Name, "(")
}

// End returns the byte offset just past the component.
func (c *Component) End() int {
	switch {
	case c.Function != nil:
		return c.Function.Close.Pos.Offset + 1
	case c.Group != nil:
		return c.Group.Close.Pos.Offset + 1
	case c.Token != nil:
		return c.Pos.Offset + len(*c.Token)
	default:
		return c.Pos.Offset
	}
}

// Is reports whether the component is the plain token s.
func (c *Component) Is(s string) bool {
	return c.Token != nil && *c.Token == s
}

// Walk calls fn for every component in the stylesheet, descending into
// function arguments and groups.
func (s *Stylesheet) Walk(fn func(*Component)) {
	for _, item := range s.Items {
		switch {
		case item.AtRule != nil:
			walkAtRule(item.AtRule, fn)
		case item.Rule != nil:
			walkRule(item.Rule, fn)
		}
	}
}

func walkAtRule(at *AtRule, fn func(*Component)) {
	walkComponents(at.Prelude, fn)
	if at.Block != nil {
		walkBlock(at.Block, fn)
	}
}

func walkRule(r *Rule, fn func(*Component)) {
	walkComponents(r.Selector, fn)
	walkBlock(r.Block, fn)
}

func walkBlock(b *Block, fn func(*Component)) {
	for _, item := range b.Entries() {
		switch {
		case item.Declaration != nil:
			walkComponents(item.Declaration.Value, fn)
		case item.AtRule != nil:
			walkAtRule(item.AtRule, fn)
		case item.Rule != nil:
			walkRule(item.Rule, fn)
		}
	}
}

func walkComponents(list []*Component, fn func(*Component)) {
	for _, c := range list {
		fn(c)
		switch {
		case c.Function != nil:
			walkComponents(c.Function.Args, fn)
		case c.Group != nil:
			walkComponents(c.Group.Items, fn)
		}
	}
}
