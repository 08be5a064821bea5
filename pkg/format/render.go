package format

import (
	"strings"

	"github.com/pseudomuto/lesskeeper/pkg/functions"
	"github.com/pseudomuto/lesskeeper/pkg/parser"
)

type context int

const (
	inSelector context = iota
	inPrelude
	inValue
)

type renderer struct {
	*Formatter
	*printer
	tree     *parser.Tree
	compress bool
}

func (r *renderer) stylesheet(sheet *parser.Stylesheet) error {
	for _, item := range sheet.Items {
		var err error
		switch {
		case item.AtRule != nil && !dropped(item.AtRule.Block):
			err = r.atRule(item.AtRule, 0)
		case item.Rule != nil && !dropped(item.Rule.Block):
			err = r.rule(item.Rule, 0)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func dropped(b *parser.Block) bool {
	return b != nil && b.IsEmpty()
}

// renderable filters out empty statements and rules without output.
func renderable(b *parser.Block) []*parser.BlockItem {
	var out []*parser.BlockItem
	for _, item := range b.Entries() {
		switch {
		case item.Declaration != nil:
		case item.AtRule != nil && !dropped(item.AtRule.Block):
		case item.Rule != nil && !dropped(item.Rule.Block):
		default:
			continue
		}

		out = append(out, item)
	}

	return out
}

func (r *renderer) indent(depth int) string {
	if r.compress {
		return ""
	}

	return strings.Repeat(" ", depth*IndentSize)
}

func (r *renderer) block(b *parser.Block, depth int) error {
	if r.compress {
		r.write("{")
	} else {
		r.write(" {\n")
	}

	entries := renderable(b)
	for i, item := range entries {
		var err error
		switch {
		case item.Declaration != nil:
			err = r.declaration(item.Declaration, depth+1, i == len(entries)-1)
		case item.AtRule != nil:
			err = r.atRule(item.AtRule, depth+1)
		case item.Rule != nil:
			err = r.rule(item.Rule, depth+1)
		}

		if err != nil {
			return err
		}
	}

	if r.compress {
		r.write("}")
	} else {
		r.write(r.indent(depth), "}\n")
	}

	return nil
}

func (r *renderer) rule(rule *parser.Rule, depth int) error {
	if !r.compress {
		r.debugInfo(rule, depth)
	}

	selector, err := r.selector(rule.Selector, depth)
	if err != nil {
		return err
	}

	r.write(r.indent(depth))
	r.mark(rule.Pos)
	r.write(selector)

	return r.block(rule.Block, depth)
}

func (r *renderer) atRule(at *parser.AtRule, depth int) error {
	prelude, err := r.components(at.Prelude, inPrelude)
	if err != nil {
		return err
	}

	r.write(r.indent(depth))
	r.mark(at.Pos)
	r.write(at.Keyword)
	if prelude != "" {
		r.write(" ", prelude)
	}

	if at.Block != nil {
		return r.block(at.Block, depth)
	}

	if r.compress {
		r.write(";")
	} else {
		r.write(";\n")
	}

	return nil
}

func (r *renderer) declaration(decl *parser.Declaration, depth int, last bool) error {
	value, err := r.components(decl.Value, inValue)
	if err != nil {
		return err
	}

	r.write(r.indent(depth))
	r.mark(decl.Pos)

	switch {
	case !r.compress:
		r.write(decl.Property, ": ", value, ";\n")
	case last:
		r.write(decl.Property, ":", value)
	default:
		r.write(decl.Property, ":", value, ";")
	}

	return nil
}

// selector renders a selector list, one selector per line when expanded.
func (r *renderer) selector(list []*parser.Component, depth int) (string, error) {
	groups := splitCommas(list)
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		s, err := r.components(group, inSelector)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	if r.compress {
		return strings.Join(parts, ","), nil
	}

	return strings.Join(parts, ",\n"+r.indent(depth)), nil
}

// components renders a run of components, keeping the whitespace that
// separated them in the source unless it is optional in compressed output.
func (r *renderer) components(list []*parser.Component, ctx context) (string, error) {
	var sb strings.Builder
	for i, c := range list {
		if i > 0 && c.Pos.Offset > list[i-1].End() && r.spaced(list[i-1], c, ctx) {
			sb.WriteByte(' ')
		}

		s, err := r.component(c, ctx)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}

	return sb.String(), nil
}

func (r *renderer) spaced(prev, next *parser.Component, ctx context) bool {
	if !r.compress {
		return true
	}

	switch {
	case prev.Is(","), next.Is(","), next.Is("!"):
		return false
	case ctx != inSelector && prev.Is(":"):
		return false
	case ctx == inSelector && (isCombinator(prev) || isCombinator(next)):
		return false
	case ctx == inValue && (prev.Is("/") || next.Is("/")):
		return false
	}

	return true
}

func isCombinator(c *parser.Component) bool {
	return c.Is(">") || c.Is("+") || c.Is("~")
}

func (r *renderer) component(c *parser.Component, ctx context) (string, error) {
	switch {
	case c.Function != nil:
		return r.function(c, ctx)
	case c.Group != nil:
		inner, err := r.components(c.Group.Items, ctx)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case c.Token != nil:
		return *c.Token, nil
	}

	return "", nil
}

func (r *renderer) function(c *parser.Component, ctx context) (string, error) {
	fn := c.Function
	name := fn.FuncName()

	if _, ok := r.functions.Lookup(name); !ok || ctx == inSelector {
		args, err := r.components(fn.Args, ctx)
		if err != nil {
			return "", err
		}
		return fn.Name + args + ")", nil
	}

	groups := splitCommas(fn.Args)
	nodes := make([]functions.Node, 0, len(groups))
	for _, group := range groups {
		text, err := r.components(group, inValue)
		if err != nil {
			return "", err
		}
		nodes = append(nodes, functions.ParseNode(text))
	}

	res, err := r.functions.Call(name, nodes...)
	if err != nil {
		return "", &Error{
			Filename: r.tree.Filename,
			Line:     c.Pos.Line,
			Column:   c.Pos.Column,
			Message:  err.Error(),
		}
	}

	return res.CSS(), nil
}

// splitCommas splits a component list at top-level commas.
func splitCommas(list []*parser.Component) [][]*parser.Component {
	if len(list) == 0 {
		return nil
	}

	var (
		groups  [][]*parser.Component
		current []*parser.Component
	)

	for _, c := range list {
		if c.Is(",") {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, c)
	}

	return append(groups, current)
}
