package parser_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/lesskeeper/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `@charset "utf-8";
/* header */
a, b > .c {
  color: red;
  margin: 0 auto
}

@media (min-width: 100px) {
  a:hover { color: rgba(0, 0, 0, .5); }
}

// line comment
@import url(other.css);
`

	tree, err := Parse(src, Options{Filename: "main.less"})
	require.NoError(t, err)
	require.Equal(t, "main.less", tree.Filename)
	require.Equal(t, src, tree.Source)

	items := tree.Stylesheet.Items
	require.Len(t, items, 4)

	require.NotNil(t, items[0].AtRule)
	require.Equal(t, "@charset", items[0].AtRule.Keyword)
	require.True(t, items[0].AtRule.Semi)

	rule := items[1].Rule
	require.NotNil(t, rule)
	require.Equal(t, 3, rule.Pos.Line)
	require.Len(t, rule.Block.Items, 1)
	require.Equal(t, "color", rule.Block.Items[0].Declaration.Property)
	require.NotNil(t, rule.Block.Last)
	require.Equal(t, "margin", rule.Block.Last.Property)
	require.Len(t, rule.Block.Entries(), 2)

	media := items[2].AtRule
	require.NotNil(t, media)
	require.Equal(t, "@media", media.Keyword)
	require.Len(t, media.Prelude, 1)
	require.NotNil(t, media.Prelude[0].Group)
	require.NotNil(t, media.Block)

	nested := media.Block.Items[0].Rule
	require.NotNil(t, nested)
	decl := nested.Block.Items[0].Declaration
	require.Equal(t, "color", decl.Property)
	require.NotNil(t, decl.Value[0].Function)
	require.Equal(t, "rgba", decl.Value[0].Function.FuncName())

	imp := items[3].AtRule
	require.Equal(t, "@import", imp.Keyword)
	require.Equal(t, "url(other.css)", *imp.Prelude[0].Token)
}

func TestParseEmpty(t *testing.T) {
	tree, err := Parse("", Options{})
	require.NoError(t, err)
	require.Empty(t, tree.Stylesheet.Items)

	tree, err = Parse("/* only a comment */\n;\n", Options{})
	require.NoError(t, err)
	require.Len(t, tree.Stylesheet.Items, 1)
	require.True(t, tree.Stylesheet.Items[0].Empty)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]struct {
		src  string
		line int
	}{
		"unclosed block":    {src: "a {\n  color: red;\n", line: 3},
		"missing selector":  {src: "a { color: red; }\n}\n", line: 2},
		"stray declaration": {src: "a { color: red; }\ncolor: blue;\n", line: 2},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(test.src, Options{Filename: "broken.less"})
			require.Error(t, err)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			require.Equal(t, "broken.less", perr.Filename)
			require.Equal(t, test.line, perr.Line)
			require.NotEmpty(t, perr.Message)
			require.Contains(t, err.Error(), "broken.less: [L")
		})
	}
}

func TestParseInvalidDebugMode(t *testing.T) {
	_, err := Parse("a{}", Options{DumpLineNumbers: "sometimes"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid dumpLineNumbers")

	for _, mode := range []string{DebugNone, DebugComments, DebugMediaQuery, DebugAll} {
		tree, err := Parse("a{}", Options{DumpLineNumbers: mode})
		require.NoError(t, err)
		require.Equal(t, mode, tree.DebugInfo)
	}
}

func TestStrictImports(t *testing.T) {
	src := "@import \"top.css\";\n.a {\n  @import \"nested.css\";\n}\n"

	_, err := Parse(src, Options{})
	require.NoError(t, err)

	_, err = Parse(src, Options{Filename: "main.less", StrictImports: true})
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 3, perr.Line)
	require.Contains(t, perr.Message, "top level")

	_, err = Parse("@import \"top.css\";\n", Options{StrictImports: true})
	require.NoError(t, err)
}

func TestRewriteURLs(t *testing.T) {
	src := `a {
  background: url(img/a.png);
  cursor: url("cur.cur"), url('/abs.cur');
  mask: url(data:image/png;base64,AAAA);
  border-image: url( http://cdn/x.png );
}`

	values := func(tree *Tree) []string {
		var out []string
		tree.Stylesheet.Walk(func(c *Component) {
			if c.Token == nil {
				return
			}

			tok := *c.Token
			if strings.HasPrefix(tok, "url(") || strings.HasPrefix(tok, `"`) || strings.HasPrefix(tok, "'") {
				out = append(out, tok)
			}
		})
		return out
	}

	t.Run("untouched by default", func(t *testing.T) {
		tree, err := Parse(src, Options{Filename: "styles/main.less"})
		require.NoError(t, err)
		require.Equal(t, []string{
			"url(img/a.png)",
			`"cur.cur"`,
			"'/abs.cur'",
			"url(data:image/png;base64,AAAA)",
			"url( http://cdn/x.png )",
		}, values(tree))
	})

	t.Run("rootpath", func(t *testing.T) {
		tree, err := Parse(src, Options{Filename: "styles/main.less", Rootpath: "/static/"})
		require.NoError(t, err)
		require.Equal(t, []string{
			"url(/static/img/a.png)",
			`"/static/cur.cur"`,
			"'/abs.cur'",
			"url(data:image/png;base64,AAAA)",
			"url( http://cdn/x.png )",
		}, values(tree))
	})

	t.Run("relative urls", func(t *testing.T) {
		tree, err := Parse(src, Options{
			Filename:     "styles/theme/main.less",
			Paths:        []string{"styles"},
			RelativeURLs: true,
		})
		require.NoError(t, err)
		require.Equal(t, []string{
			"url(theme/img/a.png)",
			`"theme/cur.cur"`,
			"'/abs.cur'",
			"url(data:image/png;base64,AAAA)",
			"url( http://cdn/x.png )",
		}, values(tree))
	})

	t.Run("relative urls in entry directory", func(t *testing.T) {
		tree, err := Parse(src, Options{
			Filename:     "styles/main.less",
			Paths:        []string{"styles"},
			RelativeURLs: true,
		})
		require.NoError(t, err)
		require.Equal(t, "url(img/a.png)", values(tree)[0])
	})
}

func TestBlockIsEmpty(t *testing.T) {
	tests := map[string]bool{
		"a {}":                              true,
		"a { ; }":                           true,
		"a { b {} }":                        true,
		"a { b { color: red } }":            false,
		"a { color: red }":                  false,
		"a { color: red; }":                 false,
		"a { @media print { c {} } }":       true,
		"a { @page :first; }":               false,
		"a { @media print { c { x: y } } }": false,
	}

	for src, want := range tests {
		t.Run(src, func(t *testing.T) {
			tree, err := Parse(src, Options{})
			require.NoError(t, err)
			require.Equal(t, want, tree.Stylesheet.Items[0].Rule.Block.IsEmpty())
		})
	}
}

func TestComponentEnd(t *testing.T) {
	tree, err := Parse("a { b: calc(1px + 2px) (x) y; }", Options{})
	require.NoError(t, err)

	value := tree.Stylesheet.Items[0].Rule.Block.Items[0].Declaration.Value
	require.Len(t, value, 3)
	require.Equal(t, 7, value[0].Pos.Offset)
	require.Equal(t, 22, value[0].End())
	require.Equal(t, 23, value[1].Pos.Offset)
	require.Equal(t, 26, value[1].End())
	require.True(t, value[2].Is("y"))
	require.Equal(t, 28, value[2].End())
}
