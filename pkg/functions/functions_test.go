package functions_test

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/lesskeeper/pkg/functions"
	"github.com/stretchr/testify/require"
)

func TestParseNode(t *testing.T) {
	tests := map[string]Node{
		`"hello"`:    &Quoted{Value: "hello", Quote: '"'},
		`'hi there'`: &Quoted{Value: "hi there", Quote: '\''},
		"#fff":       &Color{Hex: "#fff"},
		"#A0B1C2":    &Color{Hex: "#A0B1C2"},
		"bold":       &Keyword{Value: "bold"},
		"-webkit-x":  &Keyword{Value: "-webkit-x"},
		"10px":       &Dimension{Value: 10, Unit: "px"},
		"-.5em":      &Dimension{Value: -0.5, Unit: "em"},
		"50%":        &Dimension{Value: 50, Unit: "%"},
		"3":          &Dimension{Value: 3},
		"1px solid":  &Anonymous{Value: "1px solid"},
		"#zz":        &Anonymous{Value: "#zz"},
		"  red  ":    &Keyword{Value: "red"},
	}

	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			require.Equal(t, want, ParseNode(text))
		})
	}
}

func TestNodeCSS(t *testing.T) {
	n := Nodes{}

	require.Equal(t, "raw text", n.Anonymous("raw text").CSS())
	require.Equal(t, "42", n.Anonymous(42).CSS())
	require.Equal(t, `"x"`, n.Anonymous(n.Quoted("x")).CSS())
	require.Equal(t, "auto", n.Keyword("auto").CSS())
	require.Equal(t, `"a b"`, n.Quoted("a b").CSS())
	require.Equal(t, "1.5rem", n.Dimension(1.5, "rem").CSS())
	require.Equal(t, "20px", n.Dimension(20, "px").CSS())
	require.Equal(t, "#abc", n.Color("abc").CSS())
	require.Equal(t, "#abc", n.Color("#abc").CSS())
	require.Equal(t, `'q'`, (&Quoted{Value: "q", Quote: '\''}).CSS())
	require.Equal(t, `"q"`, (&Quoted{Value: "q"}).CSS())
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Double", func(n Nodes, args ...Node) (any, error) {
		d, ok := args[0].(*Dimension)
		if !ok {
			return nil, errors.New("double expects a dimension")
		}
		return n.Dimension(d.Value*2, d.Unit), nil
	})
	reg.RegisterAll(map[string]Func{
		"nothing": func(Nodes, ...Node) (any, error) { return nil, nil },
		"boom":    func(Nodes, ...Node) (any, error) { panic("kaboom") },
	})

	require.Equal(t, 3, reg.Len())
	require.Equal(t, []string{"boom", "double", "nothing"}, reg.Names())

	t.Run("case insensitive lookup", func(t *testing.T) {
		_, ok := reg.Lookup("DOUBLE")
		require.True(t, ok)

		_, ok = reg.Lookup("triple")
		require.False(t, ok)
	})

	t.Run("result is wrapped", func(t *testing.T) {
		res, err := reg.Call("double", ParseNode("4px"))
		require.NoError(t, err)
		require.Equal(t, &Anonymous{Value: "8px"}, res)
	})

	t.Run("nil result", func(t *testing.T) {
		res, err := reg.Call("nothing")
		require.NoError(t, err)
		require.Equal(t, "", res.CSS())
	})

	t.Run("function error", func(t *testing.T) {
		_, err := reg.Call("double", ParseNode("red"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "function double failed")
		require.Contains(t, err.Error(), "double expects a dimension")
	})

	t.Run("panic is recovered", func(t *testing.T) {
		_, err := reg.Call("boom")
		require.Error(t, err)
		require.Contains(t, err.Error(), "kaboom")
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := reg.Call("missing")
		require.Error(t, err)
		require.Contains(t, err.Error(), "not defined")
	})

	t.Run("nil registry", func(t *testing.T) {
		var empty *Registry
		_, ok := empty.Lookup("double")
		require.False(t, ok)
	})
}

func TestTemplateFunc(t *testing.T) {
	fn, err := NewTemplateFunc("shout", `{{ index .Args 0 | upper }}-{{ len .Nodes }}`)
	require.NoError(t, err)

	res, err := fn(Nodes{}, ParseNode(`"brand"`), ParseNode("2px"))
	require.NoError(t, err)
	require.Equal(t, "BRAND-2", res)

	_, err = NewTemplateFunc("broken", "{{ .Args ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unable to parse template function broken")

	t.Run("registered templates", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.RegisterTemplates(map[string]string{
			"asset": `url("/assets/{{ index .Args 0 }}")`,
		}))

		res, err := reg.Call("asset", ParseNode(`'logo.png'`))
		require.NoError(t, err)
		require.Equal(t, `url("/assets/logo.png")`, res.CSS())
	})

	t.Run("execution error", func(t *testing.T) {
		fn, err := NewTemplateFunc("oob", `{{ index .Args 3 }}`)
		require.NoError(t, err)

		_, err = fn(Nodes{})
		require.Error(t, err)
	})
}
