package compiler_test

import (
	"strings"
	"testing"

	. "github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/pseudomuto/lesskeeper/pkg/format"
	"github.com/pseudomuto/lesskeeper/pkg/parser"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOptionsSubsets(t *testing.T) {
	opts := Options{
		Paths:             []string{"styles"},
		Optimization:      2,
		Filename:          "styles/main.less",
		StrictImports:     true,
		DumpLineNumbers:   "all",
		RelativeURLs:      true,
		Rootpath:          "/static/",
		Compress:          true,
		CleanCSS:          true,
		IECompat:          true,
		StrictMath:        true,
		StrictUnits:       true,
		SourceMap:         true,
		SourceMapFilename: "main.css.map",
		SourceMapURL:      "/maps/main.css.map",
		SourceMapBasepath: "public",
		SourceMapRootpath: "/",
		OutputSourceFiles: true,
		Banner:            "/* banner */",
	}

	require.Equal(t, parser.Options{
		Paths:           []string{"styles"},
		Optimization:    2,
		Filename:        "styles/main.less",
		StrictImports:   true,
		DumpLineNumbers: "all",
		RelativeURLs:    true,
		Rootpath:        "/static/",
	}, opts.ParseOptions())

	require.Equal(t, format.Options{
		Compress:          true,
		CleanCSS:          true,
		IECompat:          true,
		StrictMath:        true,
		StrictUnits:       true,
		SourceMap:         true,
		SourceMapFilename: "main.css.map",
		SourceMapURL:      "/maps/main.css.map",
		SourceMapBasepath: "public",
		SourceMapRootpath: "/",
		OutputSourceFiles: true,
	}, opts.RenderOptions())

	require.True(t, Options{Banner: "x", Paths: []string{"a"}}.RenderOptions().IsZero())
	require.True(t, Options{CleanCSS: true}.Compressing())
	require.False(t, Options{}.Compressing())
}

func TestOptionsMerge(t *testing.T) {
	base := Options{
		Paths:     []string{"styles"},
		Compress:  true,
		Banner:    "/* base */",
		Functions: map[string]string{"a": "1", "b": "2"},
	}
	over := Options{
		Paths:     []string{"other", "more"},
		Rootpath:  "/cdn/",
		Functions: map[string]string{"b": "3", "c": "4"},
	}

	merged, err := base.Merge(over)
	require.NoError(t, err)
	require.Equal(t, []string{"other", "more"}, merged.Paths)
	require.True(t, merged.Compress)
	require.Equal(t, "/cdn/", merged.Rootpath)
	require.Equal(t, "/* base */", merged.Banner)
	require.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4"}, merged.Functions)

	// inputs are untouched
	require.Equal(t, []string{"styles"}, base.Paths)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, base.Functions)
	require.Empty(t, over.Banner)

	empty, err := Options{}.Merge(Options{})
	require.NoError(t, err)
	require.Equal(t, Options{}, empty)
}

func TestOptionsYAML(t *testing.T) {
	doc := `
paths: [styles, vendor]
strictImports: true
dumpLineNumbers: mediaquery
relativeUrls: true
compress: true
cleancss: true
ieCompat: true
sourceMapFilename: public/main.css.map
sourceMapURL: main.css.map
outputSourceFiles: true
banner: "/*! v1 */"
customFunctions:
  brand: '{{ index .Args 0 }}'
`

	var opts Options
	require.NoError(t, yaml.NewDecoder(strings.NewReader(doc)).Decode(&opts))
	require.Equal(t, Options{
		Paths:             []string{"styles", "vendor"},
		StrictImports:     true,
		DumpLineNumbers:   "mediaquery",
		RelativeURLs:      true,
		Compress:          true,
		CleanCSS:          true,
		IECompat:          true,
		SourceMapFilename: "public/main.css.map",
		SourceMapURL:      "main.css.map",
		OutputSourceFiles: true,
		Banner:            "/*! v1 */",
		Functions:         map[string]string{"brand": "{{ index .Args 0 }}"},
	}, opts)
}

func TestOptionsOverlay(t *testing.T) {
	base := Options{
		Compress:  true,
		CleanCSS:  true,
		Banner:    "/* base */",
		Functions: map[string]string{"a": "1"},
	}

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("compress: false
banner: ''
customFunctions: {b: '2'}
"), &node))

	// documents wrap their mapping
	merged, err := base.Overlay(node.Content[0])
	require.NoError(t, err)
	require.False(t, merged.Compress)
	require.True(t, merged.CleanCSS)
	require.Empty(t, merged.Banner)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, merged.Functions)

	// inputs are untouched
	require.True(t, base.Compress)
	require.Equal(t, map[string]string{"a": "1"}, base.Functions)

	same, err := base.Overlay(nil)
	require.NoError(t, err)
	require.Equal(t, base, same)

	require.NoError(t, yaml.Unmarshal([]byte("compress: [1]
"), &node))
	_, err = base.Overlay(node.Content[0])
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to overlay options")
}
