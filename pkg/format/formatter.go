package format

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/pseudomuto/lesskeeper/pkg/cleancss"
	"github.com/pseudomuto/lesskeeper/pkg/functions"
	"github.com/pseudomuto/lesskeeper/pkg/parser"
	"github.com/pseudomuto/lesskeeper/pkg/sourcemap"
	"go.uber.org/zap"
)

// IndentSize is the number of spaces per nesting level in expanded output.
const IndentSize = 2

type (
	// Options controls rendering. The zero value renders expanded output
	// without a source map.
	Options struct {
		Compress          bool
		CleanCSS          bool
		IECompat          bool
		StrictMath        bool
		StrictUnits       bool
		SourceMap         bool
		SourceMapFilename string
		SourceMapURL      string
		SourceMapBasepath string
		SourceMapRootpath string
		OutputSourceFiles bool
	}

	// Output is the result of a render.
	Output struct {
		CSS       string
		SourceMap string
	}

	// Error is a render failure, usually raised by a custom function.
	Error struct {
		Filename string
		Line     int
		Column   int
		Message  string
	}

	// Option configures a Formatter.
	Option func(*Formatter)

	// Formatter renders trees with fixed options.
	Formatter struct {
		options   Options
		functions *functions.Registry
		log       *zap.Logger
	}
)

// Defaults are the options used for expanded output.
var Defaults = Options{}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: [L%d:C%d] %s", e.Filename, e.Line, e.Column, e.Message)
}

// IsZero reports whether no render option is set.
func (o Options) IsZero() bool {
	return o == Options{}
}

func (o Options) compressed() bool {
	return o.Compress || o.CleanCSS
}

func (o Options) wantsSourceMap() bool {
	return o.SourceMap || o.SourceMapFilename != ""
}

// WithFunctions makes the registry's functions callable from values.
func WithFunctions(reg *functions.Registry) Option {
	return func(f *Formatter) {
		f.functions = reg
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(f *Formatter) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a Formatter with the given options.
func New(options Options, opts ...Option) *Formatter {
	f := &Formatter{
		options: options,
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// NewDefault creates a Formatter producing expanded output.
func NewDefault() *Formatter {
	return New(Defaults)
}

// Render converts tree to CSS. Panics raised while rendering, including
// inside custom functions, are returned as *Error.
func (f *Formatter) Render(tree *parser.Tree) (out *Output, err error) {
	if tree == nil {
		return nil, &Error{Message: "no tree to render"}
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = &Error{Filename: tree.Filename, Message: fmt.Sprintf("render panicked: %v", rec)}
		}
	}()

	p := &printer{}
	if f.options.wantsSourceMap() {
		p.gen = sourcemap.NewGenerator(f.mapFile(), f.options.SourceMapRootpath)

		var content string
		if f.options.OutputSourceFiles {
			content = tree.Source
		}
		p.source = p.gen.AddSource(f.relative(tree.Filename), content)
	}

	r := &renderer{
		Formatter: f,
		printer:   p,
		tree:      tree,
		compress:  f.options.compressed(),
	}

	if err := r.stylesheet(tree.Stylesheet); err != nil {
		return nil, err
	}

	out = &Output{CSS: p.String()}

	if f.options.CleanCSS {
		if p.gen != nil {
			f.log.Warn("cleancss skipped because a source map was requested", zap.String("file", tree.Filename))
		} else {
			css, err := cleancss.Minify(out.CSS)
			if err != nil {
				return nil, &Error{Filename: tree.Filename, Message: err.Error()}
			}
			out.CSS = css
		}
	}

	if p.gen != nil {
		text, err := p.gen.JSON()
		if err != nil {
			return nil, &Error{Filename: tree.Filename, Message: err.Error()}
		}
		out.SourceMap = text

		if url := f.mapURL(); url != "" {
			out.CSS += "/*# sourceMappingURL=" + url + " */"
		}
	}

	return out, nil
}

// relative strips the source map base path from name.
func (f *Formatter) relative(name string) string {
	name = filepath.ToSlash(name)
	if base := filepath.ToSlash(f.options.SourceMapBasepath); base != "" && strings.HasPrefix(name, base) {
		name = strings.TrimPrefix(strings.TrimPrefix(name, base), "/")
	}

	return name
}

func (f *Formatter) mapURL() string {
	if f.options.SourceMapURL != "" {
		return f.options.SourceMapURL
	}

	if f.options.SourceMapFilename == "" {
		return ""
	}

	return f.relative(f.options.SourceMapFilename)
}

func (f *Formatter) mapFile() string {
	if f.options.SourceMapFilename == "" {
		return ""
	}

	return strings.TrimSuffix(path.Base(f.relative(f.options.SourceMapFilename)), ".map")
}
