// Package compiler drives a single stylesheet entry through import
// resolution, parsing and rendering.
//
// Compile never panics and never reports through callbacks: every outcome,
// including failures, is returned in a Result.
//
//	c := compiler.New(compiler.WithLogger(log))
//	res := c.Compile("styles/main.less", compiler.Options{Compress: true})
//	if res.Err != nil {
//	    return res.Err
//	}
//	fmt.Println(res.Minified)
package compiler

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/format"
	"github.com/pseudomuto/lesskeeper/pkg/functions"
	"github.com/pseudomuto/lesskeeper/pkg/parser"
	"github.com/pseudomuto/lesskeeper/pkg/resolver"
	"go.uber.org/zap"
)

type (
	// Result is the outcome of compiling one entry.
	Result struct {
		Entry       string
		Minified    string
		Expanded    string
		HasExpanded bool
		SourceMap   string
		Includes    []string
		Err         *Error
	}

	Option func(*Compiler)

	// Compiler owns a function registry that is shared by every Compile
	// call made through it.
	Compiler struct {
		resolver  *resolver.Resolver
		functions *functions.Registry
		log       *zap.Logger
	}
)

// Failed reports whether the entry could not be compiled.
func (r *Result) Failed() bool {
	return r.Err != nil
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// WithResolver replaces the default import resolver.
func WithResolver(r *resolver.Resolver) Option {
	return func(c *Compiler) {
		c.resolver = r
	}
}

// WithFunctions registers custom functions on the compiler's registry.
func WithFunctions(fns map[string]functions.Func) Option {
	return func(c *Compiler) {
		c.functions.RegisterAll(fns)
	}
}

// New creates a Compiler with its own function registry.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		functions: functions.NewRegistry(),
		log:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.Named("compiler")
	if c.resolver == nil {
		c.resolver = resolver.New(resolver.WithLogger(c.log))
	}

	return c
}

// Functions returns the compiler's registry.
func (c *Compiler) Functions() *functions.Registry {
	return c.functions
}

// Compile resolves, parses and renders entry.
//
// Options are overlaid onto defaults where filename is the entry path and
// paths holds the entry's directory. When any render option is set, the
// tree is rendered a second time with default options to produce the
// expanded text.
func (c *Compiler) Compile(entry string, options Options) *Result {
	res := &Result{Entry: entry}

	path, err := filepath.Abs(entry)
	if err != nil {
		return c.fail(res, &Error{Kind: KindRead, Filename: entry, Message: err.Error()})
	}

	opts, err := Options{Filename: path, Paths: []string{filepath.Dir(path)}}.Merge(options)
	if err != nil {
		return c.fail(res, &Error{Kind: KindRead, Filename: entry, Message: err.Error()})
	}

	c.log.Debug("Compiling",
		zap.String("entry", path),
		zap.Strings("paths", opts.Paths),
		zap.Int("optimization", opts.Optimization),
	)

	doc, err := c.resolver.Resolve(path)
	if err != nil {
		return c.fail(res, &Error{Kind: KindRead, Filename: path, Message: err.Error()})
	}
	res.Includes = doc.Includes

	// the placeholder is not valid input
	if len(doc.Missing) > 0 {
		line, col := doc.Position()
		return c.fail(res, &Error{
			Kind:     KindParse,
			Filename: path,
			Line:     line,
			Column:   col,
			Message:  "unrecognised input: " + resolver.Placeholder(doc.Missing[0]),
		})
	}

	tree, err := parser.Parse(doc.Text, opts.ParseOptions())
	if err != nil {
		return c.fail(res, c.asError(KindParse, opts.Filename, err))
	}

	if err := c.functions.RegisterTemplates(opts.Functions); err != nil {
		return c.fail(res, &Error{Kind: KindRender, Filename: opts.Filename, Message: err.Error()})
	}

	renderOpts := opts.RenderOptions()
	out, err := c.formatter(renderOpts).Render(tree)
	if err != nil {
		return c.fail(res, c.asError(KindRender, opts.Filename, err))
	}

	res.Minified = out.CSS
	res.SourceMap = out.SourceMap

	if !renderOpts.IsZero() {
		expanded, err := c.formatter(format.Defaults).Render(tree)
		if err != nil {
			return c.fail(res, c.asError(KindRender, opts.Filename, err))
		}

		res.Expanded = expanded.CSS
		res.HasExpanded = true
	}

	return res
}

func (c *Compiler) formatter(opts format.Options) *format.Formatter {
	return format.New(opts, format.WithFunctions(c.functions), format.WithLogger(c.log))
}

func (c *Compiler) asError(kind Kind, filename string, err error) *Error {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &Error{Kind: kind, Filename: perr.Filename, Line: perr.Line, Column: perr.Column, Message: perr.Message}
	}

	var ferr *format.Error
	if errors.As(err, &ferr) {
		return &Error{Kind: kind, Filename: ferr.Filename, Line: ferr.Line, Column: ferr.Column, Message: ferr.Message}
	}

	return &Error{Kind: kind, Filename: filename, Message: err.Error()}
}

func (c *Compiler) fail(res *Result, err *Error) *Result {
	c.log.Error(err.Error(), zap.Stringer("kind", err.Kind))
	res.Err = err
	res.Minified = ""
	res.Expanded = ""
	res.HasExpanded = false
	res.SourceMap = ""
	return res
}
