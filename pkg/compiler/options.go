package compiler

import (
	"maps"
	"slices"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/format"
	"github.com/pseudomuto/lesskeeper/pkg/parser"
	"gopkg.in/yaml.v3"
)

// Options is the full compile option surface. YAML keys match the option
// names used by the original task configuration.
type Options struct {
	// Parse phase
	Paths           []string `yaml:"paths,omitempty"`
	Optimization    int      `yaml:"optimization,omitempty"`
	Filename        string   `yaml:"filename,omitempty"`
	StrictImports   bool     `yaml:"strictImports,omitempty"`
	DumpLineNumbers string   `yaml:"dumpLineNumbers,omitempty"`
	RelativeURLs    bool     `yaml:"relativeUrls,omitempty"`
	Rootpath        string   `yaml:"rootpath,omitempty"`

	// Render phase
	Compress          bool   `yaml:"compress,omitempty"`
	CleanCSS          bool   `yaml:"cleancss,omitempty"`
	IECompat          bool   `yaml:"ieCompat,omitempty"`
	StrictMath        bool   `yaml:"strictMath,omitempty"`
	StrictUnits       bool   `yaml:"strictUnits,omitempty"`
	SourceMap         bool   `yaml:"sourceMap,omitempty"`
	SourceMapFilename string `yaml:"sourceMapFilename,omitempty"`
	SourceMapURL      string `yaml:"sourceMapURL,omitempty"`
	SourceMapBasepath string `yaml:"sourceMapBasepath,omitempty"`
	SourceMapRootpath string `yaml:"sourceMapRootpath,omitempty"`
	OutputSourceFiles bool   `yaml:"outputSourceFiles,omitempty"`

	// Banner is prepended to every written destination.
	Banner string `yaml:"banner,omitempty"`

	// Functions declares template-backed custom functions by name.
	Functions map[string]string `yaml:"customFunctions,omitempty"`
}

// ParseOptions returns the parse-phase subset.
func (o Options) ParseOptions() parser.Options {
	return parser.Options{
		Paths:           slices.Clone(o.Paths),
		Optimization:    o.Optimization,
		Filename:        o.Filename,
		StrictImports:   o.StrictImports,
		DumpLineNumbers: o.DumpLineNumbers,
		RelativeURLs:    o.RelativeURLs,
		Rootpath:        o.Rootpath,
	}
}

// RenderOptions returns the render-phase subset.
func (o Options) RenderOptions() format.Options {
	return format.Options{
		Compress:          o.Compress,
		CleanCSS:          o.CleanCSS,
		IECompat:          o.IECompat,
		StrictMath:        o.StrictMath,
		StrictUnits:       o.StrictUnits,
		SourceMap:         o.SourceMap,
		SourceMapFilename: o.SourceMapFilename,
		SourceMapURL:      o.SourceMapURL,
		SourceMapBasepath: o.SourceMapBasepath,
		SourceMapRootpath: o.SourceMapRootpath,
		OutputSourceFiles: o.OutputSourceFiles,
	}
}

// Compressing reports whether outputs should be joined without separators.
func (o Options) Compressing() bool {
	return o.Compress || o.CleanCSS
}

// Merge returns o overlaid with every non-empty field of over. Neither
// input is modified. Function maps are merged key by key.
func (o Options) Merge(over Options) (Options, error) {
	merged := o.clone()
	if err := mergo.Merge(&merged, over.clone(), mergo.WithOverride); err != nil {
		return Options{}, errors.Wrap(err, "failed to merge options")
	}

	return merged, nil
}

// Overlay returns o with every key present in node decoded over it. Unlike Merge, a key set to
// false or an empty value replaces the value in o. Neither input is modified and function maps are
// merged key by key. A nil node returns a copy of o.
func (o Options) Overlay(node *yaml.Node) (Options, error) {
	merged := o.clone()
	if node == nil {
		return merged, nil
	}

	if err := node.Decode(&merged); err != nil {
		return Options{}, errors.Wrap(err, "failed to overlay options")
	}

	return merged, nil
}

func (o Options) clone() Options {
	c := o
	c.Paths = slices.Clone(o.Paths)
	c.Functions = maps.Clone(o.Functions)
	return c
}
