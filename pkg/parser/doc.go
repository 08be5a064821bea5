// Package parser provides a participle-based parser for flattened LESS stylesheets.
//
// The input is expected to be the output of the resolver package: a single
// document with every @import already inlined. The parser builds a tree of
// rules, at-rules and declarations, keeping the position of each value
// component so the formatter can reproduce the original spacing or strip it.
//
// Basic usage:
//
//	tree, err := parser.Parse(css, parser.Options{
//	    Filename: "styles/main.less",
//	    Paths:    []string{"styles"},
//	})
//	if err != nil {
//	    var perr *parser.Error
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Line, perr.Column, perr.Message)
//	    }
//	}
//
// Parse options mirror the flags of the original toolchain: strictImports
// rejects @import inside blocks, dumpLineNumbers annotates rules with their
// source line, and rootpath/relativeUrls rewrite relative url() values.
package parser
