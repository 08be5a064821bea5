package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

const (
	identStart = `(?:[a-zA-Z_]|[^\x00-\x7F])`
	identChar  = `(?:[-a-zA-Z0-9_]|[^\x00-\x7F])`

	// Selectors and values can run long before a branch is rejected.
	maxLookahead = 1024
)

// Debug info modes accepted by Options.DumpLineNumbers.
const (
	DebugNone       = ""
	DebugComments   = "comments"
	DebugMediaQuery = "mediaquery"
	DebugAll        = "all"
)

var (
	// lessLexer tokenizes flattened LESS/CSS source.
	lessLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\r\n]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
		{Name: "URL", Pattern: `[uU][rR][lL]\(\s*[^\s"'()]*\s*\)`},
		{Name: "AtKeyword", Pattern: `@-?` + identStart + identChar + `*`},
		{Name: "Function", Pattern: `-{0,2}` + identStart + identChar + `*\(`},
		{Name: "Hash", Pattern: `#` + identChar + `+`},
		{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?(%|[a-zA-Z]+)?`},
		{Name: "Ident", Pattern: `-{0,2}` + identStart + identChar + `*`},
		{Name: "Delim", Pattern: `[{}();]`},
		{Name: "Punct", Pattern: `[-:,.>+~*=\[\]!/|^$&%<?@#\\]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[Stylesheet](
		participle.Lexer(lessLexer),
		participle.Elide("Comment", "LineComment", "Whitespace"),
		participle.UseLookahead(maxLookahead),
	)
)

type (
	// Options control how a document is parsed. Paths and Optimization are
	// recorded for callers but do not change parsing since imports are
	// resolved before the parser runs.
	Options struct {
		Paths           []string
		Optimization    int
		Filename        string
		StrictImports   bool
		DumpLineNumbers string
		RelativeURLs    bool
		Rootpath        string
	}

	// Tree is a parsed document together with the context it was parsed in.
	Tree struct {
		Stylesheet *Stylesheet
		Source     string
		Filename   string
		DebugInfo  string
		Options    Options
	}

	// Error is a parse failure with the location it was detected at.
	Error struct {
		Filename string
		Line     int
		Column   int
		Message  string
	}
)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: [L%d:C%d] %s", e.Filename, e.Line, e.Column, e.Message)
}

// Parse parses a flattened stylesheet.
//
// Failures are reported as *Error so callers can surface the line and column
// of the offending token.
func Parse(src string, opts Options) (*Tree, error) {
	switch opts.DumpLineNumbers {
	case DebugNone, DebugComments, DebugMediaQuery, DebugAll:
	default:
		return nil, &Error{
			Filename: opts.Filename,
			Message:  fmt.Sprintf("invalid dumpLineNumbers value %q", opts.DumpLineNumbers),
		}
	}

	sheet, err := parser.ParseString(opts.Filename, src)
	if err != nil {
		return nil, wrapError(opts.Filename, err)
	}

	if opts.StrictImports {
		if err := checkImports(opts.Filename, sheet); err != nil {
			return nil, err
		}
	}

	rewriteURLs(sheet, opts)

	return &Tree{
		Stylesheet: sheet,
		Source:     src,
		Filename:   opts.Filename,
		DebugInfo:  opts.DumpLineNumbers,
		Options:    opts,
	}, nil
}

func wrapError(filename string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &Error{
			Filename: filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Message:  perr.Message(),
		}
	}

	return &Error{Filename: filename, Message: errors.Wrap(err, "failed to parse stylesheet").Error()}
}

// checkImports rejects @import statements that are not at the top level.
func checkImports(filename string, sheet *Stylesheet) error {
	var check func(b *Block) error
	check = func(b *Block) error {
		for _, item := range b.Entries() {
			var nested *Block
			switch {
			case item.AtRule != nil:
				if strings.EqualFold(item.AtRule.Keyword, "@import") {
					return &Error{
						Filename: filename,
						Line:     item.AtRule.Pos.Line,
						Column:   item.AtRule.Pos.Column,
						Message:  "@import is only allowed at the top level",
					}
				}
				nested = item.AtRule.Block
			case item.Rule != nil:
				nested = item.Rule.Block
			}

			if nested != nil {
				if err := check(nested); err != nil {
					return err
				}
			}
		}

		return nil
	}

	for _, item := range sheet.Items {
		switch {
		case item.AtRule != nil && item.AtRule.Block != nil:
			if err := check(item.AtRule.Block); err != nil {
				return err
			}
		case item.Rule != nil:
			if err := check(item.Rule.Block); err != nil {
				return err
			}
		}
	}

	return nil
}

// rewriteURLs prefixes relative url() references according to the
// relativeUrls and rootpath options.
func rewriteURLs(sheet *Stylesheet, opts Options) {
	prefix := urlPrefix(opts)
	if prefix == "" {
		return
	}

	sheet.Walk(func(c *Component) {
		switch {
		case c.Token != nil && isURLToken(*c.Token):
			inner := strings.TrimSpace((*c.Token)[4 : len(*c.Token)-1])
			if isRelativeURL(inner) {
				rewritten := (*c.Token)[:4] + prefix + inner + ")"
				c.Token = &rewritten
			}
		case c.Function != nil && strings.EqualFold(c.Function.FuncName(), "url") && len(c.Function.Args) == 1:
			arg := c.Function.Args[0]
			if arg.Token == nil || !isQuoted(*arg.Token) {
				return
			}

			tok := *arg.Token
			inner := tok[1 : len(tok)-1]
			if isRelativeURL(inner) {
				rewritten := tok[:1] + prefix + inner + tok[len(tok)-1:]
				arg.Token = &rewritten
			}
		}
	})
}

func urlPrefix(opts Options) string {
	var prefix string
	if opts.RelativeURLs && opts.Filename != "" && len(opts.Paths) > 0 {
		rel, err := filepath.Rel(opts.Paths[0], filepath.Dir(opts.Filename))
		if err == nil && rel != "." {
			prefix = filepath.ToSlash(rel) + "/"
		}
	}

	if opts.Rootpath != "" {
		prefix = opts.Rootpath + prefix
	}

	return prefix
}

func isURLToken(tok string) bool {
	return len(tok) >= 5 && strings.EqualFold(tok[:4], "url(")
}

func isQuoted(tok string) bool {
	return len(tok) >= 2 && (tok[0] == '"' || tok[0] == '\'')
}

func isRelativeURL(u string) bool {
	switch {
	case u == "",
		strings.HasPrefix(u, "/"),
		strings.HasPrefix(u, "#"),
		strings.HasPrefix(strings.ToLower(u), "data:"),
		strings.Contains(u, "://"):
		return false
	}

	return true
}
