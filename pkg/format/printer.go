package format

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pseudomuto/lesskeeper/pkg/sourcemap"
)

// printer writes output while tracking the zero-based generated position
// for source maps.
type printer struct {
	buf    strings.Builder
	line   int
	col    int
	gen    *sourcemap.Generator
	source int
}

func (p *printer) write(parts ...string) {
	for _, s := range parts {
		p.buf.WriteString(s)

		if i := strings.LastIndexByte(s, '\n'); i >= 0 {
			p.line += strings.Count(s, "\n")
			p.col = utf8.RuneCountInString(s[i+1:])
			continue
		}

		p.col += utf8.RuneCountInString(s)
	}
}

// mark maps the current output position to pos.
func (p *printer) mark(pos lexer.Position) {
	if p.gen == nil {
		return
	}

	p.gen.Add(sourcemap.Mapping{
		GenLine:   p.line,
		GenColumn: p.col,
		Source:    p.source,
		SrcLine:   pos.Line - 1,
		SrcColumn: pos.Column - 1,
	})
}

func (p *printer) String() string {
	return p.buf.String()
}
